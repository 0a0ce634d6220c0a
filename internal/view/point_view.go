package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tripboard/internal/models"
)

type PointViewConfig struct {
	Point           models.PointWithDetails
	OnEditClick     func()
	OnFavoriteClick func() error
}

// PointView показывает точку только для чтения.
type PointView struct {
	el              *Element
	point           models.PointWithDetails
	onEditClick     func()
	onFavoriteClick func() error
}

func NewPointView(cfg PointViewConfig) *PointView {
	v := &PointView{
		point:           cfg.Point.Clone(),
		onEditClick:     cfg.OnEditClick,
		onFavoriteClick: cfg.OnFavoriteClick,
	}
	v.el = NewElement(v.template)
	return v
}

func (v *PointView) Element() *Element {
	if v == nil {
		return nil
	}
	return v.el
}

func (v *PointView) Point() models.PointWithDetails { return v.point.Clone() }

// Update заменяет данные представления на месте.
func (v *PointView) Update(point models.PointWithDetails) {
	v.point = point.Clone()
}

func (v *PointView) ClickEdit() {
	if v.onEditClick != nil {
		v.onEditClick()
	}
}

func (v *PointView) ClickFavorite() error {
	if v.onFavoriteClick == nil {
		return nil
	}
	return v.onFavoriteClick()
}

func (v *PointView) template() string {
	p := v.point
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s | %s %s | %s — %s",
		formatDay(p.DateFrom), p.Type, destinationName(p.Destination),
		formatClock(p.DateFrom), formatClock(p.DateTo))
	if d, ok := p.Duration(); ok {
		fmt.Fprintf(&sb, " (%s)", FormatDuration(d))
	}
	fmt.Fprintf(&sb, " | €%s", formatPrice(p.BasePrice))
	for _, offer := range p.Offers {
		fmt.Fprintf(&sb, " | + %s €%s", offer.Title, formatPrice(offer.Price))
	}
	if p.IsFavorite {
		sb.WriteString(" | ★")
	}
	return sb.String()
}

// FormatDuration выводит длительность в виде 01D 02H 30M.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	days, hours, mins := minutes/(24*60), minutes/60%24, minutes%60
	switch {
	case days > 0:
		return fmt.Sprintf("%02dD %02dH %02dM", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%02dH %02dM", hours, mins)
	default:
		return fmt.Sprintf("%02dM", mins)
	}
}

func formatDay(t *time.Time) string {
	if t == nil {
		return "--"
	}
	return strings.ToUpper(t.Format("Jan 02"))
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return t.Format("15:04")
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func destinationName(dest *models.Destination) string {
	if dest == nil {
		return ""
	}
	return dest.Name
}
