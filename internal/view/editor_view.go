package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tripboard/internal/models"
)

// ErrInvalidPoint означает, что черновик не прошёл проверку формы; в хранилище он не попадает.
var ErrInvalidPoint = errors.New("invalid point")

var validate = validator.New()

// Поля, которые форма проверяет перед отправкой.
type submission struct {
	Type        string     `validate:"required"`
	Destination string     `validate:"required"`
	DateFrom    *time.Time `validate:"required"`
	DateTo      *time.Time `validate:"required"`
	BasePrice   float64    `validate:"gte=0"`
}

// Form содержит частичное изменение черновика. nil-поля не меняются.
type Form struct {
	Type        *models.PointType `json:"type"`
	Destination *string           `json:"destination"` // название пункта назначения
	DateFrom    *time.Time        `json:"dateFrom"`
	DateTo      *time.Time        `json:"dateTo"`
	BasePrice   *float64          `json:"basePrice"`
	Offers      *[]string         `json:"offers"` // id выбранных предложений
}

type EditorConfig struct {
	// Редактируемая точка; nil открывает форму новой точки.
	Point        *models.PointWithDetails
	Destinations []models.Destination
	Catalog      []models.OfferCatalogEntry
	OnSubmit     func(models.PointWithDetails) error
	OnClose      func()
	OnDelete     func() error
}

// EditorView ведёт форму редактирования с собственным черновиком.
type EditorView struct {
	el           *Element
	isNew        bool
	draft        models.PointWithDetails
	destinations []models.Destination
	catalog      []models.OfferCatalogEntry
	onSubmit     func(models.PointWithDetails) error
	onClose      func()
	onDelete     func() error
}

// Вид события в форме новой точки
const DefaultNewType = models.TypeFlight

func NewEditorView(cfg EditorConfig) *EditorView {
	v := &EditorView{
		destinations: cfg.Destinations,
		catalog:      cfg.Catalog,
		onSubmit:     cfg.OnSubmit,
		onClose:      cfg.OnClose,
		onDelete:     cfg.OnDelete,
	}
	if cfg.Point == nil {
		v.isNew = true
		v.draft = blankPoint(cfg.Catalog)
	} else {
		v.draft = cfg.Point.Clone()
	}
	v.el = NewElement(v.template)
	return v
}

func blankPoint(catalog []models.OfferCatalogEntry) models.PointWithDetails {
	return models.PointWithDetails{
		Point:      models.Point{Type: DefaultNewType, OfferIDs: []string{}},
		TypeOffers: models.OffersForType(catalog, DefaultNewType),
		Offers:     []models.Offer{},
	}
}

func (v *EditorView) Element() *Element {
	if v == nil {
		return nil
	}
	return v.el
}

func (v *EditorView) IsNew() bool { return v.isNew }

func (v *EditorView) Draft() models.PointWithDetails { return v.draft.Clone() }

// SetReference обновляет справочники, из которых форма выбирает значения.
func (v *EditorView) SetReference(destinations []models.Destination, catalog []models.OfferCatalogEntry) {
	v.destinations = destinations
	v.catalog = catalog
}

// Reset выбрасывает черновик и начинает с переданной точки.
func (v *EditorView) Reset(point models.PointWithDetails) {
	v.draft = point.Clone()
}

// Apply переносит изменения формы в черновик. При ошибке черновик не меняется.
func (v *EditorView) Apply(form Form) error {
	draft := v.draft.Clone()

	if form.Type != nil {
		if !form.Type.Valid() {
			return fmt.Errorf("%w: неизвестный тип события %q", ErrInvalidPoint, *form.Type)
		}
		if *form.Type != draft.Type {
			draft.Type = *form.Type
			draft.TypeOffers = models.OffersForType(v.catalog, draft.Type)
			draft.Offers = []models.Offer{}
			draft.OfferIDs = []string{}
		}
	}
	if form.Destination != nil {
		dest, ok := models.FindDestinationByName(v.destinations, *form.Destination)
		if !ok {
			return fmt.Errorf("%w: неизвестный пункт назначения %q", ErrInvalidPoint, *form.Destination)
		}
		d := dest.Clone()
		draft.Destination = &d
		id := d.ID
		draft.DestinationID = &id
	}
	if form.DateFrom != nil {
		t := *form.DateFrom
		draft.DateFrom = &t
	}
	if form.DateTo != nil {
		t := *form.DateTo
		draft.DateTo = &t
	}
	if form.BasePrice != nil {
		draft.BasePrice = *form.BasePrice
	}
	if form.Offers != nil {
		ids := uniqueIDs(*form.Offers)
		selected := models.SelectOffers(draft.TypeOffers, ids)
		if len(selected) != len(ids) {
			return fmt.Errorf("%w: предложения не из каталога типа %q", ErrInvalidPoint, draft.Type)
		}
		draft.Offers = selected
		draft.OfferIDs = make([]string, 0, len(selected))
		for _, offer := range selected {
			draft.OfferIDs = append(draft.OfferIDs, offer.ID)
		}
	}

	v.draft = draft
	return nil
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ToggleOffer отмечает или снимает предложение из каталога текущего типа.
func (v *EditorView) ToggleOffer(id string) error {
	ids := make([]string, 0, len(v.draft.Offers)+1)
	found := false
	for _, offer := range v.draft.Offers {
		if offer.ID == id {
			found = true
			continue
		}
		ids = append(ids, offer.ID)
	}
	if !found {
		ids = append(ids, id)
	}
	return v.Apply(Form{Offers: &ids})
}

// Validate проверяет черновик по правилам формы.
func (v *EditorView) Validate() error {
	s := submission{
		Type:      string(v.draft.Type),
		DateFrom:  v.draft.DateFrom,
		DateTo:    v.draft.DateTo,
		BasePrice: v.draft.BasePrice,
	}
	if v.draft.Destination != nil {
		s.Destination = v.draft.Destination.ID
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if !v.draft.Type.Valid() {
		return fmt.Errorf("%w: неизвестный тип события %q", ErrInvalidPoint, v.draft.Type)
	}
	if v.draft.DateTo.Before(*v.draft.DateFrom) {
		return fmt.Errorf("%w: дата окончания раньше даты начала", ErrInvalidPoint)
	}
	return nil
}

// Submit проверяет черновик и отдаёт его обработчику отправки.
func (v *EditorView) Submit() error {
	if err := v.Validate(); err != nil {
		return err
	}
	if v.onSubmit == nil {
		return nil
	}
	return v.onSubmit(v.draft.Clone())
}

// Close нажимает кнопку сворачивания формы.
func (v *EditorView) Close() {
	if v.onClose != nil {
		v.onClose()
	}
}

// Delete нажимает кнопку удаления; в форме новой точки это отмена.
func (v *EditorView) Delete() error {
	if v.onDelete == nil {
		return nil
	}
	return v.onDelete()
}

func (v *EditorView) template() string {
	d := v.draft
	mode := "edit"
	if v.isNew {
		mode = "new"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s %s | %s — %s | €%s",
		mode, d.Type, destinationName(d.Destination),
		formatDateTime(d.DateFrom), formatDateTime(d.DateTo), formatPrice(d.BasePrice))
	for _, offer := range d.TypeOffers {
		mark := " "
		if containsOffer(d.Offers, offer.ID) {
			mark = "x"
		}
		fmt.Fprintf(&sb, "\n[%s] %s €%s", mark, offer.Title, formatPrice(offer.Price))
	}
	if d.Destination != nil && d.Destination.Description != "" {
		fmt.Fprintf(&sb, "\n%s", d.Destination.Description)
	}
	return sb.String()
}

func formatDateTime(t *time.Time) string {
	if t == nil {
		return "--/--/-- --:--"
	}
	return t.Format("02/01/06 15:04")
}

func containsOffer(offers []models.Offer, id string) bool {
	for _, offer := range offers {
		if offer.ID == id {
			return true
		}
	}
	return false
}
