package models

import "time"

// Point представляет каноническую запись точки маршрута
type Point struct {
	ID            string     `json:"id"`
	Type          PointType  `json:"type"`
	DateFrom      *time.Time `json:"dateFrom"`
	DateTo        *time.Time `json:"dateTo"`
	BasePrice     float64    `json:"basePrice"`
	DestinationID *string    `json:"destinationId"`
	OfferIDs      []string   `json:"offerIds"` // nil, если списка предложений нет
	IsFavorite    bool       `json:"isFavorite"`
}

// Clone возвращает копию точки, не разделяющую память с исходной.
func (p Point) Clone() Point {
	out := p
	out.DateFrom = cloneTime(p.DateFrom)
	out.DateTo = cloneTime(p.DateTo)
	if p.DestinationID != nil {
		id := *p.DestinationID
		out.DestinationID = &id
	}
	if p.OfferIDs != nil {
		out.OfferIDs = append(make([]string, 0, len(p.OfferIDs)), p.OfferIDs...)
	}
	return out
}

// HasOffer сообщает, выбрано ли предложение с данным id.
func (p Point) HasOffer(id string) bool {
	for _, offerID := range p.OfferIDs {
		if offerID == id {
			return true
		}
	}
	return false
}

// Duration возвращает длительность события, если обе даты известны.
func (p Point) Duration() (time.Duration, bool) {
	if p.DateFrom == nil || p.DateTo == nil {
		return 0, false
	}
	return p.DateTo.Sub(*p.DateFrom), true
}

// PointWithDetails соединяет точку с пунктом назначения и предложениями.
// Значения этого типа только вычисляются и никогда не хранятся.
type PointWithDetails struct {
	Point
	Destination *Destination `json:"destination"`
	TypeOffers  []Offer      `json:"typeOffers"`
	Offers      []Offer      `json:"offers"`
}

// Clone возвращает глубокую копию.
func (p PointWithDetails) Clone() PointWithDetails {
	out := PointWithDetails{Point: p.Point.Clone()}
	if p.Destination != nil {
		dest := p.Destination.Clone()
		out.Destination = &dest
	}
	out.TypeOffers = cloneOffers(p.TypeOffers)
	out.Offers = cloneOffers(p.Offers)
	return out
}

// Base выделяет каноническую запись из формы редактирования.
// Пункт назначения берётся из вложенного объекта, а без него остаётся
// исходная ссылка. Идентификаторы, которых нет в каталоге типа, не теряются.
func (p PointWithDetails) Base() Point {
	base := p.Point.Clone()
	if p.Destination != nil && p.Destination.ID != "" {
		id := p.Destination.ID
		base.DestinationID = &id
	}
	if p.Offers == nil {
		return base
	}

	known := make(map[string]struct{}, len(p.TypeOffers))
	for _, offer := range p.TypeOffers {
		known[offer.ID] = struct{}{}
	}
	selected := make(map[string]struct{}, len(p.Offers))
	for _, offer := range p.Offers {
		selected[offer.ID] = struct{}{}
	}

	ids := make([]string, 0, len(p.OfferIDs)+len(p.Offers))
	seen := make(map[string]struct{}, cap(ids))
	for _, id := range p.OfferIDs {
		_, isKnown := known[id]
		_, isSelected := selected[id]
		if isKnown && !isSelected {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, offer := range p.Offers {
		if _, dup := seen[offer.ID]; dup {
			continue
		}
		seen[offer.ID] = struct{}{}
		ids = append(ids, offer.ID)
	}
	base.OfferIDs = ids
	return base
}

// TotalPrice складывает базовую цену и выбранные предложения.
func (p PointWithDetails) TotalPrice() float64 {
	total := p.BasePrice
	for _, offer := range p.Offers {
		total += offer.Price
	}
	return total
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
