package models

// Offer представляет дополнительную услугу к событию
type Offer struct {
	ID    string  `json:"id" yaml:"id"`
	Title string  `json:"title" yaml:"title"`
	Price float64 `json:"price" yaml:"price"`
}

// OfferCatalogEntry содержит все предложения для одного вида события.
type OfferCatalogEntry struct {
	Type   PointType `json:"type" yaml:"type"`
	Offers []Offer   `json:"offers" yaml:"offers"`
}

// OffersForType возвращает каталог для типа или nil, если типа в каталоге нет.
func OffersForType(catalog []OfferCatalogEntry, pointType PointType) []Offer {
	for _, entry := range catalog {
		if entry.Type == pointType {
			return entry.Offers
		}
	}
	return nil
}

// SelectOffers оставляет из каталога только предложения из ids, сохраняя порядок каталога.
// Для ids == nil результат пустой.
func SelectOffers(typeOffers []Offer, ids []string) []Offer {
	selected := make([]Offer, 0, len(ids))
	if ids == nil {
		return selected
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, offer := range typeOffers {
		if _, ok := wanted[offer.ID]; ok {
			selected = append(selected, offer)
		}
	}
	return selected
}

func cloneOffers(offers []Offer) []Offer {
	if offers == nil {
		return nil
	}
	return append(make([]Offer, 0, len(offers)), offers...)
}
