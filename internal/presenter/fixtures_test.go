package presenter

import (
	"context"
	"time"

	"tripboard/internal/models"
)

type fakeSource struct {
	points       []models.RawPoint
	destinations []models.Destination
	offers       []models.OfferCatalogEntry
	pointsErr    error
}

func (f *fakeSource) Points(context.Context) ([]models.RawPoint, error) {
	return f.points, f.pointsErr
}

func (f *fakeSource) Destinations(context.Context) ([]models.Destination, error) {
	return f.destinations, nil
}

func (f *fakeSource) Offers(context.Context) ([]models.OfferCatalogEntry, error) {
	return f.offers, nil
}

func ptr[T any](v T) *T { return &v }

// Относительно now фильтруются тестовые точки:
// первая в прошлом, вторая идёт сейчас, третья в будущем.
var now = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func newFakeSource() *fakeSource {
	return &fakeSource{
		points: []models.RawPoint{
			{ID: "2", Type: "flight", DateFrom: ptr("2024-03-20T10:00:00Z"), DateTo: ptr("2024-03-21T09:00:00Z"),
				BasePrice: 160, Destination: models.NewRef("d2"), Offers: []models.Ref{}},
			{ID: "3", Type: "bus", DateFrom: ptr("2024-03-25T08:00:00Z"), DateTo: ptr("2024-03-25T12:00:00Z"),
				BasePrice: 10, Destination: models.NewRef("d3")},
			{ID: "1", Type: "taxi", DateFrom: ptr("2024-03-18T10:30:00Z"), DateTo: ptr("2024-03-18T11:00:00Z"),
				BasePrice: 20, Destination: models.NewRef("d1"), Offers: []models.Ref{models.NewRef("t1")}},
		},
		destinations: []models.Destination{
			{ID: "d1", Name: "Geneva", Description: "Lake city"},
			{ID: "d2", Name: "Chamonix"},
			{ID: "d3", Name: "Amsterdam"},
		},
		offers: []models.OfferCatalogEntry{
			{Type: models.TypeTaxi, Offers: []models.Offer{{ID: "t1", Title: "Business", Price: 120}, {ID: "t2", Title: "Radio", Price: 5}}},
			{Type: models.TypeFlight, Offers: []models.Offer{{ID: "f1", Title: "Luggage", Price: 30}}},
			{Type: models.TypeBus, Offers: []models.Offer{}},
		},
	}
}
