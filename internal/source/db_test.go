package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"tripboard/internal/models"
)

func TestRawFromRecord(t *testing.T) {
	from := time.Date(2024, 3, 18, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	dest := "d1"
	record := models.PointRecord{
		ID:            "1",
		Type:          "taxi",
		DateFrom:      &from,
		BasePrice:     20,
		DestinationID: &dest,
		Offers:        datatypes.JSON(`["t1","t2"]`),
		IsFavorite:    true,
	}

	raw, err := rawFromRecord(record)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-18T09:30:00Z", *raw.DateFrom)
	assert.Nil(t, raw.DateTo)
	assert.Equal(t, models.NewRef("d1"), raw.Destination)
	assert.Equal(t, []models.Ref{models.NewRef("t1"), models.NewRef("t2")}, raw.Offers)

	point, err := raw.Normalize()
	require.NoError(t, err)
	assert.True(t, point.DateFrom.Equal(from))
	assert.True(t, point.IsFavorite)
}

func TestRawFromRecordWithoutOffers(t *testing.T) {
	raw, err := rawFromRecord(models.PointRecord{ID: "2", Type: "bus"})
	require.NoError(t, err)
	assert.Nil(t, raw.Offers)
	assert.False(t, raw.Destination.Valid)
}

func TestRawFromRecordMalformedOffers(t *testing.T) {
	_, err := rawFromRecord(models.PointRecord{ID: "3", Offers: datatypes.JSON(`{`)})
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
}

func TestGroupOffers(t *testing.T) {
	catalog := groupOffers([]models.OfferRecord{
		{ID: "b1", Type: "bus", Title: "Wi-Fi", Price: 3},
		{ID: "t1", Type: "taxi", Title: "Business", Price: 120},
		{ID: "b2", Type: "bus", Title: "Snacks", Price: 4},
	})

	require.Len(t, catalog, 2)
	assert.Equal(t, models.TypeBus, catalog[0].Type)
	assert.Equal(t, []models.Offer{{ID: "b1", Title: "Wi-Fi", Price: 3}, {ID: "b2", Title: "Snacks", Price: 4}}, catalog[0].Offers)
	assert.Equal(t, models.TypeTaxi, catalog[1].Type)

	assert.Empty(t, groupOffers(nil))
}
