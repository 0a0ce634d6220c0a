package source

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tripboard/internal/models"
)

// DB читает данные маршрута из таблиц postgres.
type DB struct {
	db *gorm.DB
}

func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Migrate создаёт таблицы источника.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.PointRecord{}, &models.DestinationRecord{}, &models.OfferRecord{})
}

func (s *DB) Points(ctx context.Context) ([]models.RawPoint, error) {
	var records []models.PointRecord
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("чтение trip_points: %w", err)
	}
	points := make([]models.RawPoint, 0, len(records))
	for _, record := range records {
		point, err := rawFromRecord(record)
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, nil
}

func (s *DB) Destinations(ctx context.Context) ([]models.Destination, error) {
	var records []models.DestinationRecord
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("чтение destinations: %w", err)
	}
	destinations := make([]models.Destination, 0, len(records))
	for _, record := range records {
		dest := models.Destination{
			ID:          record.ID,
			Name:        record.Name,
			Description: record.Description,
			Pictures:    []models.Picture{},
		}
		if len(record.Pictures) > 0 {
			if err := json.Unmarshal(record.Pictures, &dest.Pictures); err != nil {
				return nil, fmt.Errorf("%w: фотографии пункта %q: %v", models.ErrMalformedRecord, record.ID, err)
			}
		}
		destinations = append(destinations, dest)
	}
	return destinations, nil
}

func (s *DB) Offers(ctx context.Context) ([]models.OfferCatalogEntry, error) {
	var records []models.OfferRecord
	if err := s.db.WithContext(ctx).Order("type ASC").Order("position ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("чтение offer_catalog: %w", err)
	}
	return groupOffers(records), nil
}

func rawFromRecord(record models.PointRecord) (models.RawPoint, error) {
	point := models.RawPoint{
		ID:         record.ID,
		Type:       record.Type,
		DateFrom:   formatTime(record.DateFrom),
		DateTo:     formatTime(record.DateTo),
		BasePrice:  record.BasePrice,
		IsFavorite: record.IsFavorite,
	}
	if record.DestinationID != nil {
		point.Destination = models.NewRef(*record.DestinationID)
	}
	if len(record.Offers) > 0 {
		if err := json.Unmarshal(record.Offers, &point.Offers); err != nil {
			return models.RawPoint{}, fmt.Errorf("%w: предложения точки %q: %v", models.ErrMalformedRecord, record.ID, err)
		}
	}
	return point, nil
}

// groupOffers собирает строки каталога по типам, сохраняя порядок строк.
func groupOffers(records []models.OfferRecord) []models.OfferCatalogEntry {
	catalog := []models.OfferCatalogEntry{}
	index := make(map[string]int)
	for _, record := range records {
		i, ok := index[record.Type]
		if !ok {
			i = len(catalog)
			index[record.Type] = i
			catalog = append(catalog, models.OfferCatalogEntry{
				Type:   models.PointType(record.Type),
				Offers: []models.Offer{},
			})
		}
		catalog[i].Offers = append(catalog[i].Offers, models.Offer{
			ID:    record.ID,
			Title: record.Title,
			Price: record.Price,
		})
	}
	return catalog
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}
