// Package store владеет каноническими данными маршрута: точками,
// пунктами назначения и каталогом предложений.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tripboard/internal/bus"
	"tripboard/internal/models"
)

// ErrNotFound возвращается, когда изменение адресовано точке, которой нет в списке.
var ErrNotFound = errors.New("point not found")

// Source описывает внешний источник данных маршрута.
type Source interface {
	Points(ctx context.Context) ([]models.RawPoint, error)
	Destinations(ctx context.Context) ([]models.Destination, error)
	Offers(ctx context.Context) ([]models.OfferCatalogEntry, error)
}

// Notifier публикует изменения хранилища.
type Notifier = bus.Bus[*models.PointWithDetails]

// Store не потокобезопасен: все вызовы идут из одного цикла событий.
type Store struct {
	source       Source
	notifier     *Notifier
	points       []models.Point
	destinations []models.Destination
	offers       []models.OfferCatalogEntry
}

func New(source Source, notifier *Notifier) *Store {
	if notifier == nil {
		notifier = bus.New[*models.PointWithDetails]()
	}
	return &Store{
		source:       source,
		notifier:     notifier,
		points:       []models.Point{},
		destinations: []models.Destination{},
		offers:       []models.OfferCatalogEntry{},
	}
}

// Notifier возвращает шину хранилища.
func (s *Store) Notifier() *Notifier { return s.notifier }

// Load загружает данные из источника. Ошибки не возвращаются:
// при сбое соответствующая коллекция остаётся пустой.
func (s *Store) Load(ctx context.Context) {
	if destinations, err := s.source.Destinations(ctx); err != nil {
		log.Printf("Ошибка загрузки пунктов назначения: %v", err)
		s.destinations = []models.Destination{}
	} else {
		s.destinations = destinations
	}

	if offers, err := s.source.Offers(ctx); err != nil {
		log.Printf("Ошибка загрузки каталога предложений: %v", err)
		s.offers = []models.OfferCatalogEntry{}
	} else {
		s.offers = offers
	}

	points, err := s.loadPoints(ctx)
	if err != nil {
		log.Printf("Ошибка загрузки точек маршрута: %v", err)
		s.points = []models.Point{}
		return
	}
	s.points = points
	log.Printf("Загружено точек маршрута: %d", len(points))
}

// Reload перечитывает источник и оповещает подписчиков о полной смене данных.
func (s *Store) Reload(ctx context.Context) {
	s.Load(ctx)
	s.publish(models.UpdateInit, nil)
}

func (s *Store) loadPoints(ctx context.Context) ([]models.Point, error) {
	raw, err := s.source.Points(ctx)
	if err != nil {
		return nil, err
	}
	points := make([]models.Point, 0, len(raw))
	for _, record := range raw {
		point, err := record.Normalize()
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}
	return points, nil
}

// Points возвращает копию канонического списка.
func (s *Store) Points() []models.Point {
	out := make([]models.Point, 0, len(s.points))
	for _, p := range s.points {
		out = append(out, p.Clone())
	}
	return out
}

func (s *Store) Destinations() []models.Destination {
	out := make([]models.Destination, 0, len(s.destinations))
	for _, d := range s.destinations {
		out = append(out, d.Clone())
	}
	return out
}

func (s *Store) OfferCatalog() []models.OfferCatalogEntry {
	out := make([]models.OfferCatalogEntry, 0, len(s.offers))
	for _, entry := range s.offers {
		out = append(out, models.OfferCatalogEntry{
			Type:   entry.Type,
			Offers: append([]models.Offer{}, entry.Offers...),
		})
	}
	return out
}

// OffersFor возвращает каталог предложений для вида события.
func (s *Store) OffersFor(pointType models.PointType) []models.Offer {
	return append([]models.Offer{}, models.OffersForType(s.offers, pointType)...)
}

// Projection пересчитывает подробные точки из текущего состояния при каждом вызове.
func (s *Store) Projection() []models.PointWithDetails {
	out := make([]models.PointWithDetails, 0, len(s.points))
	for _, p := range s.points {
		out = append(out, s.details(p))
	}
	return out
}

// Find возвращает подробную точку по id.
func (s *Store) Find(id string) (models.PointWithDetails, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.PointWithDetails{}, false
	}
	return s.details(s.points[i]), true
}

func (s *Store) details(p models.Point) models.PointWithDetails {
	detailed := models.PointWithDetails{Point: p.Clone()}
	if p.DestinationID != nil {
		if dest, ok := models.FindDestination(s.destinations, *p.DestinationID); ok {
			d := dest.Clone()
			detailed.Destination = &d
		}
	}
	detailed.TypeOffers = append([]models.Offer{}, models.OffersForType(s.offers, p.Type)...)
	detailed.Offers = models.SelectOffers(detailed.TypeOffers, p.OfferIDs)
	return detailed
}

func (s *Store) indexOf(id string) int {
	for i, p := range s.points {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Add вставляет точку в начало списка.
func (s *Store) Add(updateType models.UpdateType, point models.PointWithDetails) {
	s.points = append([]models.Point{point.Base()}, s.points...)
	s.publish(updateType, &point)
}

// Update заменяет точку целиком, сохраняя её позицию.
func (s *Store) Update(updateType models.UpdateType, point models.PointWithDetails) error {
	i := s.indexOf(point.ID)
	if i < 0 {
		return fmt.Errorf("обновление точки %q: %w", point.ID, ErrNotFound)
	}
	s.points[i] = point.Base()
	s.publish(updateType, &point)
	return nil
}

// Delete удаляет точку; подписчики получают nil.
func (s *Store) Delete(updateType models.UpdateType, point models.PointWithDetails) error {
	i := s.indexOf(point.ID)
	if i < 0 {
		return fmt.Errorf("удаление точки %q: %w", point.ID, ErrNotFound)
	}
	s.points = append(s.points[:i:i], s.points[i+1:]...)
	s.publish(updateType, nil)
	return nil
}

func (s *Store) publish(updateType models.UpdateType, point *models.PointWithDetails) {
	if point != nil {
		c := point.Clone()
		point = &c
	}
	s.notifier.Publish(updateType, point)
}
