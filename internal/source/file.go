package source

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tripboard/internal/models"
)

// seed описывает формат YAML-файла с данными маршрута.
type seed struct {
	Points       []models.RawPoint          `yaml:"points"`
	Destinations []models.Destination       `yaml:"destinations"`
	Offers       []models.OfferCatalogEntry `yaml:"offers"`
}

// File читает данные маршрута из YAML-файла при каждом обращении.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (s *File) Points(ctx context.Context) ([]models.RawPoint, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return data.Points, nil
}

func (s *File) Destinations(ctx context.Context) ([]models.Destination, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return data.Destinations, nil
}

func (s *File) Offers(ctx context.Context) ([]models.OfferCatalogEntry, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return data.Offers, nil
}

func (s *File) read() (seed, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return seed{}, fmt.Errorf("чтение %s: %w", s.path, err)
	}
	var data seed
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return seed{}, fmt.Errorf("%w: %s: %v", models.ErrMalformedRecord, s.path, err)
	}
	return data, nil
}
