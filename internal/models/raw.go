package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMalformedRecord возвращается, если запись источника не приводится к канонической форме.
var ErrMalformedRecord = errors.New("malformed point record")

// Ref хранит ссылку на сущность в записи источника: строку id,
// вложенный объект {"id": ...} или null.
type Ref struct {
	ID    string
	Valid bool
}

// NewRef создаёт заполненную ссылку.
func NewRef(id string) Ref {
	return Ref{ID: id, Valid: true}
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = NewRef(id)
		return nil
	}
	var nested struct {
		ID *string `json:"id"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("%w: ссылка %s: %v", ErrMalformedRecord, data, err)
	}
	if nested.ID == nil {
		*r = Ref{}
		return nil
	}
	*r = NewRef(*nested.ID)
	return nil
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

func (r *Ref) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*r = Ref{}
			return nil
		}
		*r = NewRef(node.Value)
		return nil
	case yaml.MappingNode:
		var nested struct {
			ID *string `yaml:"id"`
		}
		if err := node.Decode(&nested); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		*r = Ref{}
		if nested.ID != nil {
			*r = NewRef(*nested.ID)
		}
		return nil
	}
	return fmt.Errorf("%w: ссылка в строке %d", ErrMalformedRecord, node.Line)
}

// RawPoint представляет точку в форме внешнего источника
type RawPoint struct {
	ID          string  `json:"id" yaml:"id"`
	Type        string  `json:"type" yaml:"type"`
	DateFrom    *string `json:"date_from" yaml:"date_from"`
	DateTo      *string `json:"date_to" yaml:"date_to"`
	BasePrice   float64 `json:"base_price" yaml:"base_price"`
	Destination Ref     `json:"destination" yaml:"destination"`
	Offers      []Ref   `json:"offers" yaml:"offers"`
	IsFavorite  bool    `json:"is_favorite" yaml:"is_favorite"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Normalize приводит запись источника к каноническому виду.
// null в датах сохраняется как nil.
func (r RawPoint) Normalize() (Point, error) {
	dateFrom, err := parseDate(r.DateFrom)
	if err != nil {
		return Point{}, fmt.Errorf("точка %q: date_from: %w", r.ID, err)
	}
	dateTo, err := parseDate(r.DateTo)
	if err != nil {
		return Point{}, fmt.Errorf("точка %q: date_to: %w", r.ID, err)
	}

	point := Point{
		ID:         r.ID,
		Type:       PointType(r.Type),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		BasePrice:  r.BasePrice,
		IsFavorite: r.IsFavorite,
	}
	if r.Destination.Valid {
		id := r.Destination.ID
		point.DestinationID = &id
	}
	if r.Offers != nil {
		point.OfferIDs = make([]string, 0, len(r.Offers))
		for _, ref := range r.Offers {
			if ref.Valid {
				point.OfferIDs = append(point.OfferIDs, ref.ID)
			}
		}
	}
	return point, nil
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: дата %q", ErrMalformedRecord, *value)
}
