package models

import (
	"time"

	"gorm.io/datatypes"
)

// Строка таблицы trip_points. Колонки повторяют форму внешнего источника.
type PointRecord struct {
	ID            string         `gorm:"primaryKey"`
	Type          string         `gorm:"not null"`
	DateFrom      *time.Time     `gorm:"index"`
	DateTo        *time.Time
	BasePrice     float64        `gorm:"not null;default:0"`
	DestinationID *string        `gorm:"index"`
	Offers        datatypes.JSON // массив id предложений, NULL если предложений нет
	IsFavorite    bool           `gorm:"default:false"`
	Position      int            `gorm:"index"` // порядок в маршруте
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PointRecord) TableName() string { return "trip_points" }

// Строка таблицы destinations
type DestinationRecord struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	Pictures    datatypes.JSON // [{"src": ..., "description": ...}]
}

func (DestinationRecord) TableName() string { return "destinations" }

// Строка таблицы offer_catalog
type OfferRecord struct {
	ID       string  `gorm:"primaryKey"`
	Type     string  `gorm:"index;not null"`
	Title    string  `gorm:"not null"`
	Price    float64 `gorm:"not null;default:0"`
	Position int     // порядок внутри каталога типа
}

func (OfferRecord) TableName() string { return "offer_catalog" }
