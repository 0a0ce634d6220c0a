package presenter

import (
	"strings"
	"time"

	"tripboard/internal/models"
)

// TripInfo представляет сводку маршрута для шапки страницы
type TripInfo struct {
	Title    string     `json:"title"`
	DateFrom *time.Time `json:"dateFrom"`
	DateTo   *time.Time `json:"dateTo"`
	Cost     float64    `json:"cost"`
}

const maxTitleCities = 3

// BuildTripInfo считает сводку по точкам в хронологическом порядке.
func BuildTripInfo(points []models.PointWithDetails) TripInfo {
	var info TripInfo
	var names []string
	for _, p := range sortPoints(points, SortDay) {
		info.Cost += p.TotalPrice()
		if p.Destination != nil && (len(names) == 0 || names[len(names)-1] != p.Destination.Name) {
			names = append(names, p.Destination.Name)
		}
		if p.DateFrom != nil && (info.DateFrom == nil || p.DateFrom.Before(*info.DateFrom)) {
			t := *p.DateFrom
			info.DateFrom = &t
		}
		if p.DateTo != nil && (info.DateTo == nil || p.DateTo.After(*info.DateTo)) {
			t := *p.DateTo
			info.DateTo = &t
		}
	}

	if len(names) > maxTitleCities {
		names = []string{names[0], "...", names[len(names)-1]}
	}
	info.Title = strings.Join(names, " — ")
	return info
}
