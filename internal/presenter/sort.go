package presenter

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"tripboard/internal/models"
)

var (
	ErrSortDisabled  = errors.New("sort type is disabled")
	ErrUnknownSort   = errors.New("unknown sort type")
	ErrUnknownFilter = errors.New("unknown filter type")
)

type SortType string

const (
	SortDay    SortType = "day"
	SortEvent  SortType = "event"
	SortTime   SortType = "time"
	SortPrice  SortType = "price"
	SortOffers SortType = "offers"
)

func (s SortType) Validate() error {
	switch s {
	case SortDay, SortTime, SortPrice:
		return nil
	case SortEvent, SortOffers:
		return fmt.Errorf("%w: %s", ErrSortDisabled, s)
	}
	return fmt.Errorf("%w: %q", ErrUnknownSort, s)
}

// sortPoints упорядочивает копию списка; точки без дат уходят в конец.
func sortPoints(points []models.PointWithDetails, sortType SortType) []models.PointWithDetails {
	sorted := append([]models.PointWithDetails(nil), points...)
	switch sortType {
	case SortDay:
		sort.SliceStable(sorted, func(i, j int) bool {
			return earlier(sorted[i].DateFrom, sorted[j].DateFrom)
		})
	case SortTime:
		sort.SliceStable(sorted, func(i, j int) bool {
			di, okI := sorted[i].Duration()
			dj, okJ := sorted[j].Duration()
			if okI != okJ {
				return okI
			}
			return di > dj
		})
	case SortPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].BasePrice > sorted[j].BasePrice
		})
	}
	return sorted
}

func earlier(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	}
	return a.Before(*b)
}

type FilterType string

const (
	FilterEverything FilterType = "everything"
	FilterFuture     FilterType = "future"
	FilterPresent    FilterType = "present"
	FilterPast       FilterType = "past"
)

func (f FilterType) Validate() error {
	switch f {
	case FilterEverything, FilterFuture, FilterPresent, FilterPast:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFilter, f)
}

// filterPoints оставляет точки, подходящие под фильтр относительно now.
// Точки без дат видны только в FilterEverything.
func filterPoints(points []models.PointWithDetails, filter FilterType, now time.Time) []models.PointWithDetails {
	if filter == FilterEverything {
		return append([]models.PointWithDetails(nil), points...)
	}
	out := make([]models.PointWithDetails, 0, len(points))
	for _, p := range points {
		if matchesFilter(p.Point, filter, now) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFilter(p models.Point, filter FilterType, now time.Time) bool {
	switch filter {
	case FilterFuture:
		return p.DateFrom != nil && p.DateFrom.After(now)
	case FilterPresent:
		return p.DateFrom != nil && p.DateTo != nil && !p.DateFrom.After(now) && !p.DateTo.Before(now)
	case FilterPast:
		return p.DateTo != nil && p.DateTo.Before(now)
	}
	return true
}
