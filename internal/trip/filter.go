package trip

import (
	"errors"
	"sort"
	"strings"

	"backend-alpsconnect/internal/domain"
	"backend-alpsconnect/internal/shared/geo"
)

type Near struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// Filter narrows a trip listing. Zero-valued fields match everything.
type Filter struct {
	Status           domain.TripStatus
	ExcludeCancelled bool
	Activity         domain.ActivityType
	Difficulty       domain.Difficulty
	GuideID          string
	Query            string
	MaxPrice         int
	From             string
	To               string
	Near             *Near
}

func (f Filter) Match(t domain.Trip) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.ExcludeCancelled && t.Status == domain.StatusCancelled {
		return false
	}
	if f.Activity != "" && t.ActivityType != f.Activity {
		return false
	}
	if f.Difficulty != "" && t.Difficulty != f.Difficulty {
		return false
	}
	if f.GuideID != "" && t.GuideID != f.GuideID {
		return false
	}
	if f.MaxPrice > 0 && t.Price > f.MaxPrice {
		return false
	}
	if f.From != "" && t.Date < f.From {
		return false
	}
	if f.To != "" && t.Date > f.To {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.Location), q) {
			return false
		}
	}
	if f.Near != nil && f.Near.RadiusKm > 0 {
		if geo.HaversineKm(f.Near.Lat, f.Near.Lng, t.Coordinates.Lat, t.Coordinates.Lng) > f.Near.RadiusKm {
			return false
		}
	}
	return true
}

type SortOrder string

const (
	SortDate      SortOrder = "date"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortRating    SortOrder = "rating"
)

var ErrUnknownSort = errors.New("unknown sort order")

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case "":
		return SortDate, nil
	case SortDate, SortPriceAsc, SortPriceDesc, SortRating:
		return o, nil
	}
	return "", ErrUnknownSort
}

// List returns the matching trips in the requested order. Ties keep store order.
func (s *Store) List(f Filter, order SortOrder) []domain.Trip {
	s.mu.RLock()
	out := make([]domain.Trip, 0, len(s.trips))
	for _, t := range s.trips {
		if f.Match(t) {
			out = append(out, t.Clone())
		}
	}
	s.mu.RUnlock()

	sortTrips(out, order)
	return out
}

func sortTrips(trips []domain.Trip, order SortOrder) {
	var less func(a, b domain.Trip) bool
	switch order {
	case SortPriceAsc:
		less = func(a, b domain.Trip) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b domain.Trip) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b domain.Trip) bool { return a.GuideRating > b.GuideRating }
	default:
		less = func(a, b domain.Trip) bool { return a.Date < b.Date }
	}
	sort.SliceStable(trips, func(i, j int) bool { return less(trips[i], trips[j]) })
}
