package domain

import (
	"math"
	"strings"
	"time"
)

const kmPerDegree = 111.0

type GeoRadius struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// BoundingBox approximates the circle with a lat/lng box. Error grows near
// the poles and with the radius.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	// AnyLng is set when the longitude span degenerates (at the poles).
	AnyLng bool
}

func (g GeoRadius) BoundingBox() BoundingBox {
	latDelta := g.RadiusKm / kmPerDegree
	lngDelta := g.RadiusKm / (kmPerDegree * math.Cos(g.Lat*math.Pi/180))

	box := BoundingBox{
		MinLat: g.Lat - latDelta,
		MaxLat: g.Lat + latDelta,
		MinLng: g.Lng - lngDelta,
		MaxLng: g.Lng + lngDelta,
	}
	if math.IsInf(lngDelta, 0) || math.IsNaN(lngDelta) || lngDelta < 0 || lngDelta >= 180 {
		box.AnyLng = true
	}
	return box
}

func (b BoundingBox) Contains(lat, lng float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	return b.AnyLng || (lng >= b.MinLng && lng <= b.MaxLng)
}

// RideFilter is the discovery query over open rides. Zero values disable a
// criterion.
type RideFilter struct {
	Origin      string
	Destination string
	From        *time.Time
	To          *time.Time
	MinSeats    int
	MaxPrice    *float64
	Near        *GeoRadius
}

func DayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

func (f RideFilter) Validate() error {
	if f.MinSeats < 0 {
		return ValidationError{Field: "seats_needed", Msg: "must not be negative"}
	}
	if f.MaxPrice != nil {
		if !isFinite(*f.MaxPrice) {
			return ValidationError{Field: "max_price", Msg: "must be a finite number"}
		}
		if *f.MaxPrice < 0 {
			return ValidationError{Field: "max_price", Msg: "must not be negative"}
		}
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return ValidationError{Field: "to", Msg: "must be after from"}
	}
	if f.Near != nil {
		// NaN compares false against every bound, so finiteness is checked first.
		if !isFinite(f.Near.RadiusKm) || f.Near.RadiusKm <= 0 {
			return ValidationError{Field: "radius_km", Msg: "must be a positive finite number"}
		}
		if !isFinite(f.Near.Lat) || f.Near.Lat < -90 || f.Near.Lat > 90 {
			return ValidationError{Field: "origin_lat", Msg: "must be within [-90,90]"}
		}
		if !isFinite(f.Near.Lng) || f.Near.Lng < -180 || f.Near.Lng > 180 {
			return ValidationError{Field: "origin_lng", Msg: "must be within [-180,180]"}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (f RideFilter) Matches(r Ride) bool {
	if r.Status != RideOpen {
		return false
	}
	if f.Origin != "" && !containsFold(r.Origin.Text, f.Origin) {
		return false
	}
	if f.Destination != "" && !containsFold(r.Destination.Text, f.Destination) {
		return false
	}
	if f.From != nil && r.StartsAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !r.StartsAt.Before(*f.To) {
		return false
	}
	if f.MinSeats > 0 && r.RemainingSeats < f.MinSeats {
		return false
	}
	if f.MaxPrice != nil && r.PricePerSeat > *f.MaxPrice {
		return false
	}
	if f.Near != nil {
		if !r.Origin.HasCoordinates() {
			return false
		}
		if !f.Near.BoundingBox().Contains(*r.Origin.Lat, *r.Origin.Lng) {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
