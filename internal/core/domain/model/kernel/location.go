package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusKM is the mean Earth radius used by the haversine formula.
	EarthRadiusKM = 6371.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable (latitude, longitude) pair in decimal degrees.
// The zero value is invalid; use NewLocation.
//
// Example:
//
//	loc, err := kernel.NewLocation(-23.5505, -46.6333)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc) // Location(-23.550500,-46.633300)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation validates both coordinates against their ranges.
//
// Returns:
//   - Location: a valid location
//   - error: ValueIsOutOfRangeError for every coordinate out of range, or
//     ValueIsInvalidError for NaN
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// DefaultLocation is the position assumed for a courier that never reported one
// (São Paulo city centre).
func DefaultLocation() Location {
	return Location{lat: -23.5505, lng: -46.6333, guard: guard.NewConstructorGuard()}
}

// Validate reports whether the location was built by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lng)
}

// IsEqual compares two constructed locations.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceKM returns the great-circle distance in kilometres using the haversine
// formula on a spherical Earth. The result is symmetric and never negative.
//
// Example:
//
//	a, _ := NewLocation(-23.5505, -46.6333)
//	b, _ := NewLocation(-23.56, -46.64)
//	km := a.DistanceKM(b) // ≈ 1.24
func (l Location) DistanceKM(other Location) float64 {
	return HaversineKM(l.lat, l.lng, other.lat, other.lng)
}

// HaversineKM computes the great-circle distance between two points given in degrees.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKM * c
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) {
		return errs.NewValueIsInvalidErrorWithCause("lat", errors.New("latitude is NaN"))
	}
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) {
		return errs.NewValueIsInvalidErrorWithCause("lng", errors.New("longitude is NaN"))
	}
	if lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lng", lng, MinLongitude, MaxLongitude)
	}

	l.lng = lng
	return nil
}
