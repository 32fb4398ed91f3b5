package kernel

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a geographic position reported by a courier device.
// The zero value is invalid; use NewLocation.
//
// Example:
//
//	loc, err := kernel.NewLocation(-12.0464, -77.0428)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(loc) // Location(-12.046400,-77.042800)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewLocation validates latitude in [-90, 90] and longitude in [-180, 180].
//
// Parameters:
//   - lat: latitude in degrees
//   - lon: longitude in degrees
//
// Returns:
//   - Location: a valid location
//   - error: joined range errors for every invalid coordinate
func NewLocation(lat, lon float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLon(lon)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Lat() float64 {
	return l.lat
}

func (l Location) Lon() float64 {
	return l.lon
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lon)
}

// IsEqual compares two constructed locations.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// DistanceKm returns the great-circle (haversine) distance in kilometres.
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1, lat2 := radians(l.lat), radians(other.lat)
	dLat := lat2 - lat1
	dLon := radians(other.lon - l.lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a)), nil
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLon(lon float64) error {
	if math.IsNaN(lon) || lon < LongitudeMin || lon > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lon", lon, LongitudeMin, LongitudeMax)
	}

	l.lon = lon
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
