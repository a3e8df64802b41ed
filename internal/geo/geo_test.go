package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineOneDegreeOfLatitude(t *testing.T) {
	// one degree of latitude is ~111.19 km on a 6371 km sphere
	d := Haversine(NewCoordinate(0, 0), NewCoordinate(1, 0))
	assert.InDelta(t, 111.195, d, 0.01)
}

func TestHaversineSymmetric(t *testing.T) {
	a := NewCoordinate(48.8566, 2.3522)
	b := NewCoordinate(51.5074, -0.1278)
	assert.Equal(t, Haversine(a, b), Haversine(b, a))
}

func TestHaversineZeroForIdenticalPoints(t *testing.T) {
	p := NewCoordinate(-33.8688, 151.2093)
	assert.Zero(t, Haversine(p, p))
}

func TestHaversineHighLatitude(t *testing.T) {
	// near the poles a degree of longitude shrinks; a flat-earth
	// approximation would be off by a factor of ~6 here
	d := Haversine(NewCoordinate(80, 0), NewCoordinate(80, 1))
	assert.InDelta(t, 19.31, d, 0.1)
}

func TestCentroid(t *testing.T) {
	c := Centroid([]Coordinate{
		NewCoordinate(10, 20),
		NewCoordinate(20, 40),
	})
	assert.InDelta(t, 15, c.Lat, 1e-9)
	assert.InDelta(t, 30, c.Lon, 1e-9)
}

func TestCentroidEmpty(t *testing.T) {
	assert.Equal(t, Coordinate{}, Centroid(nil))
}
