package geo_test

import (
	"math"
	"testing"

	"git.fiblab.net/sim/transit/geo"
	"github.com/stretchr/testify/assert"
)

func TestComputeDistance(t *testing.T) {
	a := geo.Coordinates{Lat: 0, Lng: 0}
	b := geo.Coordinates{Lat: 0, Lng: 1}

	// 同一点距离为0
	assert.Equal(t, 0.0, geo.ComputeDistance(a, a))

	// 赤道上1度经度
	expected := geo.EARTH_RADIUS * math.Pi / 180
	assert.InDelta(t, expected, geo.ComputeDistance(a, b), 1e-6)
	// 对称
	assert.InDelta(t, geo.ComputeDistance(a, b), geo.ComputeDistance(b, a), 1e-9)

	// 极近的两点不应产生NaN
	c := geo.Coordinates{Lat: 55.611087, Lng: 37.20829}
	d := geo.Coordinates{Lat: 55.611087, Lng: 37.2082900001}
	assert.False(t, math.IsNaN(geo.ComputeDistance(c, d)))
}

func TestIsZero(t *testing.T) {
	assert.True(t, geo.IsZero(0))
	assert.True(t, geo.IsZero(1e-7))
	assert.False(t, geo.IsZero(1e-3))
}
