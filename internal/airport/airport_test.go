package airport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newLAX() *Airport {
	return New("LAX", "KLAX", "Los Angeles International Airport", "Los Angeles", "United States", "America/Los_Angeles", 33.9425, -118.4081, 38)
}

func TestSizeClassification(t *testing.T) {
	assert.Equal(t, SizeHub, sizeForCode("LAX"))
	assert.Equal(t, SizeHub, sizeForCode("LHR"))
	assert.Equal(t, SizeLarge, sizeForCode("SEA"))
	assert.Equal(t, SizeMedium, sizeForCode("AUS"))
	assert.Equal(t, SizeSmall, sizeForCode("XNA"))
}

func TestHubInfrastructure(t *testing.T) {
	lax := newLAX()

	assert.Equal(t, SizeHub, lax.Size)
	assert.Len(t, lax.Terminals, 3)
	assert.Len(t, lax.Runways, 3)
	assert.Equal(t, int64(80_000_000), lax.AnnualPassengers)
	assert.Len(t, lax.AllGates(), 30+25+20)
}

func TestSmallAirportInfrastructure(t *testing.T) {
	a := New("XNA", "KXNA", "Northwest Arkansas National Airport", "Bentonville", "United States", "America/Chicago", 36.2819, -94.3068, 395)

	assert.Equal(t, SizeSmall, a.Size)
	assert.Len(t, a.Terminals, 1)
	assert.Len(t, a.AllGates(), 6)
}

func TestIsOperatingInclusiveWindow(t *testing.T) {
	lax := newLAX()

	assert.True(t, lax.IsOperating(5))
	assert.True(t, lax.IsOperating(12))
	assert.True(t, lax.IsOperating(23))
	assert.False(t, lax.IsOperating(4))

	// Cross-midnight windows never match
	lax.OperatingHoursStart = 22
	lax.OperatingHoursEnd = 4
	assert.False(t, lax.IsOperating(23))
	assert.False(t, lax.IsOperating(2))
}

func TestCanHandleAircraft(t *testing.T) {
	lax := newLAX()
	assert.True(t, lax.CanHandleAircraft(3900))
	assert.False(t, lax.CanHandleAircraft(4500))

	for i := range lax.Runways {
		lax.Runways[i].IsActive = false
	}
	assert.False(t, lax.CanHandleAircraft(2000))
}

func TestDistanceTo(t *testing.T) {
	lax := newLAX()
	jfk := New("JFK", "KJFK", "John F. Kennedy International Airport", "New York", "United States", "America/New_York", 40.6413, -73.7781, 4)

	// Great-circle LAX-JFK is roughly 3,980 km
	d := lax.DistanceTo(jfk)
	assert.InDelta(t, 3980, d, 50)
	assert.InDelta(t, d, jfk.DistanceTo(lax), 1e-9)
	assert.Zero(t, lax.DistanceTo(lax))
}
