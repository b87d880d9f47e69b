package retrosheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHitLocation(t *testing.T) {
	cases := []struct {
		raw      string
		wantZone string
		wantLen  int
	}{
		{"7", "7", 1},
		{"78", "78", 2}, // longest-match: inter-zone code beats the bare "7"
		{"7D", "7", 2},
		{"7XDM+", "7", 5},
		{"", "", 0},
		{"S", "", 1}, // depth alone, no zone
	}
	for _, c := range cases {
		loc, n := ParseHitLocation(c.raw)
		assert.Equal(t, c.wantZone, loc.Zone, "raw=%q", c.raw)
		assert.Equal(t, c.wantLen, n, "raw=%q", c.raw)
	}
}

func TestParseHitLocationDepthAngleStrength(t *testing.T) {
	loc, n := ParseHitLocation("8XDL-")
	assert.Equal(t, "8", loc.Zone)
	assert.Equal(t, DepthExtraDeep, loc.Depth)
	assert.Equal(t, AngleLineSide, loc.Angle)
	assert.Equal(t, StrengthSoft, loc.Strength)
	assert.Equal(t, 5, n)
}

func TestParseHitLocationMissingFieldsDefaultToSentinels(t *testing.T) {
	loc, _ := ParseHitLocation("6")
	assert.Equal(t, DepthUnspecified, loc.Depth)
	assert.Equal(t, AngleUnspecified, loc.Angle)
	assert.Equal(t, StrengthUnspecified, loc.Strength)
}
