package retrosheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeInfoKnownAndTypoAliases(t *testing.T) {
	info, err := DecodeInfo([]string{"visteam", "SEA"})
	assert.NoError(t, err)
	assert.Equal(t, InfoVisTeam, info.Kind)
	assert.Equal(t, "SEA", info.Value)

	// "fieldcon" is a common typo for "fieldcond" that the spec says to
	// accept as an alias.
	info, err = DecodeInfo([]string{"fieldcon", "dry"})
	assert.NoError(t, err)
	assert.Equal(t, InfoFieldCondition, info.Kind)

	info, err = DecodeInfo([]string{"oscorer", "Joe Smith"})
	assert.NoError(t, err)
	assert.Equal(t, InfoScorer, info.Kind)
}

func TestDecodeInfoUnrecognizedIsBenign(t *testing.T) {
	info, err := DecodeInfo([]string{"somethingnovel", "value"})
	assert.NoError(t, err)
	assert.Equal(t, InfoUnrecognized, info.Kind)
	assert.Equal(t, "somethingnovel", info.Name)
}

func TestDecodeInfoWrongArity(t *testing.T) {
	_, err := DecodeInfo([]string{"visteam"})
	assert.Error(t, err)
	assert.True(t, IsParseShape(err))
}

func TestParseTemperatureZeroIsAbsent(t *testing.T) {
	_, ok := ParseTemperature("0")
	assert.False(t, ok)

	n, ok := ParseTemperature("72")
	assert.True(t, ok)
	assert.Equal(t, 72, n)
}

func TestParseAttendanceZeroIsPresent(t *testing.T) {
	n, ok := ParseAttendance("0")
	assert.True(t, ok)
	assert.Equal(t, 0, n)
}

func TestClosedEnumParsers(t *testing.T) {
	assert.Equal(t, DayGame, ParseDayNight("day"))
	assert.Equal(t, NightGame, ParseDayNight("night"))
	assert.Equal(t, DayNightUnknown, ParseDayNight("dusk"))

	assert.Equal(t, FieldWet, ParseFieldCondition("wet"))
	assert.Equal(t, FieldConditionUnknown, ParseFieldCondition("muddy"))

	assert.Equal(t, PrecipRain, ParsePrecipitation("rain"))
	assert.Equal(t, PrecipShower, ParsePrecipitation("showers"))

	assert.Equal(t, SkyDome, ParseSky("dome"))
	assert.Equal(t, WindFromCF, ParseWindDirection("fromcf"))
}
