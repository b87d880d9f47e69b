package retrosheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeDispatchesByFirstField(t *testing.T) {
	cases := []struct {
		name string
		line []string
		kind RecordKind
	}{
		{"id", []string{"id", "ANA201304010"}, RecordGameID},
		{"7d alias", []string{"7d", "ANA201304010"}, RecordGameID},
		{"version", []string{"version", "2"}, RecordVersion},
		{"info", []string{"info", "visteam", "SEA"}, RecordInfo},
		{"start", []string{"start", "troutmi01", "Mike Trout", "1", "3", "8"}, RecordAppearance},
		{"sub", []string{"sub", "troutmi01", "Mike Trout", "1", "3", "8"}, RecordAppearance},
		{"play", []string{"play", "1", "0", "troutmi01", "12", "CBX", "S7"}, RecordPlay},
		{"badj", []string{"badj", "troutmi01", "L"}, RecordBatHandAdjustment},
		{"padj", []string{"padj", "troutmi01", "R"}, RecordPitchHandAdjustment},
		{"ladj", []string{"ladj", "1", "3"}, RecordLineupAdjustment},
		{"radj", []string{"radj", "3", "2"}, RecordRunnerAdjustment},
		{"presadj", []string{"presadj", "2", "smithjo01"}, RecordPitcherRespAdjustment},
		{"data er", []string{"data", "er", "smithjo01", "2"}, RecordEarnedRunData},
		{"com", []string{"com", "a comment"}, RecordComment},
		{"stat", []string{"stat", "bline", "troutmi01", "1", "3", "1"}, RecordBoxScoreStat},
		{"line", []string{"line", "0", "1", "0", "0"}, RecordBoxScoreLine},
		{"event", []string{"event", "hrline", "troutmi01", "smithjo01", "1", "0"}, RecordBoxScoreEvent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, err := Tokenize(append([]string(nil), c.line...), 1)
			assert.NoError(t, err)
			assert.Equal(t, c.kind, rec.Kind)
		})
	}
}

func TestTokenizeUnrecognizedFirstField(t *testing.T) {
	rec, err := Tokenize([]string{"bogus", "x"}, 5)
	assert.Error(t, err)
	assert.True(t, IsParseShape(err))
	assert.Equal(t, RecordUnrecognized, rec.Kind)
}

func TestTokenizeWrongArityRaisesParseShape(t *testing.T) {
	_, err := Tokenize([]string{"start", "troutmi01"}, 3)
	assert.Error(t, err)
	assert.True(t, IsParseShape(err))
}

func TestTokenizeTrimsFields(t *testing.T) {
	rec, err := Tokenize([]string{" id ", " ANA201304010 "}, 1)
	assert.NoError(t, err)
	assert.Equal(t, "ANA201304010", rec.Fields[0])
}

func TestTokenizeEarnedRunDataRequiresErToken(t *testing.T) {
	_, err := Tokenize([]string{"data", "xx", "smithjo01", "2"}, 1)
	assert.Error(t, err)
}

func TestIsStartRecord(t *testing.T) {
	assert.True(t, IsStartRecord([]string{"start", "troutmi01"}))
	assert.False(t, IsStartRecord([]string{"sub", "troutmi01"}))
}
