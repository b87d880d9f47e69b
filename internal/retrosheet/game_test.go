package retrosheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGameRecordsAssemblesContext(t *testing.T) {
	lines := [][]string{
		{"id", "ANA201304010"},
		{"info", "visteam", "SEA"},
		{"info", "hometeam", "ANA"},
		{"start", "battera01", "Batter A", "0", "1", "7"},
		{"start", "pitcherh01", "Pitcher H", "1", "0", "1"},
		{"com", "nice piece of hitting"},
		{"play", "1", "0", "battera01", "00", "X", "S7"},
		{"sub", "pinchh01", "Pinch H", "0", "1", "11"},
		{"data", "er", "pitcherh01", "0"},
		{"stat", "bline", "battera01", "0", "1", "1", "1", "0", "1"},
		{"line", "0", "1"},
	}

	game, err := ParseGameRecords(lines, FileInfo{SourceFile: "TEST.EVA", GameNumber: 1}, 1000, false)
	assert.NoError(t, err)
	assert.Empty(t, game.Skipped)

	ctx := game.Context
	assert.Equal(t, GameID("ANA201304010"), ctx.GameID)
	assert.Equal(t, Player("SEA"), ctx.Teams.Get(Away))
	assert.Equal(t, Player("ANA"), ctx.Teams.Get(Home))

	if assert.Len(t, ctx.Events, 1) {
		ev := ctx.Events[0]
		assert.Equal(t, 1, ev.EventID)
		assert.Equal(t, int64(1001), ev.EventKey)
		assert.Equal(t, []string{"nice piece of hitting"}, ev.Results.CommentLines)
		assert.True(t, ev.Results.EndingBaseState.Occupied(FirstBase))
	}

	awayLineup := ctx.LineupAppearances.Get(Away)
	if bat, ok := findLineupAppearance(awayLineup, "battera01", LineupPosition(1)); assert.True(t, ok) {
		assert.Equal(t, Starter, bat.Kind)
	}
	if sub, ok := findLineupAppearance(awayLineup, "pinchh01", LineupPosition(1)); assert.True(t, ok) {
		assert.Equal(t, PinchHitterEntry, sub.Kind)
	}

	if assert.Len(t, ctx.BoxScoreData.Batting, 1) {
		assert.Equal(t, Player("battera01"), ctx.BoxScoreData.Batting[0].Batter)
		assert.Equal(t, 1, ctx.BoxScoreData.Batting[0].Stats.Hits)
	}
	if assert.Len(t, ctx.BoxScoreData.Linescores, 1) {
		assert.Equal(t, Away, ctx.BoxScoreData.Linescores[0].Side)
		assert.Equal(t, []int{1}, ctx.BoxScoreData.Linescores[0].InningRuns)
	}
}

func TestParseGameRecordsSkipPolicyToleratesBadRecord(t *testing.T) {
	lines := [][]string{
		{"id", "ANA201304010"},
		{"info", "visteam", "SEA"},
		{"start", "bad01", "Bad Guy", "9", "1", "7"}, // side "9" is out of domain
		{"start", "battera01", "Batter A", "0", "1", "7"},
	}

	game, err := ParseGameRecords(lines, FileInfo{}, 0, false)
	assert.NoError(t, err)
	if assert.Len(t, game.Skipped, 1) {
		assert.True(t, IsFieldDomain(game.Skipped[0]))
	}

	away := game.Context.LineupAppearances.Get(Away)
	_, ok := findLineupAppearance(away, "battera01", LineupPosition(1))
	assert.True(t, ok)
}

func TestParseGameRecordsStrictPolicyAbortsOnBadRecord(t *testing.T) {
	lines := [][]string{
		{"id", "ANA201304010"},
		{"info", "visteam", "SEA"},
		{"start", "bad01", "Bad Guy", "9", "1", "7"},
		{"start", "battera01", "Batter A", "0", "1", "7"},
	}

	_, err := ParseGameRecords(lines, FileInfo{}, 0, true)
	assert.Error(t, err)
	assert.True(t, IsFieldDomain(err))
}

// TestParseGameRecordsReattributesStrikeoutToOutgoingBatter covers §4.5's
// substitution clause: a pinch-hitter entering for the batter currently due
// up, after strikes have already accumulated, inherits responsibility for
// a strikeout that completes on the next play.
func TestParseGameRecordsReattributesStrikeoutToOutgoingBatter(t *testing.T) {
	lines := [][]string{
		{"id", "ANA201304020"},
		{"info", "visteam", "SEA"},
		{"info", "hometeam", "ANA"},
		{"start", "battera01", "Batter A", "0", "1", "7"},
		{"start", "pitcherh01", "Pitcher H", "1", "0", "1"},
		{"play", "1", "0", "battera01", "02", "CC", "NP"},
		{"sub", "pinchh01", "Pinch H", "0", "1", "11"},
		{"play", "1", "0", "pinchh01", "02", "X", "K"},
	}

	game, err := ParseGameRecords(lines, FileInfo{}, 0, false)
	assert.NoError(t, err)
	assert.Empty(t, game.Skipped)

	if assert.Len(t, game.Context.Events, 2) {
		strikeoutEvent := game.Context.Events[1]
		if assert.NotNil(t, strikeoutEvent.Context.RareAttributes.StrikeoutResponsibleBatter) {
			assert.Equal(t, Player("battera01"), *strikeoutEvent.Context.RareAttributes.StrikeoutResponsibleBatter)
		}
	}
}

func TestDecodeAppearanceRequiresFiveFields(t *testing.T) {
	rec := Record{Kind: RecordAppearance, Fields: []string{"battera01", "Batter A", "0"}}
	_, err := decodeAppearance(rec)
	assert.Error(t, err)
	assert.True(t, IsParseShape(err))
}
