package retrosheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBattingLine(t *testing.T) {
	line, err := DecodeBattingLine([]string{"troutmi01", "1", "3", "1", "4", "1", "2", "1"})
	assert.NoError(t, err)
	assert.Equal(t, Player("troutmi01"), line.Batter)
	assert.Equal(t, Home, line.Side)
	assert.Equal(t, LineupPosition(3), line.LineupPosition)
	assert.Equal(t, 1, line.NthPlayerAtPosition)
	assert.Equal(t, 4, line.Stats.AtBats)
	assert.Equal(t, 1, line.Stats.Runs)
	assert.Equal(t, 2, line.Stats.Hits)
	if assert.NotNil(t, line.Stats.Doubles) {
		assert.Equal(t, 1, *line.Stats.Doubles)
	}
	assert.Nil(t, line.Stats.Triples)
}

func TestDecodeBattingLineWrongArity(t *testing.T) {
	_, err := DecodeBattingLine([]string{"troutmi01"})
	assert.Error(t, err)
	assert.True(t, IsParseShape(err))
}

func TestDecodeDefenseLine(t *testing.T) {
	line, err := DecodeDefenseLine([]string{"smithjo01", "0", "6", "1", "9", "5", "4", "0", "1"})
	assert.NoError(t, err)
	assert.Equal(t, Player("smithjo01"), line.Fielder)
	assert.Equal(t, Away, line.Side)
	assert.Equal(t, ShortStop, line.FieldingPosition)
	assert.Equal(t, 9, line.Stats.Outs)
	assert.Equal(t, 5, line.Stats.Putouts)
	assert.Equal(t, 4, line.Stats.Assists)
	assert.Equal(t, 0, line.Stats.Errors)
	if assert.NotNil(t, line.Stats.DoublePlays) {
		assert.Equal(t, 1, *line.Stats.DoublePlays)
	}
}

func TestDecodePitchingLine(t *testing.T) {
	line, err := DecodePitchingLine([]string{"pitcher01", "1", "1", "27", "6", "2", "2", "3", "7"})
	assert.NoError(t, err)
	assert.Equal(t, Pitcher("pitcher01"), line.Pitcher)
	assert.Equal(t, Home, line.Side)
	assert.Equal(t, 1, line.NthPitcher)
	assert.Equal(t, 27, line.Stats.OutsRecorded)
	assert.Equal(t, 6, line.Stats.Hits)
	assert.Equal(t, 2, line.Stats.Runs)
	assert.Equal(t, 2, line.Stats.EarnedRuns)
	assert.Equal(t, 3, line.Stats.Walks)
	assert.Equal(t, 7, line.Stats.Strikeouts)
}

func TestDecodeLinescore(t *testing.T) {
	line, err := DecodeLinescore([]string{"0", "1", "0", "0", "2", "0", "0", "0", "0", "1"})
	assert.NoError(t, err)
	assert.Equal(t, Away, line.Side)
	assert.Equal(t, []int{1, 0, 0, 2, 0, 0, 0, 0, 1}, line.InningRuns)
}

func TestDecodeDoublePlayAndTriplePlayLines(t *testing.T) {
	dp, err := DecodeDoublePlayLine([]string{"1", "6", "4", "3"})
	assert.NoError(t, err)
	assert.Equal(t, Home, dp.Side)
	assert.Equal(t, []FieldingPosition{ShortStop, SecondBaseman, FirstBaseman}, dp.FieldingSequence)

	tp, err := DecodeTriplePlayLine([]string{"0", "5", "4", "3"})
	assert.NoError(t, err)
	assert.Equal(t, Away, tp.Side)
	assert.Equal(t, []FieldingPosition{ThirdBaseman, SecondBaseman, FirstBaseman}, tp.FieldingSequence)
}

func TestDecodeHitByPitchLine(t *testing.T) {
	line, err := DecodeHitByPitchLine([]string{"pitcher01", "batter01"})
	assert.NoError(t, err)
	assert.Equal(t, Pitcher("pitcher01"), line.Pitcher)
	assert.Equal(t, Player("batter01"), line.Batter)
}

func TestDecodeHomeRunLine(t *testing.T) {
	line, err := DecodeHomeRunLine([]string{"batter01", "pitcher01", "6", "3"})
	assert.NoError(t, err)
	assert.Equal(t, Player("batter01"), line.Batter)
	assert.Equal(t, Pitcher("pitcher01"), line.Pitcher)
	assert.Equal(t, 6, line.Inning)
	assert.Equal(t, 3, line.RunnersOn)
}

func TestDecodeStolenBaseAndCaughtStealingLines(t *testing.T) {
	sb, err := DecodeStolenBaseLine([]string{"runner01", "2"})
	assert.NoError(t, err)
	assert.Equal(t, Player("runner01"), sb.Runner)
	assert.Equal(t, SecondBase, sb.Base)

	cs, err := DecodeCaughtStealingLine([]string{"runner01", "3"})
	assert.NoError(t, err)
	assert.Equal(t, Player("runner01"), cs.Runner)
	assert.Equal(t, ThirdBase, cs.Base)
}

func TestBoxScoreDataDecodeStatRowDispatch(t *testing.T) {
	d := NewBoxScoreData()
	err := d.DecodeBoxScoreStatRow([]string{"bline", "troutmi01", "1", "3", "1", "4", "1", "2"})
	assert.NoError(t, err)
	assert.Len(t, d.Batting, 1)

	err = d.DecodeBoxScoreStatRow([]string{"pline", "pitcher01", "1", "1", "27"})
	assert.NoError(t, err)
	assert.Len(t, d.Pitching, 1)

	err = d.DecodeBoxScoreStatRow([]string{"unknownline", "x"})
	assert.Error(t, err)
}

func TestBoxScoreDataDecodeEventRowDispatch(t *testing.T) {
	d := NewBoxScoreData()
	err := d.DecodeBoxScoreEventRow([]string{"hrline", "batter01", "pitcher01", "1", "0"})
	assert.NoError(t, err)
	assert.Len(t, d.HomeRuns, 1)

	err = d.DecodeBoxScoreEventRow([]string{"dpline", "1", "6", "4", "3"})
	assert.NoError(t, err)
	assert.Len(t, d.DoublePlays, 1)
}

func TestDeriveBoxScoreTalliesRunsHitsAndErrors(t *testing.T) {
	events := []Event{
		{
			Context: EventContext{BattingSide: Away},
			Results: EventResults{
				Play:   Play{MainPlays: []MainPlay{HitPlay{Type: Single}}},
				Scored: nil,
			},
		},
		{
			Context: EventContext{BattingSide: Away},
			Results: EventResults{
				Play:   Play{MainPlays: []MainPlay{HitPlay{Type: HomeRun}}},
				Scored: []ScoredRunner{{Runner: Runner{LineupPosition: 4}}},
			},
		},
		{
			Context: EventContext{BattingSide: Home},
			Results: EventResults{
				Play: Play{MainPlays: []MainPlay{BattingOutPlay{Type: ReachedOnError}}},
			},
		},
	}

	totals := DeriveBoxScore(events)
	assert.Equal(t, 1, totals.Runs.Get(Away))
	assert.Equal(t, 2, totals.Hits.Get(Away))
	assert.Equal(t, 1, totals.Errors.Get(Away)) // fielding side for a Home batting-out is Away
}

func TestReconcileBattingCount(t *testing.T) {
	d := BoxScoreData{
		Batting: []BattingLine{
			{Side: Away, Stats: BattingLineStats{Hits: 2}},
			{Side: Away, Stats: BattingLineStats{Hits: 1}},
			{Side: Home, Stats: BattingLineStats{Hits: 5}},
		},
	}
	assert.Equal(t, 3, d.ReconcileBattingCount(Away))
	assert.Equal(t, 5, d.ReconcileBattingCount(Home))
}
