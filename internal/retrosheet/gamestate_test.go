package retrosheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGameStateDefaultsAwayBatsFirst(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), false)
	assert.Equal(t, Away, gs.BattingSide)
	assert.Equal(t, Top, gs.Frame)
	assert.Equal(t, 1, gs.Inning)
	assert.Equal(t, 1, gs.EventID)
}

func TestNewGameStateHomeTeamBatsFirst(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), true)
	assert.Equal(t, Home, gs.BattingSide)
}

// TestApplyPlaySingle is scenario S1: a clean single ends the plate
// appearance, so the count and rare attributes reset for the next batter.
func TestApplyPlaySingle(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), false)
	gs.ApplyHandAdjustment(false, Left)

	ev, err := gs.ApplyPlay(1, Away, Player("battera01"), ParseCount("00"), nil, mustParsePlay(t, "S7"), 5, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, ev.EventID)
	assert.Empty(t, ev.Results.OutOnPlay)
	assert.True(t, ev.Results.EndingBaseState.Occupied(FirstBase))

	assert.Equal(t, 0, gs.Outs)
	assert.Nil(t, gs.Count.Balls)
	assert.Equal(t, HandUnspecified, gs.rareAttributes.BatterHand)
	assert.Equal(t, 2, gs.EventID)
}

// TestApplyPlayMidPlateAppearanceCarriesCountAndRareAttributes covers a
// no-play event (e.g. a mound visit) in the middle of a plate appearance:
// the count carries forward and only the hand overrides clear.
func TestApplyPlayMidPlateAppearanceCarriesCountAndRareAttributes(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), false)
	gs.ApplyHandAdjustment(false, Left)
	responsible := Player("pinchbatter01")
	gs.rareAttributes.StrikeoutResponsibleBatter = &responsible

	count := ParseCount("32")
	_, err := gs.ApplyPlay(1, Away, Player("battera01"), count, nil, mustParsePlay(t, "NP"), 6, 0)
	assert.NoError(t, err)

	assert.Equal(t, count, gs.Count)
	assert.Equal(t, HandUnspecified, gs.rareAttributes.BatterHand)
	if assert.NotNil(t, gs.rareAttributes.StrikeoutResponsibleBatter) {
		assert.Equal(t, responsible, *gs.rareAttributes.StrikeoutResponsibleBatter)
	}
}

// TestApplyPlayFrameFlip is scenario S6: the frame only flips once three
// outs have accumulated, and the inning only increments on the top-of-inning
// transition.
func TestApplyPlayFrameFlip(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), false)
	groundOut := mustParsePlay(t, "63")

	for i := 0; i < 3; i++ {
		_, err := gs.ApplyPlay(1, Away, Player("a"), Count{}, nil, groundOut, i+1, 0)
		assert.NoError(t, err)
	}
	assert.Equal(t, 3, gs.Outs)

	_, err := gs.ApplyPlay(1, Home, Player("b"), Count{}, nil, mustParsePlay(t, "S7"), 4, 0)
	assert.NoError(t, err)
	assert.Equal(t, Bottom, gs.Frame)
	assert.Equal(t, Home, gs.BattingSide)
	assert.Equal(t, 1, gs.Inning)
	assert.Equal(t, 0, gs.Outs)

	for i := 0; i < 3; i++ {
		_, err := gs.ApplyPlay(1, Home, Player("b"), Count{}, nil, groundOut, 10+i, 0)
		assert.NoError(t, err)
	}

	_, err = gs.ApplyPlay(2, Away, Player("a"), Count{}, nil, mustParsePlay(t, "S7"), 20, 0)
	assert.NoError(t, err)
	assert.Equal(t, Top, gs.Frame)
	assert.Equal(t, Away, gs.BattingSide)
	assert.Equal(t, 2, gs.Inning)
}

func TestApplyPlayFrameFlipWithoutThreeOutsIsStateIntegrityError(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), false)
	_, err := gs.ApplyPlay(1, Home, Player("b"), Count{}, nil, mustParsePlay(t, "S7"), 1, 0)
	assert.Error(t, err)
	assert.True(t, IsStateIntegrity(err))
}

func TestApplyRunnerAdjustmentPlacesRunnerAtSecond(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), false)
	gs.ApplyRunnerAdjustment(Runner{LineupPosition: 7})

	r, ok := gs.Bases.At(SecondBase)
	if assert.True(t, ok) {
		assert.Equal(t, LineupPosition(7), r.LineupPosition)
	}
	assert.Equal(t, Top, gs.Frame)
}

func TestApplyRunnerAdjustmentFlipsFrameWhenThreeOutsPending(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), false)
	gs.Outs = 3
	startInning := gs.Inning

	gs.ApplyRunnerAdjustment(Runner{LineupPosition: 9})

	assert.Equal(t, 0, gs.Outs)
	assert.Equal(t, Bottom, gs.Frame)
	assert.Equal(t, Home, gs.BattingSide)
	assert.Equal(t, startInning, gs.Inning)
	r, ok := gs.Bases.At(SecondBase)
	if assert.True(t, ok) {
		assert.Equal(t, LineupPosition(9), r.LineupPosition)
	}
}

func TestApplyPitcherResponsibilityAdjustment(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), false)
	gs.Bases.Place(FirstBase, Runner{LineupPosition: 2})

	err := gs.ApplyPitcherResponsibilityAdjustment(FirstBase, Pitcher("reliever01"))
	assert.NoError(t, err)

	r, ok := gs.Bases.At(FirstBase)
	if assert.True(t, ok) && assert.NotNil(t, r.ExplicitChargedPitcher) {
		assert.Equal(t, Pitcher("reliever01"), *r.ExplicitChargedPitcher)
	}
}

func TestApplyPitcherResponsibilityAdjustmentAbsentRunnerIsStateIntegrityError(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), false)
	err := gs.ApplyPitcherResponsibilityAdjustment(SecondBase, Pitcher("reliever01"))
	assert.Error(t, err)
	assert.True(t, IsStateIntegrity(err))
}

func TestAppendCommentBuffersUntilNextEvent(t *testing.T) {
	gs := NewGameState(GameID("TEST202304010"), false)
	gs.AppendComment("a comment")

	ev, err := gs.ApplyPlay(1, Away, Player("a"), Count{}, nil, mustParsePlay(t, "S7"), 1, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a comment"}, ev.Results.CommentLines)
	assert.Empty(t, gs.commentBuffer)
}
