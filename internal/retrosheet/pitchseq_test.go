package retrosheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParsePitchSequenceCatcherPickoffOnNonPitch is scenario S7: a catcher
// pickoff attempt on a non-pitch ('*' block followed by '>' before the
// in-play token).
func TestParsePitchSequenceCatcherPickoffOnNonPitch(t *testing.T) {
	items := ParsePitchSequence("CB*C>1X")
	if assert.Len(t, items, 4) {
		assert.Equal(t, CalledStrike, items[0].PitchType)

		assert.Equal(t, Ball, items[1].PitchType)
		assert.True(t, items[1].BlockedByCatcher)

		assert.Equal(t, CalledStrike, items[2].PitchType)

		assert.Equal(t, InPlay, items[3].PitchType)
		assert.True(t, items[3].RunnersGoing)
	}
}

func TestParsePitchSequencePickoffAttemptOnPitch(t *testing.T) {
	items := ParsePitchSequence("B+2")
	if assert.Len(t, items, 1) {
		assert.Equal(t, Ball, items[0].PitchType)
		if assert.NotNil(t, items[0].CatcherPickoffAttempt) {
			assert.Equal(t, SecondBase, *items[0].CatcherPickoffAttempt)
		}
	}
}

func TestParsePitchSequenceIgnoresWhitespace(t *testing.T) {
	withSpace := ParsePitchSequence("C B X")
	withoutSpace := ParsePitchSequence("CBX")
	assert.Equal(t, withoutSpace, withSpace)
}

func TestParsePitchSequenceEmpty(t *testing.T) {
	assert.Empty(t, ParsePitchSequence(""))
}

func TestPitchTypeClassification(t *testing.T) {
	assert.True(t, CalledStrike.IsStrike())
	assert.True(t, InPlay.IsStrike())
	assert.True(t, InPlay.IsInPlay())
	assert.True(t, Ball.IsBall())
	assert.False(t, Ball.IsStrike())
	assert.False(t, CalledStrike.IsBall())
}
