package retrosheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func findLineupAppearance(apps []LineupAppearance, player Player, pos LineupPosition) (LineupAppearance, bool) {
	for _, a := range apps {
		if a.Player == player && a.LineupPosition == pos {
			return a, true
		}
	}
	return LineupAppearance{}, false
}

func findFieldingAppearance(apps []FieldingAppearance, player Player, pos FieldingPosition) (FieldingAppearance, bool) {
	for _, a := range apps {
		if a.Player == player && a.FieldingPosition == pos {
			return a, true
		}
	}
	return FieldingAppearance{}, false
}

func TestAddStarterOpensLineupAndDefense(t *testing.T) {
	tr := NewPersonnelTracker()
	tr.AddStarter(Away, "pitcher01", LineupPosition(9), Pitcher)

	p, ok := tr.CurrentPitcher(Away)
	assert.True(t, ok)
	assert.Equal(t, Pitcher("pitcher01"), p)

	_, ok = tr.CurrentPitcher(Home)
	assert.False(t, ok)
}

func TestSubstituteClosesOutgoingAppearances(t *testing.T) {
	tr := NewPersonnelTracker()
	tr.AddStarter(Home, "starter01", LineupPosition(4), LeftField)
	tr.Substitute(Home, "sub01", LineupPosition(4), LeftField, 50)
	tr.Finalize(100)

	out, ok := findLineupAppearance(tr.LineupAppearances(Home), "starter01", LineupPosition(4))
	if assert.True(t, ok) {
		assert.Equal(t, Starter, out.Kind)
		assert.Equal(t, 1, out.StartEventID)
		assert.Equal(t, 49, out.EndEventID)
	}

	in, ok := findLineupAppearance(tr.LineupAppearances(Home), "sub01", LineupPosition(4))
	if assert.True(t, ok) {
		assert.Equal(t, DefensiveSubstitution, in.Kind)
		assert.Equal(t, 50, in.StartEventID)
		assert.Equal(t, 100, in.EndEventID)
	}

	outField, ok := findFieldingAppearance(tr.FieldingAppearances(Home), "starter01", LeftField)
	if assert.True(t, ok) {
		assert.Equal(t, 49, outField.EndEventID)
	}
}

func TestSubstitutePinchHitterLeavesDefenseUntouched(t *testing.T) {
	tr := NewPersonnelTracker()
	tr.AddStarter(Away, "starter01", LineupPosition(2), CenterField)
	tr.Substitute(Away, "ph01", LineupPosition(2), PinchHitter, 30)

	la, ok := findLineupAppearance(tr.sides.Get(Away).appearances, "starter01", LineupPosition(2))
	if assert.True(t, ok) {
		assert.Equal(t, 29, la.EndEventID)
	}

	p, ok := tr.CurrentPitcher(Away)
	_ = p
	assert.False(t, ok)

	roster := tr.sides.Get(Away)
	assert.Equal(t, Player("starter01"), roster.defense[CenterField])
}

func TestHandleDHVacancyClosesDHFieldingAppearance(t *testing.T) {
	tr := NewPersonnelTracker()
	tr.AddStarter(Home, "dh01", LineupPosition(4), DesignatedHitter)
	tr.AddStarter(Home, "pitcher01", LineupPosition(0), Pitcher)

	tr.Substitute(Home, "pitcher01", LineupPosition(4), Pitcher, 60)
	tr.Finalize(100)

	dhLineup, ok := findLineupAppearance(tr.LineupAppearances(Home), "dh01", LineupPosition(4))
	if assert.True(t, ok) {
		assert.Equal(t, 59, dhLineup.EndEventID)
	}

	dhField, ok := findFieldingAppearance(tr.FieldingAppearances(Home), "dh01", DesignatedHitter)
	if assert.True(t, ok) {
		assert.Equal(t, 1, dhField.StartEventID)
		assert.Equal(t, 59, dhField.EndEventID)
	}

	benchSlot, ok := findLineupAppearance(tr.LineupAppearances(Home), "pitcher01", LineupPosition(0))
	if assert.True(t, ok) {
		assert.Equal(t, 59, benchSlot.EndEventID)
	}
}

func TestFinalizeClosesAllStillOpenAppearances(t *testing.T) {
	tr := NewPersonnelTracker()
	tr.AddStarter(Away, "p1", LineupPosition(1), CenterField)
	tr.Finalize(200)

	la, ok := findLineupAppearance(tr.LineupAppearances(Away), "p1", LineupPosition(1))
	if assert.True(t, ok) {
		assert.Equal(t, 200, la.EndEventID)
	}
	fa, ok := findFieldingAppearance(tr.FieldingAppearances(Away), "p1", CenterField)
	if assert.True(t, ok) {
		assert.Equal(t, 200, fa.EndEventID)
	}
}
