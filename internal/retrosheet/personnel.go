package retrosheet

// EntryKind classifies why a lineup appearance opened.
type EntryKind int

const (
	Starter EntryKind = iota
	PinchHitterEntry
	PinchRunnerEntry
	DefensiveSubstitution
)

// LineupAppearance is the interval during which a player occupied a
// batting-order slot.
type LineupAppearance struct {
	Player         Player
	Side           Side
	LineupPosition LineupPosition
	Kind           EntryKind
	StartEventID   int
	EndEventID     int // 0 while open
}

// FieldingAppearance is the interval during which a player occupied a
// defensive position.
type FieldingAppearance struct {
	Player           Player
	Side             Side
	FieldingPosition FieldingPosition
	StartEventID     int
	EndEventID       int // 0 while open
}

// sideRoster tracks one team's current lineup and defense plus the
// appearance history that backs them.
type sideRoster struct {
	lineup  map[LineupPosition]Player
	defense map[FieldingPosition]Player

	lineupOpen  map[LineupPosition]*LineupAppearance
	defenseOpen map[FieldingPosition]*FieldingAppearance

	appearances        []LineupAppearance
	fieldingAppearances []FieldingAppearance
}

func newSideRoster() *sideRoster {
	return &sideRoster{
		lineup:      make(map[LineupPosition]Player),
		defense:     make(map[FieldingPosition]Player),
		lineupOpen:  make(map[LineupPosition]*LineupAppearance),
		defenseOpen: make(map[FieldingPosition]*FieldingAppearance),
	}
}

// PersonnelTracker maintains both sides' lineups and defenses across a
// game, recording the full appearance history needed for box-score
// reconstruction.
type PersonnelTracker struct {
	sides Matchup[*sideRoster]
}

// NewPersonnelTracker returns a tracker with empty rosters for both sides.
func NewPersonnelTracker() *PersonnelTracker {
	return &PersonnelTracker{sides: NewMatchup(newSideRoster(), newSideRoster())}
}

// AddStarter inserts a "start" record's player into both the lineup and
// the defense, opening one lineup and one fielding appearance at
// start_event_id=1.
func (t *PersonnelTracker) AddStarter(side Side, player Player, lineupPos LineupPosition, fieldingPos FieldingPosition) {
	roster := t.sides.Get(side)
	roster.lineup[lineupPos] = player
	la := &LineupAppearance{Player: player, Side: side, LineupPosition: lineupPos, Kind: Starter, StartEventID: 1}
	roster.lineupOpen[lineupPos] = la

	if fieldingPos.PlaysInField() || fieldingPos == DesignatedHitter {
		roster.defense[fieldingPos] = player
		fa := &FieldingAppearance{Player: player, Side: side, FieldingPosition: fieldingPos, StartEventID: 1}
		roster.defenseOpen[fieldingPos] = fa
	}
}

// Substitute applies a "sub" record at eventID, per spec §4.4: lineup
// update, defense update (only for fielding positions 1..9), and DH
// vacancy handling.
func (t *PersonnelTracker) Substitute(side Side, player Player, lineupPos LineupPosition, fieldingPos FieldingPosition, eventID int) {
	roster := t.sides.Get(side)
	t.substituteLineup(roster, player, lineupPos, side, fieldingPos, eventID)

	if fieldingPos >= Pitcher && fieldingPos <= RightField {
		t.substituteDefense(roster, player, fieldingPos, side, eventID)
	}

	if fieldingPos == Pitcher && lineupPos != 0 {
		t.handleDHVacancy(roster, player, side, eventID)
	}
}

func (t *PersonnelTracker) substituteLineup(roster *sideRoster, player Player, lineupPos LineupPosition, side Side, fieldingPos FieldingPosition, eventID int) {
	if existing, ok := roster.lineup[lineupPos]; ok && existing != player {
		t.closeLineupAppearance(roster, lineupPos, eventID-1)
	}
	if slot, ok := t.findOpenLineupSlot(roster, player); ok && slot != lineupPos {
		t.closeLineupAppearance(roster, slot, eventID-1)
	}

	roster.lineup[lineupPos] = player
	kind := DefensiveSubstitution
	switch fieldingPos {
	case PinchHitter:
		kind = PinchHitterEntry
	case PinchRunner:
		kind = PinchRunnerEntry
	}
	la := &LineupAppearance{Player: player, Side: side, LineupPosition: lineupPos, Kind: kind, StartEventID: eventID}
	roster.lineupOpen[lineupPos] = la
}

func (t *PersonnelTracker) findOpenLineupSlot(roster *sideRoster, player Player) (LineupPosition, bool) {
	for pos, la := range roster.lineupOpen {
		if la != nil && la.Player == player {
			return pos, true
		}
	}
	return 0, false
}

func (t *PersonnelTracker) closeLineupAppearance(roster *sideRoster, pos LineupPosition, endEventID int) {
	la, ok := roster.lineupOpen[pos]
	if !ok || la == nil {
		return
	}
	la.EndEventID = endEventID
	roster.appearances = append(roster.appearances, *la)
	delete(roster.lineupOpen, pos)
}

func (t *PersonnelTracker) substituteDefense(roster *sideRoster, player Player, fieldingPos FieldingPosition, side Side, eventID int) {
	if open, ok := roster.defenseOpen[fieldingPos]; ok && open != nil && open.Player == player {
		return
	}
	if existing, ok := roster.defense[fieldingPos]; ok && existing != player {
		t.closeFieldingAppearance(roster, fieldingPos, eventID-1)
	}
	if slot, ok := t.findOpenFieldingSlot(roster, player); ok && slot != fieldingPos {
		t.closeFieldingAppearance(roster, slot, eventID-1)
	}

	roster.defense[fieldingPos] = player
	fa := &FieldingAppearance{Player: player, Side: side, FieldingPosition: fieldingPos, StartEventID: eventID}
	roster.defenseOpen[fieldingPos] = fa
}

func (t *PersonnelTracker) findOpenFieldingSlot(roster *sideRoster, player Player) (FieldingPosition, bool) {
	for pos, fa := range roster.defenseOpen {
		if fa != nil && fa.Player == player {
			return pos, true
		}
	}
	return 0, false
}

func (t *PersonnelTracker) closeFieldingAppearance(roster *sideRoster, pos FieldingPosition, endEventID int) {
	fa, ok := roster.defenseOpen[pos]
	if !ok || fa == nil {
		return
	}
	fa.EndEventID = endEventID
	roster.fieldingAppearances = append(roster.fieldingAppearances, *fa)
	delete(roster.defenseOpen, pos)
}

// handleDHVacancy closes the outgoing non-batting pitcher's lineup
// appearance and the DH's fielding appearance when the DH's team's
// pitcher enters the batting order, unless the DH is the one now pitching.
func (t *PersonnelTracker) handleDHVacancy(roster *sideRoster, incoming Player, side Side, eventID int) {
	if dh, ok := roster.lineupOpen[0]; ok && dh != nil && dh.Player == incoming {
		return
	}
	if dhPitcher, ok := roster.lineupOpen[0]; ok && dhPitcher != nil {
		t.closeLineupAppearance(roster, 0, eventID-1)
	}
	if dhFielding, ok := roster.defenseOpen[DesignatedHitter]; ok && dhFielding != nil {
		t.closeFieldingAppearance(roster, DesignatedHitter, eventID-1)
	}
}

// CurrentPitcher returns the player currently occupying the pitcher
// fielding slot for side, if any.
func (t *PersonnelTracker) CurrentPitcher(side Side) (Pitcher, bool) {
	roster := t.sides.Get(side)
	p, ok := roster.defense[Pitcher]
	return Pitcher(p), ok
}

// CurrentLineupPosition returns the batting-order slot player currently
// occupies for side, if they're in the lineup at all.
func (t *PersonnelTracker) CurrentLineupPosition(side Side, player Player) (LineupPosition, bool) {
	roster := t.sides.Get(side)
	for pos, p := range roster.lineup {
		if p == player {
			return pos, true
		}
	}
	return 0, false
}

// OutgoingBatter returns the player a "sub" record at lineupPos is
// replacing, as recorded in the still-current (pre-substitution) lineup.
func (t *PersonnelTracker) OutgoingBatter(side Side, lineupPos LineupPosition) (Player, bool) {
	roster := t.sides.Get(side)
	p, ok := roster.lineup[lineupPos]
	return p, ok
}

// OutgoingPitcher returns the player a "sub" record at fielding position
// Pitcher is replacing, as recorded in the still-current defense.
func (t *PersonnelTracker) OutgoingPitcher(side Side) (Pitcher, bool) {
	return t.CurrentPitcher(side)
}

// Finalize closes every still-open appearance at endEventID (the final
// event id of the game).
func (t *PersonnelTracker) Finalize(endEventID int) {
	for _, side := range []Side{Away, Home} {
		roster := t.sides.Get(side)
		for pos := range roster.lineupOpen {
			t.closeLineupAppearance(roster, pos, endEventID)
		}
		for pos := range roster.defenseOpen {
			t.closeFieldingAppearance(roster, pos, endEventID)
		}
	}
}

// LineupAppearances returns the full, closed appearance history for side.
func (t *PersonnelTracker) LineupAppearances(side Side) []LineupAppearance {
	return t.sides.Get(side).appearances
}

// FieldingAppearances returns the full, closed appearance history for side.
func (t *PersonnelTracker) FieldingAppearances(side Side) []FieldingAppearance {
	return t.sides.Get(side).fieldingAppearances
}
