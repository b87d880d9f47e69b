package retrosheet

// Hand is a batter's or pitcher's handedness.
type Hand int

const (
	HandUnspecified Hand = iota
	Left
	Right
	Switch
	Both
)

// ParseHand decodes a hand-adjustment value: L, R, S, or B.
func ParseHand(raw string) (Hand, error) {
	switch raw {
	case "L":
		return Left, nil
	case "R":
		return Right, nil
	case "S":
		return Switch, nil
	case "B":
		return Both, nil
	default:
		return HandUnspecified, NewFieldDomainError("hand", raw)
	}
}

// RareAttributes carries the handful of per-event overrides that apply to
// at most one upcoming event and are otherwise absent: explicit batting/
// pitching hand, and the "responsible" batter/pitcher substitutions that
// reattribute a strikeout or walk to a player no longer at the plate or on
// the mound.
type RareAttributes struct {
	BatterHand               Hand
	PitcherHand              Hand
	StrikeoutResponsibleBatter *Player
	WalkResponsiblePitcher     *Player
}

// clearHandOverrides resets only the hand fields, used on a
// mid-plate-appearance event where the rest of the rare attributes carry
// over.
func (r *RareAttributes) clearHandOverrides() {
	r.BatterHand = HandUnspecified
	r.PitcherHand = HandUnspecified
}

// EventContext is the state of the game immediately before a play is
// applied: who's up, who's on the mound, the outs and base state the play
// started from, and any rare attributes in effect.
type EventContext struct {
	Inning           int
	BattingSide      Side
	Frame            InningFrame
	AtBat            LineupPosition
	BatterID         Player
	PitcherID        Pitcher
	Outs             int
	StartingBaseState BaseState
	RareAttributes   RareAttributes
}

// EventResults is everything the base-state engine and play parser
// derived for one play: the parsed play, the resulting outs, the runners
// who scored, and the base state the play ended in.
type EventResults struct {
	Count           Count
	PitchSequence   []PitchSequenceItem
	Play            Play
	OutOnPlay       []BaseRunner
	Scored          []ScoredRunner
	EndingBaseState BaseState
	CommentLines    []string
	NoPlayFlag      bool
}

// Event is one fully resolved play record.
type Event struct {
	GameID     GameID
	EventID    int
	EventKey   int64
	Context    EventContext
	Results    EventResults
	LineNumber int
}

// GameState is the per-game fold state threaded through record
// application. It is mutated sequentially and never shared across games
// or goroutines.
type GameState struct {
	GameID      GameID
	EventID     int
	Inning      int
	Frame       InningFrame
	Count       Count
	BattingSide Side
	Outs        int
	Bases       BaseState
	AtBat       LineupPosition

	Personnel *PersonnelTracker

	rareAttributes RareAttributes
	commentBuffer  []string

	Events []Event
}

// NewGameState initializes state from the game id and the htbf info value
// (home-team-bats-first; default false, i.e. away bats first).
func NewGameState(gameID GameID, homeTeamBatsFirst bool) *GameState {
	side := Away
	if homeTeamBatsFirst {
		side = Home
	}
	return &GameState{
		GameID:      gameID,
		EventID:     1,
		Inning:      1,
		Frame:       Top,
		BattingSide: side,
		Outs:        0,
		Bases:       EmptyBaseState(),
		Personnel:   NewPersonnelTracker(),
	}
}

// ApplyPlay folds a single "play" record into the state, producing an
// Event. eventKeyOffset is added to EventID to produce EventKey, per spec
// §4.5's file_index + game_number*MaxEventsPerGame term.
func (g *GameState) ApplyPlay(inning int, side Side, batter Player, count Count, pitches []PitchSequenceItem, play Play, lineNumber int, eventKeyOffset int64) (Event, error) {
	if side != g.BattingSide {
		if g.Outs != 3 {
			return Event{}, NewStateIntegrityError("frame flip without 3 outs", describeBaseState(g.Bases), "", g.Inning, g.Outs, lineNumber)
		}
		g.Outs = 0
		g.Bases = EmptyBaseState()
		g.Frame = g.Frame.Flip()
		g.BattingSide = side
		if g.Frame == Top {
			g.Inning++
		}
	}

	startingBases := g.Bases
	startingOuts := g.Outs

	if g.Personnel != nil {
		if pos, ok := g.Personnel.CurrentLineupPosition(g.BattingSide, batter); ok {
			g.AtBat = pos
		}
	}

	pitcher, _ := g.Personnel.CurrentPitcher(g.BattingSide.Flip())
	ctx := EventContext{
		Inning:            inning,
		BattingSide:       g.BattingSide,
		Frame:             g.Frame,
		AtBat:             g.AtBat,
		BatterID:          batter,
		PitcherID:         pitcher,
		Outs:              startingOuts,
		StartingBaseState: startingBases,
		RareAttributes:    g.rareAttributes,
	}

	next, outs, err := NextBaseState(g.Bases, play, g.AtBat, &pitcher, g.EventID, false, g.Outs+len(outsFromPlay(play)) >= 3)
	if err != nil {
		return Event{}, err
	}
	g.Outs += len(outs)
	if g.Outs > 3 {
		return Event{}, NewStateIntegrityError(">3 outs", describeBaseState(startingBases), describeBaseState(next), g.Inning, g.Outs, lineNumber)
	}

	midPA := !hasPlateAppearance(play) && g.Outs < 3
	g.Count = count
	if midPA {
		g.rareAttributes.clearHandOverrides()
	} else {
		g.Count = Count{}
		g.rareAttributes = RareAttributes{}
	}

	g.Bases = next
	results := EventResults{
		Count:           count,
		PitchSequence:   pitches,
		Play:            play,
		OutOnPlay:       outs,
		Scored:          next.Scored(),
		EndingBaseState: next,
		CommentLines:    g.commentBuffer,
		NoPlayFlag:      len(play.MainPlays) == 1 && isNoPlay(play.MainPlays[0]),
	}
	g.commentBuffer = nil

	ev := Event{
		GameID:     g.GameID,
		EventID:    g.EventID,
		EventKey:   eventKeyOffset + int64(g.EventID),
		Context:    ctx,
		Results:    results,
		LineNumber: lineNumber,
	}
	g.Events = append(g.Events, ev)
	g.EventID++
	return ev, nil
}

// ApplyHandAdjustment records a batter- or pitcher-hand override taking
// effect on the next event.
func (g *GameState) ApplyHandAdjustment(isPitcher bool, hand Hand) {
	if isPitcher {
		g.rareAttributes.PitcherHand = hand
	} else {
		g.rareAttributes.BatterHand = hand
	}
}

// ApplyRunnerAdjustment installs the named runner at second base for an
// extra-innings tiebreaker rule, flipping the frame first if three outs
// are already recorded.
func (g *GameState) ApplyRunnerAdjustment(runner Runner) {
	if g.Outs == 3 {
		g.Outs = 0
		g.Frame = g.Frame.Flip()
		g.BattingSide = g.BattingSide.Flip()
		if g.Frame == Top {
			g.Inning++
		}
		g.Bases = EmptyBaseState()
	}
	g.Bases.Place(SecondBase, runner)
}

// ApplyPitcherResponsibilityAdjustment overrides the charged pitcher for
// the runner currently occupying base b.
func (g *GameState) ApplyPitcherResponsibilityAdjustment(b Base, pitcher Pitcher) error {
	r, ok := g.Bases.At(b)
	if !ok {
		return NewStateIntegrityError("pitcher-responsibility adjustment for absent runner", describeBaseState(g.Bases), "", g.Inning, g.Outs, 0)
	}
	r.ExplicitChargedPitcher = &pitcher
	g.Bases.Place(b, r)
	return nil
}

// AppendComment buffers a comment line (already stripped of its leading
// "$") for attachment to the next event.
func (g *GameState) AppendComment(text string) {
	g.commentBuffer = append(g.commentBuffer, text)
}

// Finalize closes all open personnel appearances at the game's final
// event id.
func (g *GameState) Finalize() {
	g.Personnel.Finalize(g.EventID - 1)
}

func hasPlateAppearance(play Play) bool {
	for _, mp := range play.MainPlays {
		switch mp.(type) {
		case HitPlay, BattingOutPlay, OtherPlateAppearancePlay:
			return true
		}
	}
	return false
}

func isNoPlay(mp MainPlay) bool {
	_, ok := mp.(NoPlayEvent)
	return ok
}

// outsFromPlay is a cheap estimate used only to pick the engine's
// endInning hint before the real out count is known; the accurate count
// comes back from NextBaseState itself. It counts only the inline out
// markers of batting-out plays, so it can be lower than the play's real
// out count.
func outsFromPlay(play Play) []BaseRunner {
	var outs []BaseRunner
	for _, mp := range play.MainPlays {
		if bp, ok := mp.(BattingOutPlay); ok {
			outs = append(outs, bp.OutRunners...)
		}
	}
	return outs
}
