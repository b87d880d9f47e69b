package retrosheet

import "strconv"

// Box-score rows are passive in the core path: the state machine never
// consumes them, but the core exposes a typed decoder for the collaborator
// that renders box scores (spec §4.1, §6). BoxScoreRowKind distinguishes
// the "stat" family (per-player tallies) from the "line"/"event" families
// (linescore and notable-event rows).
type BoxScoreRowKind int

const (
	BoxScoreRowUnrecognized BoxScoreRowKind = iota
	BoxScoreBatting         // bline
	BoxScorePinchHitting    // phline
	BoxScorePinchRunning    // prline
	BoxScorePitching        // pline
	BoxScoreDefense         // dline
	BoxScoreTeamBatting     // tline
	BoxScoreTeamBunt        // btline (not separately modeled; decoded as BattingLine)
	BoxScoreTeamDefense     // dtline
	BoxScoreDoublePlay      // dpline
	BoxScoreTriplePlay      // tpline
	BoxScoreHitByPitch      // hpline
	BoxScoreHomeRun         // hrline
	BoxScoreStolenBase      // sbline
	BoxScoreCaughtStealing  // csline
	BoxScoreLinescore       // line
)

var boxScoreStatKinds = map[string]BoxScoreRowKind{
	"bline":  BoxScoreBatting,
	"phline": BoxScorePinchHitting,
	"prline": BoxScorePinchRunning,
	"pline":  BoxScorePitching,
	"dline":  BoxScoreDefense,
	"tline":  BoxScoreTeamBatting,
	"btline": BoxScoreTeamBunt,
	"dtline": BoxScoreTeamDefense,
}

var boxScoreEventKinds = map[string]BoxScoreRowKind{
	"dpline": BoxScoreDoublePlay,
	"tpline": BoxScoreTriplePlay,
	"hpline": BoxScoreHitByPitch,
	"hrline": BoxScoreHomeRun,
	"sbline": BoxScoreStolenBase,
	"csline": BoxScoreCaughtStealing,
}

// BattingLineStats is a single player's tabulated batting line. Counting
// stats beyond at-bats/runs/hits are optional: Retrosheet box scores omit
// a column entirely rather than writing a zero when it is unknown.
type BattingLineStats struct {
	AtBats                  int
	Runs                    int
	Hits                    int
	Doubles                 *int
	Triples                 *int
	HomeRuns                *int
	RBI                     *int
	SacrificeHits           *int
	SacrificeFlies          *int
	HitByPitch              *int
	Walks                   *int
	IntentionalWalks        *int
	Strikeouts              *int
	StolenBases             *int
	CaughtStealing          *int
	GroundedIntoDoublePlays *int
	ReachedOnInterference   *int
}

// BattingLine is a decoded "bline"/"phline"/"tline" row.
type BattingLine struct {
	Batter             Player
	Side               Side
	LineupPosition     LineupPosition
	NthPlayerAtPosition int
	Stats              BattingLineStats
}

// DefenseLineStats is a single player's tabulated fielding line.
type DefenseLineStats struct {
	Outs         int
	Putouts      int
	Assists      int
	Errors       int
	DoublePlays  *int
	TriplePlays  *int
	PassedBalls  *int
}

// DefenseLine is a decoded "dline"/"dtline" row.
type DefenseLine struct {
	Fielder             Player
	Side                Side
	FieldingPosition    FieldingPosition
	NthPlayerAtPosition int
	Stats               DefenseLineStats
}

// PitchingLineStats is a single pitcher's tabulated line.
type PitchingLineStats struct {
	OutsRecorded    int
	NoOutBatters    *int
	Hits            int
	Doubles         *int
	Triples         *int
	HomeRuns        *int
	Runs            int
	EarnedRuns      int
	Walks           int
	IntentionalWalks *int
	Strikeouts      int
	WildPitches     *int
	Balks           *int
}

// PitchingLine is a decoded "pline" row.
type PitchingLine struct {
	Pitcher             Pitcher
	Side                Side
	NthPitcher          int
	Stats               PitchingLineStats
}

// DoublePlayLine / TriplePlayLine record the defensive sequence on a
// notable double or triple play (spec §6's "dpline"/"tpline").
type DoublePlayLine struct {
	Side             Side
	FieldingSequence []FieldingPosition
}

type TriplePlayLine struct {
	Side             Side
	FieldingSequence []FieldingPosition
}

// HitByPitchLine / HomeRunLine / StolenBaseLine / CaughtStealingLine
// record a notable-event row keyed to the pitcher/batter/runner involved.
type HitByPitchLine struct {
	Pitcher Pitcher
	Batter  Player
}

type HomeRunLine struct {
	Batter     Player
	Pitcher    Pitcher
	Inning     int
	RunnersOn  int
}

type StolenBaseLine struct {
	Runner Player
	Base   Base
}

type CaughtStealingLine struct {
	Runner Player
	Base   Base
}

// LinescoreLine is a decoded "line" row: one side's per-inning run total.
type LinescoreLine struct {
	Side       Side
	InningRuns []int
}

// DecodeLinescore parses a "line" record's fields (side, then one digit or
// multi-digit run total per inning).
func DecodeLinescore(fields []string) (LinescoreLine, error) {
	if len(fields) < 1 {
		return LinescoreLine{}, NewParseShapeError("line", 2, len(fields), 0)
	}
	side, err := ParseSide(fields[0])
	if err != nil {
		return LinescoreLine{}, err
	}
	out := LinescoreLine{Side: side}
	for _, f := range fields[1:] {
		n, ok := atoiTolerant(f)
		if !ok {
			n = 0
		}
		out.InningRuns = append(out.InningRuns, n)
	}
	return out, nil
}

// DecodeBattingLine parses a "stat bline"/"phline"/"tline" row's fields
// after the kind discriminant: batter id, side, lineup position, nth
// player at that position, then up to 17 positional batting-stat columns.
func DecodeBattingLine(fields []string) (BattingLine, error) {
	if len(fields) < 4 {
		return BattingLine{}, NewParseShapeError("bline", 4, len(fields), 0)
	}
	side, err := ParseSide(fields[1])
	if err != nil {
		return BattingLine{}, err
	}
	lineupPos, err := ParseLineupPosition(fields[2])
	if err != nil {
		return BattingLine{}, err
	}
	nth, _ := atoiTolerant(fields[3])

	line := BattingLine{
		Batter:              Player(fields[0]),
		Side:                side,
		LineupPosition:      lineupPos,
		NthPlayerAtPosition: nth,
	}
	cols := fields[4:]
	if len(cols) > 0 {
		line.Stats.AtBats, _ = atoiTolerant(cols[0])
	}
	if len(cols) > 1 {
		line.Stats.Runs, _ = atoiTolerant(cols[1])
	}
	if len(cols) > 2 {
		line.Stats.Hits, _ = atoiTolerant(cols[2])
	}
	line.Stats.Doubles = optionalStatAt(cols, 3)
	line.Stats.Triples = optionalStatAt(cols, 4)
	line.Stats.HomeRuns = optionalStatAt(cols, 5)
	line.Stats.RBI = optionalStatAt(cols, 6)
	line.Stats.SacrificeHits = optionalStatAt(cols, 7)
	line.Stats.SacrificeFlies = optionalStatAt(cols, 8)
	line.Stats.HitByPitch = optionalStatAt(cols, 9)
	line.Stats.Walks = optionalStatAt(cols, 10)
	line.Stats.IntentionalWalks = optionalStatAt(cols, 11)
	line.Stats.Strikeouts = optionalStatAt(cols, 12)
	line.Stats.StolenBases = optionalStatAt(cols, 13)
	line.Stats.CaughtStealing = optionalStatAt(cols, 14)
	line.Stats.GroundedIntoDoublePlays = optionalStatAt(cols, 15)
	line.Stats.ReachedOnInterference = optionalStatAt(cols, 16)
	return line, nil
}

// DecodeDefenseLine parses a "stat dline"/"dtline" row's fields after the
// kind discriminant: fielder id, side, fielding position, nth player at
// that position, then outs/putout/assist/error columns and optional
// double-play, triple-play and passed-ball columns.
func DecodeDefenseLine(fields []string) (DefenseLine, error) {
	if len(fields) < 4 {
		return DefenseLine{}, NewParseShapeError("dline", 4, len(fields), 0)
	}
	side, err := ParseSide(fields[1])
	if err != nil {
		return DefenseLine{}, err
	}
	pos, err := ParseFieldingPosition(fields[2])
	if err != nil {
		return DefenseLine{}, err
	}
	nth, _ := atoiTolerant(fields[3])

	line := DefenseLine{
		Fielder:             Player(fields[0]),
		Side:                side,
		FieldingPosition:    pos,
		NthPlayerAtPosition: nth,
	}
	cols := fields[4:]
	if len(cols) > 0 {
		line.Stats.Outs, _ = atoiTolerant(cols[0])
	}
	if len(cols) > 1 {
		line.Stats.Putouts, _ = atoiTolerant(cols[1])
	}
	if len(cols) > 2 {
		line.Stats.Assists, _ = atoiTolerant(cols[2])
	}
	if len(cols) > 3 {
		line.Stats.Errors, _ = atoiTolerant(cols[3])
	}
	line.Stats.DoublePlays = optionalStatAt(cols, 4)
	line.Stats.TriplePlays = optionalStatAt(cols, 5)
	line.Stats.PassedBalls = optionalStatAt(cols, 6)
	return line, nil
}

// DecodePitchingLine parses a "stat pline" row's fields after the kind
// discriminant: pitcher id, side, nth pitcher, then outs/hits/runs/etc.
func DecodePitchingLine(fields []string) (PitchingLine, error) {
	if len(fields) < 3 {
		return PitchingLine{}, NewParseShapeError("pline", 3, len(fields), 0)
	}
	side, err := ParseSide(fields[1])
	if err != nil {
		return PitchingLine{}, err
	}
	nth, _ := atoiTolerant(fields[2])

	line := PitchingLine{Pitcher: Pitcher(fields[0]), Side: side, NthPitcher: nth}
	cols := fields[3:]
	if len(cols) > 0 {
		line.Stats.OutsRecorded, _ = atoiTolerant(cols[0])
	}
	if len(cols) > 1 {
		line.Stats.Hits, _ = atoiTolerant(cols[1])
	}
	if len(cols) > 2 {
		line.Stats.Runs, _ = atoiTolerant(cols[2])
	}
	if len(cols) > 3 {
		line.Stats.EarnedRuns, _ = atoiTolerant(cols[3])
	}
	if len(cols) > 4 {
		line.Stats.Walks, _ = atoiTolerant(cols[4])
	}
	if len(cols) > 5 {
		line.Stats.Strikeouts, _ = atoiTolerant(cols[5])
	}
	line.Stats.Doubles = optionalStatAt(cols, 6)
	line.Stats.Triples = optionalStatAt(cols, 7)
	line.Stats.HomeRuns = optionalStatAt(cols, 8)
	line.Stats.IntentionalWalks = optionalStatAt(cols, 9)
	line.Stats.WildPitches = optionalStatAt(cols, 10)
	line.Stats.Balks = optionalStatAt(cols, 11)
	return line, nil
}

// DecodeDoublePlayLine / DecodeTriplePlayLine parse "dpline"/"tpline" event
// rows: side, then the defensive fielding sequence.
func DecodeDoublePlayLine(fields []string) (DoublePlayLine, error) {
	if len(fields) < 1 {
		return DoublePlayLine{}, NewParseShapeError("dpline", 2, len(fields), 0)
	}
	side, err := ParseSide(fields[0])
	if err != nil {
		return DoublePlayLine{}, err
	}
	seq := make([]FieldingPosition, 0, len(fields)-1)
	for _, f := range fields[1:] {
		pos, _ := ParseFieldingPosition(f)
		seq = append(seq, pos)
	}
	return DoublePlayLine{Side: side, FieldingSequence: seq}, nil
}

func DecodeTriplePlayLine(fields []string) (TriplePlayLine, error) {
	dp, err := DecodeDoublePlayLine(fields)
	return TriplePlayLine(dp), err
}

// DecodeHitByPitchLine parses an "hpline" row: pitcher id, batter id.
func DecodeHitByPitchLine(fields []string) (HitByPitchLine, error) {
	if len(fields) < 2 {
		return HitByPitchLine{}, NewParseShapeError("hpline", 2, len(fields), 0)
	}
	return HitByPitchLine{Pitcher: Pitcher(fields[0]), Batter: Player(fields[1])}, nil
}

// DecodeHomeRunLine parses an "hrline" row: batter id, pitcher id, inning,
// runners on base at the time.
func DecodeHomeRunLine(fields []string) (HomeRunLine, error) {
	if len(fields) < 4 {
		return HomeRunLine{}, NewParseShapeError("hrline", 4, len(fields), 0)
	}
	inning, _ := atoiTolerant(fields[2])
	onBase, _ := atoiTolerant(fields[3])
	return HomeRunLine{Batter: Player(fields[0]), Pitcher: Pitcher(fields[1]), Inning: inning, RunnersOn: onBase}, nil
}

// DecodeStolenBaseLine / DecodeCaughtStealingLine parse "sbline"/"csline"
// rows: runner id, target base.
func DecodeStolenBaseLine(fields []string) (StolenBaseLine, error) {
	if len(fields) < 2 {
		return StolenBaseLine{}, NewParseShapeError("sbline", 2, len(fields), 0)
	}
	base, err := ParseBase(fields[1])
	if err != nil {
		return StolenBaseLine{}, err
	}
	return StolenBaseLine{Runner: Player(fields[0]), Base: base}, nil
}

func DecodeCaughtStealingLine(fields []string) (CaughtStealingLine, error) {
	sb, err := DecodeStolenBaseLine(fields)
	return CaughtStealingLine(sb), err
}

func optionalStatAt(cols []string, i int) *int {
	if i >= len(cols) {
		return nil
	}
	n, err := strconv.Atoi(cols[i])
	if err != nil {
		return nil
	}
	return &n
}

// NewBoxScoreData returns an empty BoxScoreData ready for row accumulation.
func NewBoxScoreData() *BoxScoreData {
	return &BoxScoreData{}
}

// DecodeBoxScoreStatRow dispatches a "stat" record's fields (the row-kind
// token, e.g. "bline", followed by that row's own fields) to the matching
// decoder and appends the result to d.
func (d *BoxScoreData) DecodeBoxScoreStatRow(fields []string) error {
	if len(fields) < 1 {
		return NewParseShapeError("stat", 1, len(fields), 0)
	}
	kind, ok := boxScoreStatKinds[fields[0]]
	if !ok {
		return NewUnrecognizedRecordError("stat "+fields[0], 0)
	}
	rest := fields[1:]
	switch kind {
	case BoxScoreBatting:
		line, err := DecodeBattingLine(rest)
		if err != nil {
			return err
		}
		d.Batting = append(d.Batting, line)
	case BoxScorePinchHitting:
		line, err := DecodeBattingLine(rest)
		if err != nil {
			return err
		}
		d.PinchHitting = append(d.PinchHitting, line)
	case BoxScorePinchRunning:
		line, err := DecodeBattingLine(rest)
		if err != nil {
			return err
		}
		d.PinchRunning = append(d.PinchRunning, line)
	case BoxScoreTeamBatting, BoxScoreTeamBunt:
		line, err := DecodeBattingLine(rest)
		if err != nil {
			return err
		}
		d.TeamBatting = append(d.TeamBatting, line)
	case BoxScorePitching:
		line, err := DecodePitchingLine(rest)
		if err != nil {
			return err
		}
		d.Pitching = append(d.Pitching, line)
	case BoxScoreDefense:
		line, err := DecodeDefenseLine(rest)
		if err != nil {
			return err
		}
		d.Defense = append(d.Defense, line)
	case BoxScoreTeamDefense:
		line, err := DecodeDefenseLine(rest)
		if err != nil {
			return err
		}
		d.TeamDefense = append(d.TeamDefense, line)
	}
	return nil
}

// DecodeBoxScoreEventRow dispatches an "event" record's fields (the
// row-kind token, e.g. "hrline", followed by that row's own fields) to the
// matching decoder and appends the result to d.
func (d *BoxScoreData) DecodeBoxScoreEventRow(fields []string) error {
	if len(fields) < 1 {
		return NewParseShapeError("event", 1, len(fields), 0)
	}
	kind, ok := boxScoreEventKinds[fields[0]]
	if !ok {
		return NewUnrecognizedRecordError("event "+fields[0], 0)
	}
	rest := fields[1:]
	switch kind {
	case BoxScoreDoublePlay:
		line, err := DecodeDoublePlayLine(rest)
		if err != nil {
			return err
		}
		d.DoublePlays = append(d.DoublePlays, line)
	case BoxScoreTriplePlay:
		line, err := DecodeTriplePlayLine(rest)
		if err != nil {
			return err
		}
		d.TriplePlays = append(d.TriplePlays, line)
	case BoxScoreHitByPitch:
		line, err := DecodeHitByPitchLine(rest)
		if err != nil {
			return err
		}
		d.HitByPitches = append(d.HitByPitches, line)
	case BoxScoreHomeRun:
		line, err := DecodeHomeRunLine(rest)
		if err != nil {
			return err
		}
		d.HomeRuns = append(d.HomeRuns, line)
	case BoxScoreStolenBase:
		line, err := DecodeStolenBaseLine(rest)
		if err != nil {
			return err
		}
		d.StolenBases = append(d.StolenBases, line)
	case BoxScoreCaughtStealing:
		line, err := DecodeCaughtStealingLine(rest)
		if err != nil {
			return err
		}
		d.CaughtStealing = append(d.CaughtStealing, line)
	}
	return nil
}

// BoxScoreData aggregates the decoded box-score rows for a single game,
// keyed loosely by row kind; passive storage, consumed only by collaborators.
type BoxScoreData struct {
	Batting       []BattingLine
	PinchHitting  []BattingLine
	PinchRunning  []BattingLine
	Pitching      []PitchingLine
	Defense       []DefenseLine
	TeamBatting   []BattingLine
	TeamDefense   []DefenseLine
	DoublePlays   []DoublePlayLine
	TriplePlays   []TriplePlayLine
	HitByPitches  []HitByPitchLine
	HomeRuns      []HomeRunLine
	StolenBases   []StolenBaseLine
	CaughtStealing []CaughtStealingLine
	Linescores    []LinescoreLine
}

// DerivedBoxScoreTotals is the per-side tally derived purely from the
// event stream, independent of any "stat"/"line"/"event" rows the source
// file may or may not carry.
type DerivedBoxScoreTotals struct {
	Runs   Matchup[int]
	Hits   Matchup[int]
	Errors Matchup[int]
}

// DeriveBoxScore tallies runs, hits, and fielding errors per side directly
// from a game's resolved events (entities.rs's stat-tally derivation). It
// is a pure function over []Event, exposed as a collaborator for the CLI
// and API layers; the core state machine never calls it. Errors are
// counted only for batters who reach on an error; errors on advances,
// baserunning plays, or foul balls are not counted.
func DeriveBoxScore(events []Event) DerivedBoxScoreTotals {
	var totals DerivedBoxScoreTotals
	for _, ev := range events {
		side := ev.Context.BattingSide
		fielding := side.Flip()

		runs := *totals.Runs.GetMut(side) + len(ev.Results.Scored)
		*totals.Runs.GetMut(side) = runs

		for _, mp := range ev.Results.Play.MainPlays {
			switch p := mp.(type) {
			case HitPlay:
				*totals.Hits.GetMut(side) = *totals.Hits.GetMut(side) + 1
			case BattingOutPlay:
				if p.Type == ReachedOnError {
					*totals.Errors.GetMut(fielding) = *totals.Errors.GetMut(fielding) + 1
				}
			}
		}
	}
	return totals
}

// ReconcileBattingCount returns the number of hits tallied in the decoded
// box-score batting lines for side s, used by a collaborator to cross-check
// against the event-derived count from DeriveBoxScore (spec's pbp-to-box
// reconciliation, not invoked by the core state machine itself).
func (d BoxScoreData) ReconcileBattingCount(s Side) (hits int) {
	for _, l := range d.Batting {
		if l.Side == s {
			hits += l.Stats.Hits
		}
	}
	return hits
}
