package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/chadwickbureau/retrosheet/internal/cache"
	"github.com/chadwickbureau/retrosheet/internal/core"
	"github.com/chadwickbureau/retrosheet/internal/retrosheet"
)

// RetrosheetContextRepository persists a fully reconstructed GameContext
// (as produced by retrosheet.BuildGameContext) into the retro_games,
// retro_lineup_appearances, retro_fielding_appearances, and retro_events
// tables, and reads it back out for the API layer.
type RetrosheetContextRepository struct {
	db    *sql.DB
	cache *cache.CachedRepository
}

func NewRetrosheetContextRepository(db *sql.DB, cacheClient *cache.Client) *RetrosheetContextRepository {
	return &RetrosheetContextRepository{
		db:    db,
		cache: cache.NewCachedRepository(cacheClient, "retrosheet_game"),
	}
}

// SaveGameContext upserts one game and replaces its appearance and event
// history. The whole write runs in a single transaction: a reader should
// never see a game row without its events, or half an event list.
func (r *RetrosheetContextRepository) SaveGameContext(ctx context.Context, gc retrosheet.GameContext) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertGameRow(ctx, tx, gc); err != nil {
		return err
	}
	if err := replaceLineupAppearances(ctx, tx, gc); err != nil {
		return err
	}
	if err := replaceFieldingAppearances(ctx, tx, gc); err != nil {
		return err
	}
	if err := replaceEvents(ctx, tx, gc); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game %s: %w", gc.GameID, err)
	}
	_ = r.cache.Entity.Delete(ctx, string(gc.GameID))
	return nil
}

func upsertGameRow(ctx context.Context, tx *sql.Tx, gc retrosheet.GameContext) error {
	away := gc.Teams.Get(retrosheet.Away)
	home := gc.Teams.Get(retrosheet.Home)
	winningTeam := decideWinningTeam(gc, away, home)

	_, err := tx.ExecContext(ctx, `
		INSERT INTO retro_games (
			game_id, source_file, game_number, visiting_team, home_team,
			game_date, site_id, home_team_bats_first,
			umpire_home, umpire_first, umpire_second, umpire_third,
			scorer, winning_pitcher, losing_pitcher, save_pitcher, winning_team
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (game_id) DO UPDATE SET
			source_file = EXCLUDED.source_file,
			game_number = EXCLUDED.game_number,
			visiting_team = EXCLUDED.visiting_team,
			home_team = EXCLUDED.home_team,
			game_date = EXCLUDED.game_date,
			site_id = EXCLUDED.site_id,
			home_team_bats_first = EXCLUDED.home_team_bats_first,
			umpire_home = EXCLUDED.umpire_home,
			umpire_first = EXCLUDED.umpire_first,
			umpire_second = EXCLUDED.umpire_second,
			umpire_third = EXCLUDED.umpire_third,
			scorer = EXCLUDED.scorer,
			winning_pitcher = EXCLUDED.winning_pitcher,
			losing_pitcher = EXCLUDED.losing_pitcher,
			save_pitcher = EXCLUDED.save_pitcher,
			winning_team = EXCLUDED.winning_team
	`,
		string(gc.GameID), gc.FileInfo.SourceFile, gc.FileInfo.GameNumber,
		string(away), string(home),
		gc.Metadata.Date, gc.Setting.Site, gc.Metadata.HomeTeamBatsFirst,
		string(gc.Umpires.Home), string(gc.Umpires.First), string(gc.Umpires.Second), string(gc.Umpires.Third),
		string(gc.Results.Scorer), string(gc.Results.WinningPitcher), string(gc.Results.LosingPitcher),
		string(gc.Results.Save), winningTeam,
	)
	if err != nil {
		return fmt.Errorf("upsert game %s: %w", gc.GameID, err)
	}
	return nil
}

// decideWinningTeam tallies runs scored by each batting side across the
// event list, since GameContext carries no separate final-score field.
func decideWinningTeam(gc retrosheet.GameContext, away, home retrosheet.Player) string {
	var awayRuns, homeRuns int
	for _, ev := range gc.Events {
		switch ev.Context.BattingSide {
		case retrosheet.Away:
			awayRuns += len(ev.Results.Scored)
		case retrosheet.Home:
			homeRuns += len(ev.Results.Scored)
		}
	}
	switch {
	case homeRuns > awayRuns:
		return string(home)
	case awayRuns > homeRuns:
		return string(away)
	default:
		return ""
	}
}

func replaceLineupAppearances(ctx context.Context, tx *sql.Tx, gc retrosheet.GameContext) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM retro_lineup_appearances WHERE game_id = $1`, string(gc.GameID)); err != nil {
		return fmt.Errorf("clear lineup appearances for %s: %w", gc.GameID, err)
	}

	for _, side := range []retrosheet.Side{retrosheet.Away, retrosheet.Home} {
		for i, la := range gc.LineupAppearances.Get(side) {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO retro_lineup_appearances (
					game_id, side, lineup_position, sequence, player_id,
					entered_event_id, exited_event_id, entry_kind
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`,
				string(gc.GameID), int(side), int(la.LineupPosition), i, string(la.Player),
				la.StartEventID, nullableEventID(la.EndEventID), entryKindLabel(la.Kind),
			)
			if err != nil {
				return fmt.Errorf("insert lineup appearance %s/%d/%d: %w", gc.GameID, side, la.LineupPosition, err)
			}
		}
	}
	return nil
}

func replaceFieldingAppearances(ctx context.Context, tx *sql.Tx, gc retrosheet.GameContext) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM retro_fielding_appearances WHERE game_id = $1`, string(gc.GameID)); err != nil {
		return fmt.Errorf("clear fielding appearances for %s: %w", gc.GameID, err)
	}

	for _, side := range []retrosheet.Side{retrosheet.Away, retrosheet.Home} {
		for i, fa := range gc.FieldingAppearances.Get(side) {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO retro_fielding_appearances (
					game_id, side, player_id, fielding_position, sequence,
					entered_event_id, exited_event_id
				) VALUES ($1, $2, $3, $4, $5, $6, $7)
			`,
				string(gc.GameID), int(side), string(fa.Player), fa.FieldingPosition.String(), i,
				fa.StartEventID, nullableEventID(fa.EndEventID),
			)
			if err != nil {
				return fmt.Errorf("insert fielding appearance %s/%d/%s: %w", gc.GameID, side, fa.Player, err)
			}
		}
	}
	return nil
}

func replaceEvents(ctx context.Context, tx *sql.Tx, gc retrosheet.GameContext) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM retro_events WHERE game_id = $1`, string(gc.GameID)); err != nil {
		return fmt.Errorf("clear events for %s: %w", gc.GameID, err)
	}

	for _, ev := range gc.Events {
		runner1, runner2, runner3 := runnersBefore(ev.Context.StartingBaseState)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO retro_events (
				event_key, game_id, event_id, inning, side, batter, count,
				pitch_sequence, play_raw, outs_before, outs_on_play,
				runs_scored, rbi, runner1_before, runner2_before, runner3_before,
				pitcher_of_record, line_number
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		`,
			ev.EventKey, string(gc.GameID), ev.EventID, ev.Context.Inning, int(ev.Context.BattingSide),
			string(ev.Context.BatterID), formatCount(ev.Results.Count), formatPitchSequence(ev.Results.PitchSequence),
			ev.Results.Play.Raw, ev.Context.Outs, len(ev.Results.OutOnPlay),
			totalRuns(ev.Results.Scored), totalRBI(ev.Results.Scored),
			runner1, runner2, runner3, string(ev.Context.PitcherID), ev.LineNumber,
		)
		if err != nil {
			return fmt.Errorf("insert event %s/%d: %w", gc.GameID, ev.EventID, err)
		}
	}
	return nil
}

func nullableEventID(endEventID int) sql.NullInt64 {
	if endEventID == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(endEventID), Valid: true}
}

func entryKindLabel(k retrosheet.EntryKind) string {
	switch k {
	case retrosheet.Starter:
		return "starter"
	case retrosheet.PinchHitterEntry:
		return "pinch_hitter"
	case retrosheet.PinchRunnerEntry:
		return "pinch_runner"
	case retrosheet.DefensiveSubstitution:
		return "defensive_sub"
	default:
		return "unknown"
	}
}

func runnersBefore(bases retrosheet.BaseState) (r1, r2, r3 sql.NullString) {
	if runner, ok := bases.At(retrosheet.FirstBase); ok {
		r1 = sql.NullString{String: strconv.Itoa(int(runner.LineupPosition)), Valid: true}
	}
	if runner, ok := bases.At(retrosheet.SecondBase); ok {
		r2 = sql.NullString{String: strconv.Itoa(int(runner.LineupPosition)), Valid: true}
	}
	if runner, ok := bases.At(retrosheet.ThirdBase); ok {
		r3 = sql.NullString{String: strconv.Itoa(int(runner.LineupPosition)), Valid: true}
	}
	return
}

func totalRuns(scored []retrosheet.ScoredRunner) int {
	return len(scored)
}

func totalRBI(scored []retrosheet.ScoredRunner) int {
	var n int
	for _, s := range scored {
		if s.RBI {
			n++
		}
	}
	return n
}

func formatCount(c retrosheet.Count) string {
	if c.Balls == nil && c.Strikes == nil {
		return ""
	}
	var b, s string
	if c.Balls != nil {
		b = strconv.Itoa(*c.Balls)
	} else {
		b = "?"
	}
	if c.Strikes != nil {
		s = strconv.Itoa(*c.Strikes)
	} else {
		s = "?"
	}
	return b + s
}

// pitchTypeLetter re-derives the source pitch-sequence letter for storage;
// it need not round-trip byte-for-byte through ParsePitchSequence, only
// preserve what actually happened on each pitch.
func pitchTypeLetter(pt retrosheet.PitchType) byte {
	switch pt {
	case retrosheet.PickoffAttemptFirst:
		return '1'
	case retrosheet.PickoffAttemptSecond:
		return '2'
	case retrosheet.PickoffAttemptThird:
		return '3'
	case retrosheet.PlayNotInvolvingBatter:
		return '.'
	case retrosheet.Ball:
		return 'B'
	case retrosheet.CalledStrike:
		return 'C'
	case retrosheet.Foul:
		return 'F'
	case retrosheet.HitBatter:
		return 'H'
	case retrosheet.IntentionalBall:
		return 'I'
	case retrosheet.StrikeUnknownType:
		return 'K'
	case retrosheet.FoulBunt:
		return 'L'
	case retrosheet.MissedBunt:
		return 'M'
	case retrosheet.NoPitch:
		return 'N'
	case retrosheet.FoulTipBunt:
		return 'O'
	case retrosheet.Pitchout:
		return 'P'
	case retrosheet.SwingingOnPitchout:
		return 'Q'
	case retrosheet.FoulOnPitchout:
		return 'R'
	case retrosheet.SwingingStrike:
		return 'S'
	case retrosheet.FoulTip:
		return 'T'
	case retrosheet.BallOnPitcherGoingToMouth:
		return 'V'
	case retrosheet.InPlay:
		return 'X'
	case retrosheet.InPlayOnPitchout:
		return 'Y'
	default:
		return 'U'
	}
}

func formatPitchSequence(items []retrosheet.PitchSequenceItem) string {
	var b strings.Builder
	for _, item := range items {
		if item.BlockedByCatcher {
			b.WriteByte('*')
		}
		if item.RunnersGoing {
			b.WriteByte('>')
		}
		b.WriteByte(pitchTypeLetter(item.PitchType))
		if item.CatcherPickoffAttempt != nil {
			b.WriteByte('+')
			b.WriteString(item.CatcherPickoffAttempt.String())
		}
	}
	return b.String()
}

// RetrosheetGameSummary is the row shape returned by GetGameSummary: the
// retro_games row plus the number of events persisted for the game.
type RetrosheetGameSummary struct {
	GameID          string
	SourceFile      string
	VisitingTeam    string
	HomeTeam        string
	GameDate        string
	SiteID          string
	WinningPitcher  string
	LosingPitcher   string
	SavePitcher     string
	WinningTeam     string
	EventCount      int
}

// GetGameSummary reads back one persisted game row plus its event count.
func (r *RetrosheetContextRepository) GetGameSummary(ctx context.Context, gameID string) (*RetrosheetGameSummary, error) {
	var cached RetrosheetGameSummary
	if r.cache.Entity.Get(ctx, gameID, &cached) {
		return &cached, nil
	}

	var s RetrosheetGameSummary
	var siteID, winningPitcher, losingPitcher, savePitcher, winningTeam sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT
			g.game_id, g.source_file, g.visiting_team, g.home_team, g.game_date, g.site_id,
			g.winning_pitcher, g.losing_pitcher, g.save_pitcher, g.winning_team,
			(SELECT COUNT(*) FROM retro_events e WHERE e.game_id = g.game_id)
		FROM retro_games g
		WHERE g.game_id = $1
	`, gameID).Scan(
		&s.GameID, &s.SourceFile, &s.VisitingTeam, &s.HomeTeam, &s.GameDate, &siteID,
		&winningPitcher, &losingPitcher, &savePitcher, &winningTeam, &s.EventCount,
	)
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("game", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("get game summary %s: %w", gameID, err)
	}

	s.SiteID = siteID.String
	s.WinningPitcher = winningPitcher.String
	s.LosingPitcher = losingPitcher.String
	s.SavePitcher = savePitcher.String
	s.WinningTeam = winningTeam.String

	_ = r.cache.Entity.Set(ctx, gameID, &s)
	return &s, nil
}

// RetrosheetEventRow is one persisted play, in the shape the API layer
// renders directly.
type RetrosheetEventRow struct {
	EventID       int
	Inning        int
	Side          int
	Batter        string
	Count         string
	PitchSequence string
	PlayRaw       string
	OutsBefore    int
	OutsOnPlay    int
	RunsScored    int
	RBI           int
}

// ListEvents returns every persisted event for a game, in event order.
func (r *RetrosheetContextRepository) ListEvents(ctx context.Context, gameID string) ([]RetrosheetEventRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id, inning, side, batter, COALESCE(count, ''), COALESCE(pitch_sequence, ''),
			play_raw, outs_before, outs_on_play, runs_scored, rbi
		FROM retro_events
		WHERE game_id = $1
		ORDER BY event_id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list events for %s: %w", gameID, err)
	}
	defer rows.Close()

	var events []RetrosheetEventRow
	for rows.Next() {
		var ev RetrosheetEventRow
		if err := rows.Scan(
			&ev.EventID, &ev.Inning, &ev.Side, &ev.Batter, &ev.Count, &ev.PitchSequence,
			&ev.PlayRaw, &ev.OutsBefore, &ev.OutsOnPlay, &ev.RunsScored, &ev.RBI,
		); err != nil {
			return nil, fmt.Errorf("scan event for %s: %w", gameID, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events for %s: %w", gameID, err)
	}
	return events, nil
}
