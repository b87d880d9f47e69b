package retrosheet

import "strconv"

// ParsedGame is one complete "id" ... record run: the decoded context plus
// any non-fatal errors skipped along the way (only populated when the
// caller's policy tolerates them; see ParseGameRecords).
type ParsedGame struct {
	Context GameContext
	Skipped []error
}

// ParseGameRecords folds one game's worth of already-tokenized field
// vectors into a GameContext. lines must begin with the "id" record and run
// through (but not past) the next "id" record or EOF. fileInfo identifies
// the source for traceability. eventKeyOffset is added to each event's
// EventID to form its EventKey, letting a caller derive a globally unique
// key across every game in a multi-game file (game_number*MaxEventsPerGame
// is a typical choice).
//
// When strict is false, a record that fails to decode is recorded in
// ParsedGame.Skipped and the game continues; when strict is true, the
// first such error aborts ParseGameRecords and is returned directly.
func ParseGameRecords(lines [][]string, fileInfo FileInfo, eventKeyOffset int64, strict bool) (ParsedGame, error) {
	var (
		gameID    GameID
		infos     []Info
		state     *GameState
		tracker   *PersonnelTracker
		boxScore  = NewBoxScoreData()
		skipped   []error
		htbfValue bool
	)

	// skip records the error for the current record; it returns true when
	// the caller's loop should abort ParseGameRecords entirely (strict mode).
	skip := func(err error) bool {
		if strict {
			return true
		}
		skipped = append(skipped, err)
		return false
	}

	ensureState := func() {
		if state == nil {
			tracker = NewPersonnelTracker()
			state = NewGameState(gameID, htbfValue)
			state.Personnel = tracker
		}
	}

	var abortErr error
	for _, raw := range lines {
		fields := append([]string(nil), raw...)
		rec, err := Tokenize(fields, 0)
		if err != nil {
			if skip(err) {
				abortErr = err
				break
			}
			continue
		}

		switch rec.Kind {
		case RecordGameID:
			gameID = GameID(rec.Fields[0])

		case RecordVersion:
			// informational only, carries no state

		case RecordInfo:
			info, err := DecodeInfo(rec.Fields)
			if err != nil {
				if skip(err) {
					abortErr = err
				}
				break
			}
			infos = append(infos, info)
			if info.Kind == InfoHomeTeamBatsFirst {
				htbfValue = info.Value == "true" || info.Value == "1"
			}

		case RecordAppearance:
			ensureState()
			app, err := decodeAppearance(rec)
			if err != nil {
				if skip(err) {
					abortErr = err
				}
				break
			}
			if IsStartRecord(rec.Raw) {
				tracker.AddStarter(app.side, app.player, app.lineupPos, app.fieldingPos)
			} else {
				recordResponsibilityReattribution(state, tracker, app)
				tracker.Substitute(app.side, app.player, app.lineupPos, app.fieldingPos, state.EventID)
			}

		case RecordPlay:
			ensureState()
			if _, err := decodeAndApplyPlay(state, rec, eventKeyOffset); err != nil {
				if skip(err) {
					abortErr = err
				}
				break
			}

		case RecordBatHandAdjustment:
			ensureState()
			hand, err := ParseHand(rec.Fields[1])
			if err != nil {
				if skip(err) {
					abortErr = err
				}
				break
			}
			state.ApplyHandAdjustment(false, hand)

		case RecordPitchHandAdjustment:
			ensureState()
			hand, err := ParseHand(rec.Fields[1])
			if err != nil {
				if skip(err) {
					abortErr = err
				}
				break
			}
			state.ApplyHandAdjustment(true, hand)

		case RecordLineupAdjustment:
			// batting-order swap for the next game of a doubleheader; no
			// effect on the state machine within a single game's records

		case RecordRunnerAdjustment:
			ensureState()
			lineupPos, err := ParseLineupPosition(rec.Fields[1])
			if err != nil {
				if skip(err) {
					abortErr = err
				}
				break
			}
			pitcher, _ := state.Personnel.CurrentPitcher(state.BattingSide.Flip())
			state.ApplyRunnerAdjustment(Runner{
				LineupPosition:         lineupPos,
				ReachedOnEventID:       state.EventID,
				ChargeEventID:          state.EventID,
				ExplicitChargedPitcher: &pitcher,
			})

		case RecordPitcherRespAdjustment:
			ensureState()
			base, err := ParseBase(rec.Fields[0])
			if err != nil {
				if skip(err) {
					abortErr = err
				}
				break
			}
			if err := state.ApplyPitcherResponsibilityAdjustment(base, Pitcher(rec.Fields[1])); err != nil {
				if skip(err) {
					abortErr = err
				}
				break
			}

		case RecordEarnedRunData:
			// "data er" lines are a post-hoc audit trail already implied by
			// the charge-rotation engine; nothing to fold in

		case RecordComment:
			ensureState()
			state.AppendComment(rec.Fields[0])

		case RecordBoxScoreStat:
			if err := boxScore.DecodeBoxScoreStatRow(rec.Fields); err != nil && skip(err) {
				abortErr = err
			}

		case RecordBoxScoreLine:
			line, err := DecodeLinescore(rec.Fields)
			if err != nil {
				if skip(err) {
					abortErr = err
				}
				break
			}
			boxScore.Linescores = append(boxScore.Linescores, line)

		case RecordBoxScoreEvent:
			if err := boxScore.DecodeBoxScoreEventRow(rec.Fields); err != nil && skip(err) {
				abortErr = err
			}
		}

		if abortErr != nil {
			return ParsedGame{}, abortErr
		}
	}

	if state != nil {
		state.Finalize()
	}

	var events []Event
	if state != nil {
		events = state.Events
	}
	ctx := BuildGameContext(gameID, fileInfo, infos, tracker, events, boxScore)
	return ParsedGame{Context: ctx, Skipped: skipped}, nil
}

// recordResponsibilityReattribution implements the substitution clause of
// §4.5: a mid-at-bat pinch-hit/pinch-run/defensive swap for the player
// currently due up inherits that batter's accumulated strikes onto a later
// strikeout's StrikeoutResponsibleBatter; a mid-at-bat pitching change
// inherits the outgoing pitcher's accumulated balls onto a later walk's
// WalkResponsiblePitcher. Must run before tracker.Substitute overwrites the
// roster, since it needs the still-current occupant.
func recordResponsibilityReattribution(state *GameState, tracker *PersonnelTracker, app decodedAppearance) {
	if app.side == state.BattingSide && app.lineupPos == state.AtBat {
		if state.Count.Strikes != nil && *state.Count.Strikes > 0 {
			if outgoing, ok := tracker.OutgoingBatter(app.side, app.lineupPos); ok && outgoing != app.player {
				state.rareAttributes.StrikeoutResponsibleBatter = &outgoing
			}
		}
	}
	if app.fieldingPos == Pitcher && app.side == state.BattingSide.Flip() {
		if state.Count.Balls != nil && *state.Count.Balls > 0 {
			if outgoing, ok := tracker.OutgoingPitcher(app.side); ok && outgoing != app.player {
				state.rareAttributes.WalkResponsiblePitcher = &outgoing
			}
		}
	}
}

type decodedAppearance struct {
	player      Player
	side        Side
	lineupPos   LineupPosition
	fieldingPos FieldingPosition
}

// decodeAppearance decodes a start/sub record's fields: playerid, name
// (ignored), side, lineup position, fielding position.
func decodeAppearance(rec Record) (decodedAppearance, error) {
	if len(rec.Fields) < 5 {
		return decodedAppearance{}, NewParseShapeError("appearance", 5, len(rec.Fields), rec.LineNumber)
	}
	player := Player(rec.Fields[0])
	side, err := ParseSide(rec.Fields[2])
	if err != nil {
		return decodedAppearance{}, err
	}
	lineupPos, err := ParseLineupPosition(rec.Fields[3])
	if err != nil {
		return decodedAppearance{}, err
	}
	fieldingPos, err := ParseFieldingPosition(rec.Fields[4])
	if err != nil {
		return decodedAppearance{}, err
	}
	return decodedAppearance{player: player, side: side, lineupPos: lineupPos, fieldingPos: fieldingPos}, nil
}

// decodeAndApplyPlay decodes a play record's fields (inning, side, batter,
// count, pitch sequence, play notation) and folds it into state.
func decodeAndApplyPlay(state *GameState, rec Record, eventKeyOffset int64) (Event, error) {
	if len(rec.Fields) < 6 {
		return Event{}, NewParseShapeError("play", 6, len(rec.Fields), rec.LineNumber)
	}
	inning, err := strconv.Atoi(rec.Fields[0])
	if err != nil {
		return Event{}, NewFieldDomainError("inning", rec.Fields[0])
	}
	side, err := ParseSide(rec.Fields[1])
	if err != nil {
		return Event{}, err
	}
	batter := Player(rec.Fields[2])
	count := ParseCount(rec.Fields[3])
	pitches := ParsePitchSequence(rec.Fields[4])
	play, err := ParsePlay(rec.Fields[5])
	if err != nil {
		return Event{}, err
	}
	return state.ApplyPlay(inning, side, batter, count, pitches, play, rec.LineNumber, eventKeyOffset)
}
