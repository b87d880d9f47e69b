package retrosheet

// plannedAdvance is the engine's resolved intent for a single baserunner
// (or the batter) before the resolve-order loop applies it to BaseState.
type plannedAdvance struct {
	to       Base
	isOut    bool
	rbi      bool
	unearned bool
	teamUnearned bool
	advanceOnError bool
}

// NextBaseState computes the base state that results from applying play to
// cur, per the resolve order Third -> Second -> First -> Batter (farther-
// along runners clear their base before nearer ones advance). pitcher is
// the current pitcher for the fielding side; it is not stored on the
// Runner. A runner newly reaching base this play is charged to eventID (or
// to a charge left over from Rule 9.16(g) rotation).
func NextBaseState(cur BaseState, play Play, batter LineupPosition, pitcher *Pitcher, eventID int, startInning, endInning bool) (BaseState, []BaseRunner, error) {
	var next BaseState
	if startInning {
		next = EmptyBaseState()
	} else {
		next = cur.Copy()
		next.ResetScored()
	}

	plans := derivePlannedAdvances(cur, play)

	batterCausedOuts := make(map[Base]bool)
	for br, p := range plans {
		if p.isOut {
			if b, ok := br.CurrentBase(); ok {
				batterCausedOuts[b] = true
			}
		}
	}
	leftoverCharge := applyChargeRotation(&next, cur, batterCausedOuts)

	var outs []BaseRunner
	order := []Base{ThirdBase, SecondBase, FirstBase}
	for _, b := range order {
		runnerKind := baseRunnerFromCurrent(b)
		plan, ok := plans[runnerKind]
		if !ok {
			continue
		}
		r, wasOccupied := cur.At(b)
		if !wasOccupied {
			return cur, nil, NewStateIntegrityError("advance from empty base", describeBaseState(cur), describeBaseState(next), 0, 0, 0)
		}
		next.Clear(b)
		if plan.isOut {
			outs = append(outs, runnerKind)
			continue
		}
		if plan.to == HomeBase {
			next.Score(ScoredRunner{Runner: r, RBI: plan.rbi, Unearned: plan.unearned, TeamUnearned: plan.teamUnearned, AdvanceOnError: plan.advanceOnError})
			continue
		}
		if next.Occupied(plan.to) && !endInning {
			return cur, nil, NewStateIntegrityError("target occupied", describeBaseState(cur), describeBaseState(next), 0, 0, 0)
		}
		next.Place(plan.to, r)
	}

	if plan, ok := plans[Batter]; ok {
		if plan.isOut {
			outs = append(outs, Batter)
		} else if plan.to == HomeBase {
			r := newBatterRunner(batter, pitcher, eventID, leftoverCharge)
			next.Score(ScoredRunner{Runner: r, RBI: plan.rbi, Unearned: plan.unearned, TeamUnearned: plan.teamUnearned, AdvanceOnError: plan.advanceOnError})
		} else {
			if next.Occupied(plan.to) && !endInning {
				return cur, nil, NewStateIntegrityError("target occupied", describeBaseState(cur), describeBaseState(next), 0, 0, 0)
			}
			r := newBatterRunner(batter, pitcher, eventID, leftoverCharge)
			next.Place(plan.to, r)
		}
	}

	if len(outs) > 3 {
		return cur, outs, NewStateIntegrityError(">3 outs", describeBaseState(cur), describeBaseState(next), 0, len(outs), 0)
	}

	return next, outs, nil
}

// applyChargeRotation implements Rule 9.16(g): when the batter's play
// retires a preceding runner via a force, the trailing runners still on
// base inherit the retired runner's ChargeEventID in descending order.
// Each out starts a fresh chain; the first surviving runner encountered
// after an out consumes the pending charge and the chain ends there. Any
// charge left unconsumed (no trailing runner survived) is returned so the
// caller can hand it to the batter if the batter reaches base.
func applyChargeRotation(next *BaseState, cur BaseState, outAt map[Base]bool) *int {
	var pending *int
	for _, b := range []Base{ThirdBase, SecondBase, FirstBase} {
		r, ok := cur.At(b)
		if !ok {
			continue
		}
		if outAt[b] {
			id := r.ChargeEventID
			pending = &id
			continue
		}
		if pending != nil {
			r.ChargeEventID = *pending
			next.Place(b, r)
			pending = nil
		}
	}
	return pending
}

// newBatterRunner builds the Runner record for a batter who just reached
// base or scored, charged by default to the pitcher on the mound this
// event. If leftoverCharge is set (an unconsumed Rule 9.16(g) rotation),
// the batter inherits it instead of being charged to the current event.
// pitcher is not stored directly: ChargeEventID is resolved back to a
// pitcher by the personnel tracker's appearance intervals, and
// ExplicitChargedPitcher is reserved for a later presadj override.
func newBatterRunner(batter LineupPosition, pitcher *Pitcher, eventID int, leftoverCharge *int) Runner {
	_ = pitcher
	charge := eventID
	if leftoverCharge != nil {
		charge = *leftoverCharge
	}
	return Runner{LineupPosition: batter, ReachedOnEventID: eventID, ChargeEventID: charge}
}

// hasMultiOutModifier reports whether play carries a double- or triple-play
// modifier, the signal that a fielding sequence with only one inline "(N)"
// marker actually retired an additional, unmarked runner.
func hasMultiOutModifier(play Play) bool {
	for _, m := range play.Modifiers {
		switch m.Kind {
		case GroundBallDoublePlay, LinedIntoDoublePlay, BuntGroundIntoDoublePlay,
			BuntPoppedIntoDoublePlay, FlyBallDoublePlay, UnspecifiedDoublePlay,
			GroundBallTriplePlay, LinedIntoTriplePlay, UnspecifiedTriplePlay:
			return true
		}
	}
	return false
}

// derivePlannedAdvances merges explicit advances with the defaults implied
// by the play's main plays. Explicit advances always win; a runner or
// batter with no applicable advance at all is left untouched by the
// caller (stays on base, or in the batter's case, makes no plate-appearance
// progress beyond what NextBaseState already handles).
func derivePlannedAdvances(cur BaseState, play Play) map[BaseRunner]plannedAdvance {
	plans := make(map[BaseRunner]plannedAdvance)

	for _, mp := range play.MainPlays {
		switch p := mp.(type) {
		case HitPlay:
			plans[Batter] = plannedAdvance{to: hitTypeBase(p.Type)}
		case OtherPlateAppearancePlay:
			switch p.Type {
			case Walk, IntentionalWalk, HitByPitch, Interference:
				plans[Batter] = plannedAdvance{to: FirstBase}
			}
		case BattingOutPlay:
			batterOut := false
			for _, br := range p.OutRunners {
				if br == Batter {
					batterOut = true
					continue
				}
				plans[br] = plannedAdvance{isOut: true}
			}
			// A 6-4-3 style sequence marks only the lead runner's putout
			// inline; the trailing, unmarked fielding credit retires the
			// batter. Only the double/triple-play modifier tells us a
			// second out actually happened on the play.
			if !batterOut && p.Type == InPlayOut && hasMultiOutModifier(play) {
				batterOut = true
			}
			switch p.Type {
			case ReachedOnError:
				plans[Batter] = plannedAdvance{to: FirstBase, advanceOnError: true}
			case FieldersChoice:
				if !batterOut {
					plans[Batter] = plannedAdvance{to: FirstBase}
				} else {
					plans[Batter] = plannedAdvance{isOut: true}
				}
			default:
				if batterOut {
					plans[Batter] = plannedAdvance{isOut: true}
				}
			}
		case BaserunningMainPlay:
			applyBaserunningDefault(cur, p, plans)
		case NoPlayEvent:
			// no base-state effect
		}
	}

	for _, adv := range play.ExplicitAdvances {
		plan := plannedAdvance{to: adv.To, isOut: adv.IsOut}
		for _, m := range adv.Modifiers {
			switch m.Kind {
			case AdvRBI:
				plan.rbi = true
			case AdvNoRBI:
				plan.rbi = false
			case AdvUnearned:
				plan.unearned = true
			case AdvTeamUnearned:
				plan.teamUnearned = true
			case AdvError:
				plan.advanceOnError = true
			}
		}
		if plan.to == HomeBase && !plan.isOut && !explicitlyMarkedNoRBI(adv) {
			plan.rbi = true
		}
		plans[adv.Runner] = plan
	}

	return plans
}

func explicitlyMarkedNoRBI(adv RunnerAdvance) bool {
	return adv.HasModifier(AdvNoRBI)
}

func hitTypeBase(t HitType) Base {
	switch t {
	case Single:
		return FirstBase
	case Double, GroundRuleDouble:
		return SecondBase
	case Triple:
		return ThirdBase
	case HomeRun:
		return HomeBase
	}
	return FirstBase
}

// applyBaserunningDefault assigns a default plan for a baserunning-only
// play (steal, pickoff, balk, wild pitch, passed ball, defensive
// indifference, other advance) when the runner involved isn't already
// covered by an explicit advance. For plays naming a single target base,
// the runner on the base just behind the target is inferred; for plays
// with no target base (balk, wild pitch, passed ball), every occupied
// runner advances one base.
func applyBaserunningDefault(cur BaseState, p BaserunningMainPlay, plans map[BaseRunner]plannedAdvance) {
	isOut := p.Type == PickedOff || p.Type == CaughtStealing || p.Type == PickedOffCaughtStealing

	if p.Type == PickedOff {
		// PO's target base names the runner's current base: picked off in
		// place, no movement.
		if p.TargetBase == nil {
			return
		}
		runner := baseRunnerFromCurrent(*p.TargetBase)
		if _, ok := cur.At(*p.TargetBase); !ok {
			return
		}
		if _, already := plans[runner]; already {
			return
		}
		plans[runner] = plannedAdvance{isOut: true}
		return
	}

	if p.TargetBase != nil {
		source := Base(int(*p.TargetBase) - 1)
		runner := baseRunnerFromCurrent(source)
		if _, ok := cur.At(source); !ok && source != 0 {
			return
		}
		if _, already := plans[runner]; already {
			return
		}
		plans[runner] = plannedAdvance{to: *p.TargetBase, isOut: isOut, unearned: p.Unearned, teamUnearned: p.TeamUnearned}
		return
	}

	// No target base named: balk, wild pitch, passed ball, or defensive
	// indifference advances every occupied runner one base.
	for _, b := range []Base{ThirdBase, SecondBase, FirstBase} {
		if _, ok := cur.At(b); !ok {
			continue
		}
		runner := baseRunnerFromCurrent(b)
		if _, already := plans[runner]; already {
			continue
		}
		plans[runner] = plannedAdvance{to: b + 1, unearned: p.Unearned, teamUnearned: p.TeamUnearned}
	}
}

func describeBaseState(s BaseState) string {
	out := make([]byte, 0, 3)
	for _, b := range []Base{FirstBase, SecondBase, ThirdBase} {
		if s.Occupied(b) {
			out = append(out, byte('0'+int(b)))
		} else {
			out = append(out, '-')
		}
	}
	return string(out)
}
