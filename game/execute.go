package game

import "fmt"

// selfDestructDamage is dealt to every unit around a self-destructing unit.
const selfDestructDamage = 2

// PerformMove classifies p and applies it if legal. It returns whether the move was played
// and a description of its outcome, or the reason it was rejected.
func (gs *GameState) PerformMove(p CoordPair) (bool, string) {
	return gs.execute(p, gs.Classify(p))
}

// execute applies an action classified for p on this state. An action that no longer fits
// the occupancy of the board is rejected.
func (gs *GameState) execute(p CoordPair, a Action) (bool, string) {
	if a.Legal() && !gs.fits(p, a.Kind) {
		return false, reasonStale
	}
	switch a.Kind {
	case MoveAction:
		gs.Set(p.Dst, gs.Get(p.Src))
		gs.Set(p.Src, nil)
		return true, fmt.Sprintf("moved from %s to %s", p.Src, p.Dst)

	case RepairAction:
		target := gs.Get(p.Dst)
		before := target.Health
		gs.modHealth(p.Dst, a.Amount)
		return true, fmt.Sprintf("repaired %s from %d to %d", p.Dst, before, target.Health)

	case AttackAction:
		// both sides take damage before either is removed
		gs.Get(p.Src).ModHealth(-a.Backfire)
		gs.Get(p.Dst).ModHealth(-a.Damage)
		gs.removeDead(p.Src)
		gs.removeDead(p.Dst)
		return true, fmt.Sprintf("combat damage: to source = %d, to target = %d", a.Backfire, a.Damage)

	case SelfDestructAction:
		total := 0
		for _, c := range p.Src.Range(1) {
			if c == p.Src {
				continue
			}
			unit := gs.Get(c)
			if unit == nil {
				continue
			}
			total += min(selfDestructDamage, unit.Health)
			gs.modHealth(c, -selfDestructDamage)
		}
		src := gs.Get(p.Src)
		gs.modHealth(p.Src, -src.Health)
		return true, fmt.Sprintf("self-destructed for %d total damage", total)

	default:
		if a.Reason == "" {
			return false, "invalid move"
		}
		return false, a.Reason
	}
}

func (gs *GameState) fits(p CoordPair, kind ActionKind) bool {
	if !gs.IsValidCoord(p.Src) || !gs.IsValidCoord(p.Dst) || gs.IsEmpty(p.Src) {
		return false
	}
	switch kind {
	case MoveAction:
		return gs.IsEmpty(p.Dst)
	case RepairAction, AttackAction:
		return !gs.IsEmpty(p.Dst)
	default:
		return true
	}
}
