package game

import (
	"wargame/utils"
)

const (
	reasonOutOfBounds = "coordinates out of bounds"
	reasonNoUnit      = "no unit at source"
	reasonNotYourUnit = "source unit belongs to the other player"
	reasonNonAdjacent = "non-adjacent"
	reasonNoRepair    = "repair has no effect"
	reasonEngaged     = "unit is engaged in combat"
	reasonWrongWay    = "unit cannot move in that direction"
	reasonStale       = "action does not match the board"
)

// Classify decides what kind of action p would be. It does not modify the state.
func (gs *GameState) Classify(p CoordPair) Action {
	if !gs.IsValidCoord(p.Src) || !gs.IsValidCoord(p.Dst) {
		return illegal(reasonOutOfBounds)
	}
	src := gs.Get(p.Src)
	if src == nil {
		return illegal(reasonNoUnit)
	}
	if src.Player != gs.NextPlayer {
		return illegal(reasonNotYourUnit)
	}
	if p.Src == p.Dst {
		return Action{Kind: SelfDestructAction}
	}
	if !utils.Contains(p.Src.Adjacent(), p.Dst) {
		return illegal(reasonNonAdjacent)
	}

	dst := gs.Get(p.Dst)
	switch {
	case dst != nil && dst.Player == src.Player:
		amount := src.RepairAmount(dst)
		if amount <= 0 {
			return illegal(reasonNoRepair)
		}
		return Action{Kind: RepairAction, Amount: amount}
	case dst != nil:
		return Action{
			Kind:     AttackAction,
			Damage:   src.DamageAmount(dst),
			Backfire: dst.DamageAmount(src),
		}
	}

	if src.Kind.MovesFreely() {
		return Action{Kind: MoveAction}
	}
	if gs.engagedInCombat(p.Src) {
		return illegal(reasonEngaged)
	}
	if !advances(src.Player, p) {
		return illegal(reasonWrongWay)
	}
	return Action{Kind: MoveAction}
}

// IsValidMove reports whether p is legal for the player to move.
func (gs *GameState) IsValidMove(p CoordPair) bool {
	return gs.Classify(p).Legal()
}

// engagedInCombat reports whether any orthogonal neighbour of c is an enemy unit.
func (gs *GameState) engagedInCombat(c Coord) bool {
	unit := gs.Get(c)
	if unit == nil {
		return false
	}
	for _, adj := range c.Adjacent() {
		other := gs.Get(adj)
		if other != nil && other.Player != unit.Player {
			return true
		}
	}
	return false
}

// advances reports whether a restricted unit of player may step along p. The attacker
// starts top-left and moves down or right; the defender moves up or left.
func advances(player Player, p CoordPair) bool {
	dr, dc := p.Dst.Row-p.Src.Row, p.Dst.Col-p.Src.Col
	if player == Defender {
		return (dr == -1 && dc == 0) || (dr == 0 && dc == -1)
	}
	return (dr == 1 && dc == 0) || (dr == 0 && dc == 1)
}
