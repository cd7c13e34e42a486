package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownHeuristic = errors.New("unknown heuristic")

const (
	unitWeight       = 3
	commanderWeight  = 9999
	commanderThreat  = 500 // per enemy unit touching a commander
	HeuristicDefault = "e0"
)

func weight(k UnitKind) int {
	if k == AI {
		return commanderWeight
	}
	return unitWeight
}

// EvaluateMaterial (e0) compares weighted unit counts. It is attacker minus defender while
// the attacker's commander lives and defender minus attacker afterwards.
func EvaluateMaterial(gs *GameState) int {
	attacker, defender := gs.material(func(u *Unit) int { return weight(u.Kind) })
	if gs.HasAI(Attacker) {
		return attacker - defender
	}
	return defender - attacker
}

// EvaluateHealth (e1) weighs every unit by its remaining health, attacker minus defender.
// It rewards trading damage and so plays aggressively.
func EvaluateHealth(gs *GameState) int {
	attacker, defender := gs.material(func(u *Unit) int { return weight(u.Kind) * u.Health })
	return attacker - defender
}

// EvaluateCommanderSafety (e2) is the attacker-oriented material score with a penalty for
// every enemy unit next to a side's commander.
func EvaluateCommanderSafety(gs *GameState) int {
	attacker, defender := gs.material(func(u *Unit) int { return weight(u.Kind) })
	score := attacker - defender
	score -= commanderThreat * gs.threatsToCommander(Attacker)
	score += commanderThreat * gs.threatsToCommander(Defender)
	return score
}

// HeuristicByName resolves the command line selectors e0, e1 and e2.
func HeuristicByName(name string) (Evaluate, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "e0":
		return EvaluateMaterial, nil
	case "e1":
		return EvaluateHealth, nil
	case "e2":
		return EvaluateCommanderSafety, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
}

func (gs *GameState) material(value func(*Unit) int) (attacker, defender int) {
	for _, u := range gs.PlayerUnits(Attacker) {
		attacker += value(u.Unit)
	}
	for _, u := range gs.PlayerUnits(Defender) {
		defender += value(u.Unit)
	}
	return attacker, defender
}

func (gs *GameState) threatsToCommander(p Player) int {
	threats := 0
	for _, u := range gs.PlayerUnits(p) {
		if u.Unit.Kind != AI {
			continue
		}
		for _, adj := range u.Coord.Adjacent() {
			if other := gs.Get(adj); other != nil && other.Player != p {
				threats++
			}
		}
	}
	return threats
}
