package game

import (
	"fmt"
	"strings"
)

// Player is one of the two sides. The attacker always moves first.
type Player int

const (
	Attacker Player = iota
	Defender
)

var players = []Player{Attacker, Defender}

// Players returns both sides in turn order.
func Players() []Player {
	return players
}

// Next returns the other player.
func (p Player) Next() Player {
	if p == Attacker {
		return Defender
	}
	return Attacker
}

func (p Player) String() string {
	switch p {
	case Attacker:
		return "Attacker"
	case Defender:
		return "Defender"
	default:
		return fmt.Sprintf("Player(%d)", int(p))
	}
}

// GameType decides which sides are played by the computer.
type GameType int

const (
	AttackerVsDefender GameType = iota // both sides human (or broker)
	AttackerVsComp                     // attacker human, defender computer
	CompVsDefender                     // attacker computer, defender human
	CompVsComp
)

// ParseGameType maps the command line names onto a GameType.
func ParseGameType(s string) (GameType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual", "":
		return AttackerVsDefender, nil
	case "attacker":
		return AttackerVsComp, nil
	case "defender":
		return CompVsDefender, nil
	case "auto":
		return CompVsComp, nil
	default:
		return 0, fmt.Errorf("unknown game type %q", s)
	}
}

// IsComputer reports whether the given side is played by the search engine.
func (g GameType) IsComputer(p Player) bool {
	switch g {
	case AttackerVsComp:
		return p == Defender
	case CompVsDefender:
		return p == Attacker
	case CompVsComp:
		return true
	default:
		return false
	}
}

func (g GameType) String() string {
	switch g {
	case AttackerVsDefender:
		return "manual"
	case AttackerVsComp:
		return "attacker"
	case CompVsDefender:
		return "defender"
	case CompVsComp:
		return "auto"
	default:
		return fmt.Sprintf("GameType(%d)", int(g))
	}
}

// PlayMode describes who plays which side, as written in the trace header.
func (g GameType) PlayMode() string {
	switch g {
	case AttackerVsComp:
		return "player 1 = H & player 2 = AI"
	case CompVsDefender:
		return "player 1 = AI & player 2 = H"
	case CompVsComp:
		return "player 1 = AI & player 2 = AI"
	default:
		return "player 1 = H & player 2 = H"
	}
}
