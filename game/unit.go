package game

import (
	"fmt"
	"strings"

	"wargame/meta"
)

// UnitKind identifies a unit type. The values index the interaction tables.
type UnitKind int

const (
	AI       UnitKind = iota // commander: losing it loses the game
	Tech                     // support: repairs, moves freely
	Virus                    // aggressor: heavy damage, moves freely
	Program                  // standard
	Firewall                 // barrier
)

var unitKinds = []UnitKind{AI, Tech, Virus, Program, Firewall}

// UnitKinds returns every unit kind.
func UnitKinds() []UnitKind {
	return unitKinds
}

func (k UnitKind) String() string {
	switch k {
	case AI:
		return "AI"
	case Tech:
		return "Tech"
	case Virus:
		return "Virus"
	case Program:
		return "Program"
	case Firewall:
		return "Firewall"
	default:
		return fmt.Sprintf("UnitKind(%d)", int(k))
	}
}

// MovesFreely reports whether the kind ignores combat locks and direction limits.
func (k UnitKind) MovesFreely() bool {
	return k == Tech || k == Virus
}

// InteractionTable is keyed by (actor kind, target kind).
type InteractionTable map[UnitKind]map[UnitKind]int

// DamageTable holds the raw damage an actor deals to a target.
var DamageTable = InteractionTable{
	AI:       {AI: 3, Tech: 3, Virus: 3, Program: 3, Firewall: 1},
	Tech:     {AI: 1, Tech: 1, Virus: 6, Program: 1, Firewall: 1},
	Virus:    {AI: 9, Tech: 6, Virus: 1, Program: 6, Firewall: 1},
	Program:  {AI: 3, Tech: 3, Virus: 3, Program: 3, Firewall: 1},
	Firewall: {AI: 1, Tech: 1, Virus: 1, Program: 1, Firewall: 1},
}

// RepairTable holds the raw health an actor restores to a friendly target.
var RepairTable = InteractionTable{
	AI:       {AI: 0, Tech: 1, Virus: 1, Program: 0, Firewall: 0},
	Tech:     {AI: 3, Tech: 0, Virus: 0, Program: 3, Firewall: 3},
	Virus:    {AI: 0, Tech: 0, Virus: 0, Program: 0, Firewall: 0},
	Program:  {AI: 0, Tech: 0, Virus: 0, Program: 0, Firewall: 0},
	Firewall: {AI: 0, Tech: 0, Virus: 0, Program: 0, Firewall: 0},
}

func init() {
	for name, table := range map[string]InteractionTable{"damage": DamageTable, "repair": RepairTable} {
		if err := table.Validate(); err != nil {
			panic(fmt.Sprintf("invalid %s table: %v", name, err))
		}
	}
}

// Validate checks that the table covers every pair of kinds with a non-negative value.
func (t InteractionTable) Validate() error {
	for _, actor := range unitKinds {
		row, ok := t[actor]
		if !ok {
			return fmt.Errorf("missing row for %s", actor)
		}
		for _, target := range unitKinds {
			v, ok := row[target]
			if !ok {
				return fmt.Errorf("missing entry for %s -> %s", actor, target)
			}
			if v < 0 {
				return fmt.Errorf("negative entry for %s -> %s", actor, target)
			}
		}
	}
	return nil
}

// Lookup returns the raw table value for actor acting on target.
func (t InteractionTable) Lookup(actor, target UnitKind) int {
	return t[actor][target]
}

// Unit is a single piece on the board.
type Unit struct {
	Player Player
	Kind   UnitKind
	Health int
}

// NewUnit returns a unit at full health.
func NewUnit(player Player, kind UnitKind) *Unit {
	return &Unit{Player: player, Kind: kind, Health: meta.MAX_HEALTH}
}

func (u *Unit) IsAlive() bool {
	return u.Health > 0
}

// ModHealth changes health by delta, clamped to [0, MAX_HEALTH].
func (u *Unit) ModHealth(delta int) {
	u.Health += delta
	if u.Health < 0 {
		u.Health = 0
	} else if u.Health > meta.MAX_HEALTH {
		u.Health = meta.MAX_HEALTH
	}
}

// DamageAmount is how much this unit can damage target without driving it below 0.
func (u *Unit) DamageAmount(target *Unit) int {
	amount := DamageTable.Lookup(u.Kind, target.Kind)
	if target.Health-amount < 0 {
		return target.Health
	}
	return amount
}

// RepairAmount is how much this unit can repair target without exceeding MAX_HEALTH.
func (u *Unit) RepairAmount(target *Unit) int {
	amount := RepairTable.Lookup(u.Kind, target.Kind)
	if target.Health+amount > meta.MAX_HEALTH {
		return meta.MAX_HEALTH - target.Health
	}
	return amount
}

// String renders the unit as player initial, kind initial and health, e.g. "dV9".
func (u *Unit) String() string {
	p := strings.ToLower(u.Player.String()[:1])
	k := strings.ToUpper(u.Kind.String()[:1])
	return fmt.Sprintf("%s%s%d", p, k, u.Health)
}

func (u *Unit) clone() *Unit {
	c := *u
	return &c
}
