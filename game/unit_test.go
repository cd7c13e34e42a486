package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInteractionTables(t *testing.T) {
	t.Run("built-in tables cover every pair of kinds", func(t *testing.T) {
		require.NoError(t, DamageTable.Validate())
		require.NoError(t, RepairTable.Validate())
	})

	t.Run("missing entry is rejected", func(t *testing.T) {
		table := InteractionTable{}
		for _, actor := range UnitKinds() {
			table[actor] = map[UnitKind]int{}
			for _, target := range UnitKinds() {
				table[actor][target] = 1
			}
		}
		require.NoError(t, table.Validate())

		delete(table[Virus], Firewall)
		require.Error(t, table.Validate())
	})

	t.Run("lookup is keyed by actor then target", func(t *testing.T) {
		require.Equal(t, 9, DamageTable.Lookup(Virus, AI))
		require.Equal(t, 3, DamageTable.Lookup(AI, Virus))
		require.Equal(t, 3, RepairTable.Lookup(Tech, AI))
		require.Equal(t, 0, RepairTable.Lookup(AI, AI), "AI cannot repair another AI")
	})
}

func TestUnitHealth(t *testing.T) {
	t.Run("new units start at full health", func(t *testing.T) {
		u := NewUnit(Defender, Tech)
		require.Equal(t, 9, u.Health)
		require.True(t, u.IsAlive())
	})

	t.Run("health is clamped to [0, 9]", func(t *testing.T) {
		u := NewUnit(Attacker, Program)
		u.ModHealth(5)
		require.Equal(t, 9, u.Health)
		u.ModHealth(-20)
		require.Equal(t, 0, u.Health)
		require.False(t, u.IsAlive())
	})

	t.Run("damage never exceeds the target's health", func(t *testing.T) {
		virus := NewUnit(Attacker, Virus)
		ai := &Unit{Player: Defender, Kind: AI, Health: 4}
		require.Equal(t, 4, virus.DamageAmount(ai))
		require.Equal(t, 3, ai.DamageAmount(virus))
	})

	t.Run("repair never exceeds full health", func(t *testing.T) {
		tech := NewUnit(Defender, Tech)
		ai := &Unit{Player: Defender, Kind: AI, Health: 8}
		require.Equal(t, 1, tech.RepairAmount(ai))
		ai.Health = 2
		require.Equal(t, 3, tech.RepairAmount(ai))
	})

	t.Run("string form", func(t *testing.T) {
		require.Equal(t, "aV9", NewUnit(Attacker, Virus).String())
		require.Equal(t, "dT4", (&Unit{Player: Defender, Kind: Tech, Health: 4}).String())
	})
}
