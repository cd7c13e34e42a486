package game

const (
	MaxHeuristicScore = 2_000_000_000
	MinHeuristicScore = -2_000_000_000
)

// Evaluate scores a state. Positive values favour the attacker, except for the raw
// material score whose sign follows the attacker's commander (see EvaluateMaterial).
type Evaluate func(*GameState) int
