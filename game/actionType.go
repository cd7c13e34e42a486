package game

// ActionKind is the outcome of classifying a move.
type ActionKind int

const (
	IllegalAction ActionKind = iota
	MoveAction
	RepairAction
	AttackAction
	SelfDestructAction
)

func (k ActionKind) String() string {
	switch k {
	case MoveAction:
		return "move"
	case RepairAction:
		return "repair"
	case AttackAction:
		return "attack"
	case SelfDestructAction:
		return "self-destruct"
	default:
		return "illegal"
	}
}

// Action is a classified move. Amount is the repair applied for repairs; Damage and
// Backfire are the damage dealt to the target and taken by the source for attacks.
type Action struct {
	Kind     ActionKind
	Amount   int
	Damage   int
	Backfire int
	Reason   string // set for illegal actions
}

func (a Action) Legal() bool {
	return a.Kind != IllegalAction
}

func illegal(reason string) Action {
	return Action{Kind: IllegalAction, Reason: reason}
}
