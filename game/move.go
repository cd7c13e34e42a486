package game

// MoveCandidates lists every legal move for the player to move: each legal adjacent
// destination of each owned unit, followed by the unit's own cell (self-destruct).
func (gs *GameState) MoveCandidates() []CoordPair {
	var moves []CoordPair
	for _, u := range gs.PlayerUnits(gs.NextPlayer) {
		for _, dst := range u.Coord.Adjacent() {
			move := CoordPair{Src: u.Coord, Dst: dst}
			if gs.Classify(move).Legal() {
				moves = append(moves, move)
			}
		}
		moves = append(moves, CoordPair{Src: u.Coord, Dst: u.Coord})
	}
	return moves
}
