package tactics

var knightJumps = [8][2]int{
	{-2, -1}, {-2, 1},
	{-1, -2}, {-1, 2},
	{1, -2}, {1, 2},
	{2, -1}, {2, 1},
}

// Knights jump: only the board edge limits them.
func genKnightMoves(x, y, width, height int, out *[]Coord) {
	for _, j := range knightJumps {
		nx, ny := x+j[0], y+j[1]
		if inside(nx, ny, width, height) {
			*out = append(*out, Coord{X: nx, Y: ny})
		}
	}
}
