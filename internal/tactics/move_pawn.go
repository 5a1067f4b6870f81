package tactics

// Pawns step one tile up or down onto an obstacle-free tile; they may walk
// back so they stay useful after reaching the far edge.
func genPawnMoves(x, y, width, height int, grid ObstacleGrid, out *[]Coord) {
	for _, dy := range [2]int{-1, 1} {
		ny := y + dy
		if inside(x, ny, width, height) && !blocked(grid, x, ny) {
			*out = append(*out, Coord{X: x, Y: ny})
		}
	}
}

// All four diagonal neighbours, regardless of what stands there.
func genPawnAttacks(x, y, width, height int, out *[]Coord) {
	for _, d := range bishopDirs {
		nx, ny := x+d[0], y+d[1]
		if inside(nx, ny, width, height) {
			*out = append(*out, Coord{X: nx, Y: ny})
		}
	}
}
