package tactics

var (
	rookDirs   = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	bishopDirs = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	kingDirs   = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)

// Moves lists the destinations an archetype can reach from (x, y) before
// any occupancy filtering. A nil grid is an empty board.
func Moves(a Archetype, x, y, width, height int, grid ObstacleGrid) []Coord {
	var out []Coord
	switch a {
	case Pawn:
		genPawnMoves(x, y, width, height, grid, &out)
	case Rook:
		genRays(x, y, width, height, grid, rookDirs[:], &out)
	case Bishop:
		genRays(x, y, width, height, grid, bishopDirs[:], &out)
	case Knight:
		genKnightMoves(x, y, width, height, &out)
	case Queen:
		genRays(x, y, width, height, grid, rookDirs[:], &out)
		genRays(x, y, width, height, grid, bishopDirs[:], &out)
	case King:
		genKingMoves(x, y, width, height, &out)
	}
	return out
}

// AttackRange equals Moves for everything but the pawn, which attacks on
// its four diagonals. Line of sight is checked by the caller.
func AttackRange(a Archetype, x, y, width, height int, grid ObstacleGrid) []Coord {
	if a == Pawn {
		var out []Coord
		genPawnAttacks(x, y, width, height, &out)
		return out
	}
	return Moves(a, x, y, width, height, grid)
}

func inside(x, y, width, height int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}

func blocked(grid ObstacleGrid, x, y int) bool {
	return grid != nil && grid.HasObstacle(x, y)
}

// Rays include the first obstacle tile they meet and stop there.
func genRays(x, y, width, height int, grid ObstacleGrid, dirs [][2]int, out *[]Coord) {
	limit := max(width, height)
	for _, d := range dirs {
		for i := 1; i < limit; i++ {
			nx, ny := x+d[0]*i, y+d[1]*i
			if !inside(nx, ny, width, height) {
				break
			}
			*out = append(*out, Coord{X: nx, Y: ny})
			if blocked(grid, nx, ny) {
				break
			}
		}
	}
}

func genKingMoves(x, y, width, height int, out *[]Coord) {
	for _, d := range kingDirs {
		nx, ny := x+d[0], y+d[1]
		if inside(nx, ny, width, height) {
			*out = append(*out, Coord{X: nx, Y: ny})
		}
	}
}
