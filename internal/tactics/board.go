package tactics

const DefaultTileSize = 40

// ObstacleGrid is the only thing movement generation needs from a board.
type ObstacleGrid interface {
	HasObstacle(x, y int) bool
}

// Board holds the static terrain of a level. Coordinates are (x, y) with
// y growing downwards: enemies spawn in rows 0-1, players in the last two.
type Board struct {
	Width    int
	Height   int
	TileSize int

	obstacle []bool
	cover    []bool

	// placement order, kept for snapshots and encoding
	obstacles []Coord
	covers    []Coord
}

func NewBoard(width, height int) *Board {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Board{
		Width:    width,
		Height:   height,
		TileSize: DefaultTileSize,
		obstacle: make([]bool, width*height),
		cover:    make([]bool, width*height),
	}
}

func (b *Board) index(x, y int) int { return y*b.Width + x }

func (b *Board) InBounds(x, y int) bool {
	return b != nil && x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

func (b *Board) HasObstacle(x, y int) bool {
	return b.InBounds(x, y) && b.obstacle[b.index(x, y)]
}

func (b *Board) HasCover(x, y int) bool {
	return b.InBounds(x, y) && b.cover[b.index(x, y)]
}

// AddObstacle ignores out-of-bounds and already blocked tiles.
func (b *Board) AddObstacle(x, y int) {
	if !b.InBounds(x, y) || b.obstacle[b.index(x, y)] {
		return
	}
	b.obstacle[b.index(x, y)] = true
	b.obstacles = append(b.obstacles, Coord{X: x, Y: y})
}

func (b *Board) AddCover(x, y int) {
	if !b.InBounds(x, y) || b.cover[b.index(x, y)] {
		return
	}
	b.cover[b.index(x, y)] = true
	b.covers = append(b.covers, Coord{X: x, Y: y})
}

func (b *Board) Obstacles() []Coord { return append([]Coord(nil), b.obstacles...) }
func (b *Board) Cover() []Coord     { return append([]Coord(nil), b.covers...) }

func (b *Board) ObstacleCount() int { return len(b.obstacles) }
func (b *Board) CoverCount() int    { return len(b.covers) }

// Clone returns an independent copy; scripted setups mutate their own board.
func (b *Board) Clone() *Board {
	nb := &Board{
		Width:     b.Width,
		Height:    b.Height,
		TileSize:  b.TileSize,
		obstacle:  append([]bool(nil), b.obstacle...),
		cover:     append([]bool(nil), b.cover...),
		obstacles: append([]Coord(nil), b.obstacles...),
		covers:    append([]Coord(nil), b.covers...),
	}
	return nb
}

// PawnSpawnValid reports whether a pawn of the given side placed at (x, y)
// has an obstacle-free forward tile (up for players, down for enemies).
func PawnSpawnValid(b *Board, x, y int, side Side) bool {
	forward := y - 1
	if side == Enemy {
		forward = y + 1
	}
	if forward < 0 || forward >= b.Height {
		return false
	}
	return !b.HasObstacle(x, forward)
}
