package tactics

// Fingerprint is a Zobrist-style hash of the terrain. Two boards with the
// same dimensions, obstacles and cover always share a fingerprint, which is
// how restarts are checked for reproducing the same layout.
func (b *Board) Fingerprint() uint64 {
	h := tileKey(uint64(b.Width), uint64(b.Height), 0)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			switch {
			case b.HasObstacle(x, y):
				h ^= tileKey(uint64(x), uint64(y), 1)
			case b.HasCover(x, y):
				h ^= tileKey(uint64(x), uint64(y), 2)
			}
		}
	}
	return h
}

// tileKey derives a key per (x, y, kind) with a splitmix64 finalizer so no
// table has to be sized for the largest board.
func tileKey(x, y, kind uint64) uint64 {
	z := 0x9E3779B97F4A7C15 * (x<<32 ^ y<<4 ^ kind + 1)
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
