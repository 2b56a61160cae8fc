package domain

// Rand is the random source used for mine placement.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// placeMines samples uniform coordinates and rejects those already mined
// until n distinct tiles hold a mine. Running time is unbounded in theory
// and grows sharply as n approaches the tile count.
func (g *Grid) placeMines(n int, rng Rand) {
	for placed := 0; placed < n; {
		t := g.at(Point{X: rng.IntN(g.width), Y: rng.IntN(g.height)})
		if t.HasMine() {
			continue
		}
		t.spawnMine()
		placed++
	}
}

// countNeighbors sets the neighbor count of every safe tile.
func (g *Grid) countNeighbors() {
	for i := range g.tiles {
		if g.tiles[i].HasMine() {
			continue
		}
		g.tiles[i].setNeighborCount(g.minesAround(g.point(i)))
	}
}

func (g *Grid) minesAround(p Point) int {
	n := 0
	g.neighbors(p, func(q Point) {
		if g.at(q).HasMine() {
			n++
		}
	})
	return n
}
