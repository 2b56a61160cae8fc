package domain

// Point is a grid coordinate; X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

// Grid is a fixed-size field of tiles stored row-major.
// Methods trust their coordinates; bounds are checked by Board.
type Grid struct {
	width, height int
	tiles         []Tile
}

func newGrid(width, height int) Grid {
	return Grid{width: width, height: height, tiles: make([]Tile, width*height)}
}

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) index(p Point) int { return p.Y*g.width + p.X }

func (g *Grid) point(i int) Point { return Point{X: i % g.width, Y: i / g.width} }

func (g *Grid) at(p Point) *Tile { return &g.tiles[g.index(p)] }

// neighbors calls fn for every Moore neighbor of p inside the grid, excluding p itself.
func (g *Grid) neighbors(p Point, fn func(Point)) {
	x0, x1 := max(p.X-1, 0), min(p.X+1, g.width-1)
	y0, y1 := max(p.Y-1, 0), min(p.Y+1, g.height-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x == p.X && y == p.Y {
				continue
			}
			fn(Point{X: x, Y: y})
		}
	}
}

func (g *Grid) clone() Grid {
	cp := *g
	cp.tiles = append([]Tile(nil), g.tiles...)
	return cp
}
