package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Reference field dimensions.
const (
	DefaultWidth  = 20
	DefaultHeight = 16
)

// Board is a minesweeper game: a mined grid plus the game outcome.
// It is not safe for concurrent use.
type Board struct {
	grid    Grid
	mines   int
	outcome Outcome
}

// New builds a width x height board holding mines mines placed with rng.
// A nil rng is replaced with a freshly seeded source. New panics unless
// both dimensions are positive and 0 < mines < width*height.
func New(width, height, mines int, rng Rand) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("domain: invalid board size %dx%d", width, height))
	}
	if mines <= 0 || mines >= width*height {
		panic(fmt.Sprintf("domain: invalid mine count %d for %dx%d board", mines, width, height))
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	b := &Board{grid: newGrid(width, height), mines: mines}
	b.grid.placeMines(mines, rng)
	b.grid.countNeighbors()
	return b
}

func (b *Board) Width() int       { return b.grid.width }
func (b *Board) Height() int      { return b.grid.height }
func (b *Board) Mines() int       { return b.mines }
func (b *Board) Outcome() Outcome { return b.outcome }

// InBounds reports whether (x, y) addresses a tile. Every other method
// taking coordinates panics when this is false.
func (b *Board) InBounds(x, y int) bool {
	return b.grid.Contains(Point{X: x, Y: y})
}

func (b *Board) mustContain(x, y int) Point {
	p := Point{X: x, Y: y}
	if !b.grid.Contains(p) {
		panic(fmt.Sprintf("domain: (%d,%d) outside %dx%d board", x, y, b.grid.width, b.grid.height))
	}
	return p
}

// Tile returns a copy of the tile at (x, y).
func (b *Board) Tile(x, y int) Tile {
	return *b.grid.at(b.mustContain(x, y))
}

// RevealAt uncovers the tile at (x, y) and reports whether it held a mine.
// Nothing happens once the game is over or when the tile is not hidden;
// flagged tiles must be unflagged first. A tile with no adjacent mines
// opens its whole zero region together with the numbered tiles bordering it.
func (b *Board) RevealAt(x, y int) (hitMine bool) {
	p := b.mustContain(x, y)
	if b.outcome.Over() {
		return false
	}
	t := b.grid.at(p)
	if !t.IsHidden() {
		return false
	}
	if t.HasMine() {
		t.reveal()
		b.outcome = b.outcome.transition(Lost)
		return true
	}
	if t.NeighborMineCount() == 0 {
		b.floodReveal(p)
	} else {
		t.reveal()
	}
	b.checkWin()
	return false
}

// floodReveal opens the connected zero-count region around start using an
// explicit stack. Tiles that are not hidden or hold a mine stop the walk,
// so every tile is expanded at most once.
func (b *Board) floodReveal(start Point) {
	stack := []Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		t := b.grid.at(p)
		if !t.IsHidden() || t.HasMine() {
			continue
		}
		t.reveal()
		if t.NeighborMineCount() > 0 {
			continue
		}
		b.grid.neighbors(p, func(q Point) {
			stack = append(stack, q)
		})
	}
}

// FlagAt toggles the flag on the tile at (x, y). Revealed tiles and
// finished games are left alone.
func (b *Board) FlagAt(x, y int) {
	p := b.mustContain(x, y)
	if b.outcome.Over() {
		return
	}
	t := b.grid.at(p)
	if t.IsRevealed() {
		return
	}
	t.toggleFlag()
}

// AllSafeRevealed reports whether every tile without a mine is revealed.
// Flags and hidden mines do not matter.
func (b *Board) AllSafeRevealed() bool {
	for _, t := range b.grid.tiles {
		if !t.HasMine() && !t.IsRevealed() {
			return false
		}
	}
	return true
}

func (b *Board) checkWin() {
	if !b.AllSafeRevealed() {
		return
	}
	b.outcome = b.outcome.transition(Won)
}

// FlagCount returns the number of flagged tiles.
func (b *Board) FlagCount() int {
	n := 0
	for _, t := range b.grid.tiles {
		if t.IsFlagged() {
			n++
		}
	}
	return n
}

// RevealedCount returns the number of revealed tiles.
func (b *Board) RevealedCount() int {
	n := 0
	for _, t := range b.grid.tiles {
		if t.IsRevealed() {
			n++
		}
	}
	return n
}

// MinesRemaining is the mine count minus the flags placed. It goes
// negative when the player over-flags.
func (b *Board) MinesRemaining() int { return b.mines - b.FlagCount() }

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cp := *b
	cp.grid = b.grid.clone()
	return &cp
}

// String renders the board one row per line: '-' hidden, 'F' flagged,
// '*' revealed mine, '.' revealed zero, digits for revealed counts.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.grid.height; y++ {
		for x := 0; x < b.grid.width; x++ {
			t := b.grid.at(Point{X: x, Y: y})
			switch {
			case t.IsHidden():
				sb.WriteByte('-')
			case t.IsFlagged():
				sb.WriteByte('F')
			case t.HasMine():
				sb.WriteByte('*')
			case t.NeighborMineCount() == 0:
				sb.WriteByte('.')
			default:
				sb.WriteByte(byte('0' + t.NeighborMineCount()))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
