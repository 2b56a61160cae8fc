package domain

import "fmt"

// TileState is the player-visible state of a tile.
type TileState uint8

const (
	Hidden TileState = iota
	Flagged
	Revealed
)

func (s TileState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return fmt.Sprintf("TileState(%d)", uint8(s))
	}
}

// neighborCount is an adjacent-mine count that starts out uncomputed.
type neighborCount struct {
	n     uint8
	known bool
}

// Tile is a single cell of the minefield. The zero value is a hidden tile
// without a mine whose neighbor count has not been computed.
type Tile struct {
	state TileState
	mine  bool
	count neighborCount
}

func (t *Tile) spawnMine() {
	if t.mine {
		panic("domain: mine already spawned on tile")
	}
	t.mine = true
}

func (t *Tile) setNeighborCount(n int) {
	switch {
	case t.mine:
		panic("domain: neighbor count set on a mined tile")
	case t.count.known:
		panic("domain: neighbor count already set")
	case n < 0 || n > 8:
		panic(fmt.Sprintf("domain: neighbor count %d out of range", n))
	}
	t.count = neighborCount{n: uint8(n), known: true}
}

func (t *Tile) reveal() {
	if t.state != Hidden {
		panic(fmt.Sprintf("domain: reveal of %s tile", t.state))
	}
	t.state = Revealed
}

func (t *Tile) toggleFlag() {
	switch t.state {
	case Hidden:
		t.state = Flagged
	case Flagged:
		t.state = Hidden
	default:
		panic("domain: flag toggled on revealed tile")
	}
}

func (t Tile) State() TileState { return t.state }
func (t Tile) HasMine() bool    { return t.mine }
func (t Tile) IsHidden() bool   { return t.state == Hidden }
func (t Tile) IsFlagged() bool  { return t.state == Flagged }
func (t Tile) IsRevealed() bool { return t.state == Revealed }

// NeighborMineCount returns how many Moore neighbors hold a mine.
// It panics for mined tiles and for tiles whose count was never computed.
func (t Tile) NeighborMineCount() int {
	if t.mine {
		panic("domain: neighbor count read on a mined tile")
	}
	if !t.count.known {
		panic("domain: neighbor count read before it was computed")
	}
	return int(t.count.n)
}
