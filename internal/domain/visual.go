package domain

import "fmt"

// VisualKind selects how a renderer draws a tile.
type VisualKind uint8

const (
	// While playing.
	VisualButton VisualKind = iota
	VisualFlag
	VisualNumber

	// Once the game is over.
	VisualMine
	VisualMineDetonated
	VisualMineFlagged
	VisualFlagWrong
	VisualGhostNumber
)

var visualKindNames = [...]string{
	VisualButton:        "button",
	VisualFlag:          "flag",
	VisualNumber:        "number",
	VisualMine:          "mine",
	VisualMineDetonated: "mine-detonated",
	VisualMineFlagged:   "mine-flagged",
	VisualFlagWrong:     "flag-wrong",
	VisualGhostNumber:   "ghost-number",
}

func (k VisualKind) String() string {
	if int(k) < len(visualKindNames) {
		return visualKindNames[k]
	}
	return fmt.Sprintf("VisualKind(%d)", uint8(k))
}

// Visual is the draw case for one tile. Count is set for VisualNumber
// and VisualGhostNumber.
type Visual struct {
	Kind  VisualKind
	Count int
}

func (v Visual) String() string {
	if v.Kind == VisualNumber || v.Kind == VisualGhostNumber {
		return fmt.Sprintf("%s(%d)", v.Kind, v.Count)
	}
	return v.Kind.String()
}

// Classify picks the draw case for t given the game outcome. While playing
// only buttons, flags and revealed numbers are visible. After the game ends
// every mine is exposed, the detonated mine and wrong flags are marked, and
// after a loss the remaining hidden safe tiles show their counts.
func Classify(t Tile, o Outcome) Visual {
	switch t.state {
	case Hidden:
		switch {
		case !o.Over():
			return Visual{Kind: VisualButton}
		case t.mine:
			return Visual{Kind: VisualMine}
		case o == Lost:
			return Visual{Kind: VisualGhostNumber, Count: t.NeighborMineCount()}
		default:
			return Visual{Kind: VisualButton}
		}
	case Flagged:
		switch {
		case !o.Over():
			return Visual{Kind: VisualFlag}
		case t.mine:
			return Visual{Kind: VisualMineFlagged}
		default:
			return Visual{Kind: VisualFlagWrong}
		}
	default:
		if t.mine {
			return Visual{Kind: VisualMineDetonated}
		}
		return Visual{Kind: VisualNumber, Count: t.NeighborMineCount()}
	}
}

// Visual classifies the tile at (x, y) under the current outcome.
func (b *Board) Visual(x, y int) Visual {
	return Classify(b.Tile(x, y), b.outcome)
}

// Renderer receives one call per tile from Board.Draw.
type Renderer interface {
	DrawTile(x, y int, v Visual)
}

// Draw hands every tile's visual to r in row-major order.
func (b *Board) Draw(r Renderer) {
	for i, t := range b.grid.tiles {
		p := b.grid.point(i)
		r.DrawTile(p.X, p.Y, Classify(t, b.outcome))
	}
}
