package domain

import (
	"math/rand/v2"
	"testing"
)

// scriptedRand replays fixed values, each reduced modulo n.
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) IntN(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

// minesAt returns a source that places mines at pts in order.
func minesAt(pts ...Point) *scriptedRand {
	r := &scriptedRand{}
	for _, p := range pts {
		r.vals = append(r.vals, p.X, p.Y)
	}
	return r
}

func newBoard(t *testing.T, w, h int, mines ...Point) *Board {
	t.Helper()
	return New(w, h, len(mines), minesAt(mines...))
}

func bruteCount(b *Board, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if b.InBounds(nx, ny) && b.Tile(nx, ny).HasMine() {
				n++
			}
		}
	}
	return n
}

func TestNewRejectsInvalidArguments(t *testing.T) {
	mustPanic(t, "zero mines", func() { New(4, 4, 0, nil) })
	mustPanic(t, "all mines", func() { New(4, 4, 16, nil) })
	mustPanic(t, "negative mines", func() { New(4, 4, -1, nil) })
	mustPanic(t, "zero width", func() { New(0, 4, 1, nil) })
	mustPanic(t, "zero height", func() { New(4, 0, 1, nil) })
}

func TestNewDefaultsRandomSource(t *testing.T) {
	b := New(DefaultWidth, DefaultHeight, 40, nil)
	if b.Width() != 20 || b.Height() != 16 || b.Mines() != 40 {
		t.Fatalf("unexpected board %dx%d/%d", b.Width(), b.Height(), b.Mines())
	}
	if b.Outcome() != Playing {
		t.Fatalf("expected playing, got %s", b.Outcome())
	}
}

func TestPlacementAndCountsMatchBruteForce(t *testing.T) {
	const w, h = 9, 7
	for m := 1; m < w*h; m++ {
		rng := rand.New(rand.NewPCG(uint64(m), 42))
		b := New(w, h, m, rng)
		mines := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				tile := b.Tile(x, y)
				if !tile.IsHidden() {
					t.Fatalf("m=%d: tile (%d,%d) not hidden after construction", m, x, y)
				}
				if tile.HasMine() {
					mines++
					continue
				}
				if got, want := tile.NeighborMineCount(), bruteCount(b, x, y); got != want {
					t.Fatalf("m=%d: count at (%d,%d) = %d, want %d", m, x, y, got, want)
				}
			}
		}
		if mines != m {
			t.Fatalf("expected %d mines, got %d", m, mines)
		}
	}
}

func TestPlacementRejectsDuplicates(t *testing.T) {
	// (1,1) is drawn twice; the duplicate must be resampled.
	rng := minesAt(Point{1, 1}, Point{1, 1}, Point{2, 0})
	b := New(3, 3, 2, rng)
	if !b.Tile(1, 1).HasMine() || !b.Tile(2, 0).HasMine() {
		t.Fatalf("unexpected placement:\n%s", b)
	}
	if rng.i != 6 {
		t.Fatalf("expected 6 draws, got %d", rng.i)
	}
}

func TestCornerHasAtMostThreeNeighbors(t *testing.T) {
	b := newBoard(t, 2, 2, Point{1, 0}, Point{0, 1}, Point{1, 1})
	if got := b.Tile(0, 0).NeighborMineCount(); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	for seed := uint64(0); seed < 50; seed++ {
		b := New(6, 6, 30, rand.New(rand.NewPCG(seed, seed)))
		if tile := b.Tile(0, 0); !tile.HasMine() && tile.NeighborMineCount() > 3 {
			t.Fatalf("corner count %d > 3", tile.NeighborMineCount())
		}
	}
}

func TestSafeOpeningCascadeWins(t *testing.T) {
	b := newBoard(t, 4, 4, Point{3, 3})
	if hit := b.RevealAt(0, 0); hit {
		t.Fatalf("unexpected mine hit")
	}
	if got := b.RevealedCount(); got != 15 {
		t.Fatalf("expected 15 revealed, got %d:\n%s", got, b)
	}
	if b.Outcome() != Won {
		t.Fatalf("expected won after cascade, got %s", b.Outcome())
	}
	if !b.Tile(3, 3).IsHidden() {
		t.Fatalf("mine tile should remain hidden")
	}
}

func TestRevealMineLosesImmediately(t *testing.T) {
	b := newBoard(t, 5, 5, Point{2, 2})
	if hit := b.RevealAt(2, 2); !hit {
		t.Fatalf("expected mine hit")
	}
	if b.Outcome() != Lost {
		t.Fatalf("expected lost, got %s", b.Outcome())
	}
	if got := b.RevealedCount(); got != 1 {
		t.Fatalf("expected only the mine revealed, got %d", got)
	}
}

func TestLossIsPermanent(t *testing.T) {
	b := newBoard(t, 5, 5, Point{2, 2})
	b.RevealAt(2, 2)
	if hit := b.RevealAt(0, 0); hit {
		t.Fatalf("reveal after loss should not report a hit")
	}
	b.FlagAt(4, 4)
	if b.RevealedCount() != 1 || b.FlagCount() != 0 {
		t.Fatalf("board changed after loss:\n%s", b)
	}
	if b.Outcome() != Lost {
		t.Fatalf("expected lost, got %s", b.Outcome())
	}
}

func TestRevealNumberedTileOnlyOpensItself(t *testing.T) {
	b := newBoard(t, 5, 5, Point{2, 2})
	b.RevealAt(1, 1)
	if got := b.RevealedCount(); got != 1 {
		t.Fatalf("expected 1 revealed, got %d", got)
	}
	if b.Outcome() != Playing {
		t.Fatalf("expected playing, got %s", b.Outcome())
	}
	// Second reveal of the same tile is ignored by the board.
	if hit := b.RevealAt(1, 1); hit || b.RevealedCount() != 1 {
		t.Fatalf("second reveal changed the board")
	}
}

func TestFlagProtectsFromReveal(t *testing.T) {
	b := newBoard(t, 5, 5, Point{2, 2})
	b.FlagAt(2, 2)
	if !b.Tile(2, 2).IsFlagged() {
		t.Fatalf("expected flagged")
	}
	if hit := b.RevealAt(2, 2); hit {
		t.Fatalf("flagged tile must not be revealed")
	}
	if b.Outcome() != Playing {
		t.Fatalf("expected playing, got %s", b.Outcome())
	}
	b.FlagAt(2, 2)
	if !b.Tile(2, 2).IsHidden() {
		t.Fatalf("expected hidden after unflag")
	}
	if hit := b.RevealAt(2, 2); !hit {
		t.Fatalf("expected hit after unflag")
	}
}

func TestFlagRevealedTileIgnored(t *testing.T) {
	b := newBoard(t, 5, 5, Point{2, 2})
	b.RevealAt(1, 1)
	b.FlagAt(1, 1)
	if !b.Tile(1, 1).IsRevealed() || b.FlagCount() != 0 {
		t.Fatalf("flag on revealed tile should be ignored")
	}
}

func TestCascadeStopsAtFlags(t *testing.T) {
	b := newBoard(t, 5, 5, Point{4, 4})
	b.FlagAt(0, 4)
	b.RevealAt(0, 0)
	if !b.Tile(0, 4).IsFlagged() {
		t.Fatalf("cascade must not touch flagged tiles")
	}
	if b.Outcome() != Playing {
		t.Fatalf("flagged safe tile should block the win, got %s", b.Outcome())
	}
	b.FlagAt(0, 4)
	b.RevealAt(0, 4)
	if b.Outcome() != Won {
		t.Fatalf("expected won, got %s:\n%s", b.Outcome(), b)
	}
}

func TestWinIgnoresFlagsOnMines(t *testing.T) {
	b := newBoard(t, 3, 1, Point{0, 0})
	b.FlagAt(0, 0)
	b.RevealAt(1, 0)
	if b.Outcome() != Playing {
		t.Fatalf("expected playing, got %s", b.Outcome())
	}
	b.RevealAt(2, 0)
	if b.Outcome() != Won {
		t.Fatalf("expected won, got %s", b.Outcome())
	}
	if b.MinesRemaining() != 0 {
		t.Fatalf("expected 0 mines remaining, got %d", b.MinesRemaining())
	}
}

// expectedCascade computes the zero region reachable from start plus its
// bordering numbered tiles.
func expectedCascade(b *Board, start Point) map[Point]bool {
	out := map[Point]bool{}
	queue := []Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if out[p] {
			continue
		}
		out[p] = true
		if b.Tile(p.X, p.Y).NeighborMineCount() > 0 {
			continue
		}
		b.grid.neighbors(p, func(q Point) {
			if !b.Tile(q.X, q.Y).HasMine() {
				queue = append(queue, q)
			}
		})
	}
	return out
}

func TestCascadeRevealsMaximalRegion(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		b := New(12, 10, 14, rand.New(rand.NewPCG(seed, 7)))
		var start Point
		found := false
		for i, tile := range b.grid.tiles {
			if !tile.HasMine() && tile.NeighborMineCount() == 0 {
				start, found = b.grid.point(i), true
				break
			}
		}
		if !found {
			continue
		}
		want := expectedCascade(b, start)
		b.RevealAt(start.X, start.Y)
		for i, tile := range b.grid.tiles {
			p := b.grid.point(i)
			if tile.IsRevealed() != want[p] {
				t.Fatalf("seed %d: tile %v revealed=%v want %v:\n%s", seed, p, tile.IsRevealed(), want[p], b)
			}
			if tile.IsRevealed() && tile.HasMine() {
				t.Fatalf("seed %d: cascade revealed mine at %v", seed, p)
			}
		}
		if b.Outcome() == Lost {
			t.Fatalf("seed %d: cascade lost the game", seed)
		}
		if (b.Outcome() == Won) != b.AllSafeRevealed() {
			t.Fatalf("seed %d: outcome %s disagrees with AllSafeRevealed", seed, b.Outcome())
		}
	}
}

func TestLargeOpenBoardCascade(t *testing.T) {
	b := newBoard(t, 400, 400, Point{399, 399})
	b.RevealAt(0, 0)
	if b.Outcome() != Won {
		t.Fatalf("expected won, got %s", b.Outcome())
	}
}

func TestOutOfBoundsPanics(t *testing.T) {
	b := newBoard(t, 4, 4, Point{3, 3})
	if b.InBounds(4, 0) || b.InBounds(0, -1) || !b.InBounds(3, 3) {
		t.Fatalf("unexpected InBounds results")
	}
	mustPanic(t, "reveal x=4", func() { b.RevealAt(4, 0) })
	mustPanic(t, "flag y=-1", func() { b.FlagAt(0, -1) })
	mustPanic(t, "tile x=-1", func() { b.Tile(-1, 2) })
}

func TestCloneIsIndependent(t *testing.T) {
	b := newBoard(t, 4, 4, Point{3, 3})
	cp := b.Clone()
	b.RevealAt(0, 0)
	if cp.RevealedCount() != 0 || cp.Outcome() != Playing {
		t.Fatalf("clone changed with original")
	}
}

func TestString(t *testing.T) {
	b := newBoard(t, 3, 2, Point{2, 0})
	b.RevealAt(0, 1)
	b.FlagAt(2, 0)
	want := ".1F\n.1-\n"
	if got := b.String(); got != want {
		t.Fatalf("unexpected render:\n%s\nwant:\n%s", got, want)
	}
}
