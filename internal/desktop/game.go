// Package desktop draws a minefield in an ebiten window and feeds mouse
// clicks back to the board as grid coordinates.
package desktop

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/jaminalder/codex-minesweeper/internal/domain"
	"github.com/jaminalder/codex-minesweeper/internal/screen"
)

const statusHeight = 20

var (
	colorBase     = color.RGBA{192, 192, 192, 255}
	colorLight    = color.RGBA{255, 255, 255, 255}
	colorDark     = color.RGBA{128, 128, 128, 255}
	colorFlag     = color.RGBA{220, 30, 30, 255}
	colorMine     = color.RGBA{0, 0, 0, 255}
	colorDetonate = color.RGBA{230, 0, 0, 255}
	colorGhost    = color.RGBA{150, 150, 150, 255}
	colorText     = color.RGBA{0, 0, 0, 255}
)

var numberColors = [9]color.Color{
	colorText,
	color.RGBA{0, 0, 255, 255},
	color.RGBA{0, 128, 0, 255},
	color.RGBA{255, 0, 0, 255},
	color.RGBA{0, 0, 128, 255},
	color.RGBA{128, 0, 0, 255},
	color.RGBA{0, 128, 128, 255},
	color.RGBA{0, 0, 0, 255},
	color.RGBA{128, 128, 128, 255},
}

// Options configures a desktop game.
type Options struct {
	Width, Height, Mines int
	TileSize             int
	// NewRand supplies the mine placement source; nil means a seeded PCG.
	NewRand func() domain.Rand
	// Logger receives board events; nil means the logrus standard logger.
	Logger logrus.FieldLogger
}

// Game implements ebiten.Game around a single board.
type Game struct {
	opts   Options
	board  *domain.Board
	layout screen.Layout
	face   font.Face
	log    logrus.FieldLogger
}

func NewGame(opts Options) *Game {
	g := &Game{
		opts: opts,
		layout: screen.Layout{
			Cols:     opts.Width,
			Rows:     opts.Height,
			TileSize: opts.TileSize,
			Origin:   image.Pt(0, statusHeight),
		},
		face: basicfont.Face7x13,
		log:  opts.Logger,
	}
	if g.log == nil {
		g.log = logrus.StandardLogger()
	}
	g.restart()
	return g
}

func (g *Game) restart() {
	var rng domain.Rand
	if g.opts.NewRand != nil {
		rng = g.opts.NewRand()
	}
	g.board = domain.New(g.opts.Width, g.opts.Height, g.opts.Mines, rng)
	g.log.WithFields(logrus.Fields{
		"width":  g.opts.Width,
		"height": g.opts.Height,
		"mines":  g.opts.Mines,
	}).Info("new board")
}

// Size is the logical screen size in pixels.
func (g *Game) Size() (int, int) {
	r := g.layout.FieldRect()
	return r.Max.X, r.Max.Y
}

func (g *Game) Layout(_, _ int) (int, int) { return g.Size() }

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
		return nil
	}
	mx, my := ebiten.CursorPosition()
	x, y, ok := g.layout.GridPos(mx, my)
	if !ok {
		return nil
	}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if g.board.RevealAt(x, y) {
			g.log.WithFields(logrus.Fields{"x": x, "y": y}).Info("mine hit")
		} else if g.board.Outcome() == domain.Won {
			g.log.WithField("revealed", g.board.RevealedCount()).Info("board cleared")
		}
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		g.board.FlagAt(x, y)
	}
	return nil
}

func (g *Game) Draw(dst *ebiten.Image) {
	dst.Fill(colorBase)
	g.drawStatus(dst)
	g.board.Draw(tileDrawer{g: g, dst: dst})
}

type tileDrawer struct {
	g   *Game
	dst *ebiten.Image
}

func (d tileDrawer) DrawTile(x, y int, v domain.Visual) {
	d.g.drawTile(d.dst, d.g.layout.TileRect(x, y), v)
}

func (g *Game) drawStatus(dst *ebiten.Image) {
	var msg string
	switch g.board.Outcome() {
	case domain.Won:
		msg = "cleared! R to restart"
	case domain.Lost:
		msg = "boom. R to restart"
	default:
		msg = fmt.Sprintf("mines: %d", g.board.MinesRemaining())
	}
	text.Draw(dst, msg, g.face, 4, statusHeight-5, colorText)
}

func (g *Game) drawTile(dst *ebiten.Image, r image.Rectangle, v domain.Visual) {
	switch v.Kind {
	case domain.VisualButton:
		drawButton(dst, r)
	case domain.VisualFlag:
		drawButton(dst, r)
		drawFlag(dst, r)
	case domain.VisualNumber:
		drawOpen(dst, r, colorBase)
		g.drawCount(dst, r, v.Count, numberColors[v.Count])
	case domain.VisualGhostNumber:
		drawButton(dst, r)
		g.drawCount(dst, r, v.Count, colorGhost)
	case domain.VisualMine:
		drawOpen(dst, r, colorBase)
		drawMine(dst, r)
	case domain.VisualMineDetonated:
		drawOpen(dst, r, colorDetonate)
		drawMine(dst, r)
	case domain.VisualMineFlagged:
		drawOpen(dst, r, colorBase)
		drawMine(dst, r)
		drawFlag(dst, r)
	case domain.VisualFlagWrong:
		drawOpen(dst, r, colorBase)
		drawMine(dst, r)
		drawCross(dst, r)
	}
}

func (g *Game) drawCount(dst *ebiten.Image, r image.Rectangle, n int, clr color.Color) {
	if n == 0 {
		return
	}
	s := strconv.Itoa(n)
	b := text.BoundString(g.face, s)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()+b.Dy())/2
	text.Draw(dst, s, g.face, x, y, clr)
}

func rectF(r image.Rectangle) (x, y, w, h float32) {
	return float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy())
}

func drawButton(dst *ebiten.Image, r image.Rectangle) {
	x, y, w, h := rectF(r)
	vector.DrawFilledRect(dst, x, y, w, h, colorBase, false)
	vector.StrokeLine(dst, x, y, x+w, y, 2, colorLight, false)
	vector.StrokeLine(dst, x, y, x, y+h, 2, colorLight, false)
	vector.StrokeLine(dst, x+w, y, x+w, y+h, 2, colorDark, false)
	vector.StrokeLine(dst, x, y+h, x+w, y+h, 2, colorDark, false)
}

func drawOpen(dst *ebiten.Image, r image.Rectangle, bg color.Color) {
	x, y, w, h := rectF(r)
	vector.DrawFilledRect(dst, x, y, w, h, bg, false)
	vector.StrokeRect(dst, x, y, w, h, 1, colorDark, false)
}

func drawMine(dst *ebiten.Image, r image.Rectangle) {
	x, y, w, h := rectF(r)
	vector.DrawFilledCircle(dst, x+w/2, y+h/2, w/4, colorMine, true)
}

func drawFlag(dst *ebiten.Image, r image.Rectangle) {
	x, y, w, h := rectF(r)
	vector.StrokeLine(dst, x+w/2, y+h/5, x+w/2, y+h*4/5, 1.5, colorMine, false)
	vector.DrawFilledRect(dst, x+w/4, y+h/5, w/4, h/4, colorFlag, false)
}

func drawCross(dst *ebiten.Image, r image.Rectangle) {
	x, y, w, h := rectF(r)
	vector.StrokeLine(dst, x+2, y+2, x+w-2, y+h-2, 2, colorFlag, false)
	vector.StrokeLine(dst, x+w-2, y+2, x+2, y+h-2, 2, colorFlag, false)
}
