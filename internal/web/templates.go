package web

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/jaminalder/codex-minesweeper/internal/app"
	"github.com/jaminalder/codex-minesweeper/internal/domain"
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Minesweeper</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>` + boardCSS + `</style>
</head><body>{{template "content" .}}</body></html>`))
	// Define the board template within the same set so game can include it
	template.Must(base.New("board").Parse(boardTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Minesweeper</h1><form action="/game" method="post"><button>New game</button></form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div sse-swap="board" hx-target="#board" hx-swap="outerHTML">{{template "board" .}}</div>
</div>`))
	// Standalone board template used for fragment rendering
	board := template.Must(template.New("board_only").Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

// cellView is one tile as the browser draws it.
type cellView struct {
	X, Y  int
	Class string
	Label string
}

// boardView is the data behind the board fragment.
type boardView struct {
	ID             string
	Outcome        string
	Over           bool
	MinesRemaining int
	Rows           [][]cellView
	Error          string
}

func newBoardView(gs app.GameState, errMsg string) boardView {
	b := gs.Board
	v := boardView{
		ID:             gs.ID,
		Outcome:        b.Outcome().String(),
		Over:           b.Outcome().Over(),
		MinesRemaining: b.MinesRemaining(),
		Rows:           make([][]cellView, b.Height()),
		Error:          errMsg,
	}
	for y := range v.Rows {
		v.Rows[y] = make([]cellView, b.Width())
	}
	b.Draw(cellGrid(v.Rows))
	return v
}

// cellGrid fills preallocated rows from Board.Draw.
type cellGrid [][]cellView

func (g cellGrid) DrawTile(x, y int, vis domain.Visual) {
	g[y][x] = cellView{X: x, Y: y, Class: "tile " + vis.Kind.String(), Label: tileLabel(vis)}
}

func tileLabel(v domain.Visual) string {
	switch v.Kind {
	case domain.VisualNumber, domain.VisualGhostNumber:
		if v.Count == 0 {
			return ""
		}
		return strconv.Itoa(v.Count)
	case domain.VisualFlag, domain.VisualMineFlagged:
		return "F"
	case domain.VisualFlagWrong:
		return "X"
	case domain.VisualMine, domain.VisualMineDetonated:
		return "*"
	default:
		return ""
	}
}

const boardCSS = `
.row{display:flex}
.tile{width:24px;height:24px;padding:0;font:bold 14px monospace}
.tile.number,.tile.ghost-number{background:#ddd;border:1px solid #bbb}
.tile.ghost-number{color:#999}
.tile.mine-detonated{background:#d22}
.tile.flag-wrong{color:#d22}
`

const boardTemplate = `
<div id="board" class="{{.Outcome}}">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <div class="status">
	<span class="outcome">{{.Outcome}}</span>
	<span class="mines">{{.MinesRemaining}}</span>
	<form hx-post="/game/{{.ID}}/restart" hx-target="#board" hx-swap="outerHTML" method="post">
	  <button type="submit">Restart</button>
	</form>
  </div>
  {{range .Rows}}
  <div class="row">
	{{range .}}
	<span{{if not $.Over}} hx-post="/game/{{$.ID}}/flag" hx-trigger="contextmenu"{{end}} hx-vals='{"x": {{.X}}, "y": {{.Y}}}' hx-target="#board" hx-swap="outerHTML" oncontextmenu="return false">
	  <button class="{{.Class}}" hx-post="/game/{{$.ID}}/reveal" hx-vals='{"x": {{.X}}, "y": {{.Y}}}' hx-target="#board" hx-swap="outerHTML"{{if $.Over}} disabled{{end}}>{{.Label}}</button>
	</span>
	{{end}}
  </div>
  {{end}}
</div>
`
