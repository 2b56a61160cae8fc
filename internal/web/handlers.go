package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/jaminalder/codex-minesweeper/internal/app"
)

type handlers struct {
	svc *app.Service
	tpl *templates
	log logrus.FieldLogger
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardView(gs, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, "base", nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame()
	if err != nil {
		h.log.WithError(err).Error("create game")
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	// Render page with embedded board container
	_, _ = w.Write(renderTemplate(h.tpl.game, "base", newBoardView(*gs, "")))
}

// coords reads the x and y form values.
func coords(r *http.Request) (int, int, error) {
	if err := r.ParseForm(); err != nil {
		return 0, 0, err
	}
	x, err := strconv.Atoi(r.Form.Get("x"))
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(r.Form.Get("y"))
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (h *handlers) reveal(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(id string, x, y int) (*app.GameState, error) {
		gs, _, err := h.svc.Reveal(id, x, y)
		return gs, err
	})
}

func (h *handlers) flag(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.svc.Flag)
}

// move applies a coordinate action and answers with the board fragment.
// Rejected moves render the current board with an alert.
func (h *handlers) move(w http.ResponseWriter, r *http.Request, apply func(id string, x, y int) (*app.GameState, error)) {
	id := chi.URLParam(r, "id")
	var gs *app.GameState
	x, y, err := coords(r)
	if err != nil {
		err = errBadCoords
	} else {
		gs, err = apply(id, x, y)
	}
	var errMsg string
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"game":       id,
			"path":       r.URL.Path,
			"request_id": middleware.GetReqID(r.Context()),
		}).WithError(err).Debug("move rejected")
		if g, ok := h.svc.Get(id); ok {
			gs = g
		}
		errMsg = errorMessage(err)
	}
	if gs == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(*gs, errMsg))
}

func (h *handlers) restart(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.Restart(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(*gs, ""))
}

var errBadCoords = errors.New("bad coordinates")

func errorMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrOutOfBounds), errors.Is(err, errBadCoords):
		return "Out of bounds"
	case errors.Is(err, app.ErrGameOver):
		return "Game is over"
	default:
		return "Invalid move"
	}
}

var heartbeatInterval = 15 * time.Second

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	// heartbeat ticker
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	// Initial flush of headers
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "board", b)
			flusher.Flush()
		}
	}
}

// writeEvent emits one SSE event; every payload line gets its own data field.
func writeEvent(w io.Writer, name string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", name)
	for _, line := range bytes.Split(payload, []byte("\n")) {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
