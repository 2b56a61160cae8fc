package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/jaminalder/codex-minesweeper/internal/app"
)

// NewServer wires routes and returns an http.Handler. It also installs the
// board fragment as the service's broadcast renderer. A nil logger means the
// logrus standard logger.
func NewServer(s *app.Service, logger logrus.FieldLogger) http.Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	h := &handlers{svc: s, tpl: loadTemplates(), log: logger}
	s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/reveal", h.reveal)
		r.Post("/flag", h.flag)
		r.Post("/restart", h.restart)
		r.Get("/events", h.events)
	})
	return r
}
