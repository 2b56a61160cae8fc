package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jaminalder/codex-minesweeper/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("game not found")
	ErrOutOfBounds = errors.New("out of bounds")
	ErrGameOver    = errors.New("game over")
)

// Settings fixes the shape of every board the service creates.
type Settings struct {
	Width  int
	Height int
	Mines  int
	// NewRand returns the mine placement source for each new board.
	// Nil means a crypto-seeded PCG.
	NewRand func() domain.Rand
	// Logger receives game lifecycle events. Nil means the logrus standard logger.
	Logger logrus.FieldLogger
}

// DefaultSettings is the reference 20x16 field.
func DefaultSettings() Settings {
	return Settings{Width: domain.DefaultWidth, Height: domain.DefaultHeight, Mines: 40}
}

// Validate reports whether s describes a playable board.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid board size %dx%d", s.Width, s.Height)
	}
	if s.Mines <= 0 || s.Mines >= s.Width*s.Height {
		return fmt.Errorf("mine count %d must be between 1 and %d", s.Mines, s.Width*s.Height-1)
	}
	return nil
}

// GameState is the in-memory state tracked per game. Copies handed out by
// the service carry their own board clone.
type GameState struct {
	ID      string
	Board   *domain.Board
	Created time.Time
	Updated time.Time
}

func (gs *GameState) snapshot() GameState {
	cp := *gs
	cp.Board = gs.Board.Clone()
	return cp
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and subscribers.
type Service struct {
	mu       sync.Mutex
	settings Settings
	log      logrus.FieldLogger
	games    map[string]*GameState
	subs     map[string]map[*subscriber]struct{}
	render   func(GameState) []byte
}

// NewService creates a service with a renderer that encodes nothing.
func NewService(settings Settings) (*Service, error) {
	return NewServiceWithRenderer(settings, nil)
}

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(settings Settings, renderer func(GameState) []byte) (*Service, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.NewRand == nil {
		settings.NewRand = newRand
	}
	if settings.Logger == nil {
		settings.Logger = logrus.StandardLogger()
	}
	if renderer == nil {
		renderer = func(gs GameState) []byte { return nil }
	}
	return &Service{
		settings: settings,
		log:      settings.Logger,
		games:    make(map[string]*GameState),
		subs:     make(map[string]map[*subscriber]struct{}),
		render:   renderer,
	}, nil
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(gs GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// Settings returns the board settings used for new games.
func (s *Service) Settings() Settings { return s.settings }

func (s *Service) newBoard() *domain.Board {
	return domain.New(s.settings.Width, s.settings.Height, s.settings.Mines, s.settings.NewRand())
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	gs := &GameState{ID: uuid.NewString(), Board: s.newBoard(), Created: now, Updated: now}
	s.games[gs.ID] = gs
	s.log.WithFields(logrus.Fields{
		"game":   gs.ID,
		"width":  s.settings.Width,
		"height": s.settings.Height,
		"mines":  s.settings.Mines,
	}).Info("created game")
	cp := gs.snapshot()
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := gs.snapshot()
	return &cp, true
}

// Reveal uncovers (x, y) in game id and reports whether a mine was hit.
func (s *Service) Reveal(id string, x, y int) (*GameState, bool, error) {
	var hit bool
	gs, err := s.apply(id, x, y, func(b *domain.Board) {
		hit = b.RevealAt(x, y)
	})
	return gs, hit, err
}

// Flag toggles the flag on (x, y) in game id.
func (s *Service) Flag(id string, x, y int) (*GameState, error) {
	return s.apply(id, x, y, func(b *domain.Board) {
		b.FlagAt(x, y)
	})
}

// Restart replaces the board of game id with a freshly mined one.
func (s *Service) Restart(id string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	gs.Board = s.newBoard()
	gs.Updated = time.Now()
	s.log.WithField("game", id).Info("restarted game")
	return s.publishLocked(gs), nil
}

// apply validates coordinates and game state, runs move on the board,
// updates timestamps, and broadcasts.
func (s *Service) apply(id string, x, y int, move func(*domain.Board)) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !gs.Board.InBounds(x, y) {
		return nil, ErrOutOfBounds
	}
	if gs.Board.Outcome().Over() {
		return nil, ErrGameOver
	}
	move(gs.Board)
	gs.Updated = time.Now()
	if o := gs.Board.Outcome(); o.Over() {
		s.log.WithFields(logrus.Fields{
			"game":     id,
			"outcome":  o.String(),
			"revealed": gs.Board.RevealedCount(),
		}).Info("game over")
	}
	return s.publishLocked(gs), nil
}

// publishLocked snapshots gs and fans the rendered state out to its
// subscribers without blocking. Slow subscribers are closed and dropped.
func (s *Service) publishLocked(gs *GameState) *GameState {
	cp := gs.snapshot()
	set := s.subs[gs.ID]
	if len(set) == 0 {
		return &cp
	}
	payload := s.render(cp)
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			delete(set, sub)
			dropped++
		}
	}
	if dropped > 0 {
		s.log.WithFields(logrus.Fields{
			"game":    gs.ID,
			"dropped": dropped,
		}).Debug("dropped slow subscribers")
	}
	return &cp
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	done := make(chan struct{})
	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			close(done)
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			sub.close()
			s.mu.Unlock()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			unsub()
		case <-done:
		}
	}()
	return sub.ch, unsub, nil
}
