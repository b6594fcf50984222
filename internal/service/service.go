// internal/service/service.go
//
// Service is the session context owned by the serving layer: it holds the
// current game, the word source and the history log, and exposes the
// operations the transport maps onto routes.
//
// Every operation runs under one mutex, so a guess or hint is applied
// atomically with respect to any other call.

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// Options configures a Service. Zero values select the defaults.
type Options struct {
	HintCooldown time.Duration
	Clock        func() time.Time
	Random       func(n int) int
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
}

// Service runs the single current game.
type Service struct {
	mu        sync.Mutex
	words     words.Source
	sessions  store.Store
	history   *history.Store
	currentID string

	cooldown time.Duration
	clock    func() time.Time
	random   func(n int) int
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// New wires a Service around its collaborators.
func New(src words.Source, sessions store.Store, hist *history.Store, opts Options) *Service {
	cooldown := opts.HintCooldown
	if cooldown <= 0 {
		cooldown = game.DefaultHintCooldown
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	random := opts.Random
	if random == nil {
		random = words.RandomIndex
	}
	return &Service{
		words:    src,
		sessions: sessions,
		history:  hist,
		cooldown: cooldown,
		clock:    clock,
		random:   random,
		metrics:  opts.Metrics,
		logger:   opts.Logger.With().Str("component", "service").Logger(),
	}
}

// NewGame replaces the current game with a fresh one.
func (s *Service) NewGame(ctx context.Context, difficulty string) (game.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := game.New(difficulty, s.words,
		game.WithClock(s.clock),
		game.WithRandom(s.random),
		game.WithHintCooldown(s.cooldown),
		game.WithRecorder(recorder{s}),
	)
	if err != nil {
		return game.View{}, err
	}
	if err := s.sessions.Save(ctx, g); err != nil {
		return game.View{}, fmt.Errorf("save game: %w", err)
	}
	if s.currentID != "" {
		_ = s.sessions.Delete(ctx, s.currentID)
	}
	s.currentID = g.ID()

	s.metrics.GameStarted(string(g.Difficulty()))
	s.logger.Info().Str("gameId", g.ID()).Str("difficulty", string(g.Difficulty())).Msg("game started")
	return g.View(), nil
}

// Guess applies letter to the current game. Fails with game.ErrNoActiveGame
// before the first NewGame and game.ErrGameFinished once it is over.
func (s *Service) Guess(ctx context.Context, letter string) (game.GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.current(ctx)
	if err != nil {
		return game.GuessResult{}, err
	}
	res, err := g.Guess(letter)
	if err != nil {
		return res, err
	}
	s.metrics.Guess(string(res.Outcome))
	return res, nil
}

// Hint requests a hint for the current game. Every refusal, including the
// absence of a game, is reported in the result rather than as an error.
func (s *Service) Hint(ctx context.Context) game.HintResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.current(ctx)
	if err != nil {
		return game.HintResult{
			Message: "No active game or game is finished.",
			Outcome: game.OutcomeError,
			Code:    game.CodeNoActiveGame,
		}
	}
	res := g.Hint()
	if res.Success {
		s.metrics.Hint("granted")
	} else {
		s.metrics.Hint(string(res.Code))
	}
	return res
}

// CurrentView returns the current game's view, or nil without a game.
func (s *Service) CurrentView(ctx context.Context) *game.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.current(ctx)
	if err != nil {
		return nil
	}
	v := g.View()
	return &v
}

// GameStats returns live counters for the current game (zeros without one).
func (s *Service) GameStats(ctx context.Context) game.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.current(ctx)
	if err != nil {
		return game.Stats{}
	}
	return g.Stats()
}

// History returns up to limit finished games, most recent first.
func (s *Service) History(limit int) []game.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Recent(limit)
}

// Statistics aggregates all stored finished games.
func (s *Service) Statistics() history.Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Aggregate()
}

// DifficultyConfig returns the difficulty table.
func (s *Service) DifficultyConfig() map[game.Difficulty]game.Settings {
	return game.AllSettings()
}

func (s *Service) current(ctx context.Context) (*game.Session, error) {
	if s.currentID == "" {
		return nil, game.ErrNoActiveGame
	}
	g, err := s.sessions.Get(ctx, s.currentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, game.ErrNoActiveGame
	}
	return g, err
}

// recorder forwards finished games to the history log. It runs inside a
// Guess, so the service mutex is already held.
type recorder struct{ s *Service }

func (r recorder) Append(rec game.Record) {
	r.s.history.Append(rec)
	r.s.metrics.GameFinished(string(rec.Difficulty), string(rec.Status))
	r.s.logger.Info().
		Str("gameId", rec.ID).
		Str("status", string(rec.Status)).
		Int("durationSec", rec.Duration).
		Int("accuracy", rec.Accuracy).
		Msg("game finished")
}
