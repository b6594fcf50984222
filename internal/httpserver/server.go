// internal/httpserver/server.go
//
// HTTP server wiring for the Hangman backend.
// Responsibilities:
//   - Router + middleware (request IDs, logging, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/api/health", "/metrics".
//   - Game endpoints under /api mapped 1:1 onto service.Service.
//
// Notes:
//   - Successful responses use the envelope {"success": true, <payload>}.
//   - In-game refusals (bad letter, duplicate, hint not allowed) are still
//     200 responses; their result carries success=false and a code.
//   - Only "no game yet" (404) and "game over" (409) become HTTP errors.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/logging"
	"github.com/robalobadob/hangman/internal/service"
	"github.com/robalobadob/hangman/pkg/httperr"
)

// Options configures New. A nil Gatherer serves the default Prometheus registry.
type Options struct {
	Logger         zerolog.Logger
	Gatherer       prometheus.Gatherer
	CORS           config.CORS
	RequestTimeout time.Duration
}

// Server bundles the router and the game service.
type Server struct {
	r   *chi.Mux
	svc *service.Service
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *service.Service, opts Options) *Server {
	s := &Server{r: chi.NewRouter(), svc: svc}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)            // add X-Request-ID
	s.r.Use(chimw.RealIP)               // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger(opts.Logger)) // one log line per request
	s.r.Use(chimw.Recoverer)            // recover from panics
	s.r.Use(chimw.Timeout(timeout))     // bound handler time
	s.r.Use(corsFromConfig(opts.CORS))  // browser client
	s.r.Use(jsonContentType)            // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"hangman-go","endpoints":["/api/health","POST /api/new-game","POST /api/guess","POST /api/hint","/api/game-state","/api/game-stats","/api/game-history","/api/statistics","/api/difficulty-settings","/metrics"]}`))
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/new-game", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Post("/hint", s.handleHint)
		r.Get("/game-state", s.handleGameState)
		r.Get("/game-stats", s.handleGameStats)
		r.Get("/game-history", s.handleHistory)
		r.Get("/statistics", s.handleStatistics)
		r.Get("/difficulty-settings", s.handleDifficultySettings)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperr.RespondNotFound(w, httperr.CodeNotFound, "Route not found: "+r.URL.Path)
	})

	return s
}

// Handler exposes the router (used by the http.Server and by tests).
func (s *Server) Handler() http.Handler { return s.r }

// ------------------------------ GAME ---------------------------------------

type newGameReq struct {
	Difficulty string `json:"difficulty"` // "easy" | "medium" | "hard"; anything else plays medium
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.RespondBadRequest(w, "Invalid JSON body")
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = string(game.Medium)
	}

	view, err := s.svc.NewGame(r.Context(), req.Difficulty)
	if err != nil {
		l := logging.FromContext(r.Context())
		l.Error().Err(err).Msg("new game")
		httperr.RespondInternalError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "gameState": view})
}

type guessReq struct {
	Letter string `json:"letter"`
}

// handleGuess accepts exactly one character and uppercases it; the engine
// decides whether it is a letter.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.RespondBadRequest(w, "Invalid input: Please provide a single letter")
		return
	}
	if utf8.RuneCountInString(req.Letter) != 1 {
		httperr.RespondBadRequest(w, "Invalid input: Please provide a single letter")
		return
	}

	res, err := s.svc.Guess(r.Context(), strings.ToUpper(req.Letter))
	switch {
	case errors.Is(err, game.ErrNoActiveGame):
		httperr.RespondNotFound(w, httperr.CodeNoActiveGame, err.Error())
		return
	case errors.Is(err, game.ErrGameFinished):
		httperr.RespondConflict(w, httperr.CodeGameFinished, err.Error())
		return
	case err != nil:
		l := logging.FromContext(r.Context())
		l.Error().Err(err).Msg("guess")
		httperr.RespondInternalError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "result": res})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	res := s.svc.Hint(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "result": res})
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "gameState": s.svc.CurrentView(r.Context())})
}

func (s *Server) handleGameStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": s.svc.GameStats(r.Context())})
}

// handleHistory reads ?limit=N; missing or unparsable limits use the default.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "history": s.svc.History(limit)})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "statistics": s.svc.Statistics()})
}

func (s *Server) handleDifficultySettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "settings": s.svc.DifficultyConfig()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Hangman game server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
