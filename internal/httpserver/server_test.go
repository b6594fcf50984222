package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/service"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/pkg/httperr"
)

type fixedWord string

func (w fixedWord) PickWord(int, int) (string, error) { return string(w), nil }

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := service.New(fixedWord("ALIEN"), store.NewMemoryStore(), history.NewStore(0), service.Options{
		Metrics: metrics.New(reg),
		Logger:  zerolog.Nop(),
	})
	return New(svc, Options{
		Logger:   zerolog.Nop(),
		Gatherer: reg,
		CORS:     config.CORS{AllowedOrigins: []string{"http://localhost:3000"}, AllowedMethods: []string{"GET", "POST"}},
	}).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type stateEnvelope struct {
	Success   bool       `json:"success"`
	GameState *game.View `json:"gameState"`
}

type guessEnvelope struct {
	Success bool             `json:"success"`
	Result  game.GuessResult `json:"result"`
}

type hintEnvelope struct {
	Success bool            `json:"success"`
	Result  game.HintResult `json:"result"`
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestNoGameYet(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/guess", `{"letter":"a"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errBody := decode[httperr.ErrorResponse](t, rec)
	assert.False(t, errBody.Success)
	assert.Equal(t, httperr.CodeNoActiveGame, errBody.Error)

	rec = do(t, h, http.MethodGet, "/api/game-state", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[stateEnvelope](t, rec).GameState)

	rec = do(t, h, http.MethodPost, "/api/hint", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.CodeNoActiveGame, decode[hintEnvelope](t, rec).Result.Code)
}

func TestPlayThroughHTTP(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/new-game", `{"difficulty":"hard"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[stateEnvelope](t, rec)
	require.NotNil(t, state.GameState)
	assert.Equal(t, "_____", state.GameState.DisplayWord)
	assert.Equal(t, 4, state.GameState.MaxIncorrectGuesses)
	assert.NotContains(t, rec.Body.String(), "ALIEN", "word is hidden while playing")

	rec = do(t, h, http.MethodPost, "/api/guess", `{"letter":"a"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	guess := decode[guessEnvelope](t, rec)
	assert.True(t, guess.Result.Success)
	assert.Equal(t, game.OutcomeCorrect, guess.Result.Outcome)
	assert.Equal(t, "A____", guess.Result.View.DisplayWord)

	rec = do(t, h, http.MethodPost, "/api/guess", `{"letter":"A"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	guess = decode[guessEnvelope](t, rec)
	assert.False(t, guess.Result.Success)
	assert.Equal(t, game.CodeDuplicateGuess, guess.Result.Code)

	rec = do(t, h, http.MethodPost, "/api/guess", `{"letter":"7"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.CodeInvalidInput, decode[guessEnvelope](t, rec).Result.Code)

	rec = do(t, h, http.MethodPost, "/api/hint", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.CodeHintsDisabled, decode[hintEnvelope](t, rec).Result.Code)

	for _, l := range []string{"z", "q", "x"} {
		rec = do(t, h, http.MethodPost, "/api/guess", `{"letter":"`+l+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/api/guess", `{"letter":"b"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	guess = decode[guessEnvelope](t, rec)
	assert.Equal(t, game.OutcomeLose, guess.Result.Outcome)
	require.NotNil(t, guess.Result.View.Word)
	assert.Equal(t, "ALIEN", *guess.Result.View.Word)

	rec = do(t, h, http.MethodPost, "/api/guess", `{"letter":"l"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, httperr.CodeGameFinished, decode[httperr.ErrorResponse](t, rec).Error)

	rec = do(t, h, http.MethodGet, "/api/game-stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[struct {
		Stats game.Stats `json:"stats"`
	}](t, rec)
	assert.Equal(t, game.Stats{TotalGuesses: 5, CorrectGuesses: 1, IncorrectGuesses: 4, Accuracy: 20}, stats.Stats)

	rec = do(t, h, http.MethodGet, "/api/game-history?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	hist := decode[struct {
		History []game.Record `json:"history"`
	}](t, rec)
	require.Len(t, hist.History, 1)
	assert.Equal(t, game.StatusLost, hist.History[0].Status)

	rec = do(t, h, http.MethodGet, "/api/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	agg := decode[struct {
		Statistics history.Aggregate `json:"statistics"`
	}](t, rec)
	assert.Equal(t, 1, agg.Statistics.TotalGames)
	assert.Equal(t, 1, agg.Statistics.DifficultyBreakdown[game.Hard].Total)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hangman_games_finished_total{difficulty="hard",status="lost"} 1`)
}

func TestNewGameDefaultsToMedium(t *testing.T) {
	h := newTestServer(t)

	for _, body := range []string{"", `{}`, `{"difficulty":"impossible"}`} {
		rec := do(t, h, http.MethodPost, "/api/new-game", body)
		require.Equal(t, http.StatusOK, rec.Code, body)
		state := decode[stateEnvelope](t, rec)
		require.NotNil(t, state.GameState)
		assert.Equal(t, game.Medium, state.GameState.Difficulty, body)
	}
}

func TestBadRequests(t *testing.T) {
	h := newTestServer(t)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/new-game", `{"difficulty":"easy"}`).Code)

	for _, body := range []string{`not json`, `{"letter":""}`, `{"letter":"ab"}`, `{}`} {
		rec := do(t, h, http.MethodPost, "/api/guess", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, httperr.CodeInvalidRequest, decode[httperr.ErrorResponse](t, rec).Error, body)
	}

	rec := do(t, h, http.MethodPost, "/api/new-game", `{"difficulty":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDifficultySettings(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/difficulty-settings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Settings map[game.Difficulty]game.Settings `json:"settings"`
	}](t, rec)
	assert.Equal(t, game.AllSettings(), body.Settings)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httperr.CodeNotFound, decode[httperr.ErrorResponse](t, rec).Error)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/guess", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
