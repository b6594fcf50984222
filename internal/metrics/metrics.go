package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the game counters. A nil *Metrics records nothing.
type Metrics struct {
	gamesStarted  *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
	guesses       *prometheus.CounterVec
	hints         *prometheus.CounterVec
}

// New registers the game collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gamesStarted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hangman",
			Name:      "games_started_total",
			Help:      "Games started, by difficulty.",
		}, []string{"difficulty"}),
		gamesFinished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hangman",
			Name:      "games_finished_total",
			Help:      "Games finished, by difficulty and status.",
		}, []string{"difficulty", "status"}),
		guesses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hangman",
			Name:      "guesses_total",
			Help:      "Letter guesses, by outcome tag.",
		}, []string{"outcome"}),
		hints: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hangman",
			Name:      "hints_total",
			Help:      "Hint requests, by result (granted or failure code).",
		}, []string{"result"}),
	}
}

func (m *Metrics) GameStarted(difficulty string) {
	if m == nil {
		return
	}
	m.gamesStarted.WithLabelValues(difficulty).Inc()
}

func (m *Metrics) GameFinished(difficulty, status string) {
	if m == nil {
		return
	}
	m.gamesFinished.WithLabelValues(difficulty, status).Inc()
}

func (m *Metrics) Guess(outcome string) {
	if m == nil {
		return
	}
	m.guesses.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Hint(result string) {
	if m == nil {
		return
	}
	m.hints.WithLabelValues(result).Inc()
}
