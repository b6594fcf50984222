package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.GameStarted("easy")
		m.GameFinished("easy", "won")
		m.Guess("correct")
		m.Hint("granted")
	})
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.GameStarted("hard")
	m.GameStarted("hard")
	m.Guess("incorrect")
	m.Hint("hint_cooldown")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.gamesStarted.WithLabelValues("hard")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.guesses.WithLabelValues("incorrect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.hints.WithLabelValues("hint_cooldown")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.gamesFinished))
}
