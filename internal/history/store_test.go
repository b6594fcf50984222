package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/game"
)

func rec(id string, d game.Difficulty, status game.Status, accuracy, duration int) game.Record {
	return game.Record{ID: id, Difficulty: d, Status: status, Accuracy: accuracy, Duration: duration}
}

func TestAppendEvictsOldest(t *testing.T) {
	s := NewStore(0)
	for i := 1; i <= DefaultCapacity+1; i++ {
		s.Append(rec(fmt.Sprintf("g%d", i), game.Easy, game.StatusWon, 100, 10))
	}

	require.Equal(t, DefaultCapacity, s.Len())
	all := s.Recent(DefaultCapacity)
	require.Len(t, all, DefaultCapacity)
	assert.Equal(t, "g51", all[0].ID)
	assert.Equal(t, "g2", all[len(all)-1].ID, "first record is evicted")
}

func TestCustomCapacity(t *testing.T) {
	s := NewStore(2)
	s.Append(rec("a", game.Easy, game.StatusWon, 0, 0))
	s.Append(rec("b", game.Easy, game.StatusWon, 0, 0))
	s.Append(rec("c", game.Easy, game.StatusWon, 0, 0))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"c", "b"}, ids(s.Recent(5)))
}

func TestRecentOrderAndDefaultLimit(t *testing.T) {
	s := NewStore(DefaultCapacity)
	assert.Empty(t, s.Recent(3))

	for i := 1; i <= 12; i++ {
		s.Append(rec(fmt.Sprintf("g%d", i), game.Medium, game.StatusLost, 0, 0))
	}

	assert.Equal(t, []string{"g12", "g11", "g10"}, ids(s.Recent(3)))
	assert.Len(t, s.Recent(0), DefaultRecentLimit)
	assert.Len(t, s.Recent(-4), DefaultRecentLimit)
	assert.Len(t, s.Recent(100), 12)

	got := s.Recent(1)
	got[0].ID = "mutated"
	assert.Equal(t, "g12", s.Recent(1)[0].ID, "Recent returns a copy")
}

func TestAggregateEmpty(t *testing.T) {
	agg := NewStore(0).Aggregate()

	assert.Equal(t, 0, agg.TotalGames)
	assert.Equal(t, 0, agg.WinRate)
	assert.Equal(t, 0, agg.AverageAccuracy)
	assert.Equal(t, 0, agg.AverageDuration)
	require.Len(t, agg.DifficultyBreakdown, 3)
	for _, d := range game.Difficulties() {
		assert.Equal(t, Breakdown{}, agg.DifficultyBreakdown[d])
	}
}

func TestAggregate(t *testing.T) {
	s := NewStore(0)
	s.Append(rec("1", game.Easy, game.StatusWon, 100, 30))
	s.Append(rec("2", game.Easy, game.StatusLost, 40, 61))
	s.Append(rec("3", game.Hard, game.StatusWon, 75, 20))

	agg := s.Aggregate()
	assert.Equal(t, 3, agg.TotalGames)
	assert.Equal(t, 2, agg.Wins)
	assert.Equal(t, 1, agg.Losses)
	assert.Equal(t, 67, agg.WinRate)
	assert.Equal(t, 72, agg.AverageAccuracy)
	assert.Equal(t, 37, agg.AverageDuration)

	assert.Equal(t, Breakdown{Total: 2, Wins: 1, WinRate: 50}, agg.DifficultyBreakdown[game.Easy])
	assert.Equal(t, Breakdown{}, agg.DifficultyBreakdown[game.Medium])
	assert.Equal(t, Breakdown{Total: 1, Wins: 1, WinRate: 100}, agg.DifficultyBreakdown[game.Hard])
}

func TestStoreRecordsFinishedSessions(t *testing.T) {
	s := NewStore(0)
	g, err := game.New("easy", fixedWord("ALIEN"), game.WithRecorder(s))
	require.NoError(t, err)

	for _, c := range "ALIEN" {
		_, err := g.Guess(string(c))
		require.NoError(t, err)
	}

	require.Equal(t, 1, s.Len())
	assert.Equal(t, g.ID(), s.Recent(1)[0].ID)
	assert.Equal(t, game.StatusWon, s.Recent(1)[0].Status)
}

type fixedWord string

func (w fixedWord) PickWord(int, int) (string, error) { return string(w), nil }

func ids(records []game.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
