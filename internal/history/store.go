// internal/history/store.go
//
// Bounded, in-memory log of finished games plus aggregate statistics.
//
// Characteristics:
//   - Append-only; insertion order is kept.
//   - Capped (50 by default): the oldest records are evicted first.
//   - Concurrency-safe via RWMutex.
//   - State is lost when the process restarts.

package history

import (
	"math"
	"sync"

	"github.com/samber/lo"

	"github.com/robalobadob/hangman/internal/game"
)

// Defaults for NewStore and Recent.
const (
	DefaultCapacity    = 50
	DefaultRecentLimit = 10
)

// Breakdown is the per-difficulty slice of Aggregate.
type Breakdown struct {
	Total   int `json:"total"`
	Wins    int `json:"wins"`
	WinRate int `json:"winRate"`
}

// Aggregate summarizes every stored record. Rates and averages are rounded
// integers and are 0 for an empty store.
type Aggregate struct {
	TotalGames          int                           `json:"totalGames"`
	Wins                int                           `json:"wins"`
	Losses              int                           `json:"losses"`
	WinRate             int                           `json:"winRate"`
	AverageAccuracy     int                           `json:"averageAccuracy"`
	AverageDuration     int                           `json:"averageDuration"`
	DifficultyBreakdown map[game.Difficulty]Breakdown `json:"difficultyBreakdown"`
}

// Store keeps the most recent finished games.
type Store struct {
	mu       sync.RWMutex
	records  []game.Record // oldest first
	capacity int
}

var _ game.Recorder = (*Store)(nil)

// NewStore builds a store holding at most capacity records
// (DefaultCapacity when capacity <= 0).
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity}
}

// Append pushes r to the end, evicting from the front past capacity.
func (s *Store) Append(r game.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	if over := len(s.records) - s.capacity; over > 0 {
		s.records = append([]game.Record(nil), s.records[over:]...)
	}
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Recent returns up to limit records, most recent first.
// limit <= 0 means DefaultRecentLimit.
func (s *Store) Recent(limit int) []game.Record {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := max(len(s.records)-limit, 0)
	out := append([]game.Record(nil), s.records[start:]...)
	return lo.Reverse(out)
}

// Aggregate computes totals, rates and averages over all stored records.
// Every difficulty appears in the breakdown, with zeros when unplayed.
func (s *Store) Aggregate() Aggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agg := Aggregate{
		TotalGames:          len(s.records),
		DifficultyBreakdown: make(map[game.Difficulty]Breakdown, 3),
	}
	for _, d := range game.Difficulties() {
		of := lo.Filter(s.records, func(r game.Record, _ int) bool { return r.Difficulty == d })
		wins := lo.CountBy(of, won)
		agg.DifficultyBreakdown[d] = Breakdown{Total: len(of), Wins: wins, WinRate: percent(wins, len(of))}
	}
	if agg.TotalGames == 0 {
		return agg
	}

	agg.Wins = lo.CountBy(s.records, won)
	agg.Losses = lo.CountBy(s.records, func(r game.Record) bool { return r.Status == game.StatusLost })
	agg.WinRate = percent(agg.Wins, agg.TotalGames)

	accuracy := lo.SumBy(s.records, func(r game.Record) int { return r.Accuracy })
	duration := lo.SumBy(s.records, func(r game.Record) int { return r.Duration })
	agg.AverageAccuracy = int(math.Round(float64(accuracy) / float64(agg.TotalGames)))
	agg.AverageDuration = int(math.Round(float64(duration) / float64(agg.TotalGames)))
	return agg
}

func won(r game.Record) bool { return r.Status == game.StatusWon }

// percent is round(100 × part / whole), 0 when whole is 0.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(whole)))
}
