// internal/words/words.go
//
// Word corpus for the game engine.
//
// Responsibilities:
//   - Normalize and validate candidate words (uppercase A–Z, 5..8 letters).
//   - Keep the corpus deduplicated and bucketed by length.
//   - Supply PickWord (the game's Source), Add, IsValid and Stats.
//
// Corpus sources (chosen by the caller, see Load*):
//   - an embedded default movie list (assets/movies.txt),
//   - a plain-text file, one word per line,
//   - the SQLite corpus database (repository.go).
//
// Constraints:
//   • Spaces are stripped and letters uppercased before validation.
//   • A corpus with no valid word is rejected with ErrEmptyCorpus.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/samber/lo"

	"github.com/robalobadob/hangman/assets"
)

// Bounds on accepted word length.
const (
	MinLength = 5
	MaxLength = 8
)

// ErrEmptyCorpus means there is no word to pick from.
var ErrEmptyCorpus = errors.New("words: corpus is empty")

// Source supplies a random word whose length lies in [minLen, maxLen].
// When no word fits the range an unconstrained word is returned instead.
type Source interface {
	PickWord(minLen, maxLen int) (string, error)
}

// Stats summarizes the corpus.
type Stats struct {
	Total              int         `json:"totalMovies"`
	LengthDistribution map[int]int `json:"lengthDistribution"`
}

// Corpus is an in-memory, concurrency-safe word list.
type Corpus struct {
	mu       sync.RWMutex
	words    []string         // insertion order
	byLength map[int][]string // same words, bucketed
}

var _ Source = (*Corpus)(nil)

// NewCorpus normalizes list, drops invalid entries and duplicates.
// Returns ErrEmptyCorpus if nothing survives.
func NewCorpus(list []string) (*Corpus, error) {
	valid := lo.FilterMap(list, func(w string, _ int) (string, bool) {
		return Normalize(w)
	})
	valid = lo.Uniq(valid)
	if len(valid) == 0 {
		return nil, ErrEmptyCorpus
	}
	c := &Corpus{words: valid}
	c.byLength = lo.GroupBy(valid, func(w string) int { return len(w) })
	return c, nil
}

// LoadDefault builds a corpus from the embedded movie list.
func LoadDefault() (*Corpus, error) {
	list, err := assets.MoviesList()
	if err != nil {
		return nil, err
	}
	return NewCorpus(list)
}

// LoadFile builds a corpus from a word file.
func LoadFile(path string) (*Corpus, error) {
	list, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewCorpus(list)
}

// ReadFile loads one entry per line, skipping blanks and '#' comments.
// Entries are returned raw; NewCorpus normalizes them.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// Normalize strips whitespace and uppercases w, then validates it.
func Normalize(w string) (string, bool) {
	clean := strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, w))
	if len(clean) < MinLength || len(clean) > MaxLength || !isAlpha(clean) {
		return "", false
	}
	return clean, true
}

// IsValid reports whether w would be accepted into a corpus.
func IsValid(w string) bool {
	_, ok := Normalize(w)
	return ok
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// PickWord returns a uniformly random word with length in [minLen, maxLen],
// falling back to any word when the range is empty.
func (c *Corpus) PickWord(minLen, maxLen int) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.words) == 0 {
		return "", ErrEmptyCorpus
	}
	var candidates []string
	for n := minLen; n <= maxLen; n++ {
		candidates = append(candidates, c.byLength[n]...)
	}
	if len(candidates) == 0 {
		candidates = c.words
	}
	return candidates[RandomIndex(len(candidates))], nil
}

// Add validates and inserts w. Returns false for invalid or known words.
func (c *Corpus) Add(w string) bool {
	clean, ok := Normalize(w)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if lo.Contains(c.words, clean) {
		return false
	}
	c.words = append(c.words, clean)
	c.byLength[len(clean)] = append(c.byLength[len(clean)], clean)
	return true
}

// Words returns a copy of the corpus in insertion order.
func (c *Corpus) Words() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.words...)
}

// Stats returns the total count and the per-length distribution.
// Every length in MinLength..MaxLength is present, possibly as 0.
func (c *Corpus) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dist := make(map[int]int, MaxLength-MinLength+1)
	for n := MinLength; n <= MaxLength; n++ {
		dist[n] = len(c.byLength[n])
	}
	return Stats{Total: len(c.words), LengthDistribution: dist}
}

// RandomIndex returns a cryptographically random index in [0, n).
func RandomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}
