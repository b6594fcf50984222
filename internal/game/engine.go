// internal/game/engine.go
//
// Core game engine for a single Hangman session.
// Responsibilities:
//   - Create new games from a difficulty (word drawn from a words.Source).
//   - Validate and apply letter guesses; reveal matching positions.
//   - Gate hints on difficulty, progress and a cooldown.
//   - Track state transitions: playing → won/lost, and hand the finished
//     game to a Recorder exactly once.
//
// A Session is not safe for concurrent use; callers serialize access
// (see internal/service).
package game

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/robalobadob/hangman/internal/words"
)

// Session holds the state of a single game.
type Session struct {
	id            string
	word          string
	revealed      []byte
	guessed       map[byte]struct{}
	incorrect     int
	maxIncorrect  int
	status        Status
	difficulty    Difficulty
	message       string
	hintsUsed     int
	hintFrequency int
	lastHint      time.Time // zero until the first hint
	startTime     time.Time
	endTime       time.Time // zero until terminal

	cooldown time.Duration
	now      func() time.Time
	pick     func(n int) int
	recorder Recorder
}

// Option customizes a Session at creation.
type Option func(*Session)

// WithClock replaces time.Now (tests drive the hint cooldown with it).
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRandom replaces the uniform index picker used for hints.
func WithRandom(pick func(n int) int) Option {
	return func(s *Session) { s.pick = pick }
}

// WithHintCooldown overrides DefaultHintCooldown.
func WithHintCooldown(d time.Duration) Option {
	return func(s *Session) { s.cooldown = d }
}

// WithRecorder sets the sink that receives the finished-game Record.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// New starts a game. Unknown difficulty names fall back to Medium.
// The only failure is the word source failing (an empty corpus).
func New(difficulty string, src words.Source, opts ...Option) (*Session, error) {
	d := ParseDifficulty(difficulty)
	cfg := d.Settings()

	s := &Session{
		id:            uuid.NewString(),
		guessed:       make(map[byte]struct{}),
		maxIncorrect:  cfg.MaxIncorrectGuesses,
		status:        StatusPlaying,
		difficulty:    d,
		hintFrequency: cfg.HintFrequency,
		cooldown:      DefaultHintCooldown,
		now:           time.Now,
		pick:          words.RandomIndex,
	}
	for _, opt := range opts {
		opt(s)
	}

	word, err := src.PickWord(cfg.WordLengthRange[0], cfg.WordLengthRange[1])
	if err != nil {
		return nil, fmt.Errorf("pick word: %w", err)
	}
	s.word = strings.ToUpper(word)
	s.revealed = []byte(strings.Repeat(string(Placeholder), len(s.word)))
	s.startTime = s.now()
	s.message = fmt.Sprintf("Welcome to Hangman! Difficulty: %s. Guess the movie name.", strings.ToUpper(string(d)))
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Status returns the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// Difficulty returns the resolved difficulty.
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// Guess applies a single letter.
//
// Rules, in order:
//   - A finished game rejects every guess with ErrGameFinished (returned as error).
//   - The letter must be exactly one uppercase A–Z character, else an
//     invalid_input failure result. Nothing is mutated.
//   - A letter already guessed yields a duplicate_guess failure result.
//   - Otherwise the letter is recorded; hits reveal every matching position
//     (win when nothing is hidden), misses count toward the loss limit.
func (s *Session) Guess(letter string) (GuessResult, error) {
	if s.status != StatusPlaying {
		return s.failedGuess(ErrGameFinished.Code, ErrGameFinished.Message), ErrGameFinished
	}
	if !isLetter(letter) {
		return s.failedGuess(CodeInvalidInput, ErrInvalidInput.Message), nil
	}
	c := letter[0]
	if _, dup := s.guessed[c]; dup {
		msg := fmt.Sprintf("You already guessed '%c'. Try a different letter.", c)
		return s.failedGuess(CodeDuplicateGuess, msg), nil
	}

	s.guessed[c] = struct{}{}

	hits := 0
	for i := 0; i < len(s.word); i++ {
		if s.word[i] == c {
			s.revealed[i] = c
			hits++
		}
	}

	var outcome Outcome
	if hits > 0 {
		s.message = fmt.Sprintf("Great! '%c' is in the word.", c)
		outcome = OutcomeCorrect
		if !slices.Contains(s.revealed, byte(Placeholder)) {
			s.message = fmt.Sprintf("Congratulations! You won! The movie was %q.", s.word)
			outcome = OutcomeWin
			s.finish(StatusWon)
		}
	} else {
		s.incorrect++
		s.message = fmt.Sprintf("Sorry, '%c' is not in the word.", c)
		outcome = OutcomeIncorrect
		if s.incorrect >= s.maxIncorrect {
			s.message = fmt.Sprintf("Game Over! You lost. The movie was %q.", s.word)
			outcome = OutcomeLose
			s.finish(StatusLost)
		}
	}

	return GuessResult{
		Success: true,
		Message: s.message,
		View:    s.View(),
		Outcome: outcome,
	}, nil
}

// Hint reveals one letter of the word that has not been guessed yet.
// The hint letter is not added to the guessed set: the player still has
// to guess it, and may be offered the same letter again later.
func (s *Session) Hint() HintResult {
	if s.status != StatusPlaying {
		return failedHint(CodeGameFinished, "No active game or game is finished.")
	}
	if s.hintFrequency == 0 {
		return failedHint(CodeHintsDisabled, ErrHintsDisabled.Message)
	}
	if s.incorrect < s.hintFrequency {
		return failedHint(CodeInsufficientProgress,
			fmt.Sprintf("You need %d more incorrect guesses to get a hint.", s.hintFrequency-s.incorrect))
	}
	now := s.now()
	if s.coolingDown(now) {
		return failedHint(CodeHintCooldown, ErrHintCooldown.Message)
	}

	// One candidate per hidden position, so letters occurring twice are
	// twice as likely to be offered.
	candidates := make([]byte, 0, len(s.word))
	for i := 0; i < len(s.word); i++ {
		if _, ok := s.guessed[s.word[i]]; !ok {
			candidates = append(candidates, s.word[i])
		}
	}
	if len(candidates) == 0 {
		return failedHint(CodeNoHintAvailable, ErrNoHintAvailable.Message)
	}

	letter := candidates[s.pick(len(candidates))]
	s.hintsUsed++
	s.lastHint = now
	return HintResult{
		Success: true,
		Message: fmt.Sprintf("Hint: The letter '%c' appears in the word.", letter),
		Letter:  string(letter),
		Outcome: OutcomeHint,
	}
}

// HintAvailable applies Hint's eligibility rules without drawing a letter.
func (s *Session) HintAvailable() bool {
	if s.status != StatusPlaying || s.hintFrequency == 0 {
		return false
	}
	if s.incorrect < s.hintFrequency {
		return false
	}
	return !s.coolingDown(s.now())
}

// coolingDown reports whether the last hint was granted less than the
// cooldown ago. Exactly one cooldown after the last hint is allowed.
func (s *Session) coolingDown(now time.Time) bool {
	return !s.lastHint.IsZero() && now.Sub(s.lastHint) < s.cooldown
}

// View projects the session for clients. The word is withheld while playing.
func (s *Session) View() View {
	v := View{
		ID:                  s.id,
		DisplayWord:         string(s.revealed),
		GuessedLetters:      s.sortedGuesses(),
		IncorrectGuesses:    s.incorrect,
		MaxIncorrectGuesses: s.maxIncorrect,
		RemainingGuesses:    s.maxIncorrect - s.incorrect,
		Status:              s.status,
		Message:             s.message,
		Difficulty:          s.difficulty,
		HintsUsed:           s.hintsUsed,
		HintAvailable:       s.HintAvailable(),
	}
	if s.status != StatusPlaying {
		w := s.word
		v.Word = &w
	}
	return v
}

// Stats returns live counters; accuracy keeps one decimal place.
func (s *Session) Stats() Stats {
	total := len(s.guessed)
	correct := s.correctGuesses()
	st := Stats{
		TotalGuesses:     total,
		CorrectGuesses:   correct,
		IncorrectGuesses: s.incorrect,
	}
	if total > 0 {
		st.Accuracy = math.Round(float64(correct)*1000/float64(total)) / 10
	}
	return st
}

// Accuracy is round(100 × correct / total) over distinct guessed letters, 0 with no guesses.
func (s *Session) Accuracy() int {
	total := len(s.guessed)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.correctGuesses()) * 100 / float64(total)))
}

// correctGuesses counts guessed letters occurring anywhere in the word.
func (s *Session) correctGuesses() int {
	return lo.CountBy(lo.Keys(s.guessed), func(c byte) bool {
		return strings.IndexByte(s.word, c) >= 0
	})
}

func (s *Session) sortedGuesses() []string {
	keys := lo.Keys(s.guessed)
	slices.Sort(keys)
	return lo.Map(keys, func(c byte, _ int) string { return string(c) })
}

// finish moves the session into a terminal state and emits its Record.
func (s *Session) finish(status Status) {
	s.status = status
	s.endTime = s.now()
	if s.recorder != nil {
		s.recorder.Append(s.record())
	}
}

func (s *Session) record() Record {
	return Record{
		ID:               s.id,
		Word:             s.word,
		Difficulty:       s.difficulty,
		Status:           s.status,
		TotalGuesses:     len(s.guessed),
		IncorrectGuesses: s.incorrect,
		HintsUsed:        s.hintsUsed,
		StartTime:        s.startTime,
		EndTime:          s.endTime,
		Duration:         int(math.Round(s.endTime.Sub(s.startTime).Seconds())),
		Accuracy:         s.Accuracy(),
	}
}

func (s *Session) failedGuess(code Code, msg string) GuessResult {
	return GuessResult{
		Success: false,
		Message: msg,
		View:    s.View(),
		Outcome: OutcomeError,
		Code:    code,
	}
}

func failedHint(code Code, msg string) HintResult {
	return HintResult{Success: false, Message: msg, Outcome: OutcomeError, Code: code}
}

// isLetter checks for exactly one uppercase ASCII letter.
func isLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}
