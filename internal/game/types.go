// internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - Difficulty and its fixed Settings table.
//   - Status (playing/won/lost) and Outcome (presentation tag for each result).
//   - View: the side-effect free projection of a session sent to clients.
//   - GuessResult / HintResult / Stats: per-call results.
//   - Record + Recorder: the finished-game snapshot and its sink.

package game

import (
	"strings"
	"time"
)

// Difficulty names a fixed game configuration.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Settings is the configuration bound to a difficulty.
//   - MaxIncorrectGuesses: wrong letters allowed before the game is lost.
//   - WordLengthRange:     inclusive [min, max] word length.
//   - HintFrequency:       incorrect guesses required before a hint; 0 disables hints.
type Settings struct {
	MaxIncorrectGuesses int    `json:"maxIncorrectGuesses"`
	WordLengthRange     [2]int `json:"wordLengthRange"`
	HintFrequency       int    `json:"hintFrequency"`
}

var difficultySettings = map[Difficulty]Settings{
	Easy:   {MaxIncorrectGuesses: 8, WordLengthRange: [2]int{5, 6}, HintFrequency: 2},
	Medium: {MaxIncorrectGuesses: 6, WordLengthRange: [2]int{6, 7}, HintFrequency: 3},
	Hard:   {MaxIncorrectGuesses: 4, WordLengthRange: [2]int{7, 8}, HintFrequency: 0},
}

// Difficulties lists every difficulty in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty resolves a difficulty name case-insensitively.
// Unknown names fall back to Medium; this never fails.
func ParseDifficulty(name string) Difficulty {
	d := Difficulty(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := difficultySettings[d]; ok {
		return d
	}
	return Medium
}

// Settings returns the configuration for d (Medium's for unknown values).
func (d Difficulty) Settings() Settings {
	if s, ok := difficultySettings[d]; ok {
		return s
	}
	return difficultySettings[Medium]
}

// AllSettings returns a copy of the whole difficulty table.
func AllSettings() map[Difficulty]Settings {
	out := make(map[Difficulty]Settings, len(difficultySettings))
	for d, s := range difficultySettings {
		out[d] = s
	}
	return out
}

// Status is the lifecycle state of a session. Won and Lost are terminal.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Outcome is an advisory tag telling the presentation layer which
// feedback (sound, animation) fits a result. It never drives game logic.
type Outcome string

const (
	OutcomeError     Outcome = "error"
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomeHint      Outcome = "hint"
)

// Placeholder stands in for an unguessed letter in the revealed word.
const Placeholder = '_'

// DefaultHintCooldown is the minimum time between two granted hints.
const DefaultHintCooldown = 30 * time.Second

// View is the public projection of a session.
// Word is nil while the game is still being played.
type View struct {
	ID                  string     `json:"id"`
	DisplayWord         string     `json:"displayWord"`
	GuessedLetters      []string   `json:"guessedLetters"`
	IncorrectGuesses    int        `json:"incorrectGuesses"`
	MaxIncorrectGuesses int        `json:"maxIncorrectGuesses"`
	RemainingGuesses    int        `json:"remainingGuesses"`
	Status              Status     `json:"gameStatus"`
	Message             string     `json:"message"`
	Word                *string    `json:"word"`
	Difficulty          Difficulty `json:"difficulty"`
	HintsUsed           int        `json:"hintsUsed"`
	HintAvailable       bool       `json:"hintAvailable"`
}

// GuessResult is returned for every letter submission.
type GuessResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	View    View    `json:"gameState"`
	Outcome Outcome `json:"soundEffect"`
	Code    Code    `json:"code,omitempty"`
}

// HintResult is returned for every hint request. Letter is set only on success.
type HintResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Letter  string  `json:"hintLetter,omitempty"`
	Outcome Outcome `json:"soundEffect"`
	Code    Code    `json:"code,omitempty"`
}

// Stats are live counters for the game in progress.
// Accuracy is a percentage with one decimal place.
type Stats struct {
	TotalGuesses     int     `json:"totalGuesses"`
	CorrectGuesses   int     `json:"correctGuesses"`
	IncorrectGuesses int     `json:"incorrectGuesses"`
	Accuracy         float64 `json:"accuracy"`
}

// Record is the immutable snapshot of a finished game.
// Duration is in whole seconds, Accuracy a rounded percentage.
type Record struct {
	ID               string     `json:"id"`
	Word             string     `json:"word"`
	Difficulty       Difficulty `json:"difficulty"`
	Status           Status     `json:"gameStatus"`
	TotalGuesses     int        `json:"totalGuesses"`
	IncorrectGuesses int        `json:"incorrectGuesses"`
	HintsUsed        int        `json:"hintsUsed"`
	StartTime        time.Time  `json:"startTime"`
	EndTime          time.Time  `json:"endTime"`
	Duration         int        `json:"duration"`
	Accuracy         int        `json:"accuracy"`
}

// Recorder receives a Record once, when a session reaches Won or Lost.
type Recorder interface {
	Append(r Record)
}
