package game

import (
	"errors"

	"github.com/robalobadob/hangman/internal/words"
)

// Code classifies a failed game operation.
type Code string

const (
	CodeInvalidInput         Code = "invalid_input"
	CodeDuplicateGuess       Code = "duplicate_guess"
	CodeGameFinished         Code = "game_finished"
	CodeNoActiveGame         Code = "no_active_game"
	CodeHintsDisabled        Code = "hints_disabled"
	CodeInsufficientProgress Code = "insufficient_progress"
	CodeHintCooldown         Code = "hint_cooldown"
	CodeNoHintAvailable      Code = "no_hint_available"
	CodeEmptyCorpus          Code = "empty_corpus"
)

// Error is a categorized game failure. Two errors match under errors.Is
// when their codes are equal, so the sentinels below can be compared
// against errors carrying a more specific message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidInput         = &Error{Code: CodeInvalidInput, Message: "Please enter a valid letter (A-Z)."}
	ErrDuplicateGuess       = &Error{Code: CodeDuplicateGuess, Message: "letter already guessed"}
	ErrGameFinished         = &Error{Code: CodeGameFinished, Message: "Game is already finished. Start a new game."}
	ErrNoActiveGame         = &Error{Code: CodeNoActiveGame, Message: "No active game. Start a new game first."}
	ErrHintsDisabled        = &Error{Code: CodeHintsDisabled, Message: "Hints are not available in hard mode."}
	ErrInsufficientProgress = &Error{Code: CodeInsufficientProgress, Message: "not enough incorrect guesses for a hint"}
	ErrHintCooldown         = &Error{Code: CodeHintCooldown, Message: "Please wait before requesting another hint."}
	ErrNoHintAvailable      = &Error{Code: CodeNoHintAvailable, Message: "No hints available - you've guessed all letters!"}
)

// CodeOf extracts the Code carried by err, or "" for foreign errors.
// A wrapped words.ErrEmptyCorpus maps to CodeEmptyCorpus.
func CodeOf(err error) Code {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	if errors.Is(err, words.ErrEmptyCorpus) {
		return CodeEmptyCorpus
	}
	return ""
}
