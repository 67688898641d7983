// ABOUTME: Sentinel errors for session and router guards
// ABOUTME: Wrapped with context via fmt.Errorf and matched with errors.Is
package core

import "errors"

var (
	// ErrWrongPhase is returned when an action does not belong to the current phase
	ErrWrongPhase = errors.New("action not allowed in current phase")
	// ErrUnknownQuestion is returned when asking a question the case does not have
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrNothingAsked guards consultation submission until one question is asked
	ErrNothingAsked = errors.New("ask at least one question before continuing")
	// ErrIncompleteSelection guards diagnosis and prescription submission
	ErrIncompleteSelection = errors.New("selection incomplete")
	// ErrInvalidChoice is returned for enum values or option indexes outside the allowed set
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrSessionFinished is returned when submitting from the feedback phase
	ErrSessionFinished = errors.New("session already finished")
	// ErrUnknownCase is returned when starting a case the catalog does not have
	ErrUnknownCase = errors.New("unknown case")
	// ErrNoSession is returned for session actions outside the game view
	ErrNoSession = errors.New("no active session")
)
