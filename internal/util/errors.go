package util

import "errors"

// ErrorKind classifies a domain error so the HTTP layer can pick a status
// without string matching. Faults are server-side data/clock inconsistencies,
// not client mistakes.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindConflict
	KindNotFound
	KindForbidden
	KindState
	KindGone
	KindFault
)

type DomainError struct {
	Kind ErrorKind
	msg  string
}

func (e *DomainError) Error() string { return e.msg }

func newDomainError(kind ErrorKind, msg string) *DomainError {
	return &DomainError{Kind: kind, msg: msg}
}

// KindOf extracts the kind of err, defaulting to KindFault for errors that
// did not originate in the domain layer.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindFault
}

var (
	// users / auth
	ErrUserNotFound    = newDomainError(KindNotFound, "user not found")
	ErrEmailRegistered = newDomainError(KindConflict, "email already registered")

	// catalog validation
	ErrTestNotFound            = newDomainError(KindNotFound, "test not found")
	ErrNoQuestions             = newDomainError(KindValidation, "test must contain at least one question")
	ErrInvalidQuestionType     = newDomainError(KindValidation, "unknown question type")
	ErrEmptyAnswerText         = newDomainError(KindValidation, "answer text must not be empty")
	ErrRightAnswerNotInChoices = newDomainError(KindValidation, "right answer is not among the candidate answers")
	ErrAnswerKeyCount          = newDomainError(KindValidation, "question answer key does not match its type")
	ErrWeightGradeMismatch     = newDomainError(KindValidation, "question weight sum falls outside the grade scale interval")

	// grade bands
	ErrNoBands          = newDomainError(KindValidation, "grade scale must contain at least one band")
	ErrBandOutOfRange   = newDomainError(KindValidation, "grade band lies outside the scale interval")
	ErrInvertedBand     = newDomainError(KindValidation, "grade band lower bound must not exceed its upper bound")
	ErrOverlappingBands = newDomainError(KindValidation, "grade band intervals must not overlap")
	ErrNoMatchingBand   = newDomainError(KindFault, "no grade band contains the score")

	// lifecycle
	ErrNotOwner         = newDomainError(KindForbidden, "only the test owner may perform this operation")
	ErrAlreadyOpen      = newDomainError(KindConflict, "test is already open")
	ErrNotOpenedYet     = newDomainError(KindState, "test has not been opened yet")
	ErrAlreadyClosed    = newDomainError(KindConflict, "test is already closed")
	ErrTestNotOpen      = newDomainError(KindState, "test is not open for submissions")
	ErrTestClosed       = newDomainError(KindGone, "test no longer accepts submissions")
	ErrOpenDateInFuture = newDomainError(KindFault, "test open date lies in the future")
	ErrResultsNotReady  = newDomainError(KindState, "results are available only after the test is closed")

	// scoring
	ErrAlreadySubmitted   = newDomainError(KindConflict, "test already submitted by this participant")
	ErrUnknownQuestion    = newDomainError(KindValidation, "question does not belong to this test")
	ErrUnknownAnswer      = newDomainError(KindValidation, "answer does not belong to the stated question")
	ErrMissingAnswer      = newDomainError(KindValidation, "every question must be answered")
	ErrSubmissionNotFound = newDomainError(KindNotFound, "submission not found")
)
