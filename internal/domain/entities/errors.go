package entities

import "errors"

// Domain errors
var (
	// Minutes errors
	ErrMinuteNotFound = errors.New("minute not found")
	ErrInvalidMinute  = errors.New("invalid minute row")

	// Query errors
	ErrEmptyUtterance      = errors.New("empty utterance")
	ErrUnsupportedQuery    = errors.New("query outside supported subset")
	ErrUnknownColumn       = errors.New("unknown column")
	ErrUnknownOperator     = errors.New("unknown operator")
	ErrNeedsClarification  = errors.New("utterance needs clarification")
	ErrOutOfScope          = errors.New("utterance outside meeting-minutes domain")

	// Dataset errors
	ErrDatasetNotFound   = errors.New("dataset not found")
	ErrInvalidDescriptor = errors.New("invalid dataset descriptor")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)

// ClarificationError carries the question to ask back when an utterance is
// in-domain but underdetermined. errors.Is(err, ErrNeedsClarification)
// matches it.
type ClarificationError struct {
	Question string
}

func (e *ClarificationError) Error() string {
	return e.Question
}

func (e *ClarificationError) Is(target error) bool {
	return target == ErrNeedsClarification
}
