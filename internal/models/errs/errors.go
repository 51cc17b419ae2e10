package errs

import (
	"errors"
	"fmt"
)

// Rejection reasons of the replay engine. Every one of them causes
// exactly one record to be skipped; none aborts the run.
var (
	ErrMalformedRecord        = errors.New("malformed record")
	ErrNegativeAmount         = errors.New("negative amount")
	ErrDuplicateTransaction   = errors.New("duplicate transaction id")
	ErrUnknownReference       = errors.New("unknown referenced transaction")
	ErrClientMismatch         = errors.New("referenced transaction belongs to another client")
	ErrAccountLocked          = errors.New("account locked")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidStateTransition = errors.New("invalid transaction state for operation")
)

// Lets the record source report at which input line parsing failed.
type MalformedRecordError struct {
	Line    int
	Message string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, ErrMalformedRecord, e.Message)
}

// Unwrap makes the error match ErrMalformedRecord with errors.Is.
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}
