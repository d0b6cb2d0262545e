package store

import "fmt"

// DecodeError reports a save blob that is truncated, malformed or references
// ids outside the known catalog.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode save: %s: %v", e.Reason, e.Err)
	}
	return "decode save: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// LedgerIOError reports a score ledger that could not be read or written.
type LedgerIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *LedgerIOError) Error() string {
	return fmt.Sprintf("ledger %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LedgerIOError) Unwrap() error { return e.Err }

func decodeErr(err error, format string, args ...interface{}) error {
	return &DecodeError{Reason: fmt.Sprintf(format, args...), Err: err}
}
