package workrave

import (
	"errors"
	"fmt"
)

// ErrNoData reports an export that is missing, empty or not a WorkRaveStats 4 file.
// It is a soft result: there is simply no history to show.
var ErrNoData = errors.New("no workrave data")

// ParseError is a D or m line whose fields could not be decoded.
type ParseError struct {
	// LineNum is the 1-based line number, zero when decoding outside a file.
	LineNum int
	Kind    LineKind
	Reason  string
	Err     error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid %s record", e.Kind)
	if e.LineNum > 0 {
		msg = fmt.Sprintf("line %d: %s", e.LineNum, msg)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StructuralError is an export whose date-range and stats records cannot be paired.
type StructuralError struct {
	DateRanges int
	Stats      int
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("corrupt export: %d date range records but %d stats records", e.DateRanges, e.Stats)
}
