package output

import (
	"context"
	"io"
)

// Formatter renders a history report in a specific format.
type Formatter interface {
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json, yaml).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds the diagnostics list to text output.
	Verbose bool

	// Quiet limits output to the summary.
	Quiet bool
}
