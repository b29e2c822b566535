package output

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"informant/internal/services"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

const dayHeader = "DATE        ORDINAL   ACTIVE(s)  MOVE(m)    CLICK(m)   MOVE(s)   CLICKS   KEYS"

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

func (f *TextFormatter) Name() string {
	return "text"
}

func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	f.formatSummary(report, w)
	if f.opts.Quiet {
		return nil
	}

	if len(report.Days) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(dayHeader))
		for _, day := range report.Days {
			fmt.Fprintf(w, "%-11s %-9d %-10d %-10.2f %-10.2f %-9d %-8d %d\n",
				day.Date,
				day.Ordinal,
				day.TotalActiveTimeSeconds,
				day.TotalMouseMovement,
				day.TotalMouseClickMovement,
				day.TotalMouseMovementTime,
				day.TotalMouseClicks,
				day.TotalKeystrokes)
		}
	}

	for _, series := range report.Series {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(string(series.Metric)))
		for _, p := range series.Points {
			fmt.Fprintf(w, "  %d  %s  %g\n", p.Ordinal, p.Date, p.Value)
		}
	}

	if len(report.Missing) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Missing days"))
		for _, date := range report.Missing {
			fmt.Fprintf(w, "  %s\n", date)
		}
	}

	if f.opts.Verbose && len(report.Diagnostics) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Skipped lines"))
		for _, d := range report.Diagnostics {
			fmt.Fprintf(w, "  %s\n", warnStyle.Render(d.String()))
		}
	}
	return nil
}

func (f *TextFormatter) formatSummary(report *Report, w io.Writer) {
	s := report.Summary
	fmt.Fprintf(w, "%s %s\n", titleStyle.Render("Workrave history"), stateLabel(s.State))
	fmt.Fprintf(w, "  %s %d\n", labelStyle.Render("Days:       "), s.Days)
	if s.First != nil && s.Last != nil {
		fmt.Fprintf(w, "  %s %s .. %s\n", labelStyle.Render("Range:      "), s.First, s.Last)
	}
	fmt.Fprintf(w, "  %s %d\n", labelStyle.Render("Missing:    "), s.Missing)
	fmt.Fprintf(w, "  %s %d\n", labelStyle.Render("Diagnostics:"), s.Diagnostics)
	if s.Error != "" {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Error:      "), errorStyle.Render(s.Error))
	}
}

func stateLabel(state services.LoadState) string {
	label := "(" + string(state) + ")"
	switch state {
	case services.StateOK:
		return okStyle.Render(label)
	case services.StateNoData:
		return warnStyle.Render(label)
	case services.StateFailed:
		return errorStyle.Render(label)
	}
	return label
}
