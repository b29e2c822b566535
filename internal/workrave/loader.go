package workrave

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"informant/internal/models"
)

// HeaderV4 is the first line of every export this package understands.
const HeaderV4 = "WorkRaveStats 4"

const maxLineSize = 1024 * 1024

// Diagnostic is an unrecognized line skipped during a load.
type Diagnostic struct {
	LineNum int    `json:"line" yaml:"line"`
	Content string `json:"content" yaml:"content"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: unrecognized %q", d.LineNum, d.Content)
}

// Validate reports whether the first line of an export carries the supported header.
func Validate(firstLine string) bool {
	return strings.TrimSpace(firstLine) == HeaderV4
}

// Option configures a Loader.
type Option func(*Loader)

// WithLocation sets the zone D line timestamps are interpreted in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(l *Loader) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithDiagnostics registers a callback for every unrecognized line.
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(l *Loader) {
		l.onDiagnostic = fn
	}
}

// Loader turns an export into a HistoryStore.
type Loader struct {
	loc          *time.Location
	onDiagnostic func(Diagnostic)
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{loc: time.Local}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads an export. A stream with no header, or the wrong one, yields ErrNoData.
// Any undecodable D or m line fails the whole load with a *ParseError; unequal record
// counts fail it with a *StructuralError.
func (l *Loader) Load(r io.Reader) (*models.HistoryStore, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, ErrNoData
	}
	if !Validate(scanner.Text()) {
		return nil, ErrNoData
	}

	var (
		dateRanges []models.DateRange
		stats      []models.InputStats
		lineNum    = 1
	)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		kind, rest := Classify(line)
		switch kind {
		case DateRangeLine:
			dr, err := DecodeDateRange(rest, l.loc)
			if err != nil {
				return nil, atLine(err, lineNum)
			}
			dateRanges = append(dateRanges, dr)
		case StatsLine:
			s, err := DecodeStats(rest)
			if err != nil {
				return nil, atLine(err, lineNum)
			}
			stats = append(stats, s)
		case BreakLine:
		default:
			if l.onDiagnostic != nil {
				l.onDiagnostic(Diagnostic{LineNum: lineNum, Content: line})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", lineNum+1, err)
	}

	days, err := Assemble(dateRanges, stats)
	if err != nil {
		return nil, err
	}
	store := models.NewHistoryStore()
	for _, day := range days {
		store.Put(day)
	}
	return store, nil
}

// LoadFile loads the export at path. A missing file yields ErrNoData.
func (l *Loader) LoadFile(path string) (*models.HistoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	store, err := l.Load(f)
	if err != nil && !errors.Is(err, ErrNoData) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, err
}

// IsFileValid reports whether path exists and starts with the supported header.
func IsFileValid(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	return scanner.Scan() && Validate(scanner.Text())
}

func atLine(err error, lineNum int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.LineNum = lineNum
	}
	return err
}
