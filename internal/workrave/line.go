// Package workrave reads Workrave "historystats" and "todaystats" exports.
package workrave

// LineKind is the record type of one export line, chosen by its first character.
type LineKind int

const (
	UnrecognizedLine LineKind = iota
	DateRangeLine
	StatsLine
	BreakLine
)

func (k LineKind) String() string {
	switch k {
	case DateRangeLine:
		return "date range"
	case StatsLine:
		return "stats"
	case BreakLine:
		return "break"
	default:
		return "unrecognized"
	}
}

// Classify returns the kind of a trimmed line and the remainder after its prefix character.
// Unrecognized lines are returned whole.
func Classify(line string) (LineKind, string) {
	if line == "" {
		return UnrecognizedLine, line
	}
	switch line[0] {
	case 'D':
		return DateRangeLine, line[1:]
	case 'm':
		return StatsLine, line[1:]
	case 'B':
		return BreakLine, line[1:]
	default:
		return UnrecognizedLine, line
	}
}
