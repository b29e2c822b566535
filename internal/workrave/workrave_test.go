package workrave

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"informant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleDateRange = "D 8 10 122 22 39 8 10 122 22 44"
	sampleStats     = "m 6 338 28584 40231 29 104 33"
)

func newUTCLoader(opts ...Option) *Loader {
	return NewLoader(append([]Option{WithLocation(time.UTC)}, opts...)...)
}

func export(lines ...string) string {
	return strings.Join(append([]string{HeaderV4}, lines...), "\n") + "\n"
}

func TestClassify(t *testing.T) {
	tests := []struct {
		line     string
		wantKind LineKind
		wantRest string
	}{
		{sampleDateRange, DateRangeLine, " 8 10 122 22 39 8 10 122 22 44"},
		{sampleStats, StatsLine, " 6 338 28584 40231 29 104 33"},
		{"B 1 2 3", BreakLine, " 1 2 3"},
		{"G 0 0", UnrecognizedLine, "G 0 0"},
		{"", UnrecognizedLine, ""},
	}
	for _, tt := range tests {
		kind, rest := Classify(tt.line)
		assert.Equal(t, tt.wantKind, kind, tt.line)
		assert.Equal(t, tt.wantRest, rest, tt.line)
	}
}

func TestLineKind_String(t *testing.T) {
	assert.Equal(t, "date range", DateRangeLine.String())
	assert.Equal(t, "stats", StatsLine.String())
	assert.Equal(t, "break", BreakLine.String())
	assert.Equal(t, "unrecognized", UnrecognizedLine.String())
}

func TestDecodeDateRange_ConvertsMonthAndYear(t *testing.T) {
	_, rest := Classify(sampleDateRange)
	dr, err := DecodeDateRange(rest, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2022, time.November, 8, 22, 39, 0, 0, time.UTC), dr.Start)
	assert.Equal(t, time.Date(2022, time.November, 8, 22, 44, 0, 0, time.UTC), dr.End)
}

func TestDecodeDateRange_NilLocationUsesLocal(t *testing.T) {
	dr, err := DecodeDateRange("1 0 100 0 0 1 0 100 0 0", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Local, dr.Start.Location())
	assert.Equal(t, 2000, dr.Start.Year())
}

func TestDecodeDateRange_EndBeforeStartIsKept(t *testing.T) {
	dr, err := DecodeDateRange("9 10 122 10 0 8 10 122 9 0", time.UTC)
	require.NoError(t, err)
	assert.True(t, dr.End.Before(dr.Start))
}

func TestDecodeDateRange_Invalid(t *testing.T) {
	tests := map[string]string{
		"too few fields":  "8 10 122 22 39",
		"too many fields": "8 10 122 22 39 8 10 122 22 44 1",
		"non numeric":     "8 x 122 22 39 8 10 122 22 44",
		"day 32":          "32 0 122 22 39 8 10 122 22 44",
		"day 0":           "0 0 122 22 39 8 10 122 22 44",
		"february 30":     "30 1 122 22 39 8 10 122 22 44",
		"month 12":        "8 12 122 22 39 8 10 122 22 44",
		"hour 25":         "8 10 122 25 39 8 10 122 22 44",
		"minute 60":       "8 10 122 22 39 8 10 122 22 60",
		"negative month":  "8 -1 122 22 39 8 10 122 22 44",
		"negative year":   "1 0 -1900 0 0 1 0 122 0 0",
		"negative minute": "8 10 122 22 -1 8 10 122 22 44",
		"negative day":    "8 10 122 22 39 -8 10 122 22 44",
		"year past 9999":  "8 10 8100 22 39 8 10 122 22 44",
		"empty":           "",
	}
	for name, fields := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDateRange(fields, time.UTC)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, DateRangeLine, pe.Kind)
		})
	}
}

func TestDecodeDateRange_YearBounds(t *testing.T) {
	dr, err := DecodeDateRange("1 0 0 0 0 31 11 8099 23 59", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 1900, dr.Start.Year())
	assert.Equal(t, 9999, dr.End.Year())
}

func TestLoad_NegativeYearFailsWithLine(t *testing.T) {
	_, err := newUTCLoader().Load(strings.NewReader(export(
		sampleDateRange, sampleStats,
		"D 1 0 -1900 0 0 1 0 -1900 0 0", sampleStats,
	)))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.LineNum)
	assert.Equal(t, DateRangeLine, pe.Kind)
}

func TestDecodeDateRange_LeapDay(t *testing.T) {
	dr, err := DecodeDateRange("29 1 124 8 0 29 1 124 9 0", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.February, dr.Start.Month())
	assert.Equal(t, 29, dr.Start.Day())

	_, err = DecodeDateRange("29 1 123 8 0 29 1 123 9 0", time.UTC)
	assert.Error(t, err)
}

func TestDecodeStats_MapsFields(t *testing.T) {
	_, rest := Classify(sampleStats)
	stats, err := DecodeStats(rest)
	require.NoError(t, err)

	assert.Equal(t, models.InputStats{
		TotalActiveTimeSeconds:  338,
		TotalMouseMovement:      6.67,
		TotalMouseClickMovement: 9.38,
		TotalMouseMovementTime:  29,
		TotalMouseClicks:        104,
		TotalKeystrokes:         33,
	}, stats)
}

func TestDecodeStats_Invalid(t *testing.T) {
	tests := map[string]string{
		"too few fields":  "6 338 28584 40231 29 104",
		"too many fields": "6 338 28584 40231 29 104 33 1",
		"non numeric":     "6 338 abc 40231 29 104 33",
		"float":           "6 338 1.5 40231 29 104 33",
		"negative":        "6 -338 28584 40231 29 104 33",
	}
	for name, fields := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeStats(fields)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, StatsLine, pe.Kind)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  int64
		want float64
	}{
		{0, 0},
		{4288, 1},
		{2144, 0.5},
		{28584, 6.67},
		{40231, 9.38},
		{4824, 1.13},
		{1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.raw), "raw %d", tt.raw)
	}
}

func TestNormalize_MatchesRoundedQuotient(t *testing.T) {
	for raw := int64(0); raw <= 100000; raw++ {
		want := math.Round(float64(raw)/RawUnitsPerMeter*100) / 100
		if got := Normalize(raw); got != want {
			t.Fatalf("Normalize(%d) = %v, want %v", raw, got, want)
		}
	}
}

func TestNormalize_Ties(t *testing.T) {
	// 536/4288 = 0.125 and 1608/4288 = 0.375 sit exactly on a half cent.
	assert.Equal(t, 0.13, Normalize(536))
	assert.Equal(t, 0.38, Normalize(1608))
	assert.Equal(t, 0.63, Normalize(2680))
}

func TestAssemble_PairsByPosition(t *testing.T) {
	ranges := []models.DateRange{
		{Start: time.Date(2022, 1, 1, 8, 0, 0, 0, time.UTC)},
		{Start: time.Date(2022, 1, 2, 8, 0, 0, 0, time.UTC)},
	}
	stats := []models.InputStats{{TotalKeystrokes: 1}, {TotalKeystrokes: 2}}

	days, err := Assemble(ranges, stats)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, ranges[1], days[1].Range)
	assert.Equal(t, int64(2), days[1].Stats.TotalKeystrokes)
}

func TestAssemble_CountMismatch(t *testing.T) {
	_, err := Assemble(make([]models.DateRange, 2), make([]models.InputStats, 1))
	var se *StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.DateRanges)
	assert.Equal(t, 1, se.Stats)
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("WorkRaveStats 4"))
	assert.True(t, Validate("WorkRaveStats 4\r"))
	assert.False(t, Validate("WorkRaveStats 3"))
	assert.False(t, Validate("WorkRaveStats 40"))
	assert.False(t, Validate(""))
}

func TestLoad_SingleDay(t *testing.T) {
	store, err := newUTCLoader().Load(strings.NewReader(export(sampleDateRange, sampleStats)))
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	day, ok := store.Get(models.Date{Year: 2022, Month: time.November, Day: 8})
	require.True(t, ok)
	assert.Equal(t, int64(338), day.Stats.TotalActiveTimeSeconds)
	assert.Equal(t, 6.67, day.Stats.TotalMouseMovement)
	assert.Equal(t, 9.38, day.Stats.TotalMouseClickMovement)
	assert.Equal(t, int64(29), day.Stats.TotalMouseMovementTime)
	assert.Equal(t, int64(104), day.Stats.TotalMouseClicks)
	assert.Equal(t, int64(33), day.Stats.TotalKeystrokes)
}

func TestLoad_LaterPairWinsOnSameDate(t *testing.T) {
	input := export(
		"D 8 10 122 8 0 8 10 122 9 0",
		"m 0 1 0 0 0 0 1",
		"D 8 10 122 18 0 8 10 122 19 0",
		"m 0 2 0 0 0 0 2",
		"D 9 10 122 8 0 9 10 122 9 0",
		"m 0 3 0 0 0 0 3",
	)
	store, err := newUTCLoader().Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	day, ok := store.Get(models.Date{Year: 2022, Month: time.November, Day: 8})
	require.True(t, ok)
	assert.Equal(t, int64(2), day.Stats.TotalKeystrokes)
}

func TestLoad_BreakAndUnknownLinesAreSkipped(t *testing.T) {
	var diags []Diagnostic
	loader := newUTCLoader(WithDiagnostics(func(d Diagnostic) { diags = append(diags, d) }))

	input := export(
		"  "+sampleDateRange+"  ",
		"B 0 1 2 3 4",
		"G 12 9",
		sampleStats+"\r",
	)
	store, err := loader.Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	require.Len(t, diags, 1)
	assert.Equal(t, 4, diags[0].LineNum)
	assert.Equal(t, "G 12 9", diags[0].Content)
}

func TestLoad_HeaderOnly(t *testing.T) {
	store, err := newUTCLoader().Load(strings.NewReader(HeaderV4 + "\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestLoad_WrongHeaderIsNoData(t *testing.T) {
	input := "WorkRaveStats 3\n" + sampleDateRange + "\n" + sampleStats + "\n"
	store, err := newUTCLoader().Load(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrNoData)
	assert.Nil(t, store)
}

func TestLoad_EmptyIsNoData(t *testing.T) {
	_, err := newUTCLoader().Load(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLoad_CountMismatchIsStructuralError(t *testing.T) {
	input := export(sampleDateRange, sampleStats, "D 9 10 122 8 0 9 10 122 9 0")
	_, err := newUTCLoader().Load(strings.NewReader(input))

	var se *StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.DateRanges)
	assert.Equal(t, 1, se.Stats)
	assert.False(t, errors.Is(err, ErrNoData))
}

func TestLoad_BadLineReportsLineNumber(t *testing.T) {
	input := export(sampleDateRange, sampleStats, "D 40 10 122 8 0 9 10 122 9 0", sampleStats)
	_, err := newUTCLoader().Load(strings.NewReader(input))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.LineNum)
	assert.Contains(t, err.Error(), "line 4")
}

func TestLoadFile_MissingIsNoData(t *testing.T) {
	_, err := newUTCLoader().LoadFile(filepath.Join(t.TempDir(), "historystats"))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLoadFile_WrapsErrorsWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historystats")
	require.NoError(t, os.WriteFile(path, []byte(export(sampleDateRange)), 0o644))

	_, err := newUTCLoader().LoadFile(path)
	var se *StructuralError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, err.Error(), path)
}

func TestLoadFile_ThenMerge(t *testing.T) {
	dir := t.TempDir()
	history := filepath.Join(dir, "historystats")
	today := filepath.Join(dir, "todaystats")
	require.NoError(t, os.WriteFile(history, []byte(export(
		"D 7 10 122 8 0 7 10 122 9 0", "m 0 1 0 0 0 0 1",
		"D 8 10 122 8 0 8 10 122 9 0", "m 0 1 0 0 0 0 1",
	)), 0o644))
	require.NoError(t, os.WriteFile(today, []byte(export(
		"D 8 10 122 8 0 8 10 122 17 0", "m 0 9 0 0 0 0 9",
	)), 0o644))

	loader := newUTCLoader()
	store, err := loader.LoadFile(history)
	require.NoError(t, err)
	todayStore, err := loader.LoadFile(today)
	require.NoError(t, err)
	store.Merge(todayStore)

	assert.Equal(t, 2, store.Len())
	day, ok := store.Get(models.Date{Year: 2022, Month: time.November, Day: 8})
	require.True(t, ok)
	assert.Equal(t, int64(9), day.Stats.TotalKeystrokes)
}

func TestIsFileValid(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good")
	bad := filepath.Join(dir, "bad")
	require.NoError(t, os.WriteFile(good, []byte(export()), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("WorkRaveStats 3\n"), 0o644))

	assert.True(t, IsFileValid(good))
	assert.False(t, IsFileValid(bad))
	assert.False(t, IsFileValid(filepath.Join(dir, "missing")))
}
