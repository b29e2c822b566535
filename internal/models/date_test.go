package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Ordinal(t *testing.T) {
	assert.Equal(t, 1, Date{Year: 1, Month: time.January, Day: 1}.Ordinal())
	assert.Equal(t, 719163, Date{Year: 1970, Month: time.January, Day: 1}.Ordinal())
	assert.Equal(t, 719162, Date{Year: 1969, Month: time.December, Day: 31}.Ordinal())
	assert.Equal(t, 738467, Date{Year: 2022, Month: time.November, Day: 8}.Ordinal())
}

func TestDate_OrdinalIsConsecutive(t *testing.T) {
	start := time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC)
	prev := DateOf(start).Ordinal()
	for i := 1; i < 400; i++ {
		next := DateOf(start.AddDate(0, 0, i)).Ordinal()
		assert.Equal(t, prev+1, next)
		prev = next
	}
}

func TestDateFromOrdinal_RoundTrip(t *testing.T) {
	for _, d := range []Date{
		{Year: 1, Month: time.January, Day: 1},
		{Year: 1969, Month: time.December, Day: 31},
		{Year: 2024, Month: time.February, Day: 29},
	} {
		assert.Equal(t, d, DateFromOrdinal(d.Ordinal()))
	}
}

func TestDateOf_UsesTimeLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2022, time.November, 8, 23, 30, 0, 0, time.UTC).In(loc)
	assert.Equal(t, Date{Year: 2022, Month: time.November, Day: 9}, DateOf(ts))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2022-11-08")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2022, Month: time.November, Day: 8}, d)
	assert.Equal(t, "2022-11-08", d.String())

	_, err = ParseDate("2022-13-01")
	assert.Error(t, err)
}

func TestDate_TextMarshaling(t *testing.T) {
	text, err := Date{Year: 2022, Month: time.November, Day: 8}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2022-11-08", string(text))

	var d Date
	require.NoError(t, d.UnmarshalText([]byte("0999-01-02")))
	assert.Equal(t, Date{Year: 999, Month: time.January, Day: 2}, d)
}

func TestDate_Before(t *testing.T) {
	a := Date{Year: 2022, Month: time.November, Day: 8}
	b := Date{Year: 2022, Month: time.December, Day: 1}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}
