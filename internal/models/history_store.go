package models

import (
	"cmp"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// HistoryStore maps calendar dates to the Day logged on them.
// It is not safe for concurrent mutation; callers publish a finished store and stop writing to it.
type HistoryStore struct {
	days map[Date]Day
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		days: make(map[Date]Day),
	}
}

// Put stores day under the date of its range start, replacing any Day already there.
func (s *HistoryStore) Put(day Day) {
	s.days[day.Date()] = day
}

func (s *HistoryStore) Get(date Date) (Day, bool) {
	day, ok := s.days[date]
	return day, ok
}

func (s *HistoryStore) Len() int {
	return len(s.days)
}

// Merge folds other into s. Entries of other win on date collisions.
func (s *HistoryStore) Merge(other *HistoryStore) {
	if other == nil {
		return
	}
	for date, day := range other.days {
		s.days[date] = day
	}
}

// Dates returns the stored dates in ascending order.
func (s *HistoryStore) Dates() []Date {
	dates := make([]Date, 0, len(s.days))
	for date := range s.days {
		dates = append(dates, date)
	}
	slices.SortFunc(dates, compareDates)
	return dates
}

// Days returns the stored days ordered by date.
func (s *HistoryStore) Days() []Day {
	dates := s.Dates()
	days := make([]Day, len(dates))
	for i, date := range dates {
		days[i] = s.days[date]
	}
	return days
}

// Coverage returns a bitmap of the ordinals of every stored date.
// Dates with a negative ordinal or one past the uint32 range have no bit.
func (s *HistoryStore) Coverage() *roaring.Bitmap {
	bm := roaring.New()
	for date := range s.days {
		ordinal := date.Ordinal()
		if ordinal < 0 || int64(ordinal) > math.MaxUint32 {
			continue
		}
		bm.Add(uint32(ordinal))
	}
	return bm
}

// MissingOrdinals lists the ordinals between the first and last stored date that have no Day.
func (s *HistoryStore) MissingOrdinals() []int {
	covered := s.Coverage()
	if covered.IsEmpty() {
		return nil
	}
	first, last := uint64(covered.Minimum()), uint64(covered.Maximum())+1

	span := roaring.New()
	span.AddRange(first, last)
	span.AndNot(covered)

	missing := make([]int, 0, span.GetCardinality())
	it := span.Iterator()
	for it.HasNext() {
		missing = append(missing, int(it.Next()))
	}
	return missing
}

func compareDates(a, b Date) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Month, b.Month); c != 0 {
		return c
	}
	return cmp.Compare(a.Day, b.Day)
}
