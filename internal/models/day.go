package models

import "time"

// DateRange is the logged period of one Day. End may precede Start; both are kept as decoded.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Day struct {
	Range DateRange  `json:"range"`
	Stats InputStats `json:"stats"`
}

// Date is the calendar date of the range start, the key a Day is stored under.
func (d Day) Date() Date {
	return DateOf(d.Range.Start)
}
