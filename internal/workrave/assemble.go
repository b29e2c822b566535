package workrave

import "informant/internal/models"

// Assemble pairs the i-th date range with the i-th stats record.
func Assemble(dateRanges []models.DateRange, stats []models.InputStats) ([]models.Day, error) {
	if len(dateRanges) != len(stats) {
		return nil, &StructuralError{DateRanges: len(dateRanges), Stats: len(stats)}
	}
	days := make([]models.Day, len(dateRanges))
	for i := range dateRanges {
		days[i] = models.Day{Range: dateRanges[i], Stats: stats[i]}
	}
	return days, nil
}
