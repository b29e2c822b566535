package workrave

import "github.com/shopspring/decimal"

// RawUnitsPerMeter converts Workrave's raw mouse movement counts to metres.
const RawUnitsPerMeter = 4288

var rawUnitsPerMeter = decimal.NewFromInt(RawUnitsPerMeter)

// Normalize converts raw movement units to metres rounded to two decimals, halves away from zero.
func Normalize(raw int64) float64 {
	return decimal.NewFromInt(raw).DivRound(rawUnitsPerMeter, 2).InexactFloat64()
}
