package store

import "math"

// Water intake is tracked as a single 0-4 litre value per day but
// edited through four discrete 1L bottle controls. Clicking bottle i
// only ever changes the fractional occupancy of the litre interval
// [i, i+1), so the continuous total stays unambiguous.

const (
	BottleCount = 4
	MaxLitres   = 4.0
	LitreStep   = 0.5
)

type BottleLevel int

const (
	BottleEmpty BottleLevel = iota
	BottleHalf
	BottleFull
)

// SnapLitres clamps a raw litre value to [0, 4] and snaps it to the
// nearest half-litre step. Negative and non-finite input becomes 0.
func SnapLitres(litres float64) float64 {
	if math.IsNaN(litres) || math.IsInf(litres, 0) || litres < 0 {
		return 0
	}
	if litres > MaxLitres {
		litres = MaxLitres
	}
	return math.Round(litres/LitreStep) * LitreStep
}

// BottleState reports how full bottle index (0-based) is for the
// given grand total, by comparing the total against [index, index+1).
func BottleState(total float64, index int) BottleLevel {
	total = SnapLitres(total)
	switch {
	case total >= float64(index)+1:
		return BottleFull
	case total > float64(index):
		return BottleHalf
	default:
		return BottleEmpty
	}
}

// CycleBottle advances one bottle empty -> half -> full -> empty and
// returns the new grand total. Because the total is a single waterline
// value, clicking bottle i places that waterline inside [i, i+1):
// bottles below i read full, bottles above read empty.
func CycleBottle(total float64, index int) float64 {
	var next float64
	switch BottleState(total, index) {
	case BottleEmpty:
		next = 0.5
	case BottleHalf:
		next = 1
	default:
		next = 0
	}
	return SnapLitres(float64(index) + next)
}
