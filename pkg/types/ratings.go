package types

import "github.com/shopspring/decimal"

// RatingAccumulator keeps the running sum/count pair a supplier's
// denormalized rating is derived from. Both fields move together in the
// same transaction as the review insert, so the average never needs a
// full re-read of the reviews table.
type RatingAccumulator struct {
	Sum   int64 `json:"sum"`
	Count int64 `json:"count"`
}

// Add returns the accumulator after absorbing one rating.
func (r RatingAccumulator) Add(rating int) RatingAccumulator {
	return RatingAccumulator{
		Sum:   r.Sum + int64(rating),
		Count: r.Count + 1,
	}
}

// Average returns the mean rounded half-up to one decimal place, or 0
// when no reviews exist.
func (r RatingAccumulator) Average() float64 {
	if r.Count <= 0 {
		return 0
	}
	avg := decimal.NewFromInt(r.Sum).
		Div(decimal.NewFromInt(r.Count)).
		Round(1)
	f, _ := avg.Float64()
	return f
}
