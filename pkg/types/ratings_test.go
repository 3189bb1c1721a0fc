package types

import "testing"

func TestRatingAccumulatorAverage(t *testing.T) {
	cases := []struct {
		name  string
		sum   int64
		count int64
		want  float64
	}{
		{name: "empty", sum: 0, count: 0, want: 0},
		{name: "single", sum: 4, count: 1, want: 4},
		{name: "rounds down", sum: 13, count: 3, want: 4.3},
		{name: "rounds half up", sum: 9, count: 2, want: 4.5},
		{name: "repeating third", sum: 14, count: 3, want: 4.7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acc := RatingAccumulator{Sum: tc.sum, Count: tc.count}
			if got := acc.Average(); got != tc.want {
				t.Fatalf("Average(%d/%d) = %v, want %v", tc.sum, tc.count, got, tc.want)
			}
		})
	}
}

func TestRatingAccumulatorAdd(t *testing.T) {
	acc := RatingAccumulator{}
	for _, rating := range []int{5, 4, 4} {
		acc = acc.Add(rating)
	}
	if acc.Sum != 13 || acc.Count != 3 {
		t.Fatalf("unexpected accumulator %+v", acc)
	}
	if got := acc.Average(); got != 4.3 {
		t.Fatalf("Average() = %v, want 4.3", got)
	}
}
