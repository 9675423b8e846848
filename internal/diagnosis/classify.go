package diagnosis

import (
	"fmt"
	"math"
)

// Classify computes the overall percentage and partitions the entries by
// PositiveThreshold, keeping input order within each group.
// Scores outside the 1-5 scale are classified as-is; scores outside
// [MinScoreValue, MaxScoreValue] are rejected with ErrInvalidInput.
func Classify(set ScoreSet) (Result, error) {
	if len(set) == 0 {
		return Result{}, fmt.Errorf("diagnosis.Classify: empty score set: %w", ErrInvalidInput)
	}
	for _, e := range set {
		if !InRange(e.Score) {
			return Result{}, fmt.Errorf("diagnosis.Classify: %s: score %d outside [%d, %d]: %w",
				e.Key, e.Score, MinScoreValue, MaxScoreValue, ErrInvalidInput)
		}
	}
	sum, ok := set.Sum()
	if !ok {
		return Result{}, fmt.Errorf("diagnosis.Classify: score total overflows: %w", ErrInvalidInput)
	}

	res := Result{
		OverallPercentage: roundPercent(float64(sum), len(set)),
		Positive:          []Entry{},
		Improvement:       []Entry{},
	}
	for _, e := range set {
		if IsPositive(e.Score) {
			res.Positive = append(res.Positive, e)
		} else {
			res.Improvement = append(res.Improvement, e)
		}
	}
	return res, nil
}

// IsPositive reports whether score counts as a strength.
func IsPositive(score int) bool {
	return score >= PositiveThreshold
}

// OverallPercentage returns round(100 * sum / (MaxScore * n)), rounding
// halves up. It returns 0 for an empty set. The total is summed in
// float64 so it never wraps; Classify rejects scores that would.
func OverallPercentage(set ScoreSet) int {
	if len(set) == 0 {
		return 0
	}
	var sum float64
	for _, e := range set {
		sum += float64(e.Score)
	}
	return roundPercent(sum, len(set))
}

func roundPercent(sum float64, n int) int {
	return int(math.Floor(sum/float64(MaxScore*n)*100 + 0.5))
}
