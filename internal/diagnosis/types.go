// Package diagnosis aggregates indicator scores and classifies them into
// strengths and areas for improvement.
package diagnosis

import (
	"errors"
	"math"
)

const (
	// MaxScore is the top of the per-indicator scale.
	MaxScore = 5
	// PositiveThreshold is the minimum score of a strength.
	PositiveThreshold = 4

	// MinScoreValue and MaxScoreValue bound any accepted score, in or out
	// of the 1-5 scale, so sums cannot overflow.
	MinScoreValue = math.MinInt32
	MaxScoreValue = math.MaxInt32
)

// ErrInvalidInput reports a ScoreSet that cannot be classified.
var ErrInvalidInput = errors.New("invalid input")

// Entry is one indicator score. Key is not checked against the catalog here.
type Entry struct {
	Key   string `json:"key"`
	Score int    `json:"score"`
}

// ScoreSet is an ordered list of indicator scores. Order is the
// iteration order used by every derived view.
type ScoreSet []Entry

// Sum returns the total of all scores. ok is false when the total does
// not fit in an int.
func (s ScoreSet) Sum() (total int, ok bool) {
	for _, e := range s {
		next := total + e.Score
		if (e.Score > 0 && next < total) || (e.Score < 0 && next > total) {
			return 0, false
		}
		total = next
	}
	return total, true
}

// InRange reports whether score is within the accepted value bounds.
func InRange(score int) bool {
	return score >= MinScoreValue && score <= MaxScoreValue
}

// Get returns the score for key.
func (s ScoreSet) Get(key string) (int, bool) {
	for _, e := range s {
		if e.Key == key {
			return e.Score, true
		}
	}
	return 0, false
}

// Result is the derived classification of a ScoreSet.
type Result struct {
	OverallPercentage int     `json:"overall_percentage"`
	Positive          []Entry `json:"positive"`
	Improvement       []Entry `json:"improvement"`
}
