// Package schema validates score sets and dashboard reports.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/indicator"
	"github.com/inovally/diagnostico/internal/report"
)

//go:embed report.schema.json
var reportSchema []byte

var reportSchemaLoader = gojsonschema.NewBytesLoader(reportSchema)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// ValidateScores checks a ScoreSet against the indicator catalog.
// Classification works regardless; these are findings about the input.
func ValidateScores(set diagnosis.ScoreSet) []ValidationError {
	var errs []ValidationError

	present := make(map[string]bool, len(set))
	for _, e := range set {
		present[e.Key] = true
		if !indicator.Key(e.Key).Valid() {
			errs = append(errs, ValidationError{e.Key, "unknown indicator"})
		}
		if e.Score < 1 || e.Score > diagnosis.MaxScore {
			errs = append(errs, ValidationError{e.Key, fmt.Sprintf("score %d outside 1-%d", e.Score, diagnosis.MaxScore)})
		}
	}
	for _, k := range indicator.Keys() {
		if !present[string(k)] {
			errs = append(errs, ValidationError{string(k), "missing indicator"})
		}
	}
	return errs
}

// ValidateReport checks a report for structural validity against the
// embedded JSON Schema and for internal consistency.
func ValidateReport(r *report.Report) ([]ValidationError, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("schema.ValidateReport: marshal: %w", err)
	}
	result, err := gojsonschema.Validate(reportSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("schema.ValidateReport: %w", err)
	}

	var errs []ValidationError
	for _, re := range result.Errors() {
		errs = append(errs, ValidationError{re.Field(), re.Description()})
	}

	if r.Summary.PositiveCount != len(r.Positive) {
		errs = append(errs, ValidationError{"summary.positive_count", fmt.Sprintf("expected %d, got %d", len(r.Positive), r.Summary.PositiveCount)})
	}
	if r.Summary.ImprovementCount != len(r.Improvement) {
		errs = append(errs, ValidationError{"summary.improvement_count", fmt.Sprintf("expected %d, got %d", len(r.Improvement), r.Summary.ImprovementCount)})
	}

	// Recompute the percentage from the radar axes, which carry every entry.
	set := make(diagnosis.ScoreSet, 0, len(r.Radar))
	for _, ax := range r.Radar {
		set = append(set, diagnosis.Entry{Key: ax.Key, Score: ax.Score})
	}
	if len(set) != len(r.Positive)+len(r.Improvement) {
		errs = append(errs, ValidationError{"radar", fmt.Sprintf("%d axes but %d classified areas", len(set), len(r.Positive)+len(r.Improvement))})
	}
	if expected := diagnosis.OverallPercentage(set); r.Summary.OverallPercentage != expected {
		errs = append(errs, ValidationError{"summary.overall_percentage", fmt.Sprintf("percentage %d does not match computed %d", r.Summary.OverallPercentage, expected)})
	}

	for i, a := range r.Positive {
		if !diagnosis.IsPositive(a.Score) {
			errs = append(errs, ValidationError{fmt.Sprintf("positive[%d]", i), fmt.Sprintf("score %d below threshold", a.Score)})
		}
	}
	for i, a := range r.Improvement {
		if diagnosis.IsPositive(a.Score) {
			errs = append(errs, ValidationError{fmt.Sprintf("improvement[%d]", i), fmt.Sprintf("score %d meets threshold", a.Score)})
		}
	}
	return errs, nil
}
