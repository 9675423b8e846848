package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/profile"
	"github.com/inovally/diagnostico/internal/report"
)

func validReport(t *testing.T) *report.Report {
	t.Helper()
	p, err := profile.LoadBuiltin(profile.DefaultName)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	r, err := report.Build(report.Options{
		Scores: diagnosis.ScoreSet{
			{Key: "lgpd", Score: 2},
			{Key: "digitalizacao", Score: 4},
			{Key: "arrecadacao", Score: 3},
			{Key: "transparencia", Score: 4},
			{Key: "participacao", Score: 2},
		},
		Profile:    p,
		Version:    "1.0.0",
		ScoresHash: "sha256:" + strings.Repeat("ab", 32),
		Now:        func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return r
}

func hasPath(errs []ValidationError, path string) bool {
	for _, e := range errs {
		if e.Path == path {
			return true
		}
	}
	return false
}

func TestValidateReportValid(t *testing.T) {
	errs, err := ValidateReport(validReport(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateReportMissingTool(t *testing.T) {
	r := validReport(t)
	r.Tool = ""
	errs, err := ValidateReport(r)
	if err != nil {
		t.Fatal(err)
	}
	if !hasPath(errs, "tool") {
		t.Errorf("expected tool error, got %v", errs)
	}
}

func TestValidateReportBadHash(t *testing.T) {
	r := validReport(t)
	r.Input.ScoresHash = "md5:abc"
	errs, err := ValidateReport(r)
	if err != nil {
		t.Fatal(err)
	}
	if !hasPath(errs, "input.scores_hash") {
		t.Errorf("expected scores_hash error, got %v", errs)
	}
}

func TestValidateReportBadActionKind(t *testing.T) {
	r := validReport(t)
	r.Actions[0].Kind = "warning"
	errs, err := ValidateReport(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) == 0 {
		t.Error("expected error for unknown action kind")
	}
}

func TestValidateReportCountMismatch(t *testing.T) {
	r := validReport(t)
	r.Summary.PositiveCount = 99
	errs, err := ValidateReport(r)
	if err != nil {
		t.Fatal(err)
	}
	if !hasPath(errs, "summary.positive_count") {
		t.Errorf("expected positive_count error, got %v", errs)
	}
}

func TestValidateReportPercentageMismatch(t *testing.T) {
	r := validReport(t)
	r.Summary.OverallPercentage = 61
	errs, err := ValidateReport(r)
	if err != nil {
		t.Fatal(err)
	}
	if !hasPath(errs, "summary.overall_percentage") {
		t.Errorf("expected percentage error, got %v", errs)
	}
}

func TestValidateReportMisclassified(t *testing.T) {
	r := validReport(t)
	r.Positive[0].Score = 2
	errs, err := ValidateReport(r)
	if err != nil {
		t.Fatal(err)
	}
	if !hasPath(errs, "positive[0]") {
		t.Errorf("expected positive[0] error, got %v", errs)
	}
}

func TestValidateScoresComplete(t *testing.T) {
	set := diagnosis.ScoreSet{
		{Key: "lgpd", Score: 1},
		{Key: "digitalizacao", Score: 5},
		{Key: "arrecadacao", Score: 3},
		{Key: "transparencia", Score: 4},
		{Key: "participacao", Score: 2},
	}
	if errs := ValidateScores(set); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateScoresFindings(t *testing.T) {
	set := diagnosis.ScoreSet{
		{Key: "lgpd", Score: 7},
		{Key: "saude", Score: 3},
	}
	errs := ValidateScores(set)
	for _, path := range []string{"lgpd", "saude", "digitalizacao", "participacao"} {
		if !hasPath(errs, path) {
			t.Errorf("expected finding for %s, got %v", path, errs)
		}
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Path: "lgpd", Message: "missing indicator"}
	if e.Error() != "lgpd: missing indicator" {
		t.Errorf("unexpected %q", e.Error())
	}
}
