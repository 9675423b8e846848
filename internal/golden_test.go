package internal

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/profile"
	"github.com/inovally/diagnostico/internal/render"
	"github.com/inovally/diagnostico/internal/report"
	"github.com/inovally/diagnostico/internal/schema"
	"github.com/inovally/diagnostico/internal/scoreset"
)

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filename))
}

type goldenCase struct {
	Scores      string            `json:"scores"`
	Profile     string            `json:"profile"`
	Summary     diagnosis.Summary `json:"summary"`
	Positive    []string          `json:"positive"`
	Improvement []string          `json:"improvement"`
}

func keys(areas []report.Area) []string {
	out := make([]string, 0, len(areas))
	for _, a := range areas {
		out = append(out, a.Key)
	}
	return out
}

func TestGoldenClassifications(t *testing.T) {
	root := projectRoot()

	data, err := os.ReadFile(filepath.Join(root, "testdata", "golden", "classifications.json"))
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}
	var cases []goldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("failed to parse golden JSON: %v", err)
	}

	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	for _, gc := range cases {
		t.Run(gc.Profile+"/"+gc.Scores, func(t *testing.T) {
			f, err := scoreset.Load(filepath.Join(root, "testdata", "scores", gc.Scores))
			if err != nil {
				t.Fatalf("failed to load scores: %v", err)
			}
			prof, err := profile.LoadBuiltin(gc.Profile)
			if err != nil {
				t.Fatalf("failed to load profile: %v", err)
			}

			rep, err := report.Build(report.Options{
				Scores:     f.Scores,
				Profile:    prof,
				ScoresFile: gc.Scores,
				ScoresHash: f.Hash,
				Version:    "golden",
				Now:        func() time.Time { return fixed },
				NewID:      func() string { return "00000000-0000-4000-8000-000000000000" },
			})
			if err != nil {
				t.Fatalf("build: %v", err)
			}

			if diff := cmp.Diff(gc.Summary, rep.Summary); diff != "" {
				t.Errorf("summary mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(gc.Positive, keys(rep.Positive)); diff != "" {
				t.Errorf("positive mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(gc.Improvement, keys(rep.Improvement)); diff != "" {
				t.Errorf("improvement mismatch (-want +got):\n%s", diff)
			}

			// Validate schema
			validationErrs, err := schema.ValidateReport(rep)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			for _, e := range validationErrs {
				t.Errorf("validation error: %s", e)
			}

			// Verify JSON round-trip stability
			var buf1 bytes.Buffer
			if err := render.JSON(&buf1, rep); err != nil {
				t.Fatalf("first render failed: %v", err)
			}
			var rep2 report.Report
			if err := json.Unmarshal(buf1.Bytes(), &rep2); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			var buf2 bytes.Buffer
			if err := render.JSON(&buf2, &rep2); err != nil {
				t.Fatalf("second render failed: %v", err)
			}
			if buf1.String() != buf2.String() {
				t.Error("JSON round-trip produced different output")
			}
		})
	}
}
