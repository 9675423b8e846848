// Package report assembles the dashboard document from a classification.
package report

import (
	"time"

	"github.com/inovally/diagnostico/internal/diagnosis"
)

// Report is the top-level dashboard document.
type Report struct {
	Tool        string            `json:"tool"`
	Version     string            `json:"version"`
	ID          string            `json:"id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Input       Input             `json:"input"`
	Header      Header            `json:"header"`
	Summary     diagnosis.Summary `json:"summary"`
	Legend      []LegendEntry     `json:"legend,omitempty"`
	Radar       []RadarAxis       `json:"radar"`
	Positive    []Area            `json:"positive"`
	Improvement []Area            `json:"improvement"`
	Actions     []Action          `json:"actions,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
}

// Input describes the score source and profile used.
type Input struct {
	ScoresFile string `json:"scores_file,omitempty"`
	ScoresHash string `json:"scores_hash,omitempty"`
	Profile    string `json:"profile"`
}

// Header holds the page title texts.
type Header struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	Subject      string `json:"subject"`
	SummaryText  string `json:"summary_text,omitempty"`
	PositiveText string `json:"positive_title"`
	ImproveText  string `json:"improvement_title"`
	PositiveNone string `json:"positive_empty"`
	ImproveNone  string `json:"improvement_empty"`
	SolutionText string `json:"solution_label,omitempty"`
	ScheduleText string `json:"schedule_label,omitempty"`
	CTATitle     string `json:"cta_title,omitempty"`
	CTABody      string `json:"cta_body,omitempty"`
}

// LegendEntry explains one point of the scale.
type LegendEntry struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// RadarAxis is one point of the radar chart, in ScoreSet order.
type RadarAxis struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Area is a classified indicator with its catalog texts.
type Area struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Score       int    `json:"score"`
	MaxScore    int    `json:"max_score"`
	Description string `json:"description,omitempty"`
	Solution    string `json:"solution,omitempty"`
	Highlight   string `json:"highlight,omitempty"`
	ScheduleURL string `json:"schedule_url,omitempty"`
	Known       bool   `json:"known"`
}

// Action is a call-to-action button shown at the end of the dashboard.
type Action struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Message    string `json:"message"`
	Kind       string `json:"kind"`
	DurationMS int    `json:"duration_ms"`
}
