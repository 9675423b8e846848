package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/indicator"
	"github.com/inovally/diagnostico/internal/profile"
	"github.com/inovally/diagnostico/internal/schedule"
)

// Tool is the name recorded in every report.
const Tool = "diagnostico"

// Options configures Build.
type Options struct {
	Scores     diagnosis.ScoreSet
	Profile    *profile.Profile
	Link       schedule.Link
	ScoresFile string
	ScoresHash string
	Version    string

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Build classifies opts.Scores and joins the result with catalog and
// profile texts.
func Build(opts Options) (*Report, error) {
	if opts.Profile == nil {
		return nil, errors.New("report.Build: profile is required")
	}
	res, err := diagnosis.Classify(opts.Scores)
	if err != nil {
		return nil, fmt.Errorf("report.Build: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	newID := uuid.NewString
	if opts.NewID != nil {
		newID = opts.NewID
	}
	link := opts.Link
	if link.BaseURL == "" {
		link = schedule.Link{BaseURL: opts.Profile.Schedule.BaseURL, MessageTemplate: opts.Profile.Schedule.MessageTemplate}
	}

	p := opts.Profile
	r := &Report{
		Tool:        Tool,
		Version:     opts.Version,
		ID:          newID(),
		GeneratedAt: now(),
		Input: Input{
			ScoresFile: opts.ScoresFile,
			ScoresHash: opts.ScoresHash,
			Profile:    p.Name,
		},
		Header: Header{
			Title:        p.Title,
			Subtitle:     p.Subtitle,
			Subject:      p.Subject,
			SummaryText:  p.Texts.Summary,
			PositiveText: p.Texts.PositiveTitle,
			ImproveText:  p.Texts.ImprovementTitle,
			PositiveNone: p.Texts.PositiveEmpty,
			ImproveNone:  p.Texts.ImprovementEmpty,
			SolutionText: p.Texts.SolutionLabel,
			ScheduleText: p.Schedule.ButtonLabel,
			CTATitle:     p.Texts.CTATitle,
			CTABody:      p.Texts.CTABody,
		},
		Summary:     diagnosis.ComputeSummary(res, p.Levels),
		Radar:       make([]RadarAxis, 0, len(opts.Scores)),
		Positive:    make([]Area, 0, len(res.Positive)),
		Improvement: make([]Area, 0, len(res.Improvement)),
	}

	for _, le := range p.Legend {
		r.Legend = append(r.Legend, LegendEntry{Score: le.Score, Label: le.Label})
	}
	for _, e := range opts.Scores {
		r.Radar = append(r.Radar, RadarAxis{Key: e.Key, Label: newArea(e).Name, Score: e.Score})
	}
	for _, e := range res.Positive {
		a := newArea(e)
		a.Highlight = fill(p.Texts.PositiveBody, a.FullName)
		r.Positive = append(r.Positive, a)
	}
	for _, e := range res.Improvement {
		a := newArea(e)
		a.ScheduleURL = link.For(a.FullName)
		r.Improvement = append(r.Improvement, a)
	}
	for _, act := range p.Actions {
		r.Actions = append(r.Actions, Action{ID: act.ID, Label: act.Label, Message: act.Message, Kind: act.Kind, DurationMS: act.DurationMS})
	}
	return r, nil
}

func newArea(e diagnosis.Entry) Area {
	a := Area{Key: e.Key, Name: e.Key, FullName: e.Key, Score: e.Score, MaxScore: diagnosis.MaxScore}
	if ind, ok := indicator.Lookup(e.Key); ok {
		a.Name = ind.Name
		a.FullName = ind.FullName
		a.Description = ind.Description
		a.Solution = ind.Solution
		a.Known = true
	}
	return a
}

func fill(tmpl, name string) string {
	if tmpl == "" {
		return ""
	}
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, name)
	}
	return tmpl
}

// FormatDate renders t the way the dashboard header shows it (dd/mm/yyyy).
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
