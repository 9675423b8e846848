// Package profile handles loading and formatting built-in dashboard profiles.
package profile

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/inovally/diagnostico/internal/diagnosis"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultName is the profile used when none is requested.
const DefaultName = "municipal"

var validate = validator.New()

// Profile defines the texts and rules a dashboard is rendered with.
type Profile struct {
	Name        string           `yaml:"name" validate:"required"`
	Version     int              `yaml:"version" validate:"gte=1"`
	Description string           `yaml:"description"`
	Title       string           `yaml:"title" validate:"required"`
	Subtitle    string           `yaml:"subtitle"`
	Subject     string           `yaml:"subject" validate:"required"`
	Levels      []diagnosis.Band `yaml:"levels" validate:"required,min=1,dive"`
	Legend      []LegendEntry    `yaml:"legend" validate:"dive"`
	Schedule    Schedule         `yaml:"schedule"`
	Actions     []Action         `yaml:"actions" validate:"dive"`
	Texts       Texts            `yaml:"texts"`
}

// LegendEntry explains one point of the scoring scale.
type LegendEntry struct {
	Score int    `yaml:"score" validate:"gte=1,lte=5"`
	Label string `yaml:"label" validate:"required"`
}

// Schedule configures the expert-consultation link.
type Schedule struct {
	BaseURL         string `yaml:"base_url" validate:"required,url"`
	MessageTemplate string `yaml:"message_template" validate:"required"`
	ButtonLabel     string `yaml:"button_label"`
}

// Action is a call-to-action button that answers with a notification.
type Action struct {
	ID         string `yaml:"id" validate:"required"`
	Label      string `yaml:"label" validate:"required"`
	Message    string `yaml:"message" validate:"required"`
	Kind       string `yaml:"kind" validate:"oneof=info success"`
	DurationMS int    `yaml:"duration_ms" validate:"gt=0"`
}

// Duration returns how long the action's notification stays visible.
func (a Action) Duration() time.Duration {
	return time.Duration(a.DurationMS) * time.Millisecond
}

// Texts holds fixed copy for the dashboard sections.
type Texts struct {
	Summary          string `yaml:"summary"`
	PositiveTitle    string `yaml:"positive_title"`
	PositiveBody     string `yaml:"positive_body"`
	PositiveEmpty    string `yaml:"positive_empty"`
	ImprovementTitle string `yaml:"improvement_title"`
	ImprovementEmpty string `yaml:"improvement_empty"`
	SolutionLabel    string `yaml:"solution_label"`
	CTATitle         string `yaml:"cta_title"`
	CTABody          string `yaml:"cta_body"`
	DatasetLabel     string `yaml:"dataset_label"`
}

// Action returns the action with the given id.
func (p *Profile) Action(id string) (Action, bool) {
	for _, a := range p.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	filename := name + ".yaml"
	data, err := builtinFS.ReadFile("builtin/" + filename)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: unknown profile %q: %w", name, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: parse %q: %w", name, err)
	}
	if err := validate.Struct(&p); err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: invalid %q: %w", name, err)
	}
	return &p, nil
}

// List returns the names of all available built-in profiles.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Describe renders the profile as human-readable text.
func Describe(p *Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Profile: %s (v%d)\n\n", p.Name, p.Version)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(p.Description))
	}

	if len(p.Levels) > 0 {
		b.WriteString("### Levels\n\n")
		levels := make([]diagnosis.Band, len(p.Levels))
		copy(levels, p.Levels)
		sort.Slice(levels, func(i, j int) bool { return levels[i].Min < levels[j].Min })
		for _, l := range levels {
			fmt.Fprintf(&b, "- %d–%d%%: %s\n", l.Min, l.Max, l.Label)
		}
		b.WriteString("\n")
	}

	if len(p.Legend) > 0 {
		b.WriteString("### Legend\n\n")
		for _, le := range p.Legend {
			fmt.Fprintf(&b, "- %d – %s\n", le.Score, le.Label)
		}
		b.WriteString("\n")
	}

	if len(p.Actions) > 0 {
		b.WriteString("### Actions\n\n")
		for _, a := range p.Actions {
			fmt.Fprintf(&b, "- %s: %q → %s (%dms)\n", a.ID, a.Label, a.Kind, a.DurationMS)
		}
		b.WriteString("\n")
	}

	if p.Schedule.BaseURL != "" {
		fmt.Fprintf(&b, "Scheduling: %s\n", p.Schedule.BaseURL)
	}

	return b.String()
}
