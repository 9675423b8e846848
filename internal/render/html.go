package render

import (
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/report"
)

// HTMLOptions controls how the dashboard's buttons behave.
type HTMLOptions struct {
	// Live pages are served by the HTTP server: scheduling goes through
	// /api/schedule and CTA buttons post to /api/actions. Static pages
	// link to the scheduling URL directly and show toasts locally.
	Live bool
}

type htmlArea struct {
	report.Area
	Href string
}

type htmlView struct {
	R           *report.Report
	Date        string
	Radar       radarView
	Positive    []htmlArea
	Improvement []htmlArea
	Live        bool
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(htmlTemplate))

// HTML writes the report as a self-contained dashboard page.
func HTML(w io.Writer, r *report.Report, opts HTMLOptions) error {
	labels := make([]string, len(r.Radar))
	scores := make([]int, len(r.Radar))
	for i, ax := range r.Radar {
		labels[i] = ax.Label
		scores[i] = ax.Score
	}

	v := htmlView{
		R:     r,
		Date:  report.FormatDate(r.GeneratedAt),
		Radar: buildRadar(labels, scores, diagnosis.MaxScore),
		Live:  opts.Live,
	}
	for _, a := range r.Positive {
		v.Positive = append(v.Positive, htmlArea{Area: a})
	}
	for _, a := range r.Improvement {
		href := a.ScheduleURL
		if opts.Live && a.Known {
			href = "/api/schedule/" + url.PathEscape(a.Key)
		}
		v.Improvement = append(v.Improvement, htmlArea{Area: a, Href: href})
	}

	if err := dashboardTmpl.Execute(w, v); err != nil {
		return fmt.Errorf("render.HTML: %w", err)
	}
	return nil
}
