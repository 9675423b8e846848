// Package render produces Markdown, HTML and JSON output from a report.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/inovally/diagnostico/internal/report"
)

// Markdown renders a report as a Markdown document.
func Markdown(r *report.Report) string {
	var b strings.Builder

	// Header
	fmt.Fprintf(&b, "# %s\n\n", r.Header.Title)
	if r.Header.Subtitle != "" {
		fmt.Fprintf(&b, "_%s_\n\n", r.Header.Subtitle)
	}
	fmt.Fprintf(&b, "**Gerado em:** %s\n\n", report.FormatDate(r.GeneratedAt))

	// Summary
	b.WriteString("## Resumo do Diagnóstico\n\n")
	if r.Header.SummaryText != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Header.SummaryText)
	}
	fmt.Fprintf(&b, "**Pontuação geral:** %d%%\n", r.Summary.OverallPercentage)
	fmt.Fprintf(&b, "**%s:** %s\n\n", r.Summary.Level, r.Summary.LevelDescription)

	if len(r.Legend) > 0 {
		b.WriteString("**Legenda de Pontuação:**\n\n")
		for _, le := range r.Legend {
			fmt.Fprintf(&b, "- **%d** – %s\n", le.Score, le.Label)
		}
		b.WriteString("\n")
	}

	b.WriteString("| Indicador | Pontuação |\n|---|---|\n")
	for _, ax := range r.Radar {
		fmt.Fprintf(&b, "| %s | %d/5 |\n", inline(ax.Label), ax.Score)
	}
	b.WriteString("\n")

	// Positive
	fmt.Fprintf(&b, "## %s\n\n", r.Header.PositiveText)
	if len(r.Positive) == 0 {
		fmt.Fprintf(&b, "%s\n\n", r.Header.PositiveNone)
	}
	for _, a := range r.Positive {
		fmt.Fprintf(&b, "### %s [%d/%d]\n\n", inline(a.FullName), a.Score, a.MaxScore)
		if a.Highlight != "" {
			fmt.Fprintf(&b, "%s\n\n", inline(a.Highlight))
		}
	}

	// Improvement
	fmt.Fprintf(&b, "## %s\n\n", r.Header.ImproveText)
	if len(r.Improvement) == 0 {
		fmt.Fprintf(&b, "%s\n\n", r.Header.ImproveNone)
	}
	for _, a := range r.Improvement {
		renderImprovement(&b, r.Header, a)
	}

	// Call to action
	if r.Header.CTATitle != "" {
		fmt.Fprintf(&b, "## %s\n\n", r.Header.CTATitle)
		if r.Header.CTABody != "" {
			fmt.Fprintf(&b, "%s\n\n", r.Header.CTABody)
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("## Avisos\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", inline(w))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderImprovement(b *strings.Builder, h report.Header, a report.Area) {
	fmt.Fprintf(b, "### %s [%d/%d]\n\n", inline(a.FullName), a.Score, a.MaxScore)
	if a.Description != "" {
		fmt.Fprintf(b, "%s\n\n", a.Description)
	}
	if a.Solution != "" {
		label := h.SolutionText
		if label == "" {
			label = "Solução:"
		}
		fmt.Fprintf(b, "**%s** %s\n\n", label, a.Solution)
	}
	if a.ScheduleURL != "" {
		label := strings.TrimSpace(strings.TrimPrefix(h.ScheduleText, "🔗"))
		if label == "" {
			label = "Agendar conversa"
		}
		fmt.Fprintf(b, "[%s](%s)\n\n", label, a.ScheduleURL)
	}
}

// inlineReplacer keeps free-form text (indicator keys from score files)
// on one line and inside its table cell.
var inlineReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

func inline(s string) string {
	return inlineReplacer.Replace(s)
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, r *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("render.JSON: %w", err)
	}
	return nil
}
