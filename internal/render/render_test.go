package render

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/inovally/diagnostico/internal/diagnosis"
	"github.com/inovally/diagnostico/internal/profile"
	"github.com/inovally/diagnostico/internal/report"
)

func buildReport(t *testing.T, set diagnosis.ScoreSet) *report.Report {
	t.Helper()
	p, err := profile.LoadBuiltin(profile.DefaultName)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	r, err := report.Build(report.Options{
		Scores:  set,
		Profile: p,
		Version: "1.0",
		Now:     func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) },
		NewID:   func() string { return "id-1" },
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return r
}

func demo() diagnosis.ScoreSet {
	return diagnosis.ScoreSet{
		{Key: "lgpd", Score: 2},
		{Key: "digitalizacao", Score: 4},
		{Key: "arrecadacao", Score: 3},
		{Key: "transparencia", Score: 4},
		{Key: "participacao", Score: 2},
	}
}

func uniform(score int) diagnosis.ScoreSet {
	set := demo()
	for i := range set {
		set[i].Score = score
	}
	return set
}

func TestMarkdown(t *testing.T) {
	md := Markdown(buildReport(t, demo()))

	checks := []string{
		"# Painel de Diagnóstico",
		"**Gerado em:** 09/03/2026",
		"**Pontuação geral:** 60%",
		"**Nível Intermediário:** Boa base com oportunidades de crescimento",
		"- **1** – Inexistente",
		"- **3** – Parcialmente implementado",
		"- **5** – Maturidade avançada",
		"## Pontos Positivos",
		"### Digitalização de Processos [4/5]",
		"## Áreas para Melhorar",
		"### Lei Geral de Proteção de Dados [2/5]",
		"Consultoria LGPD + capacitação dos servidores",
		"prefill_message=Gostaria%20de%20agendar%20uma%20conversa%20sobre%20Gest%C3%A3o%20de%20Arrecada%C3%A7%C3%A3o",
		"| LGPD | 2/5 |",
	}
	for _, c := range checks {
		if !strings.Contains(md, c) {
			t.Errorf("missing %q in markdown output", c)
		}
	}

	// Improvement areas keep input order.
	i1 := strings.Index(md, "Lei Geral de Proteção de Dados [2/5]")
	i2 := strings.Index(md, "Gestão de Arrecadação [3/5]")
	i3 := strings.Index(md, "Participação Cidadã [2/5]")
	if !(i1 < i2 && i2 < i3) {
		t.Errorf("improvement order wrong: %d %d %d", i1, i2, i3)
	}
}

func TestMarkdownEmptyStates(t *testing.T) {
	allHigh := Markdown(buildReport(t, uniform(5)))
	if !strings.Contains(allHigh, "Parabéns! Todas as áreas estão com boa pontuação.") {
		t.Error("expected improvement empty-state text")
	}
	if !strings.Contains(allHigh, "100%") || !strings.Contains(allHigh, "Nível de Excelência") {
		t.Error("expected 100% excellence level")
	}

	allLow := Markdown(buildReport(t, uniform(1)))
	if !strings.Contains(allLow, "Ainda não há áreas com pontuação alta") {
		t.Error("expected positive empty-state text")
	}
	if !strings.Contains(allLow, "20%") || !strings.Contains(allLow, "Nível Inicial") {
		t.Error("expected 20% initial level")
	}
}

func TestMarkdownWarnings(t *testing.T) {
	r := buildReport(t, demo())
	r.Warnings = []string{"saude: unknown indicator"}
	if !strings.Contains(Markdown(r), "- saude: unknown indicator") {
		t.Error("expected warnings section")
	}
}

func TestMarkdownEscapesUnknownKeys(t *testing.T) {
	set := diagnosis.ScoreSet{
		{Key: "a|b", Score: 2},
		{Key: "linha\n# injetado", Score: 5},
	}
	r := buildReport(t, set)
	r.Warnings = []string{"linha\n# injetado: unknown indicator"}
	md := Markdown(r)

	for _, want := range []string{
		"| a\\|b | 2/5 |",
		"| linha # injetado | 5/5 |",
		"### a\\|b [2/5]",
		"### linha # injetado [5/5]",
		"- linha # injetado: unknown indicator",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	for _, line := range strings.Split(md, "\n") {
		if line == "# injetado" || strings.HasPrefix(line, "# injetado") {
			t.Errorf("key newline leaked into a heading: %q", line)
		}
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, buildReport(t, demo())); err != nil {
		t.Fatal(err)
	}
	var got report.Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Summary.OverallPercentage != 60 {
		t.Errorf("percentage = %d", got.Summary.OverallPercentage)
	}
	if !strings.Contains(buf.String(), "\n  \"tool\"") {
		t.Error("expected indented output")
	}
}

func TestHTMLStatic(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, buildReport(t, demo()), HTMLOptions{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	checks := []string{
		"<title>Painel de Diagnóstico</title>",
		"09/03/2026",
		"60%",
		"Nível Intermediário",
		`<svg id="radar"`,
		`data-action="solutions"`,
		`data-action="report"`,
		"Redirecionando para cat",
		"https://calendly.com/inovally/diagnostico?prefill_message=",
		`data-live="false"`,
	}
	for _, c := range checks {
		if !strings.Contains(out, c) {
			t.Errorf("missing %q in HTML output", c)
		}
	}
	if strings.Count(out, `class="area imp"`) != 3 {
		t.Errorf("expected 3 improvement areas")
	}
	if strings.Count(out, `class="area pos"`) != 2 {
		t.Errorf("expected 2 positive areas")
	}
	if strings.Contains(out, "/api/schedule/") {
		t.Error("static page should link to scheduling URL directly")
	}
}

func TestHTMLLive(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, buildReport(t, demo()), HTMLOptions{Live: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `href="/api/schedule/lgpd"`) {
		t.Error("expected server scheduling link")
	}
	if !strings.Contains(out, `data-live="true"`) {
		t.Error("expected live flag")
	}
}

func TestHTMLEmptyStates(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, buildReport(t, uniform(5)), HTMLOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Parabéns! Todas as áreas estão com boa pontuação.") {
		t.Error("expected improvement empty-state text")
	}
}

func TestRadarPoints(t *testing.T) {
	pts := RadarPoints([]int{5, 5, 5, 5}, 5, 100, 100, 50)
	want := []Point{{100, 50}, {150, 100}, {100, 150}, {50, 100}}
	for i := range want {
		if math.Abs(pts[i].X-want[i].X) > 1e-9 || math.Abs(pts[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("point %d = %+v, want %+v", i, pts[i], want[i])
		}
	}
}

func TestRadarPointsClamp(t *testing.T) {
	pts := RadarPoints([]int{9, -3}, 5, 0, 0, 10)
	if math.Abs(pts[0].Y+10) > 1e-9 {
		t.Errorf("score above max not clamped: %+v", pts[0])
	}
	if math.Abs(pts[1].X) > 1e-9 || math.Abs(pts[1].Y) > 1e-9 {
		t.Errorf("negative score not clamped to center: %+v", pts[1])
	}
}

func TestRadarPointsEmpty(t *testing.T) {
	if got := RadarPoints(nil, 5, 0, 0, 10); len(got) != 0 {
		t.Errorf("expected no points, got %v", got)
	}
}
