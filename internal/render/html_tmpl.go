package render

const htmlTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.R.Header.Title}}</title>
<style>
:root {
  --bg: #f9fafb; --card: #fff; --fg: #111827; --muted: #6b7280; --border: #e5e7eb;
  --blue: #2563eb; --purple: #9333ea; --green: #22c55e; --red: #ef4444; --amber: #f59e0b;
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: linear-gradient(135deg, var(--bg), #eff6ff); color: var(--fg); line-height: 1.5; min-height: 100vh; }
header { background: var(--card); border-bottom: 1px solid var(--border); }
.wrap { max-width: 1200px; margin: 0 auto; padding: 1.5rem 1rem; }
header .wrap { display: flex; justify-content: space-between; align-items: center; }
header h1 { font-size: 1.5rem; }
header p, .muted { color: var(--muted); font-size: .875rem; }
.card { background: var(--card); border-radius: 16px; box-shadow: 0 20px 40px -12px rgba(0,0,0,.15); padding: 2rem; margin-bottom: 2rem; }
.summary { display: grid; grid-template-columns: 1fr 1fr; gap: 2rem; align-items: center; }
@media (max-width: 900px) { .summary { grid-template-columns: 1fr; } }
.score { display: inline-block; background: linear-gradient(90deg, var(--amber), #d97706); color: #fff; font-weight: 700; font-size: 1.125rem; padding: .5rem 1rem; border-radius: 999px; margin-right: 1rem; }
.level { display: flex; align-items: center; margin: 1.5rem 0; }
.legend { background: var(--bg); border-radius: 8px; padding: 1rem; font-size: .875rem; color: var(--muted); }
.area { border-radius: 12px; padding: 1.5rem; border-left: 4px solid; margin-top: 1rem; }
.area.pos { background: #f0fdf4; border-color: var(--green); }
.area.imp { background: #fef2f2; border-color: var(--red); }
.area h4 { font-size: 1.125rem; display: inline; margin-right: .75rem; }
.badge { color: #fff; font-weight: 700; font-size: .875rem; padding: .25rem .75rem; border-radius: 999px; }
.pos .badge { background: var(--green); }
.imp .badge { background: var(--red); }
.solution { background: var(--card); border-radius: 8px; padding: 1rem; margin: 1rem 0; }
.btn { display: inline-block; border: 0; cursor: pointer; font-weight: 600; text-decoration: none; border-radius: 8px; padding: .75rem 1.5rem; color: #fff; background: linear-gradient(90deg, var(--blue), #1e40af); }
.empty { text-align: center; padding: 2rem 0; color: var(--muted); }
.cta { background: linear-gradient(90deg, var(--blue), var(--purple)); color: #fff; text-align: center; }
.cta .actions { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; max-width: 640px; margin: 2rem auto 0; }
.cta .btn { font-size: 1.125rem; padding: 1rem 2rem; border-radius: 12px; }
.cta .btn.info { background: linear-gradient(90deg, #16a34a, #15803d); }
.cta .btn.success { background: #fff; color: var(--blue); }
.warnings { font-size: .875rem; color: #92400e; background: #fffbeb; }
#toasts { position: fixed; top: 1rem; right: 1rem; z-index: 50; }
.toast { color: #fff; padding: 1rem 1.5rem; border-radius: 8px; box-shadow: 0 10px 15px rgba(0,0,0,.2); margin-bottom: .5rem; }
.toast.info { background: #3b82f6; }
.toast.success { background: var(--green); }
</style>
</head>
<body data-live="{{.Live}}">
<header>
  <div class="wrap">
    <div>
      <h1>{{.R.Header.Title}}</h1>
      {{with .R.Header.Subtitle}}<p>{{.}}</p>{{end}}
    </div>
    <div style="text-align:right">
      <p>Gerado em</p>
      <strong>{{.Date}}</strong>
    </div>
  </div>
</header>

<main class="wrap">
<section class="card summary" id="summary">
  <div>
    <h2>Resumo do Diagnóstico</h2>
    {{with .R.Header.SummaryText}}<p class="muted">{{.}}</p>{{end}}
    <div class="level">
      <span class="score">{{.R.Summary.OverallPercentage}}%</span>
      <div>
        <strong>{{.R.Summary.Level}}</strong>
        <p class="muted">{{.R.Summary.LevelDescription}}</p>
      </div>
    </div>
    {{if .R.Legend}}
    <div class="legend">
      <p><strong>Legenda de Pontuação:</strong></p>
      {{range .R.Legend}}<p><strong>{{.Score}}</strong> – {{.Label}}</p>{{end}}
    </div>
    {{end}}
  </div>
  <div>
    <svg id="radar" viewBox="0 0 {{.Radar.Size}} {{.Radar.Size}}" width="100%" role="img" aria-label="{{.R.Header.Subject}}">
      {{range .Radar.Rings}}<polygon points="{{.}}" fill="none" stroke="rgba(0,0,0,0.1)"/>{{end}}
      {{$c := .Radar.Center}}
      {{range .Radar.Axes}}
      <line x1="{{$c}}" y1="{{$c}}" x2="{{printf "%.1f" .X}}" y2="{{printf "%.1f" .Y}}" stroke="rgba(0,0,0,0.1)"/>
      <text x="{{printf "%.1f" .LabelX}}" y="{{printf "%.1f" .LabelY}}" text-anchor="{{.Anchor}}" font-size="14" font-weight="bold" fill="#374151">{{.Label}}</text>
      {{end}}
      {{range .Radar.Ticks}}<text x="{{$c}}" y="{{printf "%.1f" .Y}}" font-size="12" fill="#6b7280" text-anchor="middle">{{.Label}}</text>{{end}}
      <polygon points="{{.Radar.Polygon}}" fill="rgba(59,130,246,0.2)" stroke="rgba(59,130,246,1)" stroke-width="3"/>
      {{range .Radar.Vertices}}<circle cx="{{printf "%.1f" .X}}" cy="{{printf "%.1f" .Y}}" r="8" fill="rgba(59,130,246,1)" stroke="#fff" stroke-width="3"/>{{end}}
    </svg>
  </div>
</section>

<section class="card" id="positive">
  <h3>{{.R.Header.PositiveText}}</h3>
  {{range .Positive}}
  <div class="area pos" data-key="{{.Key}}">
    <h4>{{.FullName}}</h4><span class="badge">{{.Score}}/{{.MaxScore}}</span>
    {{with .Highlight}}<p>{{.}}</p>{{end}}
  </div>
  {{else}}
  <div class="empty"><p>{{.R.Header.PositiveNone}}</p></div>
  {{end}}
</section>

<section class="card" id="improvement">
  <h3>{{.R.Header.ImproveText}}</h3>
  {{$sol := .R.Header.SolutionText}}{{$sched := .R.Header.ScheduleText}}
  {{range .Improvement}}
  <div class="area imp" data-key="{{.Key}}">
    <h4>{{.FullName}}</h4><span class="badge">{{.Score}}/{{.MaxScore}}</span>
    {{with .Description}}<p>{{.}}</p>{{end}}
    {{if .Solution}}
    <div class="solution">
      <p><strong>{{$sol}}</strong></p>
      <p>{{.Solution}}</p>
    </div>
    {{end}}
    {{if .Href}}<a class="btn" href="{{.Href}}" target="_blank" rel="noopener">{{$sched}}</a>{{end}}
  </div>
  {{else}}
  <div class="empty"><p>{{.R.Header.ImproveNone}}</p></div>
  {{end}}
</section>

{{if .R.Header.CTATitle}}
<section class="card cta" id="cta">
  <h3>{{.R.Header.CTATitle}}</h3>
  {{with .R.Header.CTABody}}<p>{{.}}</p>{{end}}
  <div class="actions">
    {{range .R.Actions}}<button class="btn {{.Kind}}" data-action="{{.ID}}">{{.Label}}</button>{{end}}
  </div>
</section>
{{end}}

{{if .R.Warnings}}
<section class="card warnings" id="warnings">
  {{range .R.Warnings}}<p>{{.}}</p>{{end}}
</section>
{{end}}
</main>

<div id="toasts"></div>

<script>
var actions = {{.R.Actions}} || [];
var live = document.body.getAttribute("data-live") === "true";

function toast(n) {
  var el = document.createElement("div");
  el.className = "toast " + n.kind;
  el.textContent = n.message;
  document.getElementById("toasts").appendChild(el);
  setTimeout(function () { el.remove(); }, n.duration_ms);
}

function localAction(id) {
  for (var i = 0; i < actions.length; i++) {
    if (actions[i].id === id) return actions[i];
  }
  return null;
}

function trigger(id) {
  var fallback = localAction(id);
  if (!live) { if (fallback) toast(fallback); return; }
  fetch("/api/actions/" + encodeURIComponent(id), {method: "POST"})
    .then(function (r) { if (!r.ok) throw new Error(r.status); return r.json(); })
    .then(toast)
    .catch(function () { if (fallback) toast(fallback); });
}

document.querySelectorAll("[data-action]").forEach(function (b) {
  b.addEventListener("click", function () { trigger(b.getAttribute("data-action")); });
});
</script>
</body>
</html>
`
