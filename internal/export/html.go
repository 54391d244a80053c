package export

import (
	"bytes"
	"html/template"
	"time"

	"redlytics/internal/projections"
	"redlytics/internal/view"
	"redlytics/pkg/snoo"
)

// htmlMaxPosts caps the report table; full data belongs in CSV/JSON.
const htmlMaxPosts = 50

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Reddit Sentiment Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
th { background: #eee; }
.stats { margin-bottom: 1.5em; }
</style>
</head>
<body>
<h1>Reddit Sentiment Report</h1>
<p>Generated {{.GeneratedAt}}</p>
<div class="stats">
<h2>Statistics</h2>
<ul>
<li>Posts: {{.Stats.Count}}</li>
<li>Mean score: {{.Stats.MeanScore}}</li>
<li>Mean comments: {{.Stats.MeanComments}}</li>
<li>Mean sentiment: {{.Stats.MeanSentiment}}</li>
<li>Positive: {{.Stats.PositivePct}}% / Neutral: {{.Stats.NeutralPct}}% / Negative: {{.Stats.NegativePct}}%</li>
</ul>
</div>
<h2>Posts{{if .Truncated}} (first {{len .Posts}}){{end}}</h2>
<table>
<tr><th>Title</th><th>Subreddit</th><th>Author</th><th>Score</th><th>Comments</th><th>Sentiment</th></tr>
{{range .Posts}}<tr><td>{{.Title}}</td><td>{{.Subreddit}}</td><td>{{.Author}}</td><td>{{.Score}}</td><td>{{.NumComments}}</td><td>{{printf "%.3f" .SentimentCompound}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type htmlData struct {
	GeneratedAt string
	Stats       projections.Summary
	Posts       []snoo.Post
	Truncated   bool
}

// HTML renders a self-contained report with the statistics block and a
// table of at most 50 posts.
func HTML(posts []snoo.Post, _ view.State, stats projections.Summary, now time.Time) ([]byte, error) {
	truncated := len(posts) > htmlMaxPosts
	if truncated {
		posts = posts[:htmlMaxPosts]
	}

	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, htmlData{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Stats:       stats,
		Posts:       posts,
		Truncated:   truncated,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
