package projections

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"redlytics/pkg/snoo"
)

// NotAvailable is what every average reads when there is nothing to average.
const NotAvailable = "N/A"

// Summary is the display-ready statistics block. Averages are pre-formatted
// strings so an empty collection can read "N/A" instead of risking NaN.
type Summary struct {
	Count int `json:"count"`

	MeanScore     string `json:"mean_score"`
	MeanComments  string `json:"mean_comments"`
	MeanSentiment string `json:"mean_sentiment"`

	Distribution Distribution `json:"distribution"`

	PositivePct string `json:"positive_pct"`
	NeutralPct  string `json:"neutral_pct"`
	NegativePct string `json:"negative_pct"`

	TopSubreddits []snoo.SubredditCount `json:"top_subreddits"`
}

const topSubreddits = 5

// Summarize computes the summary statistics for the current collection.
// Division by zero cannot occur: the empty collection short-circuits.
func Summarize(posts []snoo.Post) Summary {
	if len(posts) == 0 {
		return Summary{
			MeanScore:     NotAvailable,
			MeanComments:  NotAvailable,
			MeanSentiment: NotAvailable,
			PositivePct:   "0.0",
			NeutralPct:    "0.0",
			NegativePct:   "0.0",
		}
	}

	var score, comments, sentiment float64
	for _, p := range posts {
		score += float64(p.Score)
		comments += float64(p.NumComments)
		sentiment += p.SentimentCompound
	}
	n := float64(len(posts))

	d := Distribute(posts)

	return Summary{
		Count:         len(posts),
		MeanScore:     fmt.Sprintf("%.2f", score/n),
		MeanComments:  fmt.Sprintf("%.2f", comments/n),
		MeanSentiment: fmt.Sprintf("%.2f", sentiment/n),
		Distribution:  d,
		PositivePct:   fmt.Sprintf("%.1f", float64(d.Positive)/n*100),
		NeutralPct:    fmt.Sprintf("%.1f", float64(d.Neutral)/n*100),
		NegativePct:   fmt.Sprintf("%.1f", float64(d.Negative)/n*100),
		TopSubreddits: topSubredditCounts(posts),
	}
}

func topSubredditCounts(posts []snoo.Post) []snoo.SubredditCount {
	counts := lo.CountValuesBy(posts, func(p snoo.Post) string { return p.Subreddit })

	out := lo.MapToSlice(counts, func(name string, count int) snoo.SubredditCount {
		return snoo.SubredditCount{Name: name, Count: count}
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})

	if len(out) > topSubreddits {
		out = out[:topSubreddits]
	}
	return out
}
