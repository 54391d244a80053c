// Package projections derives chart aggregates, summary statistics and
// word-cloud data from the post collection. Everything here is a pure
// function of its inputs: no I/O, recomputed on every collection change.
package projections

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"redlytics/pkg/snoo"
)

// Sentiment bucket thresholds on the compound score.
const (
	positiveEdge = 0.05
	strongEdge   = 0.2
	extremeEdge  = 0.6
)

type Distribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Distribute partitions posts into the coarse three-bucket distribution.
func Distribute(posts []snoo.Post) Distribution {
	var d Distribution
	for _, p := range posts {
		switch {
		case p.SentimentCompound > positiveEdge:
			d.Positive++
		case p.SentimentCompound < -positiveEdge:
			d.Negative++
		default:
			d.Neutral++
		}
	}
	return d
}

// BucketCount is one slice of the fine-grained distribution.
type BucketCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

var fineBuckets = []string{
	"very-positive", "positive", "slightly-positive",
	"neutral",
	"slightly-negative", "negative", "very-negative",
}

// DistributeFine partitions posts into the seven-bucket variant, ordered
// from very-positive to very-negative.
func DistributeFine(posts []snoo.Post) []BucketCount {
	counts := lo.CountValuesBy(posts, func(p snoo.Post) string {
		return FineBucket(p.SentimentCompound)
	})

	return lo.Map(fineBuckets, func(bucket string, _ int) BucketCount {
		return BucketCount{Bucket: bucket, Count: counts[bucket]}
	})
}

func FineBucket(compound float64) string {
	switch {
	case compound > extremeEdge:
		return "very-positive"
	case compound > strongEdge:
		return "positive"
	case compound > positiveEdge:
		return "slightly-positive"
	case compound >= -positiveEdge:
		return "neutral"
	case compound >= -strongEdge:
		return "slightly-negative"
	case compound >= -extremeEdge:
		return "negative"
	default:
		return "very-negative"
	}
}

// DayPoint is one calendar day of the sentiment-over-time series.
type DayPoint struct {
	Day          string  `json:"day"`
	Positive     int     `json:"positive"`
	Neutral      int     `json:"neutral"`
	Negative     int     `json:"negative"`
	MeanCompound float64 `json:"mean_compound"`
}

// Timeline groups posts by UTC calendar day, chronologically ascending.
func Timeline(posts []snoo.Post) []DayPoint {
	byDay := lo.GroupBy(posts, func(p snoo.Post) string {
		return time.Unix(p.CreatedUTC, 0).UTC().Format("2006-01-02")
	})

	days := lo.Keys(byDay)
	sort.Strings(days)

	return lo.Map(days, func(day string, _ int) DayPoint {
		group := byDay[day]
		d := Distribute(group)

		sum := 0.0
		for _, p := range group {
			sum += p.SentimentCompound
		}

		return DayPoint{
			Day:          day,
			Positive:     d.Positive,
			Neutral:      d.Neutral,
			Negative:     d.Negative,
			MeanCompound: sum / float64(len(group)),
		}
	})
}

// EngagementPoint projects one post onto the engagement-vs-sentiment chart.
type EngagementPoint struct {
	Name       string  `json:"name"`
	Score      int     `json:"score"`
	Comments   int     `json:"comments"`
	Sentiment  float64 `json:"sentiment"`
	Engagement int     `json:"engagement"`
}

const engagementTop = 10

// TopEngagement picks the top-10 posts by score descending.
func TopEngagement(posts []snoo.Post) []EngagementPoint {
	top := append([]snoo.Post(nil), posts...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Score > top[j].Score })
	if len(top) > engagementTop {
		top = top[:engagementTop]
	}

	return lo.Map(top, func(p snoo.Post, _ int) EngagementPoint {
		return EngagementPoint{
			Name:       truncate(p.Title, 20),
			Score:      p.Score,
			Comments:   p.NumComments,
			Sentiment:  p.SentimentCompound,
			Engagement: p.Score + p.NumComments,
		}
	})
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
