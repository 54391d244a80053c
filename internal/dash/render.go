package dash

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"redlytics/internal/projections"
	"redlytics/pkg/snoo"
)

// Render writes the post table plus its statistics block.
func Render(w io.Writer, posts []snoo.Post, page int, hasMore bool) error {
	if err := RenderPosts(w, posts); err != nil {
		return err
	}
	if err := RenderSummary(w, projections.Summarize(posts)); err != nil {
		return err
	}

	more := ""
	if hasMore {
		more = " (more available)"
	}
	_, err := fmt.Fprintf(w, "page %d, %d posts%s\n", page, len(posts), more)
	return err
}

func RenderPosts(w io.Writer, posts []snoo.Post) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "CREATED\tSUBREDDIT\tSCORE\tCOMMENTS\tSENTIMENT\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\tr/%s\t%d\t%d\t%+.3f\t%s\n",
			time.Unix(p.CreatedUTC, 0).UTC().Format("2006-01-02 15:04"),
			p.Subreddit,
			p.Score,
			p.NumComments,
			p.SentimentCompound,
			clip(p.Title, 70),
		)
	}

	return tw.Flush()
}

func RenderSummary(w io.Writer, s projections.Summary) error {
	_, err := fmt.Fprintf(w,
		"\nposts: %d  mean score: %s  mean comments: %s  mean sentiment: %s\n"+
			"positive: %s%%  neutral: %s%%  negative: %s%%\n",
		s.Count, s.MeanScore, s.MeanComments, s.MeanSentiment,
		s.PositivePct, s.NeutralPct, s.NegativePct,
	)
	if err != nil {
		return err
	}

	if len(s.TopSubreddits) > 0 {
		fmt.Fprint(w, "top subreddits:")
		for _, sub := range s.TopSubreddits {
			fmt.Fprintf(w, " r/%s(%d)", sub.Name, sub.Count)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func RenderComments(w io.Writer, comments []snoo.Comment) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "AUTHOR\tSCORE\tSENTIMENT\tBODY")
	for _, c := range comments {
		fmt.Fprintf(tw, "%s\t%d\t%+.3f\t%s\n",
			c.Author, c.Score, c.SentimentCompound, clip(c.Body, 80))
	}

	return tw.Flush()
}

func RenderCounts(w io.Writer, header string, counts []snoo.SubredditCount) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\tCOUNT\n", header)
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.Count)
	}

	return tw.Flush()
}

func RenderWords(w io.Writer, words []snoo.WordCount) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "WORD\tCOUNT")
	for _, word := range words {
		fmt.Fprintf(tw, "%s\t%d\n", word.Text, word.Value)
	}

	return tw.Flush()
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
