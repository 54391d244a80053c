package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"redlytics/internal/cmd/flags"
	"redlytics/internal/dash"
	"redlytics/pkg/snoo"
)

var trendingCmd = &cli.Command{
	Name:  "trending",
	Usage: "Show popular subreddits and the server-side word cloud",
	Flags: []cli.Flag{flags.Count},
	Action: func(ctx context.Context, c *cli.Command) error {
		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		count := int(c.Int("count"))

		subreddits, err := e.client.PopularSubreddits(ctx)
		if err != nil {
			return err
		}

		if err := dash.RenderCounts(os.Stdout, "SUBREDDIT", limit(subreddits, count)); err != nil {
			return err
		}

		words, err := e.client.WordCloud(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout)
		return dash.RenderWords(os.Stdout, limit(words, count))
	},
}

func limit[T snoo.SubredditCount | snoo.WordCount](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
