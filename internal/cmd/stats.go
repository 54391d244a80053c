package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"redlytics/internal/cmd/flags"
	"redlytics/internal/dash"
	"redlytics/internal/projections"
	"redlytics/internal/query"
)

const statsWordCount = 20

var statsCmd = &cli.Command{
	Name:  "stats",
	Usage: "Print summary statistics, daily timeline and top posts",
	Flags: []cli.Flag{
		flags.MinScore, flags.MaxScore, flags.MinComments, flags.MaxComments,
		flags.Sentiment, flags.Search, flags.Live, flags.Subreddit,
		flags.StartDate, flags.EndDate,
		flags.SortBy, flags.Order, flags.SortMethod, flags.TimeFilter,
		flags.Page, flags.PageSize,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		st := viewState(c, e.bridge.Preferences())
		desc := query.Build(st, int(c.Int("page")))

		posts, err := e.client.Fetch(ctx, desc.Endpoint, desc.Params)
		if err != nil {
			return err
		}

		out := os.Stdout

		if err := dash.RenderSummary(out, projections.Summarize(posts)); err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Sentiment buckets:")
		for _, b := range projections.DistributeFine(posts) {
			fmt.Fprintf(out, "  %-14s %d\n", b.Bucket, b.Count)
		}

		timeline := projections.Timeline(posts)
		if len(timeline) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Daily timeline:")
			for _, p := range timeline {
				fmt.Fprintf(out, "  %s  +%d =%d -%d  mean %.2f\n",
					p.Day, p.Positive, p.Neutral, p.Negative, p.MeanCompound)
			}
		}

		top := projections.TopEngagement(posts)
		if len(top) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Top posts by score:")
			for _, p := range top {
				fmt.Fprintf(out, "  %6d  %s\n", p.Score, p.Name)
			}
		}

		words := projections.WordCounts(posts, statsWordCount)
		if len(words) > 0 {
			fmt.Fprintln(out)
			if err := dash.RenderWords(out, words); err != nil {
				return err
			}
		}

		return nil
	},
}
