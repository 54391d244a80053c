package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"redlytics/internal/cmd/flags"
	"redlytics/internal/core"
	"redlytics/internal/dash"
	"redlytics/internal/metrics"
	"redlytics/internal/refresh"
)

var watchCmd = &cli.Command{
	Name:  "watch",
	Usage: "Run the dashboard and keep it fresh until interrupted",
	Flags: []cli.Flag{
		flags.MinScore, flags.MaxScore, flags.MinComments, flags.MaxComments,
		flags.Sentiment, flags.Search, flags.Live, flags.Subreddit,
		flags.StartDate, flags.EndDate,
		flags.SortBy, flags.Order, flags.SortMethod, flags.TimeFilter,
		flags.IncludeComments, flags.PageSize,
		flags.AutoRefresh, flags.Interval, flags.ForceRefresh,
		flags.MetricsAddr,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		// The session is established before pal takes over: one-shot
		// commands and watch share the same bridge bootstrap.
		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		st := viewState(c, e.bridge.Preferences())

		var visibility core.Visibility = &refresh.TTYVisibility{Out: os.Stdout}
		if c.Bool("force-refresh") {
			visibility = refresh.StaticVisibility(true)
		}

		return run(ctx,
			pal.Provide(&e.cfg),
			pal.Provide(e.client),
			pal.Provide[core.Visibility](visibility),
			pal.Provide(&dash.Dashboard{Initial: st}),
			pal.Provide(&refresh.Refresher{}),
			pal.Provide(&metrics.Server{}),
		)
	},
}
