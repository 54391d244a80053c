package cmd

import (
	"context"
	"os"

	"github.com/k0kubun/pp"
	"github.com/urfave/cli/v3"

	"redlytics/internal/cmd/flags"
	"redlytics/internal/dash"
	"redlytics/internal/query"
)

var postsCmd = &cli.Command{
	Name:  "posts",
	Usage: "Fetch one page of posts and print them",
	Flags: []cli.Flag{
		flags.MinScore, flags.MaxScore, flags.MinComments, flags.MaxComments,
		flags.Sentiment, flags.Search, flags.Live, flags.Subreddit,
		flags.StartDate, flags.EndDate,
		flags.SortBy, flags.Order, flags.SortMethod, flags.TimeFilter,
		flags.IncludeComments, flags.Page, flags.PageSize,
		flags.Dump,
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

		if c.Bool("dump") {
			_, err = pp.Println(posts)
			return err
		}

		return dash.RenderPosts(os.Stdout, posts)
	},
}
