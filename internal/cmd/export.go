package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"redlytics/internal/cmd/flags"
	"redlytics/internal/export"
	"redlytics/internal/projections"
	"redlytics/internal/query"
)

var exportCmd = &cli.Command{
	Name:  "export",
	Usage: "Export the current result set as csv, json or html",
	Flags: []cli.Flag{
		flags.MinScore, flags.MaxScore, flags.MinComments, flags.MaxComments,
		flags.Sentiment, flags.Search, flags.Live, flags.Subreddit,
		flags.StartDate, flags.EndDate,
		flags.SortBy, flags.Order, flags.SortMethod, flags.TimeFilter,
		flags.Page, flags.PageSize,
		flags.Format, flags.Output,
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

		stats := projections.Summarize(posts)
		now := time.Now().UTC()

		var payload []byte
		switch format := c.String("format"); format {
		case "csv":
			payload, err = export.CSV(posts)
		case "json":
			payload, err = export.JSON(posts, st, stats, now)
		case "html":
			payload, err = export.HTML(posts, st, stats, now)
		default:
			return fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return err
		}

		if path := c.String("output"); path != "" && path != "-" {
			return os.WriteFile(path, payload, 0o644)
		}

		_, err = os.Stdout.Write(payload)
		return err
	},
}
