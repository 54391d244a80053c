package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"redlytics/internal/cmd/flags"
	"redlytics/internal/view"
	"redlytics/pkg/snoo"
)

var filtersCmd = &cli.Command{
	Name:  "filters",
	Usage: "Manage saved filter presets",
	Commands: []*cli.Command{
		filtersListCmd,
		filtersSaveCmd,
		filtersDeleteCmd,
	},
}

var filtersListCmd = &cli.Command{
	Name:  "list",
	Usage: "List saved filters",
	Action: func(ctx context.Context, c *cli.Command) error {
		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		saved, err := e.bridge.SavedFilters(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tFILTERS")
		for _, f := range saved {
			fmt.Fprintf(w, "%d\t%s\t%d\n", f.ID, f.Name, len(f.FilterConfig.Filters))
		}
		return w.Flush()
	},
}

var filtersSaveCmd = &cli.Command{
	Name:      "save",
	Usage:     "Save the current flags as a named preset",
	ArgsUsage: "<name>",
	Flags: []cli.Flag{
		flags.MinScore, flags.MaxScore, flags.MinComments, flags.MaxComments,
		flags.Sentiment, flags.Search, flags.Live, flags.Subreddit,
		flags.StartDate, flags.EndDate,
		flags.SortBy, flags.Order, flags.SortMethod, flags.TimeFilter,
		flags.IncludeComments, flags.AutoRefresh, flags.Interval,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		name := c.Args().First()
		if name == "" {
			return fmt.Errorf("filter name required")
		}

		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		st := viewState(c, e.bridge.Preferences())

		saved, err := e.bridge.SaveFilter(ctx, name, filterConfig(st))
		if err != nil {
			return err
		}

		fmt.Printf("saved filter %q (id %d)\n", saved.Name, saved.ID)
		return nil
	},
}

var filtersDeleteCmd = &cli.Command{
	Name:      "delete",
	Usage:     "Delete a saved filter",
	ArgsUsage: "<id>",
	Action: func(ctx context.Context, c *cli.Command) error {
		id, err := strconv.ParseInt(c.Args().First(), 10, 64)
		if err != nil {
			return fmt.Errorf("filter id must be an integer: %w", err)
		}

		e, err := setup(ctx, c)
		if err != nil {
			return err
		}
		defer e.Close() //nolint:errcheck

		if err := e.bridge.DeleteFilter(ctx, id); err != nil {
			return err
		}

		fmt.Printf("deleted filter %d\n", id)
		return nil
	},
}

// filterConfig serializes the view state into the shape saved filters carry
// on the wire. Empty filter fields are dropped.
func filterConfig(s view.State) snoo.FilterConfig {
	filters := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			filters[key] = value
		}
	}
	set("minScore", s.Filters.MinScore)
	set("maxScore", s.Filters.MaxScore)
	set("minComments", s.Filters.MinComments)
	set("maxComments", s.Filters.MaxComments)
	set("sentiment", s.Filters.Sentiment)
	set("searchTerm", s.Filters.SearchTerm)
	set("subreddit", s.Filters.Subreddit)
	set("startDate", s.Filters.StartDate)
	set("endDate", s.Filters.EndDate)

	return snoo.FilterConfig{
		Filters: filters,
		SearchOptions: map[string]any{
			"searchMethod":           string(s.Search.SearchMethod),
			"sortMethod":             string(s.Search.SortMethod),
			"timeFilter":             string(s.Search.TimeFilter),
			"includeComments":        s.Search.IncludeComments,
			"autoRefresh":            s.Search.AutoRefresh,
			"refreshIntervalSeconds": s.Search.RefreshInterval,
		},
		SortConfig: map[string]string{
			"key":       string(s.Sort.Key),
			"direction": string(s.Sort.Direction),
		},
	}
}
