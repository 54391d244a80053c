package flags

import (
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var APIURL = &cli.StringFlag{
	Name:    "api-url",
	Aliases: []string{"u"},
	Usage:   "Base URL of the sentiment dashboard API",
	Value:   "http://localhost:5000",
	Sources: cli.EnvVars("REDLYTICS_API_URL"),
}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("REDLYTICS_LOG_LEVEL"),
}

var Timeout = &cli.IntFlag{
	Name:    "timeout",
	Usage:   "Per-attempt request timeout in seconds",
	Value:   10,
	Sources: cli.EnvVars("REDLYTICS_TIMEOUT"),
}

var Retries = &cli.IntFlag{
	Name:    "retries",
	Usage:   "Retry budget for transient request failures",
	Value:   3,
	Sources: cli.EnvVars("REDLYTICS_RETRIES"),
}

var PageSize = &cli.IntFlag{
	Name:    "page-size",
	Usage:   "Posts fetched per page",
	Value:   25,
	Sources: cli.EnvVars("REDLYTICS_PAGE_SIZE"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "Listen address of the Prometheus /metrics endpoint",
	Value:   ":9290",
	Sources: cli.EnvVars("REDLYTICS_METRICS_ADDR"),
}

// Filter flags shared by posts, stats, export and watch.

var MinScore = &cli.StringFlag{Name: "min-score", Usage: "Minimum post score"}
var MaxScore = &cli.StringFlag{Name: "max-score", Usage: "Maximum post score"}
var MinComments = &cli.StringFlag{Name: "min-comments", Usage: "Minimum comment count"}
var MaxComments = &cli.StringFlag{Name: "max-comments", Usage: "Maximum comment count"}

var Sentiment = &cli.StringFlag{
	Name:  "sentiment",
	Usage: "Sentiment bucket (positive, neutral, negative, very-positive, ...)",
}

var Search = &cli.StringFlag{
	Name:    "search",
	Aliases: []string{"q"},
	Usage:   "Search term",
}

var Live = &cli.BoolFlag{
	Name:  "live",
	Usage: "Search live Reddit through the proxy instead of the database",
}

var Subreddit = &cli.StringFlag{Name: "subreddit", Aliases: []string{"r"}, Usage: "Restrict to one subreddit"}
var StartDate = &cli.StringFlag{Name: "start-date", Usage: "Start date (YYYY-MM-DD)"}
var EndDate = &cli.StringFlag{Name: "end-date", Usage: "End date, inclusive (YYYY-MM-DD)"}

var SortBy = &cli.StringFlag{
	Name:  "sort-by",
	Usage: "Sort key (created_utc, score, num_comments, sentiment_compound, title, subreddit, author)",
	Value: "created_utc",
}

var Order = &cli.StringFlag{
	Name:  "order",
	Usage: "Sort direction (asc, desc)",
	Value: "desc",
}

var SortMethod = &cli.StringFlag{
	Name:  "sort-method",
	Usage: "Live search sort (relevance, hot, new, top)",
	Value: "relevance",
}

var TimeFilter = &cli.StringFlag{
	Name:  "time-filter",
	Usage: "Live search time window (hour, day, week, month, year, all)",
	Value: "all",
}

var IncludeComments = &cli.BoolFlag{
	Name:  "include-comments",
	Usage: "Ask the live search to score comments too",
}

var Page = &cli.IntFlag{
	Name:  "page",
	Usage: "Page to fetch (listing mode)",
	Value: 1,
}

var AutoRefresh = &cli.BoolFlag{
	Name:  "auto-refresh",
	Usage: "Re-fetch live results on an interval while watching",
	Value: true,
}

var Interval = &cli.IntFlag{
	Name:  "interval",
	Usage: "Auto-refresh interval in seconds",
	Value: 30,
}

var ForceRefresh = &cli.BoolFlag{
	Name:  "force-refresh",
	Usage: "Refresh even when output is not a terminal",
}

var Dump = &cli.BoolFlag{
	Name:  "dump",
	Usage: "Pretty-print raw post objects instead of the table",
}

var Format = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Usage:   "Export format (csv, json, html)",
	Value:   "csv",
}

var Output = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "Output file, - for stdout",
	Value:   "-",
}

var Count = &cli.IntFlag{
	Name:  "count",
	Usage: "How many items to show",
	Value: 25,
}
