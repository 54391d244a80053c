// Package cmd is the redlytics command surface: one-shot commands build the
// pipeline by hand, the long-running watch command wires it through pal.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
	"resty.dev/v3"

	"redlytics/internal/cmd/flags"
	"redlytics/internal/config"
	"redlytics/internal/core"
	"redlytics/internal/metrics"
	"redlytics/internal/session"
	"redlytics/internal/view"
	"redlytics/pkg/clicfg"
	"redlytics/pkg/retry"
	"redlytics/pkg/snoo"
)

const VERSION = "0.1.0"

var cmd = &cli.Command{
	Name:    "redlytics",
	Usage:   "Terminal dashboard for Reddit posts scored for sentiment",
	Version: VERSION,
	Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if err := initLogger(c.String("log-level")); err != nil {
			return ctx, err
		}
		return ctx, nil
	},
	Flags: []cli.Flag{
		flags.APIURL,
		flags.LogLevel,
		flags.Timeout,
		flags.Retries,
	},
	Commands: []*cli.Command{
		postsCmd,
		watchCmd,
		statsCmd,
		trendingCmd,
		commentsCmd,
		exportCmd,
		loginCmd,
		registerCmd,
		logoutCmd,
		whoamiCmd,
		filtersCmd,
	},
}

func Run() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run hosts the long-running services of the watch command.
func run(ctx context.Context, services ...pal.ServiceDef) error {
	return pal.New(services...).
		InjectSlog().
		InitTimeout(2*time.Second).
		HealthCheckTimeout(time.Second).
		ShutdownTimeout(10*time.Second).
		Run(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// env is everything a one-shot command needs: parsed config, a client with
// the fetch policy installed, and a revalidated session.
type env struct {
	cfg    config.Config
	client *snoo.Client
	bridge *session.Bridge
	store  *session.FileStore
}

func setup(ctx context.Context, c *cli.Command) (*env, error) {
	e := &env{}
	if err := clicfg.ParseFlags(c, &e.cfg); err != nil {
		return nil, err
	}

	coreCfg := &core.Config{}
	if err := coreCfg.Init(ctx); err != nil {
		return nil, err
	}

	e.store = &session.FileStore{Env: coreCfg}
	if err := e.store.Init(ctx); err != nil {
		return nil, err
	}

	e.client = newClient(&e.cfg)

	e.bridge = &session.Bridge{
		Logger: slog.Default(),
		Client: e.client,
		Store:  e.store,
	}
	if err := e.bridge.Init(ctx); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *env) Close() error {
	return e.client.Close()
}

func newClient(cfg *config.Config) *snoo.Client {
	return snoo.New(cfg.APIURL, &snoo.Config{
		Policy: retry.Policy{
			Timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
			Attempts: cfg.Retries,
			Backoff:  retry.Exponential(time.Second),
		},
		TransportSettings:   snoo.DefaultConfig.TransportSettings,
		ResponseMiddlewares: []resty.ResponseMiddleware{metrics.Middleware},
		Hooks:               metrics.Hooks(),
	})
}

// viewState builds the effective view state: defaults, then restored
// preferences, then explicit flags on top.
func viewState(c *cli.Command, prefs map[string]any) view.State {
	s := view.ApplyPreferences(view.Default(), prefs)

	f := s.Filters
	f.MinScore = stringFlag(c, "min-score", f.MinScore)
	f.MaxScore = stringFlag(c, "max-score", f.MaxScore)
	f.MinComments = stringFlag(c, "min-comments", f.MinComments)
	f.MaxComments = stringFlag(c, "max-comments", f.MaxComments)
	f.Sentiment = stringFlag(c, "sentiment", f.Sentiment)
	f.SearchTerm = stringFlag(c, "search", f.SearchTerm)
	f.Subreddit = stringFlag(c, "subreddit", f.Subreddit)
	f.StartDate = stringFlag(c, "start-date", f.StartDate)
	f.EndDate = stringFlag(c, "end-date", f.EndDate)
	s = s.SetFilters(f)

	o := s.Search
	if c.IsSet("live") {
		o.SearchMethod = view.SearchDatabase
		if c.Bool("live") {
			o.SearchMethod = view.SearchLive
		}
	}
	if c.IsSet("sort-method") {
		o.SortMethod = view.SortMethod(c.String("sort-method"))
	}
	if c.IsSet("time-filter") {
		o.TimeFilter = view.TimeFilter(c.String("time-filter"))
	}
	if c.IsSet("include-comments") {
		o.IncludeComments = c.Bool("include-comments")
	}
	if c.IsSet("auto-refresh") {
		o.AutoRefresh = c.Bool("auto-refresh")
	}
	if c.IsSet("interval") {
		o.RefreshInterval = int(c.Int("interval"))
	}
	s = s.SetSearch(o)

	sortCfg := s.Sort
	if c.IsSet("sort-by") {
		sortCfg.Key = view.SortKey(c.String("sort-by"))
	}
	if c.IsSet("order") {
		sortCfg.Direction = view.Direction(c.String("order"))
	}
	s = s.SetSort(sortCfg)

	if c.IsSet("page-size") {
		s = s.SetPageSize(int(c.Int("page-size")))
	}

	return s
}

func stringFlag(c *cli.Command, name, fallback string) string {
	if v := c.String(name); v != "" {
		return v
	}
	return fallback
}
