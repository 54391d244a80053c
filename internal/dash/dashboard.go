// Package dash ties the pipeline together for watch mode: it owns the view
// state, issues sequence-guarded fetches, supersedes stale in-flight
// requests and re-renders whenever a response is actually applied.
package dash

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"redlytics/internal/query"
	"redlytics/internal/reconcile"
	"redlytics/internal/view"
	"redlytics/pkg/async"
	"redlytics/pkg/snoo"
)

var (
	fetchesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redlytics_fetches_issued_total",
		Help: "The total number of fetches issued, by mode",
	}, []string{"mode"})

	responsesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redlytics_responses_applied_total",
		Help: "The total number of fetch responses applied to the collection",
	})

	responsesSuperseded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redlytics_responses_superseded_total",
		Help: "The total number of fetch responses dropped by the sequence guard",
	})

	fetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redlytics_fetch_failures_total",
		Help: "The total number of terminally failed fetches",
	})
)

type Dashboard struct {
	Logger *slog.Logger
	Client *snoo.Client

	// Initial is the view state the watch command was started with.
	Initial view.State

	// Out receives the rendered dashboard; defaults to stdout.
	Out io.Writer

	collection *reconcile.Collection

	mu       sync.Mutex
	state    view.State
	inflight *async.JobHandle[int]
}

func (d *Dashboard) Init(_ context.Context) error {
	d.Logger = d.Logger.With("component", "dash.Dashboard")
	if d.Out == nil {
		d.Out = os.Stdout
	}
	d.state = d.Initial
	d.collection = reconcile.NewCollection(d.state.PageSize)
	return nil
}

func (d *Dashboard) Run(ctx context.Context) error {
	d.Refresh()
	<-ctx.Done()
	return nil
}

func (d *Dashboard) Shutdown(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inflight != nil {
		d.inflight.Stop()
	}
	return nil
}

func (d *Dashboard) State() view.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dashboard) Collection() *reconcile.Collection {
	return d.collection
}

// ShouldAutoRefresh gates the background timer: only live result sets are
// worth re-fetching on a schedule.
func (d *Dashboard) ShouldAutoRefresh() bool {
	s := d.State()
	return s.Search.AutoRefresh && s.Live()
}

// Refresh issues a Reset fetch for page 1, superseding any fetch still in
// flight.
func (d *Dashboard) Refresh() {
	d.trigger(reconcile.Reset, 1)
}

// LoadMore issues an Append fetch for the next page. It shares the sequence
// guard with Refresh, so a doubled trigger cannot apply a page twice.
func (d *Dashboard) LoadMore() {
	d.trigger(reconcile.Append, d.collection.Page()+1)
}

// Resort applies a sort change: in memory for live result sets, via a fresh
// Reset fetch for listing queries.
func (d *Dashboard) Resort(cfg view.SortConfig) {
	d.mu.Lock()
	d.state = d.state.SetSort(cfg)
	d.mu.Unlock()

	if d.collection.Resort(cfg) {
		d.Refresh()
		return
	}
	d.render()
}

func (d *Dashboard) trigger(mode reconcile.Mode, page int) {
	d.mu.Lock()
	state := d.state
	prev := d.inflight
	d.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}

	desc := query.Build(state, page)
	seq := d.collection.NextSeq()
	fetchesIssued.WithLabelValues(modeLabel(mode)).Inc()

	job := async.Job(func(ctx context.Context) (int, error) {
		posts, err := d.Client.Fetch(ctx, desc.Endpoint, desc.Params)
		if err != nil {
			fetchFailures.Inc()
			// The collection keeps its last known good contents.
			d.Logger.Error("fetch failed", "endpoint", desc.Endpoint, "error", err)
			return 0, err
		}

		if !d.collection.Apply(seq, mode, posts, desc.Live) {
			responsesSuperseded.Inc()
			return len(posts), nil
		}

		responsesApplied.Inc()
		d.render()
		return len(posts), nil
	})

	d.mu.Lock()
	d.inflight = job
	d.mu.Unlock()
}

func (d *Dashboard) render() {
	posts := d.collection.Posts()

	d.mu.Lock()
	out := d.Out
	d.mu.Unlock()

	if err := Render(out, posts, d.collection.Page(), d.collection.HasMore()); err != nil {
		d.Logger.Error("render failed", "error", err)
	}
}

func modeLabel(mode reconcile.Mode) string {
	if mode == reconcile.Append {
		return "append"
	}
	return "reset"
}
