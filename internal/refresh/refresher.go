// Package refresh drives the auto-refresh timer for live result sets.
// Ticks flow through a pipeline that drops them while the output is not
// visible or auto-refresh does not apply, and turns the rest into Reset
// fetches. The dashboard's sequence guard makes a tick racing a user-driven
// fetch harmless.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"redlytics/internal/core"
	"redlytics/internal/dash"
)

type Refresher struct {
	Logger     *slog.Logger
	Dash       *dash.Dashboard
	Visibility core.Visibility

	interval time.Duration
}

func (r *Refresher) Init(_ context.Context) error {
	r.Logger = r.Logger.With("component", "refresh.Refresher")

	seconds := r.Dash.State().Search.RefreshInterval
	if seconds <= 0 {
		seconds = 30
	}
	r.interval = time.Duration(seconds) * time.Second
	return nil
}

func (r *Refresher) Run(ctx context.Context) error {
	if !r.Dash.State().Search.AutoRefresh {
		r.Logger.Debug("auto-refresh disabled")
		<-ctx.Done()
		return nil
	}

	ticks := make(chan pips.D[time.Time])
	go func() {
		defer close(ticks)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				ticks <- pips.NewD(t)
			}
		}
	}()

	r.Logger.Info("auto-refresh running", "interval", r.interval)

	return pips.New[time.Time, any]().
		Then(apply.Filter(func(_ context.Context, _ time.Time) (bool, error) {
			return r.Visibility.Visible() && r.Dash.ShouldAutoRefresh(), nil
		})).
		Then(apply.Each(func(_ context.Context, _ time.Time) error {
			r.Logger.Debug("auto-refresh tick")
			r.Dash.Refresh()
			return nil
		})).
		Run(ctx, ticks).
		Wait(ctx)
}
