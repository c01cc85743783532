package usecase

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

// Dashboard reloads the admin stores in dependency order: conferences, sessions, then speakers.
type Dashboard struct {
	stores []Refresher
}

func NewDashboard(conferences, sessions, speakers Refresher) *Dashboard {
	return &Dashboard{stores: []Refresher{conferences, sessions, speakers}}
}

func (d *Dashboard) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Dashboard.Usecase.Refresh")
	defer span.End()

	for _, store := range d.stores {
		if err := store.Refresh(ctx); err != nil {
			span.RecordError(err)
			return errors.Wrap(err, "Dashboard.Refresh")
		}
	}
	return nil
}

// Watch refreshes on every speaker-update signal until ctx is done.
func (d *Dashboard) Watch(ctx context.Context, trigger Trigger) error {
	return trigger.Subscribe(ctx, func(ctx context.Context) {
		slog.InfoContext(ctx, "speaker update requested", slog.String("module", "dashboard"))
		if err := d.Refresh(ctx); err != nil {
			slog.ErrorContext(ctx, "refresh after trigger failed", slog.String("error", err.Error()), slog.String("module", "dashboard"))
		}
	})
}
