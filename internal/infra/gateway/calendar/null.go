package calendar

import (
	"context"
	"log/slog"
	"time"

	"coach-booking-api/internal/usecase/commands"
	"coach-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// NullGateway stands in when no calendar credentials are configured: local
// development and tests. Selected once at bootstrap, never as a silent
// runtime fallback.
type NullGateway struct{}

func NewNullGateway() *NullGateway {
	slog.Warn("calendar credentials not configured, using null calendar gateway")
	return &NullGateway{}
}

func (g *NullGateway) CreateEvent(_ context.Context, details commands.EventDetails) (string, error) {
	ref := "mock-event-" + uuid.NewString()
	slog.Info("null calendar: event created", "event_ref", ref, "start", details.Start)
	return ref, nil
}

func (g *NullGateway) UpdateEvent(_ context.Context, eventRef string, newStart time.Time, _ time.Duration) error {
	slog.Info("null calendar: event updated", "event_ref", eventRef, "start", newStart)
	return nil
}

func (g *NullGateway) CancelEvent(_ context.Context, eventRef, reason string) error {
	slog.Info("null calendar: event cancelled", "event_ref", eventRef, "reason", reason)
	return nil
}

func (g *NullGateway) BusyIntervals(_ context.Context, _, _ time.Time) ([]queries.BusyInterval, error) {
	return nil, nil
}
