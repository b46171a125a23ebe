// Package service provides application business logic (auth, profiles, posts).
package service

import (
	"context"
	"log/slog"

	"devconnect/internal/events"
)

// publish delivers e without failing the calling operation.
func publish(ctx context.Context, p events.Publisher, e events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "event publish failed",
			slog.String("event", e.Type),
			slog.String("error", err.Error()),
		)
	}
}
