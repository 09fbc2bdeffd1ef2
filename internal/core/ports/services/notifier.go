package services

import (
	"context"

	"github.com/unit-solidarite/backend/internal/core/domain"
)

// Notifier delivers notification intents to members. Implementations are
// fire-and-forget from the core's perspective: a returned error is logged by
// the caller and never propagated into a ledger mutation failure.
type Notifier interface {
	Notify(ctx context.Context, intent domain.NotificationIntent) error
}
