// Package notify provides Notifier implementations. The default adapter
// writes intents to the structured log; a mail or messaging backend can be
// swapped in behind the same interface without touching the core.
package notify

import (
	"context"
	"log/slog"

	"github.com/unit-solidarite/backend/internal/core/domain"
	portssvc "github.com/unit-solidarite/backend/internal/core/ports/services"
)

type slogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a Notifier that records every intent on the given
// structured logger.
func NewSlogNotifier(logger *slog.Logger) portssvc.Notifier {
	return &slogNotifier{logger: logger}
}

var _ portssvc.Notifier = (*slogNotifier)(nil)

func (n *slogNotifier) Notify(_ context.Context, intent domain.NotificationIntent) error {
	attrs := []any{
		slog.String("kind", string(intent.Kind)),
		slog.String("recipient_id", intent.RecipientID),
	}
	for k, v := range intent.Data {
		attrs = append(attrs, slog.Any(k, v))
	}
	n.logger.Info("notification", attrs...)
	return nil
}
