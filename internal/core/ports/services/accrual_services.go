package services

import (
	"context"
	"time"
)

// AccrualSvcFacade hosts the time-driven business checks invoked by the
// scheduler. The scheduler owns the timers; these methods own the rules.
type AccrualSvcFacade interface {
	// AccruePenalties sweeps active overdue loans as of the given day, raising
	// each loan's penalty high-water mark and posting delta fines. A failure
	// on one loan is isolated; the sweep continues. Returns the number of
	// loans penalized.
	AccruePenalties(ctx context.Context, today time.Time) (int, error)

	// NotifyPendingLoans emits the deferred creation notification intents for
	// loans not yet notified and marks them. Returns the number of loans
	// notified.
	NotifyPendingLoans(ctx context.Context) (int, error)
}
