package services

import (
	"context"

	"github.com/unit-solidarite/backend/internal/core/domain"
)

// FundSvcFacade computes the live treasury snapshot. The computation is a
// pure aggregation over the fine and loan ledgers, re-run on every call.
type FundSvcFacade interface {
	ComputeFund(ctx context.Context) (domain.FundSnapshot, error)
}
