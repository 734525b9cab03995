package payroll

import "context"

type Service interface {
	Calculate(ctx context.Context, req CalculateRequest) (Breakdown, error)
	CalculateAll(ctx context.Context, req CalculateAllRequest) (BulkResult, error)
}
