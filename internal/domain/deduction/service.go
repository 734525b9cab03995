package deduction

import "context"

type Service interface {
	Create(ctx context.Context, req CreateDeductionRequest) (Deduction, error)
	Update(ctx context.Context, req UpdateDeductionRequest) (Deduction, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Deduction, error)
}
