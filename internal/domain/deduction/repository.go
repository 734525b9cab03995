package deduction

import "context"

type Repository interface {
	Create(ctx context.Context, d Deduction) error
	Update(ctx context.Context, d Deduction) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Deduction, error)
	List(ctx context.Context, filter Filter) ([]Deduction, error)
}
