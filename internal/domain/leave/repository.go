package leave

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, record Record) error
	Update(ctx context.Context, record Record) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	// OnLeave returns the leave record covering date for the employee, if any.
	OnLeave(ctx context.Context, employeeID string, date time.Time) (Record, bool, error)
}
