package attendance

import (
	"context"
	"time"
)

type Repository interface {
	Upsert(ctx context.Context, record Record) error
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Record, error)
	ListByEmployeeMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	Delete(ctx context.Context, employeeID string, date time.Time) error
}
