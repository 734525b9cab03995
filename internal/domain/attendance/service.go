package attendance

import "context"

type Service interface {
	ClockIn(ctx context.Context, req ClockInRequest) (Record, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (Record, error)
	MarkAbsent(ctx context.Context, req MarkAbsentRequest) (Record, error)
	Update(ctx context.Context, req UpdateRequest) (Record, error)
	Import(ctx context.Context, req ImportRequest) ([]Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	Delete(ctx context.Context, employeeID string, date string) error
	// AutoMarkAbsent records an absence for every active employee who has
	// no attendance record and no leave for the previous calendar day.
	AutoMarkAbsent(ctx context.Context) error
}
