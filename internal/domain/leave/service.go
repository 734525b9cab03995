package leave

import "context"

type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (Record, error)
	Update(ctx context.Context, req UpdateLeaveRequest) (Record, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
}
