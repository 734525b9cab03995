package employee

import "context"

// Repository defines data access methods for employees. Deactivation is a
// status flip, never a physical delete; Rename is the only way to change an
// employee id and must cascade to attendance, leave, and deduction records.
type Repository interface {
	Create(ctx context.Context, emp Employee) error
	GetByID(ctx context.Context, id string) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	Rename(ctx context.Context, oldID, newID string) error
	List(ctx context.Context, filter Filter) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
