package employee

import "context"

// Service defines business logic for employee lifecycle operations.
type Service interface {
	// Register creates a new active employee.
	Register(ctx context.Context, req RegisterEmployeeRequest) (Employee, error)

	// Update applies partial field changes to an existing employee.
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)

	// Deactivate flips the employee to inactive with a reason. The record is
	// kept forever.
	Deactivate(ctx context.Context, req DeactivateEmployeeRequest) (Employee, error)

	// Rename changes the employee id and cascades to all dependent records.
	Rename(ctx context.Context, req RenameEmployeeRequest) (Employee, error)

	Get(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, error)
}
