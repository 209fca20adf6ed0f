package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByPunchCardID(ctx context.Context, punchCardID string) (Employee, error)
	// List returns every employee, newest first.
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, employee Employee) (Employee, error)
	// Delete fails with ErrEmployeeHasRecords while attendance or server room rows reference the employee.
	Delete(ctx context.Context, id string) error
}
