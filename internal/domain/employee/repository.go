package employee

import "context"

// EmployeeRepository reads the employee directory. The directory is owned
// by an external service; this side only queries it.
type EmployeeRepository interface {
	// GetByCode retrieves an employee by the business key terminals punch with.
	GetByCode(ctx context.Context, code string) (Employee, error)

	// GetByCodes retrieves a batch of employees keyed by employee code.
	// Codes with no matching employee are simply absent from the result.
	GetByCodes(ctx context.Context, codes []string) (map[string]Employee, error)

	// ListActive retrieves all active employees.
	ListActive(ctx context.Context) ([]Employee, error)
}
