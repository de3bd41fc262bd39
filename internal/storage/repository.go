// Package storage defines the repository interfaces for data persistence.
//
// The service layer depends only on these interfaces. PostgreSQL backs them
// in production and an in-memory store backs them in tests and local runs.
package storage

import (
	"context"

	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/search"
)

// EmployeeRepository defines the operations for employee persistence.
type EmployeeRepository interface {
	// Create stores a new employee and sets its ID. Returns ErrAlreadyExists if
	// username or email is taken, ErrConflict if the department is unknown.
	Create(ctx context.Context, employee *domain.Employee) error

	// GetByID retrieves an employee. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)

	// GetByUsername retrieves an employee by login name. Returns ErrNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*domain.Employee, error)

	// Update saves changes to an existing employee, password hash included.
	// Returns ErrNotFound if the employee doesn't exist.
	Update(ctx context.Context, employee *domain.Employee) error

	// Delete removes an employee. Returns ErrNotFound if the employee doesn't exist.
	Delete(ctx context.Context, id int64) error

	// UsernameTaken reports whether another employee uses username.
	// excludeID, when non-zero, is ignored.
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)

	// EmailTaken reports whether another employee uses email.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)

	// Search returns one page of listing rows for plan.
	Search(ctx context.Context, plan search.Plan) ([]domain.EmployeeRow, error)

	// Count returns the number of employees matching filter.
	Count(ctx context.Context, filter search.Filter) (int64, error)
}

// DepartmentRepository defines read access to departments.
type DepartmentRepository interface {
	// GetByID retrieves a department. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id int64) (*domain.Department, error)

	// List returns every department ordered by ID.
	List(ctx context.Context) ([]domain.Department, error)

	DepartmentExists(ctx context.Context, id int64) (bool, error)
}

// CertificationRepository defines read access to certification types.
type CertificationRepository interface {
	// List returns every certification ordered by level, then ID.
	List(ctx context.Context) ([]domain.Certification, error)

	CertificationExists(ctx context.Context, id int64) (bool, error)
}

// EmployeeCertificationRepository defines operations on certification holdings.
type EmployeeCertificationRepository interface {
	// Create stores a holding and sets its ID.
	Create(ctx context.Context, ec *domain.EmployeeCertification) error

	// ListByEmployee returns all holdings of an employee joined with their
	// certification, ordered by level, then certification ID, then holding ID.
	ListByEmployee(ctx context.Context, employeeID int64) ([]domain.HeldCertification, error)

	// DeleteByEmployee removes all holdings of an employee. Idempotent.
	DeleteByEmployee(ctx context.Context, employeeID int64) error
}

// Repositories bundles all repositories together.
// This makes it easy to pass around and inject dependencies.
type Repositories struct {
	Employees              EmployeeRepository
	Departments            DepartmentRepository
	Certifications         CertificationRepository
	EmployeeCertifications EmployeeCertificationRepository
}

// Transactor provides transaction support for operations that need atomicity.
// Not all operations need transactions, so we keep this separate.
type Transactor interface {
	// WithTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
