// Package service contains the business logic layer.
// Services orchestrate operations across repositories, handle transactions,
// and publish events. They do not know about HTTP, gRPC, or transport details.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/event"
	"github.com/mvaleed/personnel/internal/metrics"
	"github.com/mvaleed/personnel/internal/search"
	"github.com/mvaleed/personnel/internal/storage"
	"github.com/mvaleed/personnel/internal/validation"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, hash string) error
}

// Timeouts bound a single unit of work.
type Timeouts struct {
	Query    time.Duration
	Mutation time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{Query: 5 * time.Second, Mutation: 10 * time.Second}
}

// EmployeeService handles employee search and mutations.
type EmployeeService struct {
	employees   storage.EmployeeRepository
	departments storage.DepartmentRepository
	holdings    storage.EmployeeCertificationRepository
	tx          storage.Transactor
	validator   *validation.Pipeline
	hasher      PasswordHasher
	publisher   event.Publisher
	timeouts    Timeouts
}

func NewEmployeeService(
	repos *storage.Repositories,
	tx storage.Transactor,
	validator *validation.Pipeline,
	hasher PasswordHasher,
	publisher event.Publisher,
	timeouts Timeouts,
) *EmployeeService {
	return &EmployeeService{
		employees:   repos.Employees,
		departments: repos.Departments,
		holdings:    repos.EmployeeCertifications,
		tx:          tx,
		validator:   validator,
		hasher:      hasher,
		publisher:   publisher,
		timeouts:    timeouts,
	}
}

func observe(operation string, start time.Time, err *error) {
	metrics.ObserveOperation(operation, *err, time.Since(start))
}

// Search returns one page of employees and the total number matching the
// request's filter. The page query is skipped when nothing matches.
func (s *EmployeeService) Search(ctx context.Context, req domain.SearchRequest) (result *SearchResult, err error) {
	defer observe("search", time.Now(), &err)

	criteria, err := s.validator.ValidateSearch(req)
	if err != nil {
		return nil, err
	}
	plan := search.Build(criteria)

	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Query)
	defer cancel()

	total, err := s.employees.Count(ctx, plan.Filter)
	if err != nil {
		return nil, storeError(err)
	}

	result = &SearchResult{TotalRecords: total, Employees: []EmployeeListItem{}}
	if total == 0 {
		return result, nil
	}

	rows, err := s.employees.Search(ctx, plan)
	if err != nil {
		return nil, storeError(err)
	}
	result.Employees = projectRows(rows)

	return result, nil
}

// Get returns one employee with every certification held.
func (s *EmployeeService) Get(ctx context.Context, id int64) (view *EmployeeView, err error) {
	defer observe("get", time.Now(), &err)

	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Query)
	defer cancel()

	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	department, err := s.departments.GetByID(ctx, employee.DepartmentID)
	if err != nil {
		return nil, domain.NewSystemError(domain.CodeStoreFailure, err)
	}

	held, err := s.holdings.ListByEmployee(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	return projectDetail(domain.EmployeeDetail{
		Employee:       *employee,
		DepartmentName: department.Name,
		Certifications: held,
	}), nil
}

// Create validates form and stores a new employee with its certifications.
func (s *EmployeeService) Create(ctx context.Context, form *domain.EmployeeForm) (id int64, err error) {
	defer observe("create", time.Now(), &err)

	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Mutation)
	defer cancel()

	var created domain.Employee
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.validator.ValidateCreate(ctx, form); err != nil {
			return err
		}

		hash, err := s.hasher.HashPassword(form.Password)
		if err != nil {
			return domain.NewSystemError(domain.CodeSystemError, err)
		}

		now := time.Now().UTC()
		employee := domain.Employee{PasswordHash: hash, CreatedAt: now}
		employee.ApplyForm(form)

		if err := s.employees.Create(ctx, &employee); err != nil {
			return err
		}
		if err := s.insertCertifications(ctx, employee.ID, form.Certifications); err != nil {
			return err
		}

		created = employee
		return nil
	})
	if err != nil {
		return 0, s.mutationError(ctx, err, form, 0)
	}

	_ = s.publisher.Publish(ctx, domain.EmployeeCreatedEvent(&created, len(form.Certifications)))

	return created.ID, nil
}

// Update validates form and overwrites employee id. The stored password is
// kept when form carries none. A nil certification list keeps the stored
// certifications; any other list, empty included, replaces them.
func (s *EmployeeService) Update(ctx context.Context, id int64, form *domain.EmployeeForm) (_ int64, err error) {
	defer observe("update", time.Now(), &err)

	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Mutation)
	defer cancel()

	var updated *domain.Employee
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.validator.ValidateUpdate(ctx, id, form); err != nil {
			return err
		}

		employee, err := s.employees.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if form.HasPassword() {
			hash, err := s.hasher.HashPassword(form.Password)
			if err != nil {
				return domain.NewSystemError(domain.CodeSystemError, err)
			}
			employee.PasswordHash = hash
		}
		employee.ApplyForm(form)

		if err := s.employees.Update(ctx, employee); err != nil {
			return err
		}

		if form.Certifications != nil {
			if err := s.holdings.DeleteByEmployee(ctx, id); err != nil {
				return err
			}
			if err := s.insertCertifications(ctx, id, form.Certifications); err != nil {
				return err
			}
		}

		updated = employee
		return nil
	})
	if err != nil {
		return 0, s.mutationError(ctx, err, form, id)
	}

	_ = s.publisher.Publish(ctx, domain.EmployeeUpdatedEvent(updated, form.HasPassword(), form.Certifications != nil))

	return id, nil
}

// Delete removes an employee and every certification the employee holds.
func (s *EmployeeService) Delete(ctx context.Context, id int64) (_ int64, err error) {
	defer observe("delete", time.Now(), &err)

	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Mutation)
	defer cancel()

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.employees.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.holdings.DeleteByEmployee(ctx, id); err != nil {
			return err
		}
		return s.employees.Delete(ctx, id)
	})
	if err != nil {
		return 0, storeError(err)
	}

	_ = s.publisher.Publish(ctx, domain.EmployeeDeletedEvent(id))

	return id, nil
}

func (s *EmployeeService) insertCertifications(ctx context.Context, employeeID int64, forms []domain.CertificationForm) error {
	for _, f := range forms {
		ec := f.ToEmployeeCertification(employeeID)
		if err := s.holdings.Create(ctx, &ec); err != nil {
			return err
		}
	}
	return nil
}

// mutationError translates a failed create or update. A unique violation
// that slipped past validation is reported against the field now taken.
func (s *EmployeeService) mutationError(ctx context.Context, err error, form *domain.EmployeeForm, selfID int64) error {
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return storeError(err)
	}

	if taken, lookupErr := s.employees.UsernameTaken(ctx, form.Username, selfID); lookupErr == nil && taken {
		return domain.NewDuplicateError(domain.CodeDuplicate, domain.FieldUsername)
	}
	if taken, lookupErr := s.employees.EmailTaken(ctx, form.Email, selfID); lookupErr == nil && taken {
		return domain.NewDuplicateError(domain.CodeDuplicate, domain.FieldEmail)
	}
	return domain.NewDuplicateError(domain.CodeDuplicate)
}
