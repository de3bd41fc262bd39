package validation

import (
	"context"

	"github.com/mvaleed/personnel/internal/domain"
)

// EmployeeLookup answers uniqueness questions against stored employees.
// excludeID, when non-zero, removes that employee from consideration.
type EmployeeLookup interface {
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

// DepartmentLookup answers whether a department exists.
type DepartmentLookup interface {
	DepartmentExists(ctx context.Context, id int64) (bool, error)
}

// CertificationLookup answers whether a certification exists.
type CertificationLookup interface {
	CertificationExists(ctx context.Context, id int64) (bool, error)
}

// Pipeline runs the field checks and store-backed checks for an operation in
// a fixed order and stops at the first violation.
type Pipeline struct {
	fields         *Fields
	employees      EmployeeLookup
	departments    DepartmentLookup
	certifications CertificationLookup
}

// NewPipeline wires field rules to the lookups used for uniqueness and
// reference checks.
func NewPipeline(
	fields *Fields,
	employees EmployeeLookup,
	departments DepartmentLookup,
	certifications CertificationLookup,
) *Pipeline {
	return &Pipeline{
		fields:         fields,
		employees:      employees,
		departments:    departments,
		certifications: certifications,
	}
}

// ValidateCreate checks a form for a new employee.
func (p *Pipeline) ValidateCreate(ctx context.Context, form *domain.EmployeeForm) error {
	return p.validateEmployee(ctx, form, 0, true)
}

// ValidateUpdate checks a form replacing employee id. Uniqueness checks
// ignore the employee's own row.
func (p *Pipeline) ValidateUpdate(ctx context.Context, id int64, form *domain.EmployeeForm) error {
	return p.validateEmployee(ctx, form, id, false)
}

type step func() error

func runSteps(steps ...step) error {
	for _, s := range steps {
		if err := s(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) validateEmployee(ctx context.Context, form *domain.EmployeeForm, selfID int64, creating bool) error {
	return runSteps(
		func() error { return p.username(ctx, form.Username, selfID) },
		func() error { return p.fields.FullName(form.FullName) },
		func() error { return p.fields.PhoneticName(form.PhoneticName) },
		func() error { return p.fields.Date(form.BirthDate, domain.FieldBirthDate) },
		func() error { return p.email(ctx, form.Email, selfID) },
		func() error { return p.fields.Phone(form.Phone) },
		func() error { return p.fields.Password(form.Password, creating) },
		func() error { return p.department(ctx, form.DepartmentID) },
		func() error { return p.certificationList(ctx, form.Certifications) },
	)
}

func (p *Pipeline) username(ctx context.Context, username string, selfID int64) error {
	if err := p.fields.Username(username); err != nil {
		return err
	}
	taken, err := p.employees.UsernameTaken(ctx, username, selfID)
	if err != nil {
		return domain.NewSystemError(domain.CodeStoreFailure, err)
	}
	if taken {
		return domain.NewDuplicateError(domain.CodeDuplicate, domain.FieldUsername)
	}
	return nil
}

func (p *Pipeline) email(ctx context.Context, email string, selfID int64) error {
	if err := p.fields.Email(email); err != nil {
		return err
	}
	taken, err := p.employees.EmailTaken(ctx, email, selfID)
	if err != nil {
		return domain.NewSystemError(domain.CodeStoreFailure, err)
	}
	if taken {
		return domain.NewDuplicateError(domain.CodeDuplicate, domain.FieldEmail)
	}
	return nil
}

func (p *Pipeline) department(ctx context.Context, id *int64) error {
	if err := p.fields.DepartmentID(id); err != nil {
		return err
	}
	exists, err := p.departments.DepartmentExists(ctx, *id)
	if err != nil {
		return domain.NewSystemError(domain.CodeStoreFailure, err)
	}
	if !exists {
		return domain.NewValidationError(domain.CodeNotExists, domain.FieldDepartment)
	}
	return nil
}

func (p *Pipeline) certificationList(ctx context.Context, certs []domain.CertificationForm) error {
	for _, c := range certs {
		if err := p.certification(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) certification(ctx context.Context, c domain.CertificationForm) error {
	return runSteps(
		func() error {
			if err := p.fields.CertificationID(c.CertificationID); err != nil {
				return err
			}
			exists, err := p.certifications.CertificationExists(ctx, *c.CertificationID)
			if err != nil {
				return domain.NewSystemError(domain.CodeStoreFailure, err)
			}
			if !exists {
				return domain.NewValidationError(domain.CodeNotExists, domain.FieldCertification)
			}
			return nil
		},
		func() error { return p.fields.Date(c.StartDate, domain.FieldCertStartDate) },
		func() error { return p.fields.Date(c.EndDate, domain.FieldCertEndDate) },
		func() error { return p.fields.Score(c.Score) },
		func() error { return p.fields.DateOrder(c.StartDate, c.EndDate) },
	)
}
