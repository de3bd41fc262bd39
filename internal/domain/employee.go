package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of every date field (yyyy/MM/dd).
const DateLayout = "2006/01/02"

// Employee is the core domain entity of the directory.
type Employee struct {
	ID           int64
	FullName     string
	PhoneticName string
	BirthDate    time.Time
	Email        string
	Phone        string
	DepartmentID int64
	Username     string
	PasswordHash string // Never expose this externally

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Department is referenced, never owned, by Employee.
type Department struct {
	ID   int64
	Name string
}

// Certification is a qualification type. A lower Level is more senior.
type Certification struct {
	ID    int64
	Name  string
	Level int
}

// EmployeeCertification is one dated, scored holding of a certification.
type EmployeeCertification struct {
	ID              int64
	EmployeeID      int64
	CertificationID int64
	StartDate       time.Time
	EndDate         time.Time
	Score           decimal.Decimal
}

// HeldCertification is an EmployeeCertification joined with its Certification.
type HeldCertification struct {
	ID                int64
	CertificationID   int64
	CertificationName string
	Level             int
	StartDate         time.Time
	EndDate           time.Time
	Score             decimal.Decimal
}

// ApplyForm overwrites the mutable fields of e from a validated form.
// The password hash is left untouched; callers set it explicitly.
func (e *Employee) ApplyForm(f *EmployeeForm) {
	e.Username = f.Username
	e.FullName = f.FullName
	e.PhoneticName = f.PhoneticName
	e.BirthDate, _ = ParseDate(f.BirthDate)
	e.Email = f.Email
	e.Phone = f.Phone
	if f.DepartmentID != nil {
		e.DepartmentID = *f.DepartmentID
	}
	e.UpdatedAt = time.Now().UTC()
}

// ParseDate parses a yyyy/MM/dd string into a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders t as yyyy/MM/dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
