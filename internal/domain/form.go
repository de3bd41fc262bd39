package domain

import (
	"github.com/shopspring/decimal"
)

// EmployeeForm carries the raw input of a create or update request.
// Dates stay as text so validation can report format errors precisely.
type EmployeeForm struct {
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	PhoneticName string `json:"phoneticName"`
	BirthDate    string `json:"birthDate"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	DepartmentID *int64 `json:"departmentId"`

	// Certifications is nil when the caller did not supply the list. On update
	// nil keeps the stored set; a non-nil slice, even empty, replaces it.
	Certifications []CertificationForm `json:"certifications"`
}

// CertificationForm is one requested certification holding.
type CertificationForm struct {
	CertificationID *int64           `json:"certificationId"`
	StartDate       string           `json:"startDate"`
	EndDate         string           `json:"endDate"`
	Score           *decimal.Decimal `json:"score"`
}

// HasPassword reports whether a new password was supplied.
func (f *EmployeeForm) HasPassword() bool {
	return f.Password != ""
}

// ToEmployeeCertification converts a validated form entry.
func (c CertificationForm) ToEmployeeCertification(employeeID int64) EmployeeCertification {
	start, _ := ParseDate(c.StartDate)
	end, _ := ParseDate(c.EndDate)
	ec := EmployeeCertification{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
	}
	if c.CertificationID != nil {
		ec.CertificationID = *c.CertificationID
	}
	if c.Score != nil {
		ec.Score = *c.Score
	}
	return ec
}
