package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mvaleed/personnel/internal/domain"
)

// EmployeeListItem is one row of a search result. The certification fields
// are nil for employees holding no certification.
type EmployeeListItem struct {
	EmployeeID           int64
	FullName             string
	BirthDate            time.Time
	DepartmentName       string
	Email                string
	Phone                string
	CertificationName    *string
	CertificationEndDate *time.Time
	Score                *decimal.Decimal
}

// SearchResult is one page of a listing plus the total match count.
type SearchResult struct {
	TotalRecords int64
	Employees    []EmployeeListItem
}

// CertificationView is one certification held by an employee.
type CertificationView struct {
	CertificationID   int64
	CertificationName string
	Level             int
	StartDate         time.Time
	EndDate           time.Time
	Score             decimal.Decimal
}

// EmployeeView is the detail view of one employee.
type EmployeeView struct {
	EmployeeID     int64
	FullName       string
	PhoneticName   string
	BirthDate      time.Time
	DepartmentID   int64
	DepartmentName string
	Email          string
	Phone          string
	Username       string
	Certifications []CertificationView
}

func projectRow(r domain.EmployeeRow) EmployeeListItem {
	item := EmployeeListItem{
		EmployeeID:     r.EmployeeID,
		FullName:       r.FullName,
		BirthDate:      r.BirthDate,
		DepartmentName: r.DepartmentName,
		Email:          r.Email,
		Phone:          r.Phone,
	}
	if c := r.Certification; c != nil {
		name, end, score := c.CertificationName, c.EndDate, c.Score
		item.CertificationName = &name
		item.CertificationEndDate = &end
		item.Score = &score
	}
	return item
}

func projectRows(rows []domain.EmployeeRow) []EmployeeListItem {
	items := make([]EmployeeListItem, len(rows))
	for i, r := range rows {
		items[i] = projectRow(r)
	}
	return items
}

func projectDetail(d domain.EmployeeDetail) *EmployeeView {
	certs := make([]CertificationView, len(d.Certifications))
	for i, h := range d.Certifications {
		certs[i] = CertificationView{
			CertificationID:   h.CertificationID,
			CertificationName: h.CertificationName,
			Level:             h.Level,
			StartDate:         h.StartDate,
			EndDate:           h.EndDate,
			Score:             h.Score,
		}
	}
	return &EmployeeView{
		EmployeeID:     d.Employee.ID,
		FullName:       d.Employee.FullName,
		PhoneticName:   d.Employee.PhoneticName,
		BirthDate:      d.Employee.BirthDate,
		DepartmentID:   d.Employee.DepartmentID,
		DepartmentName: d.DepartmentName,
		Email:          d.Employee.Email,
		Phone:          d.Employee.Phone,
		Username:       d.Employee.Username,
		Certifications: certs,
	}
}
