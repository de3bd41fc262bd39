package domain

import (
	"time"
)

// SortDirection is an optional sort directive.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// DefaultSearchLimit is the page size used when a request omits limit.
const DefaultSearchLimit = 5

// SearchRequest is the raw, unvalidated listing request as it arrives from a
// transport. Empty strings mean "absent".
type SearchRequest struct {
	Name          string
	DepartmentID  string
	SortName      string
	SortCertLevel string
	SortEndDate   string
	Offset        string
	Limit         string
}

// SearchCriteria is the validated filter/sort/pagination input of a listing.
type SearchCriteria struct {
	Name          string
	DepartmentID  int64 // 0 disables the department filter
	SortName      SortDirection
	SortCertLevel SortDirection
	SortEndDate   SortDirection
	Offset        int
	Limit         int
}

// NewSearchCriteria returns criteria with the default window.
func NewSearchCriteria() SearchCriteria {
	return SearchCriteria{Offset: 0, Limit: DefaultSearchLimit}
}

// EmployeeRow is one listing row: the employee, its department name, and the
// selected certification (nil when the employee holds none).
type EmployeeRow struct {
	EmployeeID     int64
	FullName       string
	BirthDate      time.Time
	DepartmentName string
	Email          string
	Phone          string
	Certification  *HeldCertification
}

// EmployeeDetail is the full view of one employee with every certification.
type EmployeeDetail struct {
	Employee       Employee
	DepartmentName string
	Certifications []HeldCertification
}
