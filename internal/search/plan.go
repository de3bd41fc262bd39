package search

import (
	"strings"

	"github.com/mvaleed/personnel/internal/domain"
)

// Field is a sortable column of a listing row.
type Field int

const (
	FieldName Field = iota + 1
	// FieldCertPresent sorts rows holding a certification before rows without.
	FieldCertPresent
	FieldCertLevel
	FieldCertEndDate
	FieldEmployeeID
)

// OrderKey is one term of the listing order.
type OrderKey struct {
	Field     Field
	Direction domain.SortDirection
}

// Filter selects the employees a listing covers. Zero values disable a predicate.
type Filter struct {
	Name         string // case-sensitive substring of the full name
	DepartmentID int64
}

// Matches reports whether an employee passes the filter.
func (f Filter) Matches(e domain.Employee) bool {
	if f.Name != "" && !strings.Contains(e.FullName, f.Name) {
		return false
	}
	if f.DepartmentID != 0 && e.DepartmentID != f.DepartmentID {
		return false
	}
	return true
}

// Plan is the store-independent description of one listing query.
type Plan struct {
	Filter Filter
	Order  []OrderKey
	Offset int
	Limit  int
}

// Build turns validated criteria into a plan.
//
// Descending directives are applied before ascending ones. A DESC directive
// on certification level sorts by ascending level value, since a lower level
// is the more senior certification, and pushes rows without a certification
// to the end. Employee id always breaks remaining ties.
func Build(c domain.SearchCriteria) Plan {
	var order []OrderKey

	if c.SortName == domain.SortDesc {
		order = append(order, OrderKey{FieldName, domain.SortDesc})
	}
	if c.SortCertLevel == domain.SortDesc {
		order = append(order,
			OrderKey{FieldCertPresent, domain.SortAsc},
			OrderKey{FieldCertLevel, domain.SortAsc},
		)
	}
	if c.SortEndDate == domain.SortDesc {
		order = append(order, OrderKey{FieldCertEndDate, domain.SortDesc})
	}
	if c.SortName == domain.SortAsc {
		order = append(order, OrderKey{FieldName, domain.SortAsc})
	}
	if c.SortCertLevel == domain.SortAsc {
		order = append(order, OrderKey{FieldCertLevel, domain.SortDesc})
	}
	if c.SortEndDate == domain.SortAsc {
		order = append(order, OrderKey{FieldCertEndDate, domain.SortAsc})
	}
	order = append(order, OrderKey{FieldEmployeeID, domain.SortAsc})

	return Plan{
		Filter: Filter{Name: c.Name, DepartmentID: c.DepartmentID},
		Order:  order,
		Offset: c.Offset,
		Limit:  c.Limit,
	}
}
