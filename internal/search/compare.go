package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mvaleed/personnel/internal/domain"
)

// Compare orders two listing rows by keys. A missing certification compares
// below any present value, so it sorts first ascending and last descending.
func Compare(a, b domain.EmployeeRow, keys []OrderKey) int {
	for _, k := range keys {
		c := compareField(a, b, k.Field)
		if k.Direction == domain.SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func compareField(a, b domain.EmployeeRow, f Field) int {
	switch f {
	case FieldName:
		return strings.Compare(a.FullName, b.FullName)
	case FieldCertPresent:
		// Mirrors "level IS NULL": present (false) before absent (true).
		return cmp.Compare(absent(a), absent(b))
	case FieldCertLevel:
		return compareCert(a, b, func(x, y *domain.HeldCertification) int {
			return cmp.Compare(x.Level, y.Level)
		})
	case FieldCertEndDate:
		return compareCert(a, b, func(x, y *domain.HeldCertification) int {
			return x.EndDate.Compare(y.EndDate)
		})
	case FieldEmployeeID:
		return cmp.Compare(a.EmployeeID, b.EmployeeID)
	}
	return 0
}

func absent(r domain.EmployeeRow) int {
	if r.Certification == nil {
		return 1
	}
	return 0
}

func compareCert(a, b domain.EmployeeRow, fn func(x, y *domain.HeldCertification) int) int {
	switch {
	case a.Certification == nil && b.Certification == nil:
		return 0
	case a.Certification == nil:
		return -1
	case b.Certification == nil:
		return 1
	}
	return fn(a.Certification, b.Certification)
}

// Sort orders rows in place.
func Sort(rows []domain.EmployeeRow, keys []OrderKey) {
	slices.SortStableFunc(rows, func(a, b domain.EmployeeRow) int {
		return Compare(a, b, keys)
	})
}

// Window returns the rows left after skipping offset and keeping at most limit.
func Window(rows []domain.EmployeeRow, offset, limit int) []domain.EmployeeRow {
	if offset >= len(rows) {
		return []domain.EmployeeRow{}
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
