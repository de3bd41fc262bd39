// Package search builds listing queries: which employees match, which one
// certification represents each of them, and in what order rows appear.
//
// The same Plan drives both the in-process comparator used by the memory
// store and the SQL rendered for PostgreSQL, so the two stay in agreement.
package search

import (
	"github.com/mvaleed/personnel/internal/domain"
)

// SelectionOrderSQL orders an employee's certifications so the first row is
// the one SelectCertification returns. Aliases: ec = employee_certifications,
// c = certifications.
const SelectionOrderSQL = "c.level ASC, ec.certification_id ASC, ec.id ASC"

// SelectCertification returns the certification representing an employee in
// listing rows: the lowest level, then the lowest certification id, then the
// earliest holding. ok is false when held is empty.
func SelectCertification(held []domain.HeldCertification) (selected domain.HeldCertification, ok bool) {
	for i, h := range held {
		if i == 0 || selectedBefore(h, selected) {
			selected = h
		}
	}
	return selected, len(held) > 0
}

func selectedBefore(a, b domain.HeldCertification) bool {
	if a.Level != b.Level {
		return a.Level < b.Level
	}
	if a.CertificationID != b.CertificationID {
		return a.CertificationID < b.CertificationID
	}
	return a.ID < b.ID
}
