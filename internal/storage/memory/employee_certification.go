package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/mvaleed/personnel/internal/domain"
)

// EmployeeCertificationRepository implements
// storage.EmployeeCertificationRepository in memory.
type EmployeeCertificationRepository struct {
	store *Store
}

func (r *EmployeeCertificationRepository) Create(ctx context.Context, ec *domain.EmployeeCertification) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.employees[ec.EmployeeID]; !ok {
			return domain.ErrConflict
		}
		if _, ok := st.certifications[ec.CertificationID]; !ok {
			return domain.ErrConflict
		}
		st.nextHoldingID++
		ec.ID = st.nextHoldingID
		st.holdings[ec.ID] = *ec
		return nil
	})
}

func (r *EmployeeCertificationRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.HeldCertification, error) {
	var held []domain.HeldCertification
	err := r.store.read(ctx, func(st *state) error {
		held = heldBy(st, employeeID)
		return nil
	})
	return held, err
}

func (r *EmployeeCertificationRepository) DeleteByEmployee(ctx context.Context, employeeID int64) error {
	return r.store.write(ctx, func(st *state) error {
		deleteHoldings(st, employeeID)
		return nil
	})
}

// heldBy returns an employee's holdings, most senior first.
func heldBy(st *state, employeeID int64) []domain.HeldCertification {
	held := []domain.HeldCertification{}
	for _, ec := range st.holdings {
		if ec.EmployeeID != employeeID {
			continue
		}
		c := st.certifications[ec.CertificationID]
		held = append(held, domain.HeldCertification{
			ID:                ec.ID,
			CertificationID:   ec.CertificationID,
			CertificationName: c.Name,
			Level:             c.Level,
			StartDate:         ec.StartDate,
			EndDate:           ec.EndDate,
			Score:             ec.Score,
		})
	}
	slices.SortFunc(held, func(a, b domain.HeldCertification) int {
		return cmp.Or(
			cmp.Compare(a.Level, b.Level),
			cmp.Compare(a.CertificationID, b.CertificationID),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return held
}

func deleteHoldings(st *state, employeeID int64) {
	for id, ec := range st.holdings {
		if ec.EmployeeID == employeeID {
			delete(st.holdings, id)
		}
	}
}
