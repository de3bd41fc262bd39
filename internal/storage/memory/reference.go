package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/mvaleed/personnel/internal/domain"
)

// DepartmentRepository implements storage.DepartmentRepository in memory.
type DepartmentRepository struct {
	store *Store
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var found *domain.Department
	err := r.store.read(ctx, func(st *state) error {
		d, ok := st.departments[id]
		if !ok {
			return domain.ErrNotFound
		}
		found = &d
		return nil
	})
	return found, err
}

func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	departments := []domain.Department{}
	err := r.store.read(ctx, func(st *state) error {
		for _, d := range st.departments {
			departments = append(departments, d)
		}
		return nil
	})
	slices.SortFunc(departments, func(a, b domain.Department) int { return cmp.Compare(a.ID, b.ID) })
	return departments, err
}

func (r *DepartmentRepository) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.store.read(ctx, func(st *state) error {
		_, ok = st.departments[id]
		return nil
	})
	return ok, err
}

// CertificationRepository implements storage.CertificationRepository in memory.
type CertificationRepository struct {
	store *Store
}

func (r *CertificationRepository) List(ctx context.Context) ([]domain.Certification, error) {
	certifications := []domain.Certification{}
	err := r.store.read(ctx, func(st *state) error {
		for _, c := range st.certifications {
			certifications = append(certifications, c)
		}
		return nil
	})
	slices.SortFunc(certifications, func(a, b domain.Certification) int {
		return cmp.Or(cmp.Compare(a.Level, b.Level), cmp.Compare(a.ID, b.ID))
	})
	return certifications, err
}

func (r *CertificationRepository) CertificationExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.store.read(ctx, func(st *state) error {
		_, ok = st.certifications[id]
		return nil
	})
	return ok, err
}
