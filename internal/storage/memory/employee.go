package memory

import (
	"context"
	"time"

	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/search"
)

// EmployeeRepository implements storage.EmployeeRepository in memory.
type EmployeeRepository struct {
	store *Store
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	return r.store.write(ctx, func(st *state) error {
		if err := checkEmployee(st, e); err != nil {
			return err
		}
		st.nextEmployeeID++
		e.ID = st.nextEmployeeID
		st.employees[e.ID] = *e
		return nil
	})
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var found *domain.Employee
	err := r.store.read(ctx, func(st *state) error {
		e, ok := st.employees[id]
		if !ok {
			return domain.ErrNotFound
		}
		found = &e
		return nil
	})
	return found, err
}

func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	var found *domain.Employee
	err := r.store.read(ctx, func(st *state) error {
		for _, e := range st.employees {
			if e.Username == username {
				found = &e
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return found, err
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.employees[e.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkEmployee(st, e); err != nil {
			return err
		}
		e.UpdatedAt = time.Now().UTC()
		st.employees[e.ID] = *e
		return nil
	})
}

// Delete removes an employee and, like the foreign key cascade in
// PostgreSQL, the employee's holdings.
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.employees[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.employees, id)
		deleteHoldings(st, id)
		return nil
	})
}

func (r *EmployeeRepository) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	var taken bool
	err := r.store.read(ctx, func(st *state) error {
		taken = usernameTaken(st, username, excludeID)
		return nil
	})
	return taken, err
}

func (r *EmployeeRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	var taken bool
	err := r.store.read(ctx, func(st *state) error {
		taken = emailTaken(st, email, excludeID)
		return nil
	})
	return taken, err
}

func (r *EmployeeRepository) Search(ctx context.Context, plan search.Plan) ([]domain.EmployeeRow, error) {
	var rows []domain.EmployeeRow
	err := r.store.read(ctx, func(st *state) error {
		for _, e := range st.employees {
			if !plan.Filter.Matches(e) {
				continue
			}
			rows = append(rows, listingRow(st, e))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	search.Sort(rows, plan.Order)
	return search.Window(rows, plan.Offset, plan.Limit), nil
}

func (r *EmployeeRepository) Count(ctx context.Context, filter search.Filter) (int64, error) {
	var total int64
	err := r.store.read(ctx, func(st *state) error {
		for _, e := range st.employees {
			if filter.Matches(e) {
				total++
			}
		}
		return nil
	})
	return total, err
}

func listingRow(st *state, e domain.Employee) domain.EmployeeRow {
	row := domain.EmployeeRow{
		EmployeeID:     e.ID,
		FullName:       e.FullName,
		BirthDate:      e.BirthDate,
		DepartmentName: st.departments[e.DepartmentID].Name,
		Email:          e.Email,
		Phone:          e.Phone,
	}
	if selected, ok := search.SelectCertification(heldBy(st, e.ID)); ok {
		row.Certification = &selected
	}
	return row
}

// checkEmployee enforces the constraints the PostgreSQL schema declares.
func checkEmployee(st *state, e *domain.Employee) error {
	if usernameTaken(st, e.Username, e.ID) || emailTaken(st, e.Email, e.ID) {
		return domain.ErrAlreadyExists
	}
	if _, ok := st.departments[e.DepartmentID]; !ok {
		return domain.ErrConflict
	}
	return nil
}

func usernameTaken(st *state, username string, excludeID int64) bool {
	for id, e := range st.employees {
		if id != excludeID && e.Username == username {
			return true
		}
	}
	return false
}

func emailTaken(st *state, email string, excludeID int64) bool {
	for id, e := range st.employees {
		if id != excludeID && e.Email == email {
			return true
		}
	}
	return false
}
