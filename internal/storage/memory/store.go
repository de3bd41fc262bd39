// Package memory implements the storage interfaces in process memory.
//
// Writes are serialized and run against a private copy of the data that
// replaces the committed copy only when the transaction succeeds. Reads
// outside a transaction see committed data only.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/storage"
)

type state struct {
	employees      map[int64]domain.Employee
	departments    map[int64]domain.Department
	certifications map[int64]domain.Certification
	holdings       map[int64]domain.EmployeeCertification

	nextEmployeeID      int64
	nextDepartmentID    int64
	nextCertificationID int64
	nextHoldingID       int64
}

func newState() *state {
	return &state{
		employees:      map[int64]domain.Employee{},
		departments:    map[int64]domain.Department{},
		certifications: map[int64]domain.Certification{},
		holdings:       map[int64]domain.EmployeeCertification{},
	}
}

func (s *state) clone() *state {
	c := *s
	c.employees = maps.Clone(s.employees)
	c.departments = maps.Clone(s.departments)
	c.certifications = maps.Clone(s.certifications)
	c.holdings = maps.Clone(s.holdings)
	return &c
}

// Store holds all directory data.
type Store struct {
	writeMu sync.Mutex // serializes transactions

	mu        sync.RWMutex // guards committed
	committed *state
}

func New() *Store {
	return &Store{committed: newState()}
}

// Repositories returns all repositories backed by this store.
func (s *Store) Repositories() *storage.Repositories {
	return &storage.Repositories{
		Employees:              &EmployeeRepository{store: s},
		Departments:            &DepartmentRepository{store: s},
		Certifications:         &CertificationRepository{store: s},
		EmployeeCertifications: &EmployeeCertificationRepository{store: s},
	}
}

type txKey struct{}

type tx struct {
	store *Store
	work  *state
}

func (s *Store) txFrom(ctx context.Context) *tx {
	if t, ok := ctx.Value(txKey{}).(*tx); ok && t.store == s {
		return t
	}
	return nil
}

// WithTransaction implements storage.Transactor. Nested calls join the
// enclosing transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txFrom(ctx) != nil {
		return fn(ctx)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, &tx{store: s, work: work})); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = work
	s.mu.Unlock()
	return nil
}

// read runs fn against the transaction's data, or the committed data.
func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if t := s.txFrom(ctx); t != nil {
		return fn(t.work)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.committed)
}

// write runs fn inside the current transaction, or its own.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	return s.WithTransaction(ctx, func(ctx context.Context) error {
		return fn(s.txFrom(ctx).work)
	})
}

// AddDepartment stores a department and returns it with its ID.
func (s *Store) AddDepartment(ctx context.Context, name string) (domain.Department, error) {
	var d domain.Department
	err := s.write(ctx, func(st *state) error {
		st.nextDepartmentID++
		d = domain.Department{ID: st.nextDepartmentID, Name: name}
		st.departments[d.ID] = d
		return nil
	})
	return d, err
}

// AddCertification stores a certification type and returns it with its ID.
func (s *Store) AddCertification(ctx context.Context, name string, level int) (domain.Certification, error) {
	var c domain.Certification
	err := s.write(ctx, func(st *state) error {
		st.nextCertificationID++
		c = domain.Certification{ID: st.nextCertificationID, Name: name, Level: level}
		st.certifications[c.ID] = c
		return nil
	})
	return c, err
}

// SeedReferenceData adds the same departments and certifications the
// PostgreSQL migrations install.
func (s *Store) SeedReferenceData(ctx context.Context) error {
	return s.WithTransaction(ctx, func(ctx context.Context) error {
		for _, name := range []string{"Engineering", "Sales", "Human Resources", "Finance"} {
			if _, err := s.AddDepartment(ctx, name); err != nil {
				return err
			}
		}
		for level := 1; level <= 5; level++ {
			if _, err := s.AddCertification(ctx, "JLPT N"+string(rune('0'+level)), level); err != nil {
				return err
			}
		}
		return nil
	})
}
