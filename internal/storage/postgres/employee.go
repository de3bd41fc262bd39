package postgres

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/search"
)

// EmployeeRepository implements storage.EmployeeRepository using PostgreSQL.
type EmployeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

const employeeColumns = `id, department_id, full_name, phonetic_name, birth_date,
			   email, phone, username, password_hash, created_at, updated_at`

// Create stores a new employee.
func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	db := getDB(ctx, r.pool)

	err := db.QueryRow(ctx, `
		INSERT INTO employees (
			department_id, full_name, phonetic_name, birth_date,
			email, phone, username, password_hash, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		e.DepartmentID,
		e.FullName,
		e.PhoneticName,
		e.BirthDate,
		e.Email,
		e.Phone,
		e.Username,
		e.PasswordHash,
		e.CreatedAt,
		e.UpdatedAt,
	).Scan(&e.ID)

	return mapError(err)
}

// GetByID retrieves an employee by ID.
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	db := getDB(ctx, r.pool)

	row := db.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees WHERE id = $1`, id)

	return r.scanEmployee(row)
}

// GetByUsername retrieves an employee by login name.
func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	db := getDB(ctx, r.pool)

	row := db.QueryRow(ctx, `
		SELECT `+employeeColumns+`
		FROM employees WHERE username = $1`, username)

	return r.scanEmployee(row)
}

// Update saves changes to an existing employee.
func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	db := getDB(ctx, r.pool)

	result, err := db.Exec(ctx, `
		UPDATE employees SET
			department_id = $2,
			full_name = $3,
			phonetic_name = $4,
			birth_date = $5,
			email = $6,
			phone = $7,
			username = $8,
			password_hash = $9,
			updated_at = $10
		WHERE id = $1`,
		e.ID,
		e.DepartmentID,
		e.FullName,
		e.PhoneticName,
		e.BirthDate,
		e.Email,
		e.Phone,
		e.Username,
		e.PasswordHash,
		time.Now().UTC(),
	)
	if err != nil {
		return mapError(err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete removes an employee.
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	db := getDB(ctx, r.pool)

	result, err := db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// UsernameTaken reports whether another employee uses username.
func (r *EmployeeRepository) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS (SELECT 1 FROM employees WHERE username = $1 AND id <> $2)`, username, excludeID)
}

// EmailTaken reports whether another employee uses email.
func (r *EmployeeRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1 AND id <> $2)`, email, excludeID)
}

func (r *EmployeeRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found bool
	if err := getDB(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, gerrors.Wrap(mapError(err), "checking uniqueness")
	}
	return found, nil
}

// Search returns one page of listing rows.
func (r *EmployeeRepository) Search(ctx context.Context, plan search.Plan) ([]domain.EmployeeRow, error) {
	db := getDB(ctx, r.pool)

	query, args := search.RenderSQL(plan)
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(mapError(err), "searching employees")
	}
	defer rows.Close()

	result := []domain.EmployeeRow{}
	for rows.Next() {
		row, err := scanEmployeeRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, gerrors.Wrap(mapError(err), "searching employees")
	}

	return result, nil
}

// Count returns the number of employees matching filter.
func (r *EmployeeRepository) Count(ctx context.Context, filter search.Filter) (int64, error) {
	db := getDB(ctx, r.pool)

	query, args := search.RenderCountSQL(filter)
	var total int64
	if err := db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, gerrors.Wrap(mapError(err), "counting employees")
	}
	return total, nil
}

func (r *EmployeeRepository) scanEmployee(row scannable) (*domain.Employee, error) {
	var e domain.Employee

	err := row.Scan(
		&e.ID,
		&e.DepartmentID,
		&e.FullName,
		&e.PhoneticName,
		&e.BirthDate,
		&e.Email,
		&e.Phone,
		&e.Username,
		&e.PasswordHash,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &e, nil
}

// scanEmployeeRow reads a row rendered by search.RenderSQL. The certification
// columns are NULL for employees without certifications.
func scanEmployeeRow(rows pgx.Rows) (domain.EmployeeRow, error) {
	var (
		row       domain.EmployeeRow
		heldID    *int64
		certID    *int64
		certName  *string
		level     *int
		startDate *time.Time
		endDate   *time.Time
		score     decimal.NullDecimal
	)

	err := rows.Scan(
		&row.EmployeeID,
		&row.FullName,
		&row.BirthDate,
		&row.DepartmentName,
		&row.Email,
		&row.Phone,
		&heldID,
		&certID,
		&certName,
		&level,
		&startDate,
		&endDate,
		&score,
	)
	if err != nil {
		return row, gerrors.Wrap(mapError(err), "scanning employee row")
	}

	if heldID != nil {
		row.Certification = &domain.HeldCertification{
			ID:                *heldID,
			CertificationID:   *certID,
			CertificationName: *certName,
			Level:             *level,
			StartDate:         *startDate,
			EndDate:           *endDate,
			Score:             score.Decimal,
		}
	}

	return row, nil
}
