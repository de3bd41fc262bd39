package postgres

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvaleed/personnel/internal/domain"
	"github.com/mvaleed/personnel/internal/search"
)

// EmployeeCertificationRepository implements
// storage.EmployeeCertificationRepository using PostgreSQL.
type EmployeeCertificationRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeCertificationRepository(pool *pgxpool.Pool) *EmployeeCertificationRepository {
	return &EmployeeCertificationRepository{pool: pool}
}

// Create stores a holding.
func (r *EmployeeCertificationRepository) Create(ctx context.Context, ec *domain.EmployeeCertification) error {
	db := getDB(ctx, r.pool)

	err := db.QueryRow(ctx, `
		INSERT INTO employee_certifications (employee_id, certification_id, start_date, end_date, score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		ec.EmployeeID,
		ec.CertificationID,
		ec.StartDate,
		ec.EndDate,
		ec.Score,
	).Scan(&ec.ID)

	return mapError(err)
}

// ListByEmployee returns an employee's holdings, most senior first.
func (r *EmployeeCertificationRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.HeldCertification, error) {
	db := getDB(ctx, r.pool)

	rows, err := db.Query(ctx, `
		SELECT ec.id, ec.certification_id, c.name, c.level, ec.start_date, ec.end_date, ec.score
		FROM employee_certifications ec
		JOIN certifications c ON c.id = ec.certification_id
		WHERE ec.employee_id = $1
		ORDER BY `+search.SelectionOrderSQL, employeeID)
	if err != nil {
		return nil, gerrors.Wrap(mapError(err), "listing employee certifications")
	}
	defer rows.Close()

	held := []domain.HeldCertification{}
	for rows.Next() {
		var h domain.HeldCertification
		err := rows.Scan(&h.ID, &h.CertificationID, &h.CertificationName, &h.Level, &h.StartDate, &h.EndDate, &h.Score)
		if err != nil {
			return nil, gerrors.Wrap(mapError(err), "scanning employee certification")
		}
		held = append(held, h)
	}

	return held, mapError(rows.Err())
}

// DeleteByEmployee removes all holdings of an employee.
func (r *EmployeeCertificationRepository) DeleteByEmployee(ctx context.Context, employeeID int64) error {
	db := getDB(ctx, r.pool)

	_, err := db.Exec(ctx, `DELETE FROM employee_certifications WHERE employee_id = $1`, employeeID)
	return mapError(err)
}
