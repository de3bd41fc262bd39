package postgres

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvaleed/personnel/internal/domain"
)

// DepartmentRepository implements storage.DepartmentRepository using PostgreSQL.
type DepartmentRepository struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepository(pool *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	db := getDB(ctx, r.pool)

	var d domain.Department
	err := db.QueryRow(ctx, `SELECT id, name FROM departments WHERE id = $1`, id).Scan(&d.ID, &d.Name)
	if err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

func (r *DepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	db := getDB(ctx, r.pool)

	rows, err := db.Query(ctx, `SELECT id, name FROM departments ORDER BY id`)
	if err != nil {
		return nil, gerrors.Wrap(mapError(err), "listing departments")
	}
	defer rows.Close()

	departments := []domain.Department{}
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, gerrors.Wrap(mapError(err), "scanning department")
		}
		departments = append(departments, d)
	}

	return departments, mapError(rows.Err())
}

func (r *DepartmentRepository) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	db := getDB(ctx, r.pool)

	var found bool
	err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM departments WHERE id = $1)`, id).Scan(&found)
	if err != nil {
		return false, gerrors.Wrap(mapError(err), "checking department")
	}
	return found, nil
}
