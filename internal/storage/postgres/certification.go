package postgres

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvaleed/personnel/internal/domain"
)

// CertificationRepository implements storage.CertificationRepository using PostgreSQL.
type CertificationRepository struct {
	pool *pgxpool.Pool
}

func NewCertificationRepository(pool *pgxpool.Pool) *CertificationRepository {
	return &CertificationRepository{pool: pool}
}

func (r *CertificationRepository) List(ctx context.Context) ([]domain.Certification, error) {
	db := getDB(ctx, r.pool)

	rows, err := db.Query(ctx, `SELECT id, name, level FROM certifications ORDER BY level, id`)
	if err != nil {
		return nil, gerrors.Wrap(mapError(err), "listing certifications")
	}
	defer rows.Close()

	certifications := []domain.Certification{}
	for rows.Next() {
		var c domain.Certification
		if err := rows.Scan(&c.ID, &c.Name, &c.Level); err != nil {
			return nil, gerrors.Wrap(mapError(err), "scanning certification")
		}
		certifications = append(certifications, c)
	}

	return certifications, mapError(rows.Err())
}

func (r *CertificationRepository) CertificationExists(ctx context.Context, id int64) (bool, error) {
	db := getDB(ctx, r.pool)

	var found bool
	err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM certifications WHERE id = $1)`, id).Scan(&found)
	if err != nil {
		return false, gerrors.Wrap(mapError(err), "checking certification")
	}
	return found, nil
}
