package postgres

import (
	"context"

	"internview-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const cvColumns = `c.id, c.user_id, c.title, c.description, c.pdf, c.created_at, c.updated_at`

type cvRepo struct {
	db *pgxpool.Pool
}

func NewCVRepository(db *pgxpool.Pool) domain.CVRepository {
	return &cvRepo{db: db}
}

func scanCV(row rowScanner) (*domain.CV, error) {
	var cv domain.CV
	err := row.Scan(&cv.ID, &cv.UserID, &cv.Title, &cv.Description, &cv.PDF, &cv.CreatedAt, &cv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cv, nil
}

func (r *cvRepo) Create(ctx context.Context, cv *domain.CV) error {
	query := `INSERT INTO cvs (id, user_id, title, description, pdf, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query, cv.ID, cv.UserID, cv.Title, cv.Description, cv.PDF, cv.CreatedAt, cv.UpdatedAt)
	return mapError("create cv", err)
}

func (r *cvRepo) GetByID(ctx context.Context, id string) (*domain.CV, error) {
	query := `SELECT ` + cvColumns + ` FROM cvs c WHERE c.id = $1`
	cv, err := scanCV(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("get cv", err)
	}
	return cv, nil
}

func (r *cvRepo) List(ctx context.Context) ([]domain.CV, error) {
	return r.list(ctx, "list cvs", `SELECT `+cvColumns+` FROM cvs c ORDER BY c.created_at DESC`)
}

func (r *cvRepo) ListByUserID(ctx context.Context, userID string) ([]domain.CV, error) {
	return r.list(ctx, "list cvs by user",
		`SELECT `+cvColumns+` FROM cvs c WHERE c.user_id = $1 ORDER BY c.created_at DESC`, userID)
}

func (r *cvRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.CV, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	cvs := []domain.CV{}
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		cvs = append(cvs, *cv)
	}
	return cvs, mapError(op, rows.Err())
}

// ListWithOwner returns every CV with its owner's public profile.
func (r *cvRepo) ListWithOwner(ctx context.Context) ([]domain.CVView, error) {
	query := `SELECT ` + cvColumns + `,
                     u.id, u.name, u.login, u.role, u.profile_pic, u.description, u.created_at
              FROM cvs c
              JOIN users u ON u.id = c.user_id
              ORDER BY c.created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("list cvs with owner", err)
	}
	defer rows.Close()

	views := []domain.CVView{}
	for rows.Next() {
		var v domain.CVView
		var owner domain.UserProfile
		var role string
		err := rows.Scan(
			&v.ID, &v.UserID, &v.Title, &v.Description, &v.PDF, &v.CreatedAt, &v.UpdatedAt,
			&owner.ID, &owner.Name, &owner.Login, &role, &owner.ProfilePic, &owner.Description, &owner.CreatedAt,
		)
		if err != nil {
			return nil, mapError("scan cv with owner", err)
		}
		owner.Role = domain.Role(role)
		v.User = &owner
		views = append(views, v)
	}
	return views, mapError("list cvs with owner", rows.Err())
}

func (r *cvRepo) Update(ctx context.Context, cv *domain.CV) error {
	query := `UPDATE cvs SET title = $2, description = $3, pdf = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, cv.ID, cv.Title, cv.Description, cv.PDF, cv.UpdatedAt)
	return expectRows("update cv", tag, err)
}

func (r *cvRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	return expectRows("delete cv", tag, err)
}
