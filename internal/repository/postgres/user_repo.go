package postgres

import (
	"context"

	"internview-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, login, password_hash, role, profile_pic, description, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(
		&user.ID, &user.Name, &user.Login, &user.PasswordHash, &role,
		&user.ProfilePic, &user.Description, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.Login, user.PasswordHash, string(user.Role),
		user.ProfilePic, user.Description, user.CreatedAt, user.UpdatedAt,
	)
	return mapError("create user", err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("get user", err)
	}
	return user, nil
}

func (r *userRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, login))
	if err != nil {
		return nil, mapError("get user by login", err)
	}
	return user, nil
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("list users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, mapError("scan user", err)
		}
		users = append(users, *user)
	}
	return users, mapError("list users", rows.Err())
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users
              SET name = $2, login = $3, password_hash = $4, role = $5,
                  profile_pic = $6, description = $7, updated_at = $8
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.Login, user.PasswordHash, string(user.Role),
		user.ProfilePic, user.Description, user.UpdatedAt,
	)
	return expectRows("update user", tag, err)
}

// Delete removes the user. CVs, vacancies and applications go with it through ON DELETE CASCADE.
func (r *userRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return expectRows("delete user", tag, err)
}

func (r *userRepo) CountOwnedResources(ctx context.Context, id string) (int64, error) {
	query := `SELECT
                (SELECT count(*) FROM cvs WHERE user_id = $1) +
                (SELECT count(*) FROM vacancies WHERE recruiter_id = $1) +
                (SELECT count(*) FROM applications WHERE intern_id = $1)`
	var count int64
	if err := r.db.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, mapError("count owned resources", err)
	}
	return count, nil
}
