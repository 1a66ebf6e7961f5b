package postgres

import (
	"context"
	"fmt"
	"strings"

	"internview-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const vacancyColumns = `v.id, v.recruiter_id, v.title, v.description, v.requirements, v.salary_range,
       v.location, v.work_mode, v.experience_level, v.is_active, v.created_at, v.updated_at, v.expires_at`

const applicationCountColumn = `(SELECT count(*) FROM applications a WHERE a.vacancy_id = v.id)`

type vacancyRepo struct {
	db *pgxpool.Pool
}

func NewVacancyRepository(db *pgxpool.Pool) domain.VacancyRepository {
	return &vacancyRepo{db: db}
}

// vacancyDest lists scan targets in vacancyColumns order. requirements is read
// into []string directly: pgx fetches text[] in binary format, which pq.Array
// cannot decode.
func vacancyDest(v *domain.Vacancy) []any {
	return []any{
		&v.ID, &v.RecruiterID, &v.Title, &v.Description, &v.Requirements, &v.SalaryRange,
		&v.Location, &v.WorkMode, &v.ExperienceLevel, &v.IsActive, &v.CreatedAt, &v.UpdatedAt, &v.ExpiresAt,
	}
}

func scanSummary(row rowScanner) (*domain.VacancySummary, error) {
	var s domain.VacancySummary
	dest := append(vacancyDest(&s.Vacancy), &s.ApplicationCount)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if s.Requirements == nil {
		s.Requirements = []string{}
	}
	return &s, nil
}

func (r *vacancyRepo) Create(ctx context.Context, v *domain.Vacancy) error {
	query := `INSERT INTO vacancies (id, recruiter_id, title, description, requirements, salary_range,
                                     location, work_mode, experience_level, is_active, created_at, updated_at, expires_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		v.ID, v.RecruiterID, v.Title, v.Description, pq.Array(v.Requirements), v.SalaryRange,
		v.Location, v.WorkMode, v.ExperienceLevel, v.IsActive, v.CreatedAt, v.UpdatedAt, v.ExpiresAt,
	)
	return mapError("create vacancy", err)
}

func (r *vacancyRepo) GetByID(ctx context.Context, id string) (*domain.Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies v WHERE v.id = $1`
	var v domain.Vacancy
	if err := r.db.QueryRow(ctx, query, id).Scan(vacancyDest(&v)...); err != nil {
		return nil, mapError("get vacancy", err)
	}
	if v.Requirements == nil {
		v.Requirements = []string{}
	}
	return &v, nil
}

// GetDetail loads the vacancy, its recruiter and its application count in one query.
func (r *vacancyRepo) GetDetail(ctx context.Context, id string) (*domain.VacancyDetail, error) {
	query := `SELECT ` + vacancyColumns + `, ` + applicationCountColumn + `,
                     u.id, u.name, u.login, u.role, u.profile_pic, u.description, u.created_at
              FROM vacancies v
              JOIN users u ON u.id = v.recruiter_id
              WHERE v.id = $1`

	var (
		v         domain.Vacancy
		count     int64
		recruiter domain.UserProfile
		role      string
	)
	dest := append(vacancyDest(&v), &count,
		&recruiter.ID, &recruiter.Name, &recruiter.Login, &role,
		&recruiter.ProfilePic, &recruiter.Description, &recruiter.CreatedAt,
	)
	if err := r.db.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		return nil, mapError("get vacancy detail", err)
	}
	if v.Requirements == nil {
		v.Requirements = []string{}
	}
	recruiter.Role = domain.Role(role)

	detail := domain.NewVacancyDetail(v, recruiter, count)
	return &detail, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally inside an ILIKE pattern.
func containsPattern(s string) string {
	return likeEscaper.Replace(s)
}

// buildVacancyFilter renders the WHERE clause for filter. Placeholders start at $1.
func buildVacancyFilter(filter domain.VacancyFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.ActiveOnly {
		conds = append(conds, "v.is_active = true")
	}
	if filter.Location != "" {
		add(`v.location ILIKE '%%' || $%d || '%%' ESCAPE '\'`, containsPattern(filter.Location))
	}
	if filter.WorkMode != "" {
		add("lower(v.work_mode) = lower($%d)", filter.WorkMode)
	}
	if filter.ExperienceLevel != "" {
		add("lower(v.experience_level) = lower($%d)", filter.ExperienceLevel)
	}
	if filter.Query != "" {
		add(`v.title ILIKE '%%' || $%d || '%%' ESCAPE '\'`, containsPattern(filter.Query))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *vacancyRepo) List(ctx context.Context, filter domain.VacancyFilter) ([]domain.VacancySummary, error) {
	where, args := buildVacancyFilter(filter)
	query := `SELECT ` + vacancyColumns + `, ` + applicationCountColumn + `
              FROM vacancies v` + where + `
              ORDER BY v.created_at DESC`
	return r.listSummaries(ctx, "list vacancies", query, args...)
}

func (r *vacancyRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.VacancySummary, error) {
	query := `SELECT ` + vacancyColumns + `, ` + applicationCountColumn + `
              FROM vacancies v
              WHERE v.recruiter_id = $1
              ORDER BY v.created_at DESC`
	return r.listSummaries(ctx, "list recruiter vacancies", query, recruiterID)
}

func (r *vacancyRepo) listSummaries(ctx context.Context, op, query string, args ...any) ([]domain.VacancySummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	vacancies := []domain.VacancySummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		vacancies = append(vacancies, *s)
	}
	return vacancies, mapError(op, rows.Err())
}

func (r *vacancyRepo) Update(ctx context.Context, v *domain.Vacancy) error {
	query := `UPDATE vacancies
              SET title = $2, description = $3, requirements = $4, salary_range = $5, location = $6,
                  work_mode = $7, experience_level = $8, is_active = $9, updated_at = $10, expires_at = $11
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		v.ID, v.Title, v.Description, pq.Array(v.Requirements), v.SalaryRange, v.Location,
		v.WorkMode, v.ExperienceLevel, v.IsActive, v.UpdatedAt, v.ExpiresAt,
	)
	return expectRows("update vacancy", tag, err)
}

// ToggleActive flips is_active atomically and returns the updated row.
func (r *vacancyRepo) ToggleActive(ctx context.Context, id string) (*domain.VacancySummary, error) {
	query := `WITH v AS (
                  UPDATE vacancies SET is_active = NOT is_active, updated_at = now()
                  WHERE id = $1
                  RETURNING *
              )
              SELECT ` + vacancyColumns + `, ` + applicationCountColumn + ` FROM v`
	s, err := scanSummary(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("toggle vacancy", err)
	}
	return s, nil
}

// Delete removes the vacancy and, by cascade, its applications.
func (r *vacancyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	return expectRows("delete vacancy", tag, err)
}
