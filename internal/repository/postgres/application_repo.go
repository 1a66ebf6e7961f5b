package postgres

import (
	"context"
	"time"

	"internview-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// applicationDetailQuery joins every relation an application response needs.
// The vacancy and intern joins are inner joins; the CV is optional.
const applicationDetailQuery = `
		SELECT
			a.id, a.vacancy_id, a.intern_id, a.cv_id, a.status, a.cover_letter, a.resume_url,
			a.applied_at, a.updated_at,
			v.id, v.title, v.recruiter_id, v.is_active,
			u.id, u.name, u.login, u.role, u.profile_pic, u.description, u.created_at,
			c.id, c.user_id, c.title, c.description, c.pdf, c.created_at, c.updated_at
		FROM applications a
		JOIN vacancies v ON v.id = a.vacancy_id
		JOIN users u ON u.id = a.intern_id
		LEFT JOIN cvs c ON c.id = a.cv_id`

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplicationDetail(row rowScanner) (*domain.ApplicationDetail, error) {
	var (
		d          domain.ApplicationDetail
		status     string
		internRole string

		cvID, cvUserID, cvTitle, cvDescription, cvPDF *string
		cvCreatedAt, cvUpdatedAt                      *time.Time
	)
	err := row.Scan(
		&d.ID, &d.VacancyID, &d.InternID, &d.CVID, &status, &d.CoverLetter, &d.ResumeURL,
		&d.AppliedAt, &d.UpdatedAt,
		&d.Vacancy.ID, &d.Vacancy.Title, &d.Vacancy.RecruiterID, &d.Vacancy.IsActive,
		&d.Intern.ID, &d.Intern.Name, &d.Intern.Login, &internRole, &d.Intern.ProfilePic, &d.Intern.Description, &d.Intern.CreatedAt,
		&cvID, &cvUserID, &cvTitle, &cvDescription, &cvPDF, &cvCreatedAt, &cvUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Status = domain.ApplicationStatus(status)
	d.Intern.Role = domain.Role(internRole)

	if cvID != nil {
		d.CV = &domain.CV{
			ID:          *cvID,
			UserID:      deref(cvUserID),
			Title:       deref(cvTitle),
			Description: deref(cvDescription),
			PDF:         deref(cvPDF),
		}
		if cvCreatedAt != nil {
			d.CV.CreatedAt = *cvCreatedAt
		}
		if cvUpdatedAt != nil {
			d.CV.UpdatedAt = *cvUpdatedAt
		}
	}
	return &d, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Create inserts a new application. A second application for the same
// vacancy and intern fails on applications_vacancy_intern_key with ErrConflict.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, vacancy_id, intern_id, cv_id, status, cover_letter, resume_url, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if app.Status == "" {
		app.Status = domain.StatusPending
	}

	_, err := r.db.Exec(ctx, query,
		app.ID,
		app.VacancyID,
		app.InternID,
		app.CVID,
		string(app.Status),
		app.CoverLetter,
		app.ResumeURL,
		app.AppliedAt,
		app.UpdatedAt,
	)
	return mapError("create application", err)
}

// GetDetail retrieves an application by ID with its vacancy, intern and CV
func (r *applicationRepo) GetDetail(ctx context.Context, id string) (*domain.ApplicationDetail, error) {
	d, err := scanApplicationDetail(r.db.QueryRow(ctx, applicationDetailQuery+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, mapError("get application", err)
	}
	return d, nil
}

// ListByIntern returns the intern's applications, newest first
func (r *applicationRepo) ListByIntern(ctx context.Context, internID string) ([]domain.ApplicationDetail, error) {
	return r.listDetails(ctx, "list intern applications",
		applicationDetailQuery+` WHERE a.intern_id = $1 ORDER BY a.applied_at DESC`, internID)
}

// ListByVacancy returns the vacancy's applications, newest first
func (r *applicationRepo) ListByVacancy(ctx context.Context, vacancyID string) ([]domain.ApplicationDetail, error) {
	return r.listDetails(ctx, "list vacancy applications",
		applicationDetailQuery+` WHERE a.vacancy_id = $1 ORDER BY a.applied_at DESC`, vacancyID)
}

func (r *applicationRepo) listDetails(ctx context.Context, op, query string, args ...any) ([]domain.ApplicationDetail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	apps := []domain.ApplicationDetail{}
	for rows.Next() {
		d, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		apps = append(apps, *d)
	}
	return apps, mapError(op, rows.Err())
}

// Exists checks if the intern already applied to the vacancy
func (r *applicationRepo) Exists(ctx context.Context, vacancyID, internID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE vacancy_id = $1 AND intern_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, vacancyID, internID).Scan(&exists); err != nil {
		return false, mapError("check application", err)
	}
	return exists, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	query := `
		UPDATE applications
		SET status = $2, cover_letter = $3, resume_url = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, app.ID, string(app.Status), app.CoverLetter, app.ResumeURL, app.UpdatedAt)
	return expectRows("update application", tag, err)
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	return expectRows("delete application", tag, err)
}
