package domain_test

import (
	"net/http"
	"testing"

	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func statusPtr(s domain.ApplicationStatus) *domain.ApplicationStatus { return &s }
func strPtr(s string) *string                                        { return &s }

func sampleApplication() *domain.ApplicationDetail {
	return &domain.ApplicationDetail{
		Application: domain.Application{ID: "app-1", InternID: "intern-1", VacancyID: "vac-1", Status: domain.StatusPending},
		Vacancy:     domain.VacancyRef{ID: "vac-1", RecruiterID: "rec-1", IsActive: true},
	}
}

var (
	intern      = domain.Principal{UserID: "intern-1", Role: domain.RoleIntern}
	otherIntern = domain.Principal{UserID: "intern-2", Role: domain.RoleIntern}
	recruiter   = domain.Principal{UserID: "rec-1", Role: domain.RoleRecruiter}
	otherRec    = domain.Principal{UserID: "rec-2", Role: domain.RoleRecruiter}
)

func TestParseRole(t *testing.T) {
	r, err := domain.ParseRole("intern")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleIntern, r)

	_, err = domain.ParseRole("admin")
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
}

func TestAuthorize(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		err := domain.Authorize(domain.Principal{}, domain.Rule{})
		assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))
	})

	t.Run("role mismatch uses reason", func(t *testing.T) {
		err := domain.Authorize(recruiter, domain.Rule{Role: domain.RoleIntern, Reason: "Only interns can create CVs"})
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
		assert.EqualError(t, err, "Only interns can create CVs")
	})

	t.Run("role mismatch default message", func(t *testing.T) {
		err := domain.Authorize(intern, domain.Rule{Role: domain.RoleRecruiter})
		assert.EqualError(t, err, "Only recruiters can perform this action")
	})

	t.Run("owner mismatch", func(t *testing.T) {
		err := domain.Authorize(intern, domain.Rule{OwnerID: "someone-else"})
		assert.Equal(t, http.StatusForbidden, apperror.CodeOf(err))
	})

	t.Run("role and owner match", func(t *testing.T) {
		assert.NoError(t, domain.Authorize(recruiter, domain.Rule{Role: domain.RoleRecruiter, OwnerID: "rec-1"}))
	})
}

func TestAuthorizeApplicationPatch(t *testing.T) {
	cases := []struct {
		name  string
		who   domain.Principal
		patch domain.ApplicationPatch
		code  int
	}{
		{"owner accepts", recruiter, domain.ApplicationPatch{Status: statusPtr(domain.StatusAccepted)}, 0},
		{"owner rejects", recruiter, domain.ApplicationPatch{Status: statusPtr(domain.StatusRejected)}, 0},
		{"owner cannot cancel", recruiter, domain.ApplicationPatch{Status: statusPtr(domain.StatusCancelled)}, http.StatusBadRequest},
		{"owner cannot edit letter", recruiter, domain.ApplicationPatch{CoverLetter: strPtr("hi")}, http.StatusBadRequest},
		{"other recruiter", otherRec, domain.ApplicationPatch{Status: statusPtr(domain.StatusAccepted)}, http.StatusForbidden},
		{"applicant cancels", intern, domain.ApplicationPatch{Status: statusPtr(domain.StatusCancelled)}, 0},
		{"applicant edits letter", intern, domain.ApplicationPatch{CoverLetter: strPtr("updated")}, 0},
		{"applicant cannot accept", intern, domain.ApplicationPatch{Status: statusPtr(domain.StatusAccepted)}, http.StatusForbidden},
		{"other intern cancels", otherIntern, domain.ApplicationPatch{Status: statusPtr(domain.StatusCancelled)}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.AuthorizeApplicationPatch(tc.who, sampleApplication(), tc.patch)
			if tc.code == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.code, apperror.CodeOf(err))
		})
	}
}

func TestCancelledApplicationIsTerminalForRecruiter(t *testing.T) {
	app := sampleApplication()
	app.Status = domain.StatusCancelled

	err := domain.AuthorizeApplicationPatch(recruiter, app, domain.ApplicationPatch{Status: statusPtr(domain.StatusAccepted)})
	assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
}

func TestAuthorizeApplicationDelete(t *testing.T) {
	assert.NoError(t, domain.AuthorizeApplicationDelete(intern, sampleApplication()))
	assert.NoError(t, domain.AuthorizeApplicationDelete(recruiter, sampleApplication()))
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(domain.AuthorizeApplicationDelete(otherIntern, sampleApplication())))
	assert.Equal(t, http.StatusForbidden, apperror.CodeOf(domain.AuthorizeApplicationDelete(otherRec, sampleApplication())))
}

func TestApplicationStatus(t *testing.T) {
	assert.True(t, domain.StatusReviewed.Valid())
	assert.False(t, domain.ApplicationStatus("hired").Valid())
	assert.False(t, domain.StatusCancelled.SettableByRecruiter())
}
