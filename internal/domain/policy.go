package domain

import (
	"fmt"

	"internview-backend/pkg/apperror"
)

type Role string

const (
	RoleIntern    Role = "intern"
	RoleRecruiter Role = "recruiter"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleIntern, RoleRecruiter:
		return r, nil
	}
	return "", apperror.BadRequest(fmt.Sprintf("Invalid role %q: must be intern or recruiter", s))
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// Rule describes who may act on a resource. Empty fields are not checked.
type Rule struct {
	Role    Role
	OwnerID string
	Reason  string
}

// Authorize is the single gate for role and ownership checks.
func Authorize(p Principal, rule Rule) error {
	if !p.Authenticated() {
		return apperror.Unauthorized("Authentication required")
	}
	if rule.Role != "" && p.Role != rule.Role {
		return forbidden(rule.Reason, fmt.Sprintf("Only %ss can perform this action", rule.Role))
	}
	if rule.OwnerID != "" && p.UserID != rule.OwnerID {
		return forbidden(rule.Reason, "You do not own this resource")
	}
	return nil
}

func forbidden(reason, fallback string) error {
	if reason == "" {
		reason = fallback
	}
	return apperror.Forbidden(reason)
}

// ApplicationActor is the capacity in which a principal acts on an application.
type ApplicationActor int

const (
	ActorNone ApplicationActor = iota
	ActorApplicant
	ActorVacancyOwner
)

// ApplicationActorFor resolves the caller's relation to an application.
func ApplicationActorFor(p Principal, app *ApplicationDetail) ApplicationActor {
	switch {
	case p.Role == RoleIntern && p.UserID == app.InternID:
		return ActorApplicant
	case p.Role == RoleRecruiter && p.UserID == app.Vacancy.RecruiterID:
		return ActorVacancyOwner
	}
	return ActorNone
}

// AuthorizeApplicationPatch enforces the application state machine for one patch.
func AuthorizeApplicationPatch(p Principal, app *ApplicationDetail, patch ApplicationPatch) error {
	if !p.Authenticated() {
		return apperror.Unauthorized("Authentication required")
	}

	switch ApplicationActorFor(p, app) {
	case ActorVacancyOwner:
		if patch.CoverLetter != nil || patch.ResumeURL != nil {
			return apperror.BadRequest("Recruiters can only change the application status")
		}
		if patch.Status == nil {
			return nil
		}
		if app.Status == StatusCancelled {
			return apperror.BadRequest("Application was cancelled by the applicant")
		}
		if !patch.Status.SettableByRecruiter() {
			return apperror.BadRequest(fmt.Sprintf("Invalid status %q for a recruiter", *patch.Status))
		}
		return nil
	case ActorApplicant:
		if patch.Status != nil && *patch.Status != StatusCancelled {
			return apperror.Forbidden("Interns can only cancel their applications")
		}
		return nil
	}

	if p.Role == RoleRecruiter {
		return apperror.Forbidden("You can only update applications for your own vacancies")
	}
	return apperror.Forbidden("You can only update your own applications")
}

func AuthorizeApplicationDelete(p Principal, app *ApplicationDetail) error {
	if !p.Authenticated() {
		return apperror.Unauthorized("Authentication required")
	}
	if ApplicationActorFor(p, app) == ActorNone {
		return apperror.Forbidden("You don't have permission to delete this application")
	}
	return nil
}
