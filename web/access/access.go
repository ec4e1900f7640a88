// Package access holds the authorization decisions of the job board.
// Every rule is a pure function over (principal, action, resource) so
// the whole policy stays auditable in one place. The principal is
// always passed explicitly; a nil principal means an anonymous caller.
package access

import (
	"jobboard/database/model"
)

// CanCreateJob allows job creation for employers only.
func CanCreateJob(principal *model.User) bool {
	if principal == nil {
		return false
	}
	switch principal.Role {
	case model.RoleEmployer:
		return true
	default:
		return false
	}
}

// CanMutateJob allows update/delete for the owning employer only.
// Admins do not get write access here; the override is read-only.
func CanMutateJob(principal *model.User, job *model.Job) bool {
	if principal == nil || job == nil {
		return false
	}
	return principal.Role == model.RoleEmployer && job.EmployerId == principal.Id
}

// CanListJobApplications allows the owning employer to read the
// applicant list of a job.
func CanListJobApplications(principal *model.User, job *model.Job) bool {
	if principal == nil || job == nil {
		return false
	}
	return job.EmployerId == principal.Id
}

// CanCreateApplication allows application creation for job seekers only.
func CanCreateApplication(principal *model.User) bool {
	if principal == nil {
		return false
	}
	switch principal.Role {
	case model.RoleJobSeeker:
		return true
	default:
		return false
	}
}

// CanViewApplication allows the applicant, the owning employer, and
// admins (read-side override for moderation).
func CanViewApplication(principal *model.User, app *model.Application) bool {
	if principal == nil || app == nil {
		return false
	}
	if app.ApplicantId == principal.Id {
		return true
	}
	if app.Job != nil && app.Job.EmployerId == principal.Id {
		return true
	}
	return principal.IsAdmin()
}

// CanUpdateApplication allows the applicant and the owning employer.
func CanUpdateApplication(principal *model.User, app *model.Application) bool {
	if principal == nil || app == nil {
		return false
	}
	if app.ApplicantId == principal.Id {
		return true
	}
	return app.Job != nil && app.Job.EmployerId == principal.Id
}

// ProtectedFieldTouched reports whether an applicant-path update tries
// to change the employer-controlled fields. The rule binds only on the
// applicant path: employers and admins are exempt.
func ProtectedFieldTouched(principal *model.User, app *model.Application, fields map[string]any) bool {
	if principal == nil || app == nil {
		return false
	}
	if app.ApplicantId != principal.Id {
		return false
	}
	if app.Job != nil && app.Job.EmployerId == principal.Id {
		return false
	}
	for _, protected := range []string{"status", "notes"} {
		if _, ok := fields[protected]; ok {
			return true
		}
	}
	return false
}

// CanUpdateApplicationStatus allows the owning employer only. This is
// the privileged status-transition action; admins are not exempt.
func CanUpdateApplicationStatus(principal *model.User, app *model.Application) bool {
	if principal == nil || app == nil || app.Job == nil {
		return false
	}
	return app.Job.EmployerId == principal.Id
}

// CanMutateCategory mirrors the original policy: any authenticated
// principal may create or edit categories, reads are public.
func CanMutateCategory(principal *model.User) bool {
	return principal != nil
}
