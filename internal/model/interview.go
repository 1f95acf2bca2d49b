package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InterviewStore defines persistence operations for interviews.
//
// The store does not enforce ownership on Update and Delete; callers compare
// Interview.UserID with the requesting user after GetByID.
type InterviewStore interface {
	Create(ctx context.Context, interview Interview) (Interview, error)
	GetByID(ctx context.Context, id uuid.UUID) (Interview, error)
	ListByOwner(ctx context.Context, userID uuid.UUID, filter InterviewFilter, page Pagination) ([]Interview, error)
	ListUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Interview, error)
	CountByOwner(ctx context.Context, userID uuid.UUID) (int, error)
	CountByOwnerAndStatus(ctx context.Context, userID uuid.UUID, status ApplicationStatus) (int, error)
	ListRecentlyUpdated(ctx context.Context, userID uuid.UUID, limit int) ([]Interview, error)
	Update(ctx context.Context, id uuid.UUID, update InterviewUpdate) (Interview, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkMode enumerates where the job is performed.
type WorkMode string

const (
	WorkModeRemote WorkMode = "REMOTE"
	WorkModeHybrid WorkMode = "HYBRID"
	WorkModeOnsite WorkMode = "ONSITE"
)

// WorkModes lists every work mode in display order.
var WorkModes = []WorkMode{WorkModeRemote, WorkModeHybrid, WorkModeOnsite}

// ParseWorkMode converts s to a WorkMode. The second value is false for unknown input.
func ParseWorkMode(s string) (WorkMode, bool) {
	for _, m := range WorkModes {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// ApplicationStatus is the stage an application is in.
type ApplicationStatus string

const (
	StatusApplied          ApplicationStatus = "APPLIED"
	StatusScreening        ApplicationStatus = "SCREENING"
	StatusHRInterview      ApplicationStatus = "HR_INTERVIEW"
	StatusTechInterview    ApplicationStatus = "TECH_INTERVIEW"
	StatusManagerInterview ApplicationStatus = "MANAGER_INTERVIEW"
	StatusOffer            ApplicationStatus = "OFFER"
	StatusRejected         ApplicationStatus = "REJECTED"
	StatusOnHold           ApplicationStatus = "ON_HOLD"
)

// ApplicationStatuses lists every status in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied,
	StatusScreening,
	StatusHRInterview,
	StatusTechInterview,
	StatusManagerInterview,
	StatusOffer,
	StatusRejected,
	StatusOnHold,
}

// ParseApplicationStatus converts s to an ApplicationStatus. The second value is false for unknown input.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	for _, st := range ApplicationStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Interview is a single job application.
type Interview struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	CompanyName        string
	CompanyDescription *string
	RoleTitle          string
	WorkMode           WorkMode
	Location           *string
	Status             ApplicationStatus
	NextMilestone      *string
	ContactName        *string
	ContactEmail       *string
	ContactPhone       *string
	SalaryMin          *float64
	SalaryMax          *float64
	Currency           string
	Language           string
	TravelRequirements *string
	Notes              *string
	ScheduledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// InterviewFilter narrows ListByOwner. Zero values mean "no filter".
type InterviewFilter struct {
	Status   *ApplicationStatus
	Company  string
	FromDate *time.Time
	ToDate   *time.Time
}

// Pagination is an offset window over a listing.
type Pagination struct {
	Skip  int
	Limit int
}

// InterviewUpdate carries a partial update. Nil fields are left untouched.
type InterviewUpdate struct {
	CompanyName        *string
	CompanyDescription *string
	RoleTitle          *string
	WorkMode           *WorkMode
	Location           *string
	Status             *ApplicationStatus
	NextMilestone      *string
	ContactName        *string
	ContactEmail       *string
	ContactPhone       *string
	SalaryMin          *float64
	SalaryMax          *float64
	Currency           *string
	Language           *string
	TravelRequirements *string
	Notes              *string
	ScheduledAt        *time.Time
}

// IsEmpty reports whether the update changes nothing.
func (u InterviewUpdate) IsEmpty() bool {
	return u == InterviewUpdate{}
}

// Apply returns a copy of i with the non-nil fields of u set.
func (u InterviewUpdate) Apply(i Interview) Interview {
	if u.CompanyName != nil {
		i.CompanyName = *u.CompanyName
	}
	if u.CompanyDescription != nil {
		i.CompanyDescription = u.CompanyDescription
	}
	if u.RoleTitle != nil {
		i.RoleTitle = *u.RoleTitle
	}
	if u.WorkMode != nil {
		i.WorkMode = *u.WorkMode
	}
	if u.Location != nil {
		i.Location = u.Location
	}
	if u.Status != nil {
		i.Status = *u.Status
	}
	if u.NextMilestone != nil {
		i.NextMilestone = u.NextMilestone
	}
	if u.ContactName != nil {
		i.ContactName = u.ContactName
	}
	if u.ContactEmail != nil {
		i.ContactEmail = u.ContactEmail
	}
	if u.ContactPhone != nil {
		i.ContactPhone = u.ContactPhone
	}
	if u.SalaryMin != nil {
		i.SalaryMin = u.SalaryMin
	}
	if u.SalaryMax != nil {
		i.SalaryMax = u.SalaryMax
	}
	if u.Currency != nil {
		i.Currency = *u.Currency
	}
	if u.Language != nil {
		i.Language = *u.Language
	}
	if u.TravelRequirements != nil {
		i.TravelRequirements = u.TravelRequirements
	}
	if u.Notes != nil {
		i.Notes = u.Notes
	}
	if u.ScheduledAt != nil {
		i.ScheduledAt = u.ScheduledAt
	}
	return i
}

// CreateInterviewParams carries client input for a new interview.
// Enumerated fields are raw strings and are validated by the service.
type CreateInterviewParams struct {
	CompanyName        string
	CompanyDescription *string
	RoleTitle          string
	WorkMode           string
	Location           *string
	Status             string
	NextMilestone      *string
	ContactName        *string
	ContactEmail       *string
	ContactPhone       *string
	SalaryMin          *float64
	SalaryMax          *float64
	Currency           string
	Language           string
	TravelRequirements *string
	Notes              *string
	ScheduledAt        *time.Time
}

// UpdateInterviewParams carries a partial client update. Nil fields are left untouched.
type UpdateInterviewParams struct {
	CompanyName        *string
	CompanyDescription *string
	RoleTitle          *string
	WorkMode           *string
	Location           *string
	Status             *string
	NextMilestone      *string
	ContactName        *string
	ContactEmail       *string
	ContactPhone       *string
	SalaryMin          *float64
	SalaryMax          *float64
	Currency           *string
	Language           *string
	TravelRequirements *string
	Notes              *string
	ScheduledAt        *time.Time
}

// ListInterviewsParams is the raw listing query. Status is ignored when unrecognized.
type ListInterviewsParams struct {
	Status   string
	Company  string
	FromDate *time.Time
	ToDate   *time.Time
	Skip     int
	Limit    int
}

// InterviewPage is one page of a listing plus the owner's total count.
type InterviewPage struct {
	Interviews []Interview
	Total      int
	Skip       int
	Limit      int
}

// InterviewStats aggregates an owner's pipeline.
type InterviewStats struct {
	Total          int
	StatusCounts   map[ApplicationStatus]int
	ConversionRate float64
	SuccessRate    float64
}
