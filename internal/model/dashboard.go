package model

import (
	"time"

	"github.com/google/uuid"
)

// DashboardSummary is the landing page overview of a user's search.
type DashboardSummary struct {
	TotalInterviews      int
	ConversionRate       float64
	SuccessRate          float64
	ThisWeekApplications int
	StatusDistribution   []StatusCount
	Upcoming             []InterviewDigest
	RecentActivity       []InterviewDigest
	Insights             []string
}

// StatusCount is one non-empty bucket of the status distribution.
type StatusCount struct {
	Status ApplicationStatus
	Label  string
	Count  int
}

// InterviewDigest is a compact interview reference used in timelines.
type InterviewDigest struct {
	ID          uuid.UUID
	CompanyName string
	RoleTitle   string
	Status      ApplicationStatus
	ScheduledAt *time.Time
	UpdatedAt   time.Time
}
