package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CalendarEventStore defines persistence operations for calendar events.
type CalendarEventStore interface {
	Create(ctx context.Context, event CalendarEvent) (CalendarEvent, error)
	GetByID(ctx context.Context, id uuid.UUID) (CalendarEvent, error)
	GetByInterview(ctx context.Context, interviewID uuid.UUID) ([]CalendarEvent, error)
	GetByExternalID(ctx context.Context, externalID, provider string) (CalendarEvent, error)
	GetUpcomingForUser(ctx context.Context, userID uuid.UUID, daysAhead int) ([]CalendarEvent, error)
	MarkSynced(ctx context.Context, id uuid.UUID, externalID string) (CalendarEvent, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, details EventDetails) (CalendarEvent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CalendarEvent is a scheduled session attached to an interview.
type CalendarEvent struct {
	ID              uuid.UUID
	InterviewID     uuid.UUID
	Provider        string
	ExternalEventID *string
	Title           string
	Description     *string
	StartTime       time.Time
	EndTime         time.Time
	IsSynced        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EventDetails is the mutable part of a synchronized event.
type EventDetails struct {
	Title       string
	Description *string
	StartTime   time.Time
	EndTime     time.Time
	ExternalID  string
}

// CreateEventParams contains parameters to create an unsynced event manually.
type CreateEventParams struct {
	InterviewID uuid.UUID
	Provider    string
	Title       string
	Description *string
	StartTime   time.Time
	EndTime     time.Time
}

// SyncResult is returned by a successful provider synchronization.
type SyncResult struct {
	ExternalEventID string
	CalendarURL     string
	Message         string
	Event           CalendarEvent
}

// IntegrationStatus summarizes synchronization coverage for a user.
type IntegrationStatus struct {
	TotalEvents             int
	SyncedEvents            int
	GoogleCalendarConnected bool
	ICSFeedAvailable        bool
	SyncPercentage          float64
}
