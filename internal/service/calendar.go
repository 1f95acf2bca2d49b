package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/model"
)

const (
	syncedEventDuration   = time.Hour
	integrationWindowDays = 365
	maxWindowDays         = 365
)

// CalendarOptions tunes the calendar service.
type CalendarOptions struct {
	// DeduplicateSync makes repeated syncs of the same interview and provider
	// update the existing event instead of inserting a new one.
	DeduplicateSync bool
	PublicBaseURL   string
}

type Calendar struct {
	interviews model.InterviewStore
	events     model.CalendarEventStore
	providers  model.ProviderRegistry
	opts       CalendarOptions
	logger     *logger.Logger
}

func NewCalendar(
	interviews model.InterviewStore,
	events model.CalendarEventStore,
	providers model.ProviderRegistry,
	opts CalendarOptions,
	logger *logger.Logger,
) *Calendar {
	return &Calendar{
		interviews: interviews,
		events:     events,
		providers:  providers,
		opts:       opts,
		logger:     logger,
	}
}

// CreateEvent attaches an unsynced event to an interview owned by userID.
func (s *Calendar) CreateEvent(ctx context.Context, userID uuid.UUID, params model.CreateEventParams) (model.CalendarEvent, error) {
	title := strings.TrimSpace(params.Title)
	if err := validateRequired("event_title", title, 200); err != nil {
		return model.CalendarEvent{}, err
	}
	providerName := strings.ToLower(strings.TrimSpace(params.Provider))
	if err := validateRequired("calendar_provider", providerName, 50); err != nil {
		return model.CalendarEvent{}, err
	}
	if !params.EndTime.After(params.StartTime) {
		return model.CalendarEvent{}, model.NewValidationError("end_time", "must be after start_time")
	}

	if _, err := loadOwnedInterview(ctx, s.interviews, userID, params.InterviewID); err != nil {
		return model.CalendarEvent{}, err
	}

	event, err := s.events.Create(ctx, model.CalendarEvent{
		ID:          uuid.New(),
		InterviewID: params.InterviewID,
		Provider:    providerName,
		Title:       title,
		Description: params.Description,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
	})
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("failed to create calendar event: %w", err)
	}

	s.logger.Info("Calendar service: event created", "user_id", userID, "event_id", event.ID)
	return event, nil
}

// SyncWithProvider pushes an interview to providerName and records the synced event.
func (s *Calendar) SyncWithProvider(ctx context.Context, userID, interviewID uuid.UUID, providerName string) (model.SyncResult, error) {
	adapter, err := s.providers.Get(providerName)
	if err != nil {
		return model.SyncResult{}, err
	}

	interview, err := loadOwnedInterview(ctx, s.interviews, userID, interviewID)
	if err != nil {
		return model.SyncResult{}, err
	}

	if interview.ScheduledAt == nil {
		return model.SyncResult{}, model.NewValidationError("interview_date", "interview date is required for calendar sync")
	}

	start := *interview.ScheduledAt
	end := start.Add(syncedEventDuration)
	title := syncTitle(interview)
	description := syncDescription(interview)

	res, err := adapter.Submit(ctx, model.ProviderEvent{
		InterviewID: interview.ID,
		Title:       title,
		Description: description,
		Location:    deref(interview.Location),
		StartTime:   start,
		EndTime:     end,
	})
	if err != nil {
		s.logger.Error("Calendar service: provider rejected event",
			"provider", adapter.Name(), "interview_id", interviewID, "error", err)
		return model.SyncResult{}, fmt.Errorf("%w: %s: %v", model.ErrUpstream, adapter.Name(), err)
	}

	event, err := s.saveSynced(ctx, interview, adapter.Name(), res.ExternalID, title, description, start, end)
	if err != nil {
		return model.SyncResult{}, err
	}

	s.logger.Info("Calendar service: interview synced",
		"user_id", userID, "interview_id", interviewID, "provider", adapter.Name(), "event_id", event.ID)

	return model.SyncResult{
		ExternalEventID: res.ExternalID,
		CalendarURL:     res.URL,
		Message:         fmt.Sprintf("Interview synced with %s Calendar (Mock)", providerLabel(adapter.Name())),
		Event:           event,
	}, nil
}

func (s *Calendar) saveSynced(
	ctx context.Context,
	interview model.Interview,
	providerName, externalID, title, description string,
	start, end time.Time,
) (model.CalendarEvent, error) {
	if s.opts.DeduplicateSync {
		existing, err := s.events.GetByExternalID(ctx, externalID, providerName)
		switch {
		case err == nil:
			event, err := s.events.UpdateDetails(ctx, existing.ID, model.EventDetails{
				Title:       title,
				Description: &description,
				StartTime:   start,
				EndTime:     end,
				ExternalID:  externalID,
			})
			if err != nil {
				return model.CalendarEvent{}, fmt.Errorf("failed to update synced event: %w", err)
			}
			return event, nil
		case !errors.Is(err, model.ErrNotFound):
			return model.CalendarEvent{}, fmt.Errorf("failed to look up synced event: %w", err)
		}
	}

	event, err := s.events.Create(ctx, model.CalendarEvent{
		ID:              uuid.New(),
		InterviewID:     interview.ID,
		Provider:        providerName,
		ExternalEventID: &externalID,
		Title:           title,
		Description:     &description,
		StartTime:       start,
		EndTime:         end,
		IsSynced:        true,
	})
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("failed to create synced event: %w", err)
	}
	return event, nil
}

func (s *Calendar) EventsForInterview(ctx context.Context, userID, interviewID uuid.UUID) ([]model.CalendarEvent, error) {
	if _, err := loadOwnedInterview(ctx, s.interviews, userID, interviewID); err != nil {
		return nil, err
	}

	events, err := s.events.GetByInterview(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview events: %w", err)
	}
	return events, nil
}

func (s *Calendar) UpcomingEvents(ctx context.Context, userID uuid.UUID, daysAhead int) ([]model.CalendarEvent, error) {
	if err := validateWindow(daysAhead); err != nil {
		return nil, err
	}

	events, err := s.events.GetUpcomingForUser(ctx, userID, daysAhead)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}
	return events, nil
}

// DeleteEvent removes an event owned by userID. It reports false when the
// event does not exist or belongs to someone else.
func (s *Calendar) DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get calendar event: %w", err)
	}

	owned, err := s.isOwnedBy(ctx, event, userID)
	if err != nil {
		return false, err
	}
	if !owned {
		s.logger.Debug("Calendar service: delete of foreign event refused", "user_id", userID, "event_id", eventID)
		return false, nil
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete calendar event: %w", err)
	}

	s.logger.Info("Calendar service: event deleted", "user_id", userID, "event_id", eventID)
	return true, nil
}

// isOwnedBy resolves event -> interview -> owner.
func (s *Calendar) isOwnedBy(ctx context.Context, event model.CalendarEvent, userID uuid.UUID) (bool, error) {
	_, err := loadOwnedInterview(ctx, s.interviews, userID, event.InterviewID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Calendar) IntegrationStatus(ctx context.Context, userID uuid.UUID) (model.IntegrationStatus, error) {
	events, err := s.events.GetUpcomingForUser(ctx, userID, integrationWindowDays)
	if err != nil {
		return model.IntegrationStatus{}, fmt.Errorf("failed to get events: %w", err)
	}

	synced := 0
	for _, e := range events {
		if e.IsSynced {
			synced++
		}
	}
	total := len(events)

	return model.IntegrationStatus{
		TotalEvents:             total,
		SyncedEvents:            synced,
		GoogleCalendarConnected: false,
		ICSFeedAvailable:        true,
		SyncPercentage:          float64(synced) / float64(max(total, 1)) * 100,
	}, nil
}

// Feeds describes the feeds a client can subscribe to.
func (s *Calendar) Feeds() model.FeedDirectory {
	base := strings.TrimRight(s.opts.PublicBaseURL, "/")

	return model.FeedDirectory{
		Feeds: map[string]model.FeedDescriptor{
			"ics": {
				Name:          "ICS Feed (Apple Calendar, Outlook, etc.)",
				Description:   "Subscribe to this feed in your calendar app to see your interviews",
				URL:           base + "/calendar/ics",
				Status:        "available",
				SupportedApps: []string{"Apple Calendar", "Google Calendar", "Outlook", "Thunderbird"},
			},
			"google": {
				Name:        "Google Calendar Sync",
				Description: "Sync individual interviews with your Google Calendar",
				Status:      s.providerStatus("google"),
			},
			"microsoft": {
				Name:        "Microsoft Calendar Sync",
				Description: "Sync with Outlook/Microsoft Calendar",
				Status:      s.providerStatus("outlook"),
			},
		},
		Instructions: map[string]string{
			"apple_calendar":  "Settings → Accounts → Add Account → Other → Calendar → Enter the ICS URL",
			"google_calendar": "Use the sync button on individual interviews",
			"outlook":         "File → Account Settings → Internet Calendars → New → Enter the ICS URL",
		},
	}
}

func (s *Calendar) providerStatus(name string) string {
	if _, err := s.providers.Get(name); err != nil {
		return "coming_soon"
	}
	return "available"
}

func syncTitle(i model.Interview) string {
	return fmt.Sprintf("Interview: %s at %s", i.RoleTitle, i.CompanyName)
}

func syncDescription(i model.Interview) string {
	var sb strings.Builder
	sb.WriteString("Interview Details:\n")
	fmt.Fprintf(&sb, "- Company: %s\n", i.CompanyName)
	fmt.Fprintf(&sb, "- Role: %s\n", i.RoleTitle)
	fmt.Fprintf(&sb, "- Location: %s\n", orDefault(i.Location, "Not specified"))
	fmt.Fprintf(&sb, "- Contact: %s\n", orDefault(i.ContactName, "Not specified"))
	fmt.Fprintf(&sb, "- Notes: %s", orDefault(i.Notes, "No additional notes"))
	return sb.String()
}

func providerLabel(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func validateWindow(daysAhead int) error {
	if daysAhead < 1 || daysAhead > maxWindowDays {
		return model.NewValidationError("days_ahead", fmt.Sprintf("must be between 1 and %d", maxWindowDays))
	}
	return nil
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
