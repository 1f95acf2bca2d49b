package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/model"
)

const (
	icsContentType     = "text/calendar; charset=utf-8"
	icsDisposition     = "attachment; filename=jobsift_interviews.ics"
	eventNotFoundMsg   = "Calendar event not found"
	feedNotFoundMsg    = "Published feed not found"
	eventDeletedMsg    = "Calendar event deleted successfully"
	feedUnpublishedMsg = "Published feed removed"
)

// CalendarService defines calendar event and provider sync operations.
type CalendarService interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, params model.CreateEventParams) (model.CalendarEvent, error)
	SyncWithProvider(ctx context.Context, userID, interviewID uuid.UUID, providerName string) (model.SyncResult, error)
	EventsForInterview(ctx context.Context, userID, interviewID uuid.UUID) ([]model.CalendarEvent, error)
	UpcomingEvents(ctx context.Context, userID uuid.UUID, daysAhead int) ([]model.CalendarEvent, error)
	DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	IntegrationStatus(ctx context.Context, userID uuid.UUID) (model.IntegrationStatus, error)
	Feeds() model.FeedDirectory
}

// FeedService defines ICS feed generation and publishing.
type FeedService interface {
	Generate(ctx context.Context, userID uuid.UUID, daysAhead int) ([]byte, error)
	Publish(ctx context.Context, userID uuid.UUID, daysAhead int) (string, error)
	Published(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error)
	Unpublish(ctx context.Context, userID uuid.UUID) error
}

// CalendarDefaults holds the windows used when days_ahead is omitted.
type CalendarDefaults struct {
	FeedDays   int
	EventsDays int
}

// Calendar handles HTTP endpoints for calendar events and feeds.
type Calendar struct {
	calendarService CalendarService
	feedService     FeedService
	defaults        CalendarDefaults
	contextManager  model.ContextManager
	logger          *logger.Logger
}

func NewCalendar(
	calendarService CalendarService,
	feedService FeedService,
	defaults CalendarDefaults,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Calendar {
	return &Calendar{
		calendarService: calendarService,
		feedService:     feedService,
		defaults:        defaults,
		contextManager:  contextManager,
		logger:          logger,
	}
}

func (h *Calendar) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	var req createEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "")
		return
	}

	event, err := h.calendarService.CreateEvent(r.Context(), userID, model.CreateEventParams{
		InterviewID: req.InterviewID,
		Provider:    req.Provider,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		writeError(w, err, interviewNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(event))
}

func (h *Calendar) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	providerName := r.PathValue("provider")

	var req syncRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "")
		return
	}
	if req.InterviewID == uuid.Nil {
		writeError(w, model.NewValidationError("interview_id", "interview_id is required"), "")
		return
	}

	h.logger.Debug("Calendar handler: processing sync request",
		"user_id", userID, "interview_id", req.InterviewID, "provider", providerName)

	res, err := h.calendarService.SyncWithProvider(r.Context(), userID, req.InterviewID, providerName)
	if err != nil {
		h.logger.Error("Calendar handler: sync failed",
			"user_id", userID, "interview_id", req.InterviewID, "provider", providerName, "error", err)
		writeError(w, err, interviewNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{
		Success:       true,
		EventID:       res.ExternalEventID,
		CalendarURL:   res.CalendarURL,
		Message:       res.Message,
		CalendarEvent: toEventResponse(res.Event),
	})
}

func (h *Calendar) ExportICS(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	days, err := queryInt(r, "days_ahead", h.defaults.FeedDays)
	if err != nil {
		writeError(w, err, "")
		return
	}

	body, err := h.feedService.Generate(r.Context(), userID, days)
	if err != nil {
		if !model.IsValidation(err) {
			h.logger.Error("Calendar handler: feed generation failed", "user_id", userID, "error", err)
		}
		writeError(w, err, "")
		return
	}

	w.Header().Set("Content-Type", icsContentType)
	w.Header().Set("Content-Disposition", icsDisposition)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Calendar) PublishICS(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	days, err := queryInt(r, "days_ahead", h.defaults.FeedDays)
	if err != nil {
		writeError(w, err, "")
		return
	}

	key, err := h.feedService.Publish(r.Context(), userID, days)
	if err != nil {
		writeError(w, err, "")
		return
	}

	h.logger.Info("Calendar handler: feed published", "user_id", userID, "key", key)
	writeJSON(w, http.StatusOK, publishResponse{Key: key, DaysAhead: days})
}

func (h *Calendar) PublishedICS(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	rc, err := h.feedService.Published(r.Context(), userID)
	if err != nil {
		writeError(w, err, feedNotFoundMsg)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", icsContentType)
	w.Header().Set("Content-Disposition", icsDisposition)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("Calendar handler: streaming published feed failed", "user_id", userID, "error", err)
	}
}

func (h *Calendar) UnpublishICS(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	if err := h.feedService.Unpublish(r.Context(), userID); err != nil {
		writeError(w, err, feedNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: feedUnpublishedMsg})
}

func (h *Calendar) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	days, err := queryInt(r, "days_ahead", h.defaults.EventsDays)
	if err != nil {
		writeError(w, err, "")
		return
	}

	events, err := h.calendarService.UpcomingEvents(r.Context(), userID, days)
	if err != nil {
		writeError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, eventListResponse{
		Events:    toEventResponses(events),
		Total:     len(events),
		DaysAhead: days,
	})
}

func (h *Calendar) InterviewEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	interviewID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err, "")
		return
	}

	events, err := h.calendarService.EventsForInterview(r.Context(), userID, interviewID)
	if err != nil {
		writeError(w, err, interviewNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponses(events))
}

func (h *Calendar) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	eventID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err, "")
		return
	}

	deleted, err := h.calendarService.DeleteEvent(r.Context(), userID, eventID)
	if err != nil {
		h.logger.Error("Calendar handler: delete failed", "user_id", userID, "event_id", eventID, "error", err)
		writeError(w, err, "")
		return
	}
	if !deleted {
		writeError(w, model.ErrNotFound, eventNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: eventDeletedMsg})
}

func (h *Calendar) IntegrationStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	status, err := h.calendarService.IntegrationStatus(r.Context(), userID)
	if err != nil {
		writeError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, integrationStatusResponse{
		TotalEvents:             status.TotalEvents,
		SyncedEvents:            status.SyncedEvents,
		GoogleCalendarConnected: status.GoogleCalendarConnected,
		ICSFeedAvailable:        status.ICSFeedAvailable,
		SyncPercentage:          status.SyncPercentage,
	})
}

func (h *Calendar) Feeds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toFeedsResponse(h.calendarService.Feeds()))
}
