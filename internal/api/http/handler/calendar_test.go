package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/jobsift/jobsift-server/internal/api/http/context"
	"github.com/jobsift/jobsift-server/internal/model"
	"github.com/jobsift/jobsift-server/internal/testutil"
)

func newCalendarHandler(cal *mockCalendarService, feed *mockFeedService) *Calendar {
	return NewCalendar(cal, feed, CalendarDefaults{FeedDays: 90, EventsDays: 30}, httpctx.NewManager(), testutil.MakeNoopLogger())
}

func TestCalendarHandler_Sync(t *testing.T) {
	userID := uuid.New()
	interviewID := uuid.New()
	externalID := "google_event_" + interviewID.String()

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "synced",
			body:       fmt.Sprintf(`{"interview_id":%q}`, interviewID),
			wantStatus: http.StatusOK,
			wantBody:   `"event_id":"` + externalID + `"`,
		},
		{
			name:       "missing interview id",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `interview_id is required`,
		},
		{
			name:       "not found",
			body:       fmt.Sprintf(`{"interview_id":%q}`, interviewID),
			svcErr:     model.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `Interview not found`,
		},
		{
			name:       "no interview date",
			body:       fmt.Sprintf(`{"interview_id":%q}`, interviewID),
			svcErr:     model.NewValidationError("interview_date", "interview date is required for calendar sync"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"field":"interview_date"`,
		},
		{
			name:       "unsupported provider",
			body:       fmt.Sprintf(`{"interview_id":%q}`, interviewID),
			svcErr:     fmt.Errorf("%w: %q", model.ErrUnsupportedProvider, "google"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "provider failure",
			body:       fmt.Sprintf(`{"interview_id":%q}`, interviewID),
			svcErr:     fmt.Errorf("%w: google: quota", model.ErrUpstream),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := &mockCalendarService{}
			cal.On("SyncWithProvider", mock.Anything, userID, interviewID, "google").Return(model.SyncResult{
				ExternalEventID: externalID,
				CalendarURL:     "https://calendar.google.com/calendar/event?eid=" + externalID,
				Message:         "Interview synced with Google Calendar (Mock)",
				Event:           model.CalendarEvent{ID: uuid.New(), InterviewID: interviewID, IsSynced: true},
			}, tt.svcErr)

			req := newRequest(http.MethodPost, "/calendar/google/sync", tt.body, userID)
			req.SetPathValue("provider", "google")
			rec := httptest.NewRecorder()
			newCalendarHandler(cal, &mockFeedService{}).Sync(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestCalendarHandler_ExportICS(t *testing.T) {
	userID := uuid.New()
	body := []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")

	t.Run("default window", func(t *testing.T) {
		feed := &mockFeedService{}
		feed.On("Generate", mock.Anything, userID, 90).Return(body, nil)

		rec := httptest.NewRecorder()
		newCalendarHandler(&mockCalendarService{}, feed).ExportICS(rec, newRequest(http.MethodGet, "/calendar/ics", "", userID))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, "attachment; filename=jobsift_interviews.ics", rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
		assert.Equal(t, body, rec.Body.Bytes())
	})

	t.Run("explicit window", func(t *testing.T) {
		feed := &mockFeedService{}
		feed.On("Generate", mock.Anything, userID, 7).Return(body, nil)

		rec := httptest.NewRecorder()
		newCalendarHandler(&mockCalendarService{}, feed).ExportICS(rec, newRequest(http.MethodGet, "/calendar/ics?days_ahead=7", "", userID))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("window out of range", func(t *testing.T) {
		feed := &mockFeedService{}
		feed.On("Generate", mock.Anything, userID, 0).Return(nil, model.NewValidationError("days_ahead", "must be between 1 and 365"))

		rec := httptest.NewRecorder()
		newCalendarHandler(&mockCalendarService{}, feed).ExportICS(rec, newRequest(http.MethodGet, "/calendar/ics?days_ahead=0", "", userID))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCalendarHandler_UpcomingEvents(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)
	events := []model.CalendarEvent{
		{ID: uuid.New(), Title: "Interview: Engineer at Acme", Provider: "google", StartTime: start, EndTime: start.Add(time.Hour), IsSynced: true},
	}

	cal := &mockCalendarService{}
	cal.On("UpcomingEvents", mock.Anything, userID, 30).Return(events, nil)

	rec := httptest.NewRecorder()
	newCalendarHandler(cal, &mockFeedService{}).UpcomingEvents(rec, newRequest(http.MethodGet, "/calendar/events", "", userID))
	require.Equal(t, http.StatusOK, rec.Code)

	var got eventListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 30, got.DaysAhead)
	assert.Equal(t, "google", got.Events[0].Provider)
	assert.True(t, got.Events[0].IsSynced)
}

func TestCalendarHandler_DeleteEvent(t *testing.T) {
	userID := uuid.New()
	eventID := uuid.New()

	tests := []struct {
		name       string
		deleted    bool
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{name: "deleted", deleted: true, wantStatus: http.StatusOK, wantBody: "Calendar event deleted successfully"},
		{name: "missing or foreign", deleted: false, wantStatus: http.StatusNotFound, wantBody: "Calendar event not found"},
		{name: "store failure", svcErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := &mockCalendarService{}
			cal.On("DeleteEvent", mock.Anything, userID, eventID).Return(tt.deleted, tt.svcErr)

			req := newRequest(http.MethodDelete, "/calendar/events/"+eventID.String(), "", userID)
			req.SetPathValue("id", eventID.String())
			rec := httptest.NewRecorder()
			newCalendarHandler(cal, &mockFeedService{}).DeleteEvent(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestCalendarHandler_IntegrationStatus(t *testing.T) {
	userID := uuid.New()
	cal := &mockCalendarService{}
	cal.On("IntegrationStatus", mock.Anything, userID).Return(model.IntegrationStatus{
		TotalEvents: 4, SyncedEvents: 1, ICSFeedAvailable: true, SyncPercentage: 25,
	}, nil)

	rec := httptest.NewRecorder()
	newCalendarHandler(cal, &mockFeedService{}).IntegrationStatus(rec, newRequest(http.MethodGet, "/calendar/integration-status", "", userID))
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 25.0, got["sync_percentage"])
	assert.Equal(t, false, got["google_calendar_connected"])
	assert.Equal(t, true, got["ics_feed_available"])
}

func TestCalendarHandler_CreateEvent(t *testing.T) {
	userID := uuid.New()
	interviewID := uuid.New()

	cal := &mockCalendarService{}
	cal.On("CreateEvent", mock.Anything, userID, mock.MatchedBy(func(p model.CreateEventParams) bool {
		return p.InterviewID == interviewID && p.Provider == "google" && p.EndTime.Sub(p.StartTime) == 30*time.Minute
	})).Return(model.CalendarEvent{ID: uuid.New(), InterviewID: interviewID}, nil)

	body := fmt.Sprintf(`{"interview_id":%q,"calendar_provider":"google","event_title":"Call",`+
		`"start_time":"2026-03-05T14:00:00Z","end_time":"2026-03-05T14:30:00Z"}`, interviewID)
	rec := httptest.NewRecorder()
	newCalendarHandler(cal, &mockFeedService{}).CreateEvent(rec, newRequest(http.MethodPost, "/calendar/events", body, userID))

	assert.Equal(t, http.StatusCreated, rec.Code)
	cal.AssertExpectations(t)
}

func TestCalendarHandler_Publishing(t *testing.T) {
	userID := uuid.New()

	t.Run("publish", func(t *testing.T) {
		feed := &mockFeedService{}
		feed.On("Publish", mock.Anything, userID, 90).Return("feeds/"+userID.String()+".ics", nil)

		rec := httptest.NewRecorder()
		newCalendarHandler(&mockCalendarService{}, feed).PublishICS(rec, newRequest(http.MethodPost, "/calendar/ics/publish", "", userID))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"key":"feeds/`+userID.String()+`.ics"`)
	})

	t.Run("publishing disabled", func(t *testing.T) {
		feed := &mockFeedService{}
		feed.On("Publish", mock.Anything, userID, 90).Return("", model.ErrPublishingDisabled)

		rec := httptest.NewRecorder()
		newCalendarHandler(&mockCalendarService{}, feed).PublishICS(rec, newRequest(http.MethodPost, "/calendar/ics/publish", "", userID))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("published snapshot", func(t *testing.T) {
		feed := &mockFeedService{}
		feed.On("Published", mock.Anything, userID).Return(io.NopCloser(strings.NewReader("BEGIN:VCALENDAR")), nil)

		rec := httptest.NewRecorder()
		newCalendarHandler(&mockCalendarService{}, feed).PublishedICS(rec, newRequest(http.MethodGet, "/calendar/ics/published", "", userID))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "BEGIN:VCALENDAR", rec.Body.String())
		assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("nothing published", func(t *testing.T) {
		feed := &mockFeedService{}
		feed.On("Published", mock.Anything, userID).Return(nil, model.ErrNotFound)

		rec := httptest.NewRecorder()
		newCalendarHandler(&mockCalendarService{}, feed).PublishedICS(rec, newRequest(http.MethodGet, "/calendar/ics/published", "", userID))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unpublish", func(t *testing.T) {
		feed := &mockFeedService{}
		feed.On("Unpublish", mock.Anything, userID).Return(nil)

		rec := httptest.NewRecorder()
		newCalendarHandler(&mockCalendarService{}, feed).UnpublishICS(rec, newRequest(http.MethodDelete, "/calendar/ics/published", "", userID))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCalendarHandler_Feeds(t *testing.T) {
	cal := &mockCalendarService{}
	cal.On("Feeds").Return(model.FeedDirectory{
		Feeds: map[string]model.FeedDescriptor{
			"ics":       {Name: "ICS Feed", URL: "https://api.example.com/calendar/ics", Status: "available"},
			"microsoft": {Name: "Microsoft Calendar Sync", Status: "coming_soon"},
		},
		Instructions: map[string]string{"outlook": "File → Account Settings"},
	})

	rec := httptest.NewRecorder()
	newCalendarHandler(cal, &mockFeedService{}).Feeds(rec, newRequest(http.MethodGet, "/calendar/feeds", "", uuid.New()))
	require.Equal(t, http.StatusOK, rec.Code)

	var got feedsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "https://api.example.com/calendar/ics", got.Feeds["ics"].URL)
	assert.Equal(t, "coming_soon", got.Feeds["microsoft"].Status)
	assert.Equal(t, "File → Account Settings", got.Instructions["outlook"])
}
