package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	httpctx "github.com/jobsift/jobsift-server/internal/api/http/context"
	"github.com/jobsift/jobsift-server/internal/model"
)

type mockInterviewService struct {
	mock.Mock
}

func (m *mockInterviewService) Create(ctx context.Context, userID uuid.UUID, params model.CreateInterviewParams) (model.Interview, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(model.Interview), args.Error(1)
}

func (m *mockInterviewService) Get(ctx context.Context, userID, interviewID uuid.UUID) (model.Interview, error) {
	args := m.Called(ctx, userID, interviewID)
	return args.Get(0).(model.Interview), args.Error(1)
}

func (m *mockInterviewService) List(ctx context.Context, userID uuid.UUID, params model.ListInterviewsParams) (model.InterviewPage, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(model.InterviewPage), args.Error(1)
}

func (m *mockInterviewService) Update(ctx context.Context, userID, interviewID uuid.UUID, params model.UpdateInterviewParams) (model.Interview, error) {
	args := m.Called(ctx, userID, interviewID, params)
	return args.Get(0).(model.Interview), args.Error(1)
}

func (m *mockInterviewService) Delete(ctx context.Context, userID, interviewID uuid.UUID) error {
	args := m.Called(ctx, userID, interviewID)
	return args.Error(0)
}

func (m *mockInterviewService) Statistics(ctx context.Context, userID uuid.UUID) (model.InterviewStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.InterviewStats), args.Error(1)
}

func (m *mockInterviewService) Metadata() model.InterviewMetadata {
	args := m.Called()
	return args.Get(0).(model.InterviewMetadata)
}

type mockCalendarService struct {
	mock.Mock
}

func (m *mockCalendarService) CreateEvent(ctx context.Context, userID uuid.UUID, params model.CreateEventParams) (model.CalendarEvent, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(model.CalendarEvent), args.Error(1)
}

func (m *mockCalendarService) SyncWithProvider(ctx context.Context, userID, interviewID uuid.UUID, providerName string) (model.SyncResult, error) {
	args := m.Called(ctx, userID, interviewID, providerName)
	return args.Get(0).(model.SyncResult), args.Error(1)
}

func (m *mockCalendarService) EventsForInterview(ctx context.Context, userID, interviewID uuid.UUID) ([]model.CalendarEvent, error) {
	args := m.Called(ctx, userID, interviewID)
	return args.Get(0).([]model.CalendarEvent), args.Error(1)
}

func (m *mockCalendarService) UpcomingEvents(ctx context.Context, userID uuid.UUID, daysAhead int) ([]model.CalendarEvent, error) {
	args := m.Called(ctx, userID, daysAhead)
	return args.Get(0).([]model.CalendarEvent), args.Error(1)
}

func (m *mockCalendarService) DeleteEvent(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCalendarService) IntegrationStatus(ctx context.Context, userID uuid.UUID) (model.IntegrationStatus, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.IntegrationStatus), args.Error(1)
}

func (m *mockCalendarService) Feeds() model.FeedDirectory {
	args := m.Called()
	return args.Get(0).(model.FeedDirectory)
}

type mockFeedService struct {
	mock.Mock
}

func (m *mockFeedService) Generate(ctx context.Context, userID uuid.UUID, daysAhead int) ([]byte, error) {
	args := m.Called(ctx, userID, daysAhead)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockFeedService) Publish(ctx context.Context, userID uuid.UUID, daysAhead int) (string, error) {
	args := m.Called(ctx, userID, daysAhead)
	return args.String(0), args.Error(1)
}

func (m *mockFeedService) Published(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error) {
	args := m.Called(ctx, userID)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *mockFeedService) Unpublish(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// newRequest builds a request authenticated as userID. A nil userID leaves it anonymous.
func newRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if userID != uuid.Nil {
		r = r.WithContext(httpctx.NewManager().SetUserIDToContext(r.Context(), userID))
	}
	return r
}
