package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jobsift/jobsift-server/internal/model"
)

// MockInterviewStore mocks the InterviewStore interface
type MockInterviewStore struct {
	mock.Mock
}

func (m *MockInterviewStore) Create(ctx context.Context, interview model.Interview) (model.Interview, error) {
	args := m.Called(ctx, interview)
	if fn, ok := args.Get(0).(func(model.Interview) model.Interview); ok {
		return fn(interview), args.Error(1)
	}
	return args.Get(0).(model.Interview), args.Error(1)
}

func (m *MockInterviewStore) GetByID(ctx context.Context, id uuid.UUID) (model.Interview, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Interview), args.Error(1)
}

func (m *MockInterviewStore) ListByOwner(ctx context.Context, userID uuid.UUID, filter model.InterviewFilter, page model.Pagination) ([]model.Interview, error) {
	args := m.Called(ctx, userID, filter, page)
	return args.Get(0).([]model.Interview), args.Error(1)
}

func (m *MockInterviewStore) ListUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.Interview, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).([]model.Interview), args.Error(1)
}

func (m *MockInterviewStore) ListRecentlyUpdated(ctx context.Context, userID uuid.UUID, limit int) ([]model.Interview, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]model.Interview), args.Error(1)
}

func (m *MockInterviewStore) CountByOwner(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockInterviewStore) CountByOwnerAndStatus(ctx context.Context, userID uuid.UUID, status model.ApplicationStatus) (int, error) {
	args := m.Called(ctx, userID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockInterviewStore) Update(ctx context.Context, id uuid.UUID, update model.InterviewUpdate) (model.Interview, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(model.Interview), args.Error(1)
}

func (m *MockInterviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCalendarEventStore mocks the CalendarEventStore interface
type MockCalendarEventStore struct {
	mock.Mock
}

func (m *MockCalendarEventStore) Create(ctx context.Context, event model.CalendarEvent) (model.CalendarEvent, error) {
	args := m.Called(ctx, event)
	if fn, ok := args.Get(0).(func(model.CalendarEvent) model.CalendarEvent); ok {
		return fn(event), args.Error(1)
	}
	return args.Get(0).(model.CalendarEvent), args.Error(1)
}

func (m *MockCalendarEventStore) GetByID(ctx context.Context, id uuid.UUID) (model.CalendarEvent, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.CalendarEvent), args.Error(1)
}

func (m *MockCalendarEventStore) GetByInterview(ctx context.Context, interviewID uuid.UUID) ([]model.CalendarEvent, error) {
	args := m.Called(ctx, interviewID)
	return args.Get(0).([]model.CalendarEvent), args.Error(1)
}

func (m *MockCalendarEventStore) GetByExternalID(ctx context.Context, externalID, provider string) (model.CalendarEvent, error) {
	args := m.Called(ctx, externalID, provider)
	return args.Get(0).(model.CalendarEvent), args.Error(1)
}

func (m *MockCalendarEventStore) GetUpcomingForUser(ctx context.Context, userID uuid.UUID, daysAhead int) ([]model.CalendarEvent, error) {
	args := m.Called(ctx, userID, daysAhead)
	return args.Get(0).([]model.CalendarEvent), args.Error(1)
}

func (m *MockCalendarEventStore) MarkSynced(ctx context.Context, id uuid.UUID, externalID string) (model.CalendarEvent, error) {
	args := m.Called(ctx, id, externalID)
	return args.Get(0).(model.CalendarEvent), args.Error(1)
}

func (m *MockCalendarEventStore) UpdateDetails(ctx context.Context, id uuid.UUID, details model.EventDetails) (model.CalendarEvent, error) {
	args := m.Called(ctx, id, details)
	return args.Get(0).(model.CalendarEvent), args.Error(1)
}

func (m *MockCalendarEventStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFeedStorage mocks the FeedStorage interface
type MockFeedStorage struct {
	mock.Mock
}

func (m *MockFeedStorage) Put(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockFeedStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockFeedStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockFeedStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockProviderAdapter mocks the ProviderAdapter interface
type MockProviderAdapter struct {
	mock.Mock
}

func (m *MockProviderAdapter) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProviderAdapter) Submit(ctx context.Context, event model.ProviderEvent) (model.ProviderResult, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(model.ProviderResult), args.Error(1)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }
