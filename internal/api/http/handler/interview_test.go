package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
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

func newInterviewHandler(svc *mockInterviewService) *Interview {
	return NewInterview(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
}

func TestInterviewHandler_Create(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "created",
			body:       `{"company_name":"Acme","role_title":"Engineer","work_mode":"REMOTE","salary_range_min":100}`,
			wantStatus: http.StatusCreated,
			wantBody:   `"company_name":"Acme"`,
		},
		{
			name:       "validation error",
			body:       `{"company_name":"","role_title":"Engineer","work_mode":"REMOTE"}`,
			svcErr:     model.NewValidationError("company_name", "is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"field":"company_name"`,
		},
		{
			name:       "malformed body",
			body:       `{"company_name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"field":"body"`,
		},
		{
			name:       "store failure",
			body:       `{"company_name":"Acme","role_title":"Engineer","work_mode":"REMOTE"}`,
			svcErr:     errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"detail":"internal server error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockInterviewService{}
			svc.On("Create", mock.Anything, userID, mock.Anything).Return(model.Interview{
				ID: uuid.New(), UserID: userID, CompanyName: "Acme", RoleTitle: "Engineer",
				WorkMode: model.WorkModeRemote, Status: model.StatusApplied,
			}, tt.svcErr)

			rec := httptest.NewRecorder()
			newInterviewHandler(svc).Create(rec, newRequest(http.MethodPost, "/interviews", tt.body, userID))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestInterviewHandler_CreatePassesParams(t *testing.T) {
	userID := uuid.New()
	svc := &mockInterviewService{}
	svc.On("Create", mock.Anything, userID, mock.MatchedBy(func(p model.CreateInterviewParams) bool {
		return p.CompanyName == "Acme" && p.Status == "SCREENING" &&
			p.SalaryMin != nil && *p.SalaryMin == 100 &&
			p.ScheduledAt != nil && p.ScheduledAt.Equal(time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC))
	})).Return(model.Interview{ID: uuid.New()}, nil)

	body := `{"company_name":"Acme","role_title":"Engineer","work_mode":"REMOTE",` +
		`"application_status":"SCREENING","salary_range_min":100,"interview_date":"2026-03-05T14:00:00Z"}`
	rec := httptest.NewRecorder()
	newInterviewHandler(svc).Create(rec, newRequest(http.MethodPost, "/interviews", body, userID))

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestInterviewHandler_Unauthenticated(t *testing.T) {
	svc := &mockInterviewService{}
	rec := httptest.NewRecorder()

	newInterviewHandler(svc).List(rec, newRequest(http.MethodGet, "/interviews", "", uuid.Nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestInterviewHandler_List(t *testing.T) {
	userID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	svc := &mockInterviewService{}
	svc.On("List", mock.Anything, userID, model.ListInterviewsParams{
		Status:   "OFFER",
		Company:  "acme",
		FromDate: &from,
		Skip:     10,
		Limit:    100,
	}).Return(model.InterviewPage{
		Interviews: []model.Interview{{ID: uuid.New(), CompanyName: "Acme"}},
		Total:      11,
		Skip:       10,
		Limit:      100,
	}, nil)

	rec := httptest.NewRecorder()
	newInterviewHandler(svc).List(rec, newRequest(http.MethodGet,
		"/interviews?status=OFFER&company=acme&from_date=2026-01-01&skip=10", "", userID))

	require.Equal(t, http.StatusOK, rec.Code)

	var got interviewListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 11, got.Total)
	assert.Equal(t, 10, got.Skip)
	assert.Len(t, got.Interviews, 1)
}

func TestInterviewHandler_ListBadQuery(t *testing.T) {
	userID := uuid.New()
	svc := &mockInterviewService{}

	for _, target := range []string{
		"/interviews?skip=abc",
		"/interviews?limit=1.5",
		"/interviews?from_date=yesterday",
	} {
		rec := httptest.NewRecorder()
		newInterviewHandler(svc).List(rec, newRequest(http.MethodGet, target, "", userID))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestInterviewHandler_Get(t *testing.T) {
	userID := uuid.New()
	interviewID := uuid.New()

	tests := []struct {
		name       string
		pathID     string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{name: "found", pathID: interviewID.String(), wantStatus: http.StatusOK, wantBody: `"role_title":"Engineer"`},
		{name: "not found or foreign", pathID: interviewID.String(), svcErr: model.ErrNotFound,
			wantStatus: http.StatusNotFound, wantBody: `"detail":"Interview not found"`},
		{name: "malformed id", pathID: "not-a-uuid", wantStatus: http.StatusBadRequest, wantBody: `"field":"id"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockInterviewService{}
			svc.On("Get", mock.Anything, userID, interviewID).Return(model.Interview{ID: interviewID, RoleTitle: "Engineer"}, tt.svcErr)

			req := newRequest(http.MethodGet, "/interviews/"+tt.pathID, "", userID)
			req.SetPathValue("id", tt.pathID)
			rec := httptest.NewRecorder()
			newInterviewHandler(svc).Get(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestInterviewHandler_Update(t *testing.T) {
	userID := uuid.New()
	interviewID := uuid.New()

	svc := &mockInterviewService{}
	svc.On("Update", mock.Anything, userID, interviewID, mock.MatchedBy(func(p model.UpdateInterviewParams) bool {
		return p.Status != nil && *p.Status == "OFFER" && p.CompanyName == nil
	})).Return(model.Interview{ID: interviewID, Status: model.StatusOffer}, nil)

	req := newRequest(http.MethodPut, "/interviews/"+interviewID.String(), `{"application_status":"OFFER"}`, userID)
	req.SetPathValue("id", interviewID.String())
	rec := httptest.NewRecorder()
	newInterviewHandler(svc).Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"application_status":"OFFER"`)
}

func TestInterviewHandler_Delete(t *testing.T) {
	userID := uuid.New()
	interviewID := uuid.New()

	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "not found", svcErr: model.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockInterviewService{}
			svc.On("Delete", mock.Anything, userID, interviewID).Return(tt.svcErr)

			req := newRequest(http.MethodDelete, "/interviews/"+interviewID.String(), "", userID)
			req.SetPathValue("id", interviewID.String())
			rec := httptest.NewRecorder()
			newInterviewHandler(svc).Delete(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestInterviewHandler_StatsAndMetadata(t *testing.T) {
	userID := uuid.New()
	svc := &mockInterviewService{}
	svc.On("Statistics", mock.Anything, userID).Return(model.InterviewStats{
		Total:          3,
		StatusCounts:   map[model.ApplicationStatus]int{model.StatusApplied: 2, model.StatusOffer: 1},
		ConversionRate: 50,
		SuccessRate:    33.33,
	}, nil)
	svc.On("Metadata").Return(model.DefaultMetadata())

	h := newInterviewHandler(svc)

	rec := httptest.NewRecorder()
	h.Stats(rec, newRequest(http.MethodGet, "/interviews/stats", "", userID))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats interviewStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalInterviews)
	assert.Equal(t, 2, stats.StatusCounts["APPLIED"])
	assert.Equal(t, 50.0, stats.ConversionRate)

	rec = httptest.NewRecorder()
	h.Metadata(rec, newRequest(http.MethodGet, "/interviews/metadata", "", userID))
	require.Equal(t, http.StatusOK, rec.Code)

	var meta metadataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Len(t, meta.Statuses, len(model.ApplicationStatuses))
	assert.Equal(t, "TECH_INTERVIEW", meta.Statuses[3].Value)
	assert.Contains(t, meta.Currencies, "EUR")
}
