package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/model"
)

const (
	defaultListLimit     = 100
	interviewNotFoundMsg = "Interview not found"
)

// InterviewService defines business operations on interviews.
type InterviewService interface {
	Create(ctx context.Context, userID uuid.UUID, params model.CreateInterviewParams) (model.Interview, error)
	Get(ctx context.Context, userID, interviewID uuid.UUID) (model.Interview, error)
	List(ctx context.Context, userID uuid.UUID, params model.ListInterviewsParams) (model.InterviewPage, error)
	Update(ctx context.Context, userID, interviewID uuid.UUID, params model.UpdateInterviewParams) (model.Interview, error)
	Delete(ctx context.Context, userID, interviewID uuid.UUID) error
	Statistics(ctx context.Context, userID uuid.UUID) (model.InterviewStats, error)
	Metadata() model.InterviewMetadata
}

// Interview handles HTTP endpoints for interviews.
type Interview struct {
	interviewService InterviewService
	contextManager   model.ContextManager
	logger           *logger.Logger
}

func NewInterview(interviewService InterviewService, contextManager model.ContextManager, logger *logger.Logger) *Interview {
	return &Interview{
		interviewService: interviewService,
		contextManager:   contextManager,
		logger:           logger,
	}
}

func (h *Interview) Metadata(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toMetadataResponse(h.interviewService.Metadata()))
}

func (h *Interview) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	params, err := listParams(r)
	if err != nil {
		writeError(w, err, "")
		return
	}

	h.logger.Debug("Interview handler: processing list request", "user_id", userID, "status", params.Status)

	page, err := h.interviewService.List(r.Context(), userID, params)
	if err != nil {
		h.logger.Error("Interview handler: list failed", "user_id", userID, "error", err)
		writeError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, interviewListResponse{
		Interviews: toInterviewResponses(page.Interviews),
		Total:      page.Total,
		Skip:       page.Skip,
		Limit:      page.Limit,
	})
}

func listParams(r *http.Request) (model.ListInterviewsParams, error) {
	q := r.URL.Query()

	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		return model.ListInterviewsParams{}, err
	}
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil {
		return model.ListInterviewsParams{}, err
	}
	from, err := queryDate(r, "from_date")
	if err != nil {
		return model.ListInterviewsParams{}, err
	}
	to, err := queryDate(r, "to_date")
	if err != nil {
		return model.ListInterviewsParams{}, err
	}

	return model.ListInterviewsParams{
		Status:   q.Get("status"),
		Company:  q.Get("company"),
		FromDate: from,
		ToDate:   to,
		Skip:     skip,
		Limit:    limit,
	}, nil
}

func (h *Interview) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	var req createInterviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "")
		return
	}

	interview, err := h.interviewService.Create(r.Context(), userID, req.params())
	if err != nil {
		if !model.IsValidation(err) {
			h.logger.Error("Interview handler: create failed", "user_id", userID, "error", err)
		}
		writeError(w, err, "")
		return
	}

	h.logger.Info("Interview handler: interview created", "user_id", userID, "interview_id", interview.ID)
	writeJSON(w, http.StatusCreated, toInterviewResponse(interview))
}

func (h *Interview) Get(w http.ResponseWriter, r *http.Request) {
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

	interview, err := h.interviewService.Get(r.Context(), userID, interviewID)
	if err != nil {
		writeError(w, err, interviewNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusOK, toInterviewResponse(interview))
}

func (h *Interview) Update(w http.ResponseWriter, r *http.Request) {
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

	var req updateInterviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err, "")
		return
	}

	interview, err := h.interviewService.Update(r.Context(), userID, interviewID, req.params())
	if err != nil {
		writeError(w, err, interviewNotFoundMsg)
		return
	}

	h.logger.Info("Interview handler: interview updated", "user_id", userID, "interview_id", interviewID)
	writeJSON(w, http.StatusOK, toInterviewResponse(interview))
}

func (h *Interview) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.interviewService.Delete(r.Context(), userID, interviewID); err != nil {
		writeError(w, err, interviewNotFoundMsg)
		return
	}

	h.logger.Info("Interview handler: interview deleted", "user_id", userID, "interview_id", interviewID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Interview) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthenticated, "")
		return
	}

	stats, err := h.interviewService.Statistics(r.Context(), userID)
	if err != nil {
		h.logger.Error("Interview handler: statistics failed", "user_id", userID, "error", err)
		writeError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(stats))
}
