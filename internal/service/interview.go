package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/model"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
	defaultCurrency  = "USD"
	defaultLanguage  = "en"
)

type Interview struct {
	store  model.InterviewStore
	logger *logger.Logger
}

func NewInterview(store model.InterviewStore, logger *logger.Logger) *Interview {
	return &Interview{
		store:  store,
		logger: logger,
	}
}

func (s *Interview) Create(ctx context.Context, userID uuid.UUID, params model.CreateInterviewParams) (model.Interview, error) {
	interview, err := newInterviewFromParams(userID, params)
	if err != nil {
		return model.Interview{}, err
	}

	saved, err := s.store.Create(ctx, interview)
	if err != nil {
		s.logger.Error("Interview service: failed to create interview", "user_id", userID, "error", err)
		return model.Interview{}, fmt.Errorf("failed to create interview: %w", err)
	}

	s.logger.Info("Interview service: interview created", "user_id", userID, "interview_id", saved.ID)
	return saved, nil
}

// Get returns the interview only when userID owns it.
func (s *Interview) Get(ctx context.Context, userID, interviewID uuid.UUID) (model.Interview, error) {
	return loadOwnedInterview(ctx, s.store, userID, interviewID)
}

func (s *Interview) List(ctx context.Context, userID uuid.UUID, params model.ListInterviewsParams) (model.InterviewPage, error) {
	filter := model.InterviewFilter{
		Company:  strings.TrimSpace(params.Company),
		FromDate: params.FromDate,
		ToDate:   params.ToDate,
	}
	if status, ok := model.ParseApplicationStatus(strings.ToUpper(strings.TrimSpace(params.Status))); ok {
		filter.Status = &status
	} else if params.Status != "" {
		s.logger.Debug("Interview service: ignoring unknown status filter", "status", params.Status)
	}

	page := model.Pagination{
		Skip:  max(params.Skip, 0),
		Limit: clampLimit(params.Limit),
	}

	interviews, err := s.store.ListByOwner(ctx, userID, filter, page)
	if err != nil {
		return model.InterviewPage{}, fmt.Errorf("failed to list interviews: %w", err)
	}

	total, err := s.store.CountByOwner(ctx, userID)
	if err != nil {
		return model.InterviewPage{}, fmt.Errorf("failed to count interviews: %w", err)
	}

	return model.InterviewPage{
		Interviews: interviews,
		Total:      total,
		Skip:       page.Skip,
		Limit:      page.Limit,
	}, nil
}

func (s *Interview) Update(ctx context.Context, userID, interviewID uuid.UUID, params model.UpdateInterviewParams) (model.Interview, error) {
	current, err := loadOwnedInterview(ctx, s.store, userID, interviewID)
	if err != nil {
		return model.Interview{}, err
	}

	update, err := newInterviewUpdate(params)
	if err != nil {
		return model.Interview{}, err
	}

	merged := update.Apply(current)
	if err := validateSalary(merged.SalaryMin, merged.SalaryMax); err != nil {
		return model.Interview{}, err
	}

	updated, err := s.store.Update(ctx, interviewID, update)
	if err != nil {
		return model.Interview{}, fmt.Errorf("failed to update interview: %w", err)
	}

	s.logger.Info("Interview service: interview updated", "user_id", userID, "interview_id", interviewID)
	return updated, nil
}

func (s *Interview) Delete(ctx context.Context, userID, interviewID uuid.UUID) error {
	if _, err := loadOwnedInterview(ctx, s.store, userID, interviewID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, interviewID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete interview: %w", err)
	}

	s.logger.Info("Interview service: interview deleted", "user_id", userID, "interview_id", interviewID)
	return nil
}

// StatusCounts reports a count for every defined status, zeros included.
func (s *Interview) StatusCounts(ctx context.Context, userID uuid.UUID) (map[model.ApplicationStatus]int, error) {
	counts := make(map[model.ApplicationStatus]int, len(model.ApplicationStatuses))
	for _, status := range model.ApplicationStatuses {
		n, err := s.store.CountByOwnerAndStatus(ctx, userID, status)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s interviews: %w", status, err)
		}
		counts[status] = n
	}
	return counts, nil
}

func (s *Interview) Statistics(ctx context.Context, userID uuid.UUID) (model.InterviewStats, error) {
	total, err := s.store.CountByOwner(ctx, userID)
	if err != nil {
		return model.InterviewStats{}, fmt.Errorf("failed to count interviews: %w", err)
	}

	counts, err := s.StatusCounts(ctx, userID)
	if err != nil {
		return model.InterviewStats{}, err
	}

	applied := counts[model.StatusApplied]
	offers := counts[model.StatusOffer]

	var conversion float64
	if applied > 0 {
		conversion = float64(offers) / float64(applied) * 100
	}

	return model.InterviewStats{
		Total:          total,
		StatusCounts:   counts,
		ConversionRate: round2(conversion),
		SuccessRate:    round2(float64(offers) / float64(max(total, 1)) * 100),
	}, nil
}

func (s *Interview) Metadata() model.InterviewMetadata {
	return model.DefaultMetadata()
}

// loadOwnedInterview hides interviews of other users behind model.ErrNotFound.
func loadOwnedInterview(ctx context.Context, store model.InterviewStore, userID, interviewID uuid.UUID) (model.Interview, error) {
	interview, err := store.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Interview{}, model.ErrNotFound
		}
		return model.Interview{}, fmt.Errorf("failed to get interview by id: %w", err)
	}

	if interview.UserID != userID {
		return model.Interview{}, model.ErrNotFound
	}

	return interview, nil
}

func newInterviewFromParams(userID uuid.UUID, p model.CreateInterviewParams) (model.Interview, error) {
	company := strings.TrimSpace(p.CompanyName)
	if err := validateRequired("company_name", company, 100); err != nil {
		return model.Interview{}, err
	}
	role := strings.TrimSpace(p.RoleTitle)
	if err := validateRequired("role_title", role, 100); err != nil {
		return model.Interview{}, err
	}

	mode, ok := model.ParseWorkMode(strings.ToUpper(strings.TrimSpace(p.WorkMode)))
	if !ok {
		return model.Interview{}, model.NewValidationError("work_mode", fmt.Sprintf("unknown work mode %q", p.WorkMode))
	}

	status := model.StatusApplied
	if p.Status != "" {
		status, ok = model.ParseApplicationStatus(strings.ToUpper(strings.TrimSpace(p.Status)))
		if !ok {
			return model.Interview{}, model.NewValidationError("application_status", fmt.Sprintf("unknown status %q", p.Status))
		}
	}

	currency := defaultCurrency
	if p.Currency != "" {
		c, err := normalizeCurrency(p.Currency)
		if err != nil {
			return model.Interview{}, err
		}
		currency = c
	}

	language := defaultLanguage
	if p.Language != "" {
		if err := validateLanguage(p.Language); err != nil {
			return model.Interview{}, err
		}
		language = p.Language
	}

	if err := validateOptionalFields(optionalFields{
		companyDescription: p.CompanyDescription,
		location:           p.Location,
		nextMilestone:      p.NextMilestone,
		contactName:        p.ContactName,
		contactEmail:       p.ContactEmail,
		contactPhone:       p.ContactPhone,
		travelRequirements: p.TravelRequirements,
		notes:              p.Notes,
	}); err != nil {
		return model.Interview{}, err
	}

	if err := validateSalary(p.SalaryMin, p.SalaryMax); err != nil {
		return model.Interview{}, err
	}

	return model.Interview{
		ID:                 uuid.New(),
		UserID:             userID,
		CompanyName:        company,
		CompanyDescription: p.CompanyDescription,
		RoleTitle:          role,
		WorkMode:           mode,
		Location:           p.Location,
		Status:             status,
		NextMilestone:      p.NextMilestone,
		ContactName:        p.ContactName,
		ContactEmail:       p.ContactEmail,
		ContactPhone:       p.ContactPhone,
		SalaryMin:          p.SalaryMin,
		SalaryMax:          p.SalaryMax,
		Currency:           currency,
		Language:           language,
		TravelRequirements: p.TravelRequirements,
		Notes:              p.Notes,
		ScheduledAt:        p.ScheduledAt,
	}, nil
}

func newInterviewUpdate(p model.UpdateInterviewParams) (model.InterviewUpdate, error) {
	u := model.InterviewUpdate{
		CompanyDescription: p.CompanyDescription,
		Location:           p.Location,
		NextMilestone:      p.NextMilestone,
		ContactName:        p.ContactName,
		ContactEmail:       p.ContactEmail,
		ContactPhone:       p.ContactPhone,
		SalaryMin:          p.SalaryMin,
		SalaryMax:          p.SalaryMax,
		TravelRequirements: p.TravelRequirements,
		Notes:              p.Notes,
		ScheduledAt:        p.ScheduledAt,
	}

	if p.CompanyName != nil {
		company := strings.TrimSpace(*p.CompanyName)
		if err := validateRequired("company_name", company, 100); err != nil {
			return model.InterviewUpdate{}, err
		}
		u.CompanyName = &company
	}
	if p.RoleTitle != nil {
		role := strings.TrimSpace(*p.RoleTitle)
		if err := validateRequired("role_title", role, 100); err != nil {
			return model.InterviewUpdate{}, err
		}
		u.RoleTitle = &role
	}
	if p.WorkMode != nil {
		mode, ok := model.ParseWorkMode(strings.ToUpper(strings.TrimSpace(*p.WorkMode)))
		if !ok {
			return model.InterviewUpdate{}, model.NewValidationError("work_mode", fmt.Sprintf("unknown work mode %q", *p.WorkMode))
		}
		u.WorkMode = &mode
	}
	if p.Status != nil {
		status, ok := model.ParseApplicationStatus(strings.ToUpper(strings.TrimSpace(*p.Status)))
		if !ok {
			return model.InterviewUpdate{}, model.NewValidationError("application_status", fmt.Sprintf("unknown status %q", *p.Status))
		}
		u.Status = &status
	}
	if p.Currency != nil {
		c, err := normalizeCurrency(*p.Currency)
		if err != nil {
			return model.InterviewUpdate{}, err
		}
		u.Currency = &c
	}
	if p.Language != nil {
		if err := validateLanguage(*p.Language); err != nil {
			return model.InterviewUpdate{}, err
		}
		u.Language = p.Language
	}

	if err := validateOptionalFields(optionalFields{
		companyDescription: p.CompanyDescription,
		location:           p.Location,
		nextMilestone:      p.NextMilestone,
		contactName:        p.ContactName,
		contactEmail:       p.ContactEmail,
		contactPhone:       p.ContactPhone,
		travelRequirements: p.TravelRequirements,
		notes:              p.Notes,
	}); err != nil {
		return model.InterviewUpdate{}, err
	}

	return u, nil
}

type optionalFields struct {
	companyDescription *string
	location           *string
	nextMilestone      *string
	contactName        *string
	contactEmail       *string
	contactPhone       *string
	travelRequirements *string
	notes              *string
}

func validateOptionalFields(f optionalFields) error {
	limits := []struct {
		field string
		value *string
		max   int
	}{
		{"company_description", f.companyDescription, 1000},
		{"location", f.location, 100},
		{"next_milestone", f.nextMilestone, 200},
		{"contact_name", f.contactName, 100},
		{"contact_email", f.contactEmail, 100},
		{"contact_phone", f.contactPhone, 20},
		{"travel_requirements", f.travelRequirements, 500},
		{"notes", f.notes, 2000},
	}
	for _, l := range limits {
		if l.value != nil && utf8.RuneCountInString(*l.value) > l.max {
			return model.NewValidationError(l.field, fmt.Sprintf("must be at most %d characters", l.max))
		}
	}
	return nil
}

func validateRequired(field, value string, maxLen int) error {
	if value == "" {
		return model.NewValidationError(field, "is required")
	}
	if utf8.RuneCountInString(value) > maxLen {
		return model.NewValidationError(field, fmt.Sprintf("must be at most %d characters", maxLen))
	}
	return nil
}

func validateSalary(minSalary, maxSalary *float64) error {
	if minSalary != nil && *minSalary < 0 {
		return model.NewValidationError("salary_range_min", "must not be negative")
	}
	if maxSalary != nil && *maxSalary < 0 {
		return model.NewValidationError("salary_range_max", "must not be negative")
	}
	if minSalary != nil && maxSalary != nil && *maxSalary < *minSalary {
		return model.NewValidationError("salary_range_max", "must be greater than or equal to salary_range_min")
	}
	return nil
}

func normalizeCurrency(c string) (string, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if len(c) != 3 {
		return "", model.NewValidationError("currency", "must be a 3 letter code")
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", model.NewValidationError("currency", "must be a 3 letter code")
		}
	}
	return c, nil
}

func validateLanguage(l string) error {
	if n := len(l); n < 2 || n > 5 {
		return model.NewValidationError("language", "must be between 2 and 5 characters")
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
