package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/model"
)

type interviewResponse struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	CompanyName        string     `json:"company_name"`
	CompanyDescription *string    `json:"company_description"`
	RoleTitle          string     `json:"role_title"`
	WorkMode           string     `json:"work_mode"`
	Location           *string    `json:"location"`
	ApplicationStatus  string     `json:"application_status"`
	NextMilestone      *string    `json:"next_milestone"`
	ContactName        *string    `json:"contact_name"`
	ContactEmail       *string    `json:"contact_email"`
	ContactPhone       *string    `json:"contact_phone"`
	SalaryRangeMin     *float64   `json:"salary_range_min"`
	SalaryRangeMax     *float64   `json:"salary_range_max"`
	Currency           string     `json:"currency"`
	Language           string     `json:"language"`
	TravelRequirements *string    `json:"travel_requirements"`
	Notes              *string    `json:"notes"`
	InterviewDate      *time.Time `json:"interview_date"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toInterviewResponse(i model.Interview) interviewResponse {
	return interviewResponse{
		ID:                 i.ID,
		UserID:             i.UserID,
		CompanyName:        i.CompanyName,
		CompanyDescription: i.CompanyDescription,
		RoleTitle:          i.RoleTitle,
		WorkMode:           string(i.WorkMode),
		Location:           i.Location,
		ApplicationStatus:  string(i.Status),
		NextMilestone:      i.NextMilestone,
		ContactName:        i.ContactName,
		ContactEmail:       i.ContactEmail,
		ContactPhone:       i.ContactPhone,
		SalaryRangeMin:     i.SalaryMin,
		SalaryRangeMax:     i.SalaryMax,
		Currency:           i.Currency,
		Language:           i.Language,
		TravelRequirements: i.TravelRequirements,
		Notes:              i.Notes,
		InterviewDate:      i.ScheduledAt,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

func toInterviewResponses(in []model.Interview) []interviewResponse {
	out := make([]interviewResponse, 0, len(in))
	for _, i := range in {
		out = append(out, toInterviewResponse(i))
	}
	return out
}

type createInterviewRequest struct {
	CompanyName        string     `json:"company_name"`
	CompanyDescription *string    `json:"company_description"`
	RoleTitle          string     `json:"role_title"`
	WorkMode           string     `json:"work_mode"`
	Location           *string    `json:"location"`
	ApplicationStatus  string     `json:"application_status"`
	NextMilestone      *string    `json:"next_milestone"`
	ContactName        *string    `json:"contact_name"`
	ContactEmail       *string    `json:"contact_email"`
	ContactPhone       *string    `json:"contact_phone"`
	SalaryRangeMin     *float64   `json:"salary_range_min"`
	SalaryRangeMax     *float64   `json:"salary_range_max"`
	Currency           string     `json:"currency"`
	Language           string     `json:"language"`
	TravelRequirements *string    `json:"travel_requirements"`
	Notes              *string    `json:"notes"`
	InterviewDate      *time.Time `json:"interview_date"`
}

func (r createInterviewRequest) params() model.CreateInterviewParams {
	return model.CreateInterviewParams{
		CompanyName:        r.CompanyName,
		CompanyDescription: r.CompanyDescription,
		RoleTitle:          r.RoleTitle,
		WorkMode:           r.WorkMode,
		Location:           r.Location,
		Status:             r.ApplicationStatus,
		NextMilestone:      r.NextMilestone,
		ContactName:        r.ContactName,
		ContactEmail:       r.ContactEmail,
		ContactPhone:       r.ContactPhone,
		SalaryMin:          r.SalaryRangeMin,
		SalaryMax:          r.SalaryRangeMax,
		Currency:           r.Currency,
		Language:           r.Language,
		TravelRequirements: r.TravelRequirements,
		Notes:              r.Notes,
		ScheduledAt:        r.InterviewDate,
	}
}

type updateInterviewRequest struct {
	CompanyName        *string    `json:"company_name"`
	CompanyDescription *string    `json:"company_description"`
	RoleTitle          *string    `json:"role_title"`
	WorkMode           *string    `json:"work_mode"`
	Location           *string    `json:"location"`
	ApplicationStatus  *string    `json:"application_status"`
	NextMilestone      *string    `json:"next_milestone"`
	ContactName        *string    `json:"contact_name"`
	ContactEmail       *string    `json:"contact_email"`
	ContactPhone       *string    `json:"contact_phone"`
	SalaryRangeMin     *float64   `json:"salary_range_min"`
	SalaryRangeMax     *float64   `json:"salary_range_max"`
	Currency           *string    `json:"currency"`
	Language           *string    `json:"language"`
	TravelRequirements *string    `json:"travel_requirements"`
	Notes              *string    `json:"notes"`
	InterviewDate      *time.Time `json:"interview_date"`
}

func (r updateInterviewRequest) params() model.UpdateInterviewParams {
	return model.UpdateInterviewParams{
		CompanyName:        r.CompanyName,
		CompanyDescription: r.CompanyDescription,
		RoleTitle:          r.RoleTitle,
		WorkMode:           r.WorkMode,
		Location:           r.Location,
		Status:             r.ApplicationStatus,
		NextMilestone:      r.NextMilestone,
		ContactName:        r.ContactName,
		ContactEmail:       r.ContactEmail,
		ContactPhone:       r.ContactPhone,
		SalaryMin:          r.SalaryRangeMin,
		SalaryMax:          r.SalaryRangeMax,
		Currency:           r.Currency,
		Language:           r.Language,
		TravelRequirements: r.TravelRequirements,
		Notes:              r.Notes,
		ScheduledAt:        r.InterviewDate,
	}
}

type interviewListResponse struct {
	Interviews []interviewResponse `json:"interviews"`
	Total      int                 `json:"total"`
	Skip       int                 `json:"skip"`
	Limit      int                 `json:"limit"`
}

type interviewStatsResponse struct {
	TotalInterviews int            `json:"total_interviews"`
	StatusCounts    map[string]int `json:"status_counts"`
	ConversionRate  float64        `json:"conversion_rate"`
	SuccessRate     float64        `json:"success_rate"`
}

func toStatsResponse(s model.InterviewStats) interviewStatsResponse {
	counts := make(map[string]int, len(s.StatusCounts))
	for status, n := range s.StatusCounts {
		counts[string(status)] = n
	}
	return interviewStatsResponse{
		TotalInterviews: s.Total,
		StatusCounts:    counts,
		ConversionRate:  s.ConversionRate,
		SuccessRate:     s.SuccessRate,
	}
}

type statusInfoResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type workModeInfoResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type metadataResponse struct {
	Statuses   []statusInfoResponse   `json:"statuses"`
	WorkModes  []workModeInfoResponse `json:"work_modes"`
	Currencies []string               `json:"currencies"`
}

func toMetadataResponse(m model.InterviewMetadata) metadataResponse {
	out := metadataResponse{
		Statuses:   make([]statusInfoResponse, 0, len(m.Statuses)),
		WorkModes:  make([]workModeInfoResponse, 0, len(m.WorkModes)),
		Currencies: m.Currencies,
	}
	for _, s := range m.Statuses {
		out.Statuses = append(out.Statuses, statusInfoResponse{Value: string(s.Value), Label: s.Label, Color: s.Color})
	}
	for _, w := range m.WorkModes {
		out.WorkModes = append(out.WorkModes, workModeInfoResponse{Value: string(w.Value), Label: w.Label, Icon: w.Icon})
	}
	return out
}

type eventResponse struct {
	ID              uuid.UUID `json:"id"`
	InterviewID     uuid.UUID `json:"interview_id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Provider        string    `json:"provider"`
	IsSynced        bool      `json:"is_synced"`
	ExternalEventID *string   `json:"external_event_id"`
}

func toEventResponse(e model.CalendarEvent) eventResponse {
	return eventResponse{
		ID:              e.ID,
		InterviewID:     e.InterviewID,
		Title:           e.Title,
		Description:     e.Description,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		Provider:        e.Provider,
		IsSynced:        e.IsSynced,
		ExternalEventID: e.ExternalEventID,
	}
}

func toEventResponses(in []model.CalendarEvent) []eventResponse {
	out := make([]eventResponse, 0, len(in))
	for _, e := range in {
		out = append(out, toEventResponse(e))
	}
	return out
}

type eventListResponse struct {
	Events    []eventResponse `json:"events"`
	Total     int             `json:"total"`
	DaysAhead int             `json:"days_ahead"`
}

type createEventRequest struct {
	InterviewID uuid.UUID `json:"interview_id"`
	Provider    string    `json:"calendar_provider"`
	Title       string    `json:"event_title"`
	Description *string   `json:"event_description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type syncRequest struct {
	InterviewID uuid.UUID `json:"interview_id"`
}

type syncResponse struct {
	Success       bool          `json:"success"`
	EventID       string        `json:"event_id"`
	CalendarURL   string        `json:"calendar_url"`
	Message       string        `json:"message"`
	CalendarEvent eventResponse `json:"calendar_event"`
}

type integrationStatusResponse struct {
	TotalEvents             int     `json:"total_events"`
	SyncedEvents            int     `json:"synced_events"`
	GoogleCalendarConnected bool    `json:"google_calendar_connected"`
	ICSFeedAvailable        bool    `json:"ics_feed_available"`
	SyncPercentage          float64 `json:"sync_percentage"`
}

type feedDescriptorResponse struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	URL           string   `json:"url,omitempty"`
	Status        string   `json:"status,omitempty"`
	SupportedApps []string `json:"supported_apps,omitempty"`
}

type feedsResponse struct {
	Feeds        map[string]feedDescriptorResponse `json:"feeds"`
	Instructions map[string]string                 `json:"instructions"`
}

func toFeedsResponse(d model.FeedDirectory) feedsResponse {
	feeds := make(map[string]feedDescriptorResponse, len(d.Feeds))
	for key, f := range d.Feeds {
		feeds[key] = feedDescriptorResponse{
			Name:          f.Name,
			Description:   f.Description,
			URL:           f.URL,
			Status:        f.Status,
			SupportedApps: f.SupportedApps,
		}
	}
	return feedsResponse{Feeds: feeds, Instructions: d.Instructions}
}

type publishResponse struct {
	Key       string `json:"key"`
	DaysAhead int    `json:"days_ahead"`
}

type dashboardStatsResponse struct {
	TotalInterviews      int     `json:"total_interviews"`
	ConversionRate       float64 `json:"conversion_rate"`
	SuccessRate          float64 `json:"success_rate"`
	ThisWeekApplications int     `json:"this_week_applications"`
}

type statusCountResponse struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

type digestResponse struct {
	ID            uuid.UUID  `json:"id"`
	CompanyName   string     `json:"company_name"`
	RoleTitle     string     `json:"role_title"`
	Status        string     `json:"status"`
	InterviewDate *time.Time `json:"interview_date,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type dashboardResponse struct {
	Summary            dashboardStatsResponse `json:"summary"`
	StatusDistribution []statusCountResponse  `json:"status_distribution"`
	UpcomingInterviews []digestResponse       `json:"upcoming_interviews"`
	RecentActivity     []digestResponse       `json:"recent_activity"`
	Insights           []string               `json:"insights"`
}

func toDashboardResponse(s model.DashboardSummary) dashboardResponse {
	out := dashboardResponse{
		Summary: dashboardStatsResponse{
			TotalInterviews:      s.TotalInterviews,
			ConversionRate:       s.ConversionRate,
			SuccessRate:          s.SuccessRate,
			ThisWeekApplications: s.ThisWeekApplications,
		},
		StatusDistribution: make([]statusCountResponse, 0, len(s.StatusDistribution)),
		UpcomingInterviews: toDigestResponses(s.Upcoming),
		RecentActivity:     toDigestResponses(s.RecentActivity),
		Insights:           s.Insights,
	}
	for _, c := range s.StatusDistribution {
		out.StatusDistribution = append(out.StatusDistribution, statusCountResponse{
			Status: string(c.Status),
			Label:  c.Label,
			Count:  c.Count,
		})
	}
	return out
}

func toDigestResponses(in []model.InterviewDigest) []digestResponse {
	out := make([]digestResponse, 0, len(in))
	for _, d := range in {
		out = append(out, digestResponse{
			ID:            d.ID,
			CompanyName:   d.CompanyName,
			RoleTitle:     d.RoleTitle,
			Status:        string(d.Status),
			InterviewDate: d.ScheduledAt,
			UpdatedAt:     d.UpdatedAt,
		})
	}
	return out
}
