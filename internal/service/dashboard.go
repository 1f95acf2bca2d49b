package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/model"
)

const (
	dashboardUpcomingDays   = 7
	dashboardRecentFetch    = 10
	dashboardTimelineLength = 5
	dashboardWeekFetch      = 100
)

// Dashboard builds the overview shown after login.
type Dashboard struct {
	interviews *Interview
	store      model.InterviewStore
	now        func() time.Time
	logger     *logger.Logger
}

func NewDashboard(interviews *Interview, store model.InterviewStore, logger *logger.Logger) *Dashboard {
	return &Dashboard{
		interviews: interviews,
		store:      store,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *Dashboard) Summary(ctx context.Context, userID uuid.UUID) (model.DashboardSummary, error) {
	stats, err := s.interviews.Statistics(ctx, userID)
	if err != nil {
		return model.DashboardSummary{}, err
	}

	now := s.now()

	upcoming, err := s.store.ListUpcoming(ctx, userID, now, now.AddDate(0, 0, dashboardUpcomingDays))
	if err != nil {
		return model.DashboardSummary{}, fmt.Errorf("failed to list upcoming interviews: %w", err)
	}

	recent, err := s.store.ListRecentlyUpdated(ctx, userID, dashboardRecentFetch)
	if err != nil {
		return model.DashboardSummary{}, fmt.Errorf("failed to list recent activity: %w", err)
	}

	weekAgo := now.AddDate(0, 0, -7)
	thisWeek, err := s.store.ListByOwner(ctx, userID,
		model.InterviewFilter{FromDate: &weekAgo},
		model.Pagination{Limit: dashboardWeekFetch},
	)
	if err != nil {
		return model.DashboardSummary{}, fmt.Errorf("failed to list this week's applications: %w", err)
	}

	return model.DashboardSummary{
		TotalInterviews:      stats.Total,
		ConversionRate:       stats.ConversionRate,
		SuccessRate:          stats.SuccessRate,
		ThisWeekApplications: len(thisWeek),
		StatusDistribution:   statusDistribution(stats.StatusCounts),
		Upcoming:             digests(upcoming, dashboardTimelineLength),
		RecentActivity:       digests(recent, dashboardTimelineLength),
		Insights:             insights(stats, len(upcoming), len(recent)),
	}, nil
}

func statusDistribution(counts map[model.ApplicationStatus]int) []model.StatusCount {
	labels := make(map[model.ApplicationStatus]string, len(model.ApplicationStatuses))
	for _, info := range model.DefaultMetadata().Statuses {
		labels[info.Value] = info.Label
	}

	var out []model.StatusCount
	for _, status := range model.ApplicationStatuses {
		if n := counts[status]; n > 0 {
			out = append(out, model.StatusCount{Status: status, Label: labels[status], Count: n})
		}
	}
	return out
}

func digests(interviews []model.Interview, limit int) []model.InterviewDigest {
	n := min(len(interviews), limit)
	out := make([]model.InterviewDigest, 0, n)
	for _, i := range interviews[:n] {
		out = append(out, model.InterviewDigest{
			ID:          i.ID,
			CompanyName: i.CompanyName,
			RoleTitle:   i.RoleTitle,
			Status:      i.Status,
			ScheduledAt: i.ScheduledAt,
			UpdatedAt:   i.UpdatedAt,
		})
	}
	return out
}

func insights(stats model.InterviewStats, upcoming, recent int) []string {
	var out []string

	switch {
	case stats.ConversionRate > 20:
		out = append(out, "🎉 Great conversion rate! You're doing excellent.")
	case stats.ConversionRate > 10:
		out = append(out, "👍 Good conversion rate. Keep up the momentum!")
	case stats.Total > 5:
		out = append(out, "💪 Keep applying! Your perfect role is out there.")
	}

	if upcoming > 0 {
		out = append(out, fmt.Sprintf("📅 You have %d upcoming interviews this week!", upcoming))
	}
	if recent > 3 {
		out = append(out, "🔥 High activity! You're actively managing your job search.")
	}
	if stats.StatusCounts[model.StatusApplied] > 10 {
		out = append(out, "📊 Great job staying active with applications!")
	}

	if len(out) == 0 {
		out = append(out, "🚀 Ready to track your next interview? Click 'New Interview' to get started!")
	}
	return out
}
