package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/ics"
	"github.com/jobsift/jobsift-server/internal/logger"
	"github.com/jobsift/jobsift-server/internal/model"
)

const (
	FeedContentType = "text/calendar; charset=utf-8"

	feedProductID   = "-//JobSift//JobSift Calendar//EN"
	feedName        = "JobSift Interviews"
	feedDescription = "Your job interview schedule from JobSift"
)

var feedCategories = []string{"INTERVIEW", "JOBSEARCH"}

// FeedOptions tunes feed generation.
type FeedOptions struct {
	ProductDomain string
}

// Feed renders interview schedules as iCalendar documents and optionally
// publishes snapshots to object storage.
type Feed struct {
	interviews model.InterviewStore
	storage    model.FeedStorage
	opts       FeedOptions
	now        func() time.Time
	logger     *logger.Logger
}

// NewFeed creates a feed service. storage may be nil, which disables publishing.
func NewFeed(interviews model.InterviewStore, storage model.FeedStorage, opts FeedOptions, logger *logger.Logger) *Feed {
	return &Feed{
		interviews: interviews,
		storage:    storage,
		opts:       opts,
		now:        time.Now,
		logger:     logger,
	}
}

// Generate renders the user's interviews scheduled within [now, now+daysAhead].
func (s *Feed) Generate(ctx context.Context, userID uuid.UUID, daysAhead int) ([]byte, error) {
	if err := validateWindow(daysAhead); err != nil {
		return nil, err
	}

	from := s.now()
	to := from.AddDate(0, 0, daysAhead)

	interviews, err := s.interviews.ListUpcoming(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming interviews: %w", err)
	}

	cal := ics.Calendar{
		ProductID:   feedProductID,
		Name:        feedName,
		Description: feedDescription,
		Events:      make([]ics.Event, 0, len(interviews)),
	}
	for _, i := range interviews {
		if i.ScheduledAt == nil {
			continue
		}
		cal.Events = append(cal.Events, s.feedEvent(i))
	}

	var buf bytes.Buffer
	if err := ics.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode feed: %w", err)
	}

	s.logger.Debug("Feed service: feed generated", "user_id", userID, "events", len(cal.Events))
	return buf.Bytes(), nil
}

// Publish stores a fresh snapshot of the feed and returns its storage key.
func (s *Feed) Publish(ctx context.Context, userID uuid.UUID, daysAhead int) (string, error) {
	if s.storage == nil {
		return "", model.ErrPublishingDisabled
	}

	body, err := s.Generate(ctx, userID, daysAhead)
	if err != nil {
		return "", err
	}

	key := FeedKey(userID)
	if err := s.storage.Put(ctx, key, body, FeedContentType); err != nil {
		s.logger.Error("Feed service: failed to publish feed", "user_id", userID, "error", err)
		return "", fmt.Errorf("failed to publish feed: %w", err)
	}

	s.logger.Info("Feed service: feed published", "user_id", userID, "key", key, "bytes", len(body))
	return key, nil
}

// Published opens the last published snapshot.
func (s *Feed) Published(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, model.ErrPublishingDisabled
	}

	rc, err := s.storage.Get(ctx, FeedKey(userID))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read published feed: %w", err)
	}
	return rc, nil
}

func (s *Feed) Unpublish(ctx context.Context, userID uuid.UUID) error {
	if s.storage == nil {
		return model.ErrPublishingDisabled
	}

	key := FeedKey(userID)
	ok, err := s.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check published feed: %w", err)
	}
	if !ok {
		return model.ErrNotFound
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to remove published feed: %w", err)
	}

	s.logger.Info("Feed service: feed unpublished", "user_id", userID)
	return nil
}

// FeedKey is the object key of a user's published feed.
func FeedKey(userID uuid.UUID) string {
	return fmt.Sprintf("feeds/%s.ics", userID)
}

func (s *Feed) feedEvent(i model.Interview) ics.Event {
	start := *i.ScheduledAt
	return ics.Event{
		UID:          fmt.Sprintf("interview-%s@%s", i.ID, s.opts.ProductDomain),
		Start:        start,
		End:          start.Add(syncedEventDuration),
		Stamp:        i.CreatedAt,
		Summary:      syncTitle(i),
		Description:  feedDescriptionFor(i),
		Location:     deref(i.Location),
		Status:       "CONFIRMED",
		Transparency: "OPAQUE",
		Categories:   feedCategories,
	}
}

func feedDescriptionFor(i model.Interview) string {
	var sb strings.Builder
	sb.WriteString("Job Interview Details:\n")
	fmt.Fprintf(&sb, "Company: %s\n", i.CompanyName)
	fmt.Fprintf(&sb, "Role: %s\n", i.RoleTitle)
	fmt.Fprintf(&sb, "Status: %s\n", i.Status)
	fmt.Fprintf(&sb, "Location: %s\n", orDefault(i.Location, "TBD"))
	fmt.Fprintf(&sb, "Contact: %s\n", orDefault(i.ContactName, "TBD"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Notes: %s", orDefault(i.Notes, "No additional notes"))
	return sb.String()
}
