package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/model"
)

var _ model.CalendarEventStore = (*CalendarEventRepository)(nil)

const calendarEventColumns = `id, interview_id, calendar_provider, external_event_id, event_title, event_description,
		start_time, end_time, is_synced, created_at, updated_at`

type CalendarEventRepository struct {
	db  *Connection
	now func() time.Time
}

func NewCalendarEventRepository(db *Connection) *CalendarEventRepository {
	return &CalendarEventRepository{
		db:  db,
		now: time.Now,
	}
}

func scanCalendarEvent(row rowScanner) (model.CalendarEvent, error) {
	var e model.CalendarEvent
	err := row.Scan(
		&e.ID, &e.InterviewID, &e.Provider, &e.ExternalEventID, &e.Title, &e.Description,
		&e.StartTime, &e.EndTime, &e.IsSynced, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *CalendarEventRepository) Create(ctx context.Context, event model.CalendarEvent) (model.CalendarEvent, error) {
	query := `
		INSERT INTO calendar_events (id, interview_id, calendar_provider, external_event_id, event_title,
			event_description, start_time, end_time, is_synced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + calendarEventColumns

	saved, err := scanCalendarEvent(r.db.QueryRowContext(ctx, query,
		event.ID, event.InterviewID, event.Provider, event.ExternalEventID, event.Title,
		event.Description, event.StartTime, event.EndTime, event.IsSynced,
	))
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return saved, nil
}

func (r *CalendarEventRepository) GetByID(ctx context.Context, id uuid.UUID) (model.CalendarEvent, error) {
	query := `SELECT ` + calendarEventColumns + ` FROM calendar_events WHERE id = $1`

	event, err := scanCalendarEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CalendarEvent{}, model.ErrNotFound
		}
		return model.CalendarEvent{}, fmt.Errorf("failed to get calendar event by id: %w", err)
	}

	return event, nil
}

func (r *CalendarEventRepository) GetByInterview(ctx context.Context, interviewID uuid.UUID) ([]model.CalendarEvent, error) {
	query := `SELECT ` + calendarEventColumns + ` FROM calendar_events
		WHERE interview_id = $1
		ORDER BY start_time ASC`

	return r.queryEvents(ctx, query, interviewID)
}

// GetByExternalID returns the oldest event carrying externalID for provider.
func (r *CalendarEventRepository) GetByExternalID(ctx context.Context, externalID, provider string) (model.CalendarEvent, error) {
	query := `SELECT ` + calendarEventColumns + ` FROM calendar_events
		WHERE external_event_id = $1 AND calendar_provider = $2
		ORDER BY created_at ASC
		LIMIT 1`

	event, err := scanCalendarEvent(r.db.QueryRowContext(ctx, query, externalID, provider))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CalendarEvent{}, model.ErrNotFound
		}
		return model.CalendarEvent{}, fmt.Errorf("failed to get calendar event by external id: %w", err)
	}

	return event, nil
}

// GetUpcomingForUser returns events of userID's interviews starting within
// [now, now+daysAhead], ordered by start time.
func (r *CalendarEventRepository) GetUpcomingForUser(ctx context.Context, userID uuid.UUID, daysAhead int) ([]model.CalendarEvent, error) {
	from := r.now()
	to := from.AddDate(0, 0, daysAhead)

	query := `SELECT e.id, e.interview_id, e.calendar_provider, e.external_event_id, e.event_title,
			e.event_description, e.start_time, e.end_time, e.is_synced, e.created_at, e.updated_at
		FROM calendar_events e
		JOIN interviews i ON i.id = e.interview_id
		WHERE i.user_id = $1 AND e.start_time >= $2 AND e.start_time <= $3
		ORDER BY e.start_time ASC`

	return r.queryEvents(ctx, query, userID, from, to)
}

// MarkSynced records the provider identifier and flips is_synced in one statement.
func (r *CalendarEventRepository) MarkSynced(ctx context.Context, id uuid.UUID, externalID string) (model.CalendarEvent, error) {
	query := `UPDATE calendar_events
		SET external_event_id = $2, is_synced = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + calendarEventColumns

	event, err := scanCalendarEvent(r.db.QueryRowContext(ctx, query, id, externalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CalendarEvent{}, model.ErrNotFound
		}
		return model.CalendarEvent{}, fmt.Errorf("failed to mark calendar event synced: %w", err)
	}

	return event, nil
}

func (r *CalendarEventRepository) UpdateDetails(ctx context.Context, id uuid.UUID, details model.EventDetails) (model.CalendarEvent, error) {
	query := `UPDATE calendar_events
		SET event_title = $2, event_description = $3, start_time = $4, end_time = $5,
			external_event_id = $6, is_synced = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + calendarEventColumns

	event, err := scanCalendarEvent(r.db.QueryRowContext(ctx, query,
		id, details.Title, details.Description, details.StartTime, details.EndTime, details.ExternalID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CalendarEvent{}, model.ErrNotFound
		}
		return model.CalendarEvent{}, fmt.Errorf("failed to update calendar event: %w", err)
	}

	return event, nil
}

func (r *CalendarEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CalendarEventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]model.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar events: %w", err)
	}
	defer rows.Close()

	var events []model.CalendarEvent
	for rows.Next() {
		event, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
