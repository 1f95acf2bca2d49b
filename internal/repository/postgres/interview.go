package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobsift/jobsift-server/internal/model"
)

var _ model.InterviewStore = (*InterviewRepository)(nil)

const interviewColumns = `id, user_id, company_name, company_description, role_title, work_mode, location,
		application_status, next_milestone, contact_name, contact_email, contact_phone,
		salary_range_min, salary_range_max, currency, language, travel_requirements, notes,
		interview_date, created_at, updated_at`

type InterviewRepository struct {
	db *Connection
}

func NewInterviewRepository(db *Connection) *InterviewRepository {
	return &InterviewRepository{
		db: db,
	}
}

func scanInterview(row rowScanner) (model.Interview, error) {
	var i model.Interview
	err := row.Scan(
		&i.ID, &i.UserID, &i.CompanyName, &i.CompanyDescription, &i.RoleTitle, &i.WorkMode, &i.Location,
		&i.Status, &i.NextMilestone, &i.ContactName, &i.ContactEmail, &i.ContactPhone,
		&i.SalaryMin, &i.SalaryMax, &i.Currency, &i.Language, &i.TravelRequirements, &i.Notes,
		&i.ScheduledAt, &i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

func (r *InterviewRepository) Create(ctx context.Context, interview model.Interview) (model.Interview, error) {
	query := `
		INSERT INTO interviews (id, user_id, company_name, company_description, role_title, work_mode, location,
			application_status, next_milestone, contact_name, contact_email, contact_phone,
			salary_range_min, salary_range_max, currency, language, travel_requirements, notes, interview_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING ` + interviewColumns

	saved, err := scanInterview(r.db.QueryRowContext(ctx, query,
		interview.ID, interview.UserID, interview.CompanyName, interview.CompanyDescription, interview.RoleTitle,
		string(interview.WorkMode), interview.Location, string(interview.Status), interview.NextMilestone,
		interview.ContactName, interview.ContactEmail, interview.ContactPhone,
		interview.SalaryMin, interview.SalaryMax, interview.Currency, interview.Language,
		interview.TravelRequirements, interview.Notes, interview.ScheduledAt,
	))
	if err != nil {
		return model.Interview{}, fmt.Errorf("failed to create interview: %w", err)
	}

	return saved, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`

	interview, err := scanInterview(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Interview{}, model.ErrNotFound
		}
		return model.Interview{}, fmt.Errorf("failed to get interview by id: %w", err)
	}

	return interview, nil
}

func (r *InterviewRepository) ListByOwner(ctx context.Context, userID uuid.UUID, filter model.InterviewFilter, page model.Pagination) ([]model.Interview, error) {
	var sb strings.Builder
	args := []any{userID}

	sb.WriteString(`SELECT ` + interviewColumns + ` FROM interviews WHERE user_id = $1`)

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		fmt.Fprintf(&sb, ` AND application_status = $%d`, len(args))
	}
	if filter.Company != "" {
		args = append(args, "%"+escapeLike(filter.Company)+"%")
		fmt.Fprintf(&sb, ` AND company_name ILIKE $%d`, len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		fmt.Fprintf(&sb, ` AND created_at >= $%d`, len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		fmt.Fprintf(&sb, ` AND created_at <= $%d`, len(args))
	}

	args = append(args, page.Skip, page.Limit)
	fmt.Fprintf(&sb, ` ORDER BY created_at DESC OFFSET $%d LIMIT $%d`, len(args)-1, len(args))

	return r.queryInterviews(ctx, sb.String(), args...)
}

func (r *InterviewRepository) ListUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
		WHERE user_id = $1 AND interview_date IS NOT NULL AND interview_date >= $2 AND interview_date <= $3
		ORDER BY interview_date ASC`

	return r.queryInterviews(ctx, query, userID, from, to)
}

// ListRecentlyUpdated returns the owner's most recently modified interviews.
func (r *InterviewRepository) ListRecentlyUpdated(ctx context.Context, userID uuid.UUID, limit int) ([]model.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2`

	return r.queryInterviews(ctx, query, userID, limit)
}

func (r *InterviewRepository) CountByOwner(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interviews WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count interviews: %w", err)
	}
	return count, nil
}

func (r *InterviewRepository) CountByOwnerAndStatus(ctx context.Context, userID uuid.UUID, status model.ApplicationStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM interviews WHERE user_id = $1 AND application_status = $2`,
		userID, string(status),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count interviews by status: %w", err)
	}
	return count, nil
}

func (r *InterviewRepository) Update(ctx context.Context, id uuid.UUID, update model.InterviewUpdate) (model.Interview, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var sets []string
	args := []any{id}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.CompanyName != nil {
		set("company_name", *update.CompanyName)
	}
	if update.CompanyDescription != nil {
		set("company_description", *update.CompanyDescription)
	}
	if update.RoleTitle != nil {
		set("role_title", *update.RoleTitle)
	}
	if update.WorkMode != nil {
		set("work_mode", string(*update.WorkMode))
	}
	if update.Location != nil {
		set("location", *update.Location)
	}
	if update.Status != nil {
		set("application_status", string(*update.Status))
	}
	if update.NextMilestone != nil {
		set("next_milestone", *update.NextMilestone)
	}
	if update.ContactName != nil {
		set("contact_name", *update.ContactName)
	}
	if update.ContactEmail != nil {
		set("contact_email", *update.ContactEmail)
	}
	if update.ContactPhone != nil {
		set("contact_phone", *update.ContactPhone)
	}
	if update.SalaryMin != nil {
		set("salary_range_min", *update.SalaryMin)
	}
	if update.SalaryMax != nil {
		set("salary_range_max", *update.SalaryMax)
	}
	if update.Currency != nil {
		set("currency", *update.Currency)
	}
	if update.Language != nil {
		set("language", *update.Language)
	}
	if update.TravelRequirements != nil {
		set("travel_requirements", *update.TravelRequirements)
	}
	if update.Notes != nil {
		set("notes", *update.Notes)
	}
	if update.ScheduledAt != nil {
		set("interview_date", *update.ScheduledAt)
	}

	query := `UPDATE interviews SET ` + strings.Join(sets, ", ") + `, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + interviewColumns

	interview, err := scanInterview(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Interview{}, model.ErrNotFound
		}
		return model.Interview{}, fmt.Errorf("failed to update interview: %w", err)
	}

	return interview, nil
}

func (r *InterviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *InterviewRepository) queryInterviews(ctx context.Context, query string, args ...any) ([]model.Interview, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interviews: %w", err)
	}
	defer rows.Close()

	var interviews []model.Interview
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, interview)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return interviews, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
