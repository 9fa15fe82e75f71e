package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tempohq/tempo-backend-go/internal/domain/timeentry"
	"github.com/tempohq/tempo-backend-go/internal/pkg/database"
)

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

const timeEntryColumns = `
	id, user_id, date, start_time, end_time, total_hours,
	is_confirmed, photo_path, extracted_text, created_at, updated_at`

// translatePunchError maps constraint violations raised by punch
// writes onto their domain sentinels. The partial unique indexes on
// (user_id, date, start_time) and (user_id, date, end_time) reject the
// duplicate of a concurrent identical punch; the table CHECK rejects
// an entry with neither bound. Returns nil for anything else.
func translatePunchError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		return timeentry.ErrDuplicatePunch
	case "23514": // check_violation
		return timeentry.ErrEntryWithoutBounds
	}
	return nil
}

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var e timeentry.TimeEntry
	err := row.Scan(
		&e.ID, &e.UserID, &e.Date, &e.StartTime, &e.EndTime, &e.TotalHours,
		&e.IsConfirmed, &e.PhotoPath, &e.ExtractedText, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (
			user_id, date, start_time, end_time, total_hours,
			is_confirmed, photo_path, extracted_text
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.UserID,
		entry.Date,
		entry.StartTime,
		entry.EndTime,
		entry.TotalHours,
		entry.IsConfirmed,
		entry.PhotoPath,
		entry.ExtractedText,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		if derr := translatePunchError(err); derr != nil {
			return timeentry.TimeEntry{}, derr
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// GetByID implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string, userID string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE id = $1 AND user_id = $2`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get time entry by ID: %w", err)
	}

	return entry, nil
}

// Update implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) Update(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET start_time = $1, end_time = $2, total_hours = $3,
			is_confirmed = $4, photo_path = $5, extracted_text = $6,
			updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.StartTime,
		entry.EndTime,
		entry.TotalHours,
		entry.IsConfirmed,
		entry.PhotoPath,
		entry.ExtractedText,
		entry.ID,
		entry.UserID,
	).Scan(&entry.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
		}
		if derr := translatePunchError(err); derr != nil {
			return timeentry.TimeEntry{}, derr
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to update time entry: %w", err)
	}

	return entry, nil
}

// Delete implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeentry.ErrEntryNotFound
	}

	return nil
}

// ListByDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) ListByDate(ctx context.Context, userID string, date time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND date = $2
		ORDER BY start_time ASC NULLS LAST`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries by date: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

// ListByRange implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) ListByRange(ctx context.Context, userID string, from, to time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ASC, start_time ASC NULLS LAST`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries by range: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

// FindOpenByDate implements timeentry.TimeEntryRepository. Open rows
// are locked, so two transactions closing sessions for the same
// user+date serialize instead of both closing the same row.
func (r *timeEntryRepository) FindOpenByDate(ctx context.Context, userID string, date time.Time) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1
		  AND date = $2
		  AND start_time IS NOT NULL
		  AND end_time IS NULL
		ORDER BY start_time DESC
		FOR UPDATE`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to find open sessions: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

// FindUnclosed implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) FindUnclosed(ctx context.Context, userID string) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1
		  AND start_time IS NOT NULL
		  AND end_time IS NULL
		ORDER BY date DESC, start_time DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find unclosed entries: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

// FindByPunch implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) FindByPunch(ctx context.Context, userID string, date time.Time, kind timeentry.PunchKind, ts time.Time) (*timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	bound := "start_time"
	if kind == timeentry.PunchEnd {
		bound = "end_time"
	}

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND date = $2 AND ` + bound + ` = $3
		LIMIT 1`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, userID, date, ts))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No duplicate punch recorded
		}
		return nil, fmt.Errorf("failed to find punch: %w", err)
	}

	return &entry, nil
}

// SumConfirmedHours implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) SumConfirmedHours(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total_hours), 0)
		FROM time_entries
		WHERE user_id = $1
		  AND date >= $2 AND date < $3
		  AND is_confirmed = TRUE
		  AND total_hours IS NOT NULL
	`

	var total float64
	if err := q.QueryRow(ctx, query, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum confirmed hours: %w", err)
	}

	return total, nil
}

// ListAll implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) ListAll(ctx context.Context, filter timeentry.AdminEntryFilter) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND e.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND e.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND e.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.ConfirmedOnly != nil {
		baseWhere += fmt.Sprintf(" AND e.is_confirmed = $%d", argIdx)
		args = append(args, *filter.ConfirmedOnly)
		argIdx++
	}

	query := `
		SELECT e.id, e.user_id, e.date, e.start_time, e.end_time, e.total_hours,
			   e.is_confirmed, e.photo_path, e.extracted_text, e.created_at, e.updated_at,
			   u.username, u.full_name, u.email, u.role
		FROM time_entries e
		JOIN users u ON u.id = e.user_id
		WHERE ` + baseWhere + `
		ORDER BY e.date DESC, e.start_time DESC NULLS LAST`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list all time entries: %w", err)
	}
	defer rows.Close()

	var entries []timeentry.TimeEntry
	for rows.Next() {
		var e timeentry.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Date, &e.StartTime, &e.EndTime, &e.TotalHours,
			&e.IsConfirmed, &e.PhotoPath, &e.ExtractedText, &e.CreatedAt, &e.UpdatedAt,
			&e.Username, &e.UserFullName, &e.UserEmail, &e.UserRole,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return entries, nil
}

// CountStaleOpen implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) CountStaleOpen(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM time_entries
		WHERE start_time IS NOT NULL
		  AND end_time IS NULL
		  AND date < $1
	`

	var count int64
	if err := q.QueryRow(ctx, query, before).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count stale open sessions: %w", err)
	}

	return count, nil
}

func collectTimeEntries(rows pgx.Rows) ([]timeentry.TimeEntry, error) {
	var entries []timeentry.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}
	return entries, nil
}
