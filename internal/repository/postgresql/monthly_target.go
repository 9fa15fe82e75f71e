package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tempohq/tempo-backend-go/internal/domain/target"
	"github.com/tempohq/tempo-backend-go/internal/pkg/database"
)

type targetRepository struct {
	db *database.DB
}

func NewTargetRepository(db *database.DB) target.TargetRepository {
	return &targetRepository{db: db}
}

const targetColumns = `
	id, user_id, year, month, start_day, end_day, target_hours, created_at, updated_at`

func scanTarget(row pgx.Row) (target.MonthlyTarget, error) {
	var t target.MonthlyTarget
	err := row.Scan(
		&t.ID, &t.UserID, &t.Year, &t.Month, &t.StartDay, &t.EndDay,
		&t.TargetHours, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Create implements target.TargetRepository.
func (r *targetRepository) Create(ctx context.Context, t target.MonthlyTarget) (target.MonthlyTarget, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_targets (user_id, year, month, start_day, end_day, target_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.UserID, t.Year, t.Month, t.StartDay, t.EndDay, t.TargetHours,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return target.MonthlyTarget{}, target.ErrTargetAlreadyExists
		}
		return target.MonthlyTarget{}, fmt.Errorf("failed to create monthly target: %w", err)
	}

	return t, nil
}

// GetByID implements target.TargetRepository.
func (r *targetRepository) GetByID(ctx context.Context, id string, userID string) (target.MonthlyTarget, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + targetColumns + `
		FROM monthly_targets
		WHERE id = $1 AND user_id = $2`

	t, err := scanTarget(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return target.MonthlyTarget{}, target.ErrTargetNotFound
		}
		return target.MonthlyTarget{}, fmt.Errorf("failed to get target by ID: %w", err)
	}

	return t, nil
}

// GetByMonth implements target.TargetRepository.
func (r *targetRepository) GetByMonth(ctx context.Context, userID string, year, month int) (*target.MonthlyTarget, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + targetColumns + `
		FROM monthly_targets
		WHERE user_id = $1 AND year = $2 AND month = $3`

	t, err := scanTarget(q.QueryRow(ctx, query, userID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No target configured for this month
		}
		return nil, fmt.Errorf("failed to get target by month: %w", err)
	}

	return &t, nil
}

// ListByUser implements target.TargetRepository.
func (r *targetRepository) ListByUser(ctx context.Context, userID string) ([]target.MonthlyTarget, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + targetColumns + `
		FROM monthly_targets
		WHERE user_id = $1
		ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var targets []target.MonthlyTarget
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate targets: %w", err)
	}

	return targets, nil
}

// Update implements target.TargetRepository.
func (r *targetRepository) Update(ctx context.Context, t target.MonthlyTarget) (target.MonthlyTarget, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_targets
		SET target_hours = $1, start_day = $2, end_day = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		t.TargetHours, t.StartDay, t.EndDay, t.ID, t.UserID,
	).Scan(&t.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return target.MonthlyTarget{}, target.ErrTargetNotFound
		}
		return target.MonthlyTarget{}, fmt.Errorf("failed to update target: %w", err)
	}

	return t, nil
}

// Delete implements target.TargetRepository.
func (r *targetRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM monthly_targets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete target: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return target.ErrTargetNotFound
	}

	return nil
}
