package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// ActivityRepository implements the append-only activity log. Rows are only
// ever inserted; there is no update or delete path.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

const activityColumns = `id, activity_type, sender_account_id, receiver_account_id, amount, explanation, created_at`

// Create appends an activity inside the caller's transaction.
func (r *ActivityRepository) Create(ctx context.Context, tx usecase.Transaction, activity *domain.AccountActivity) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO account_activities (
			id, activity_type, sender_account_id, receiver_account_id, amount, explanation, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pgxTx.Exec(ctx, query,
		activity.ID,
		string(activity.Type),
		activity.SenderAccountID,
		activity.ReceiverAccountID,
		decimalToNumeric(activity.Amount),
		activity.Explanation,
		timeToPgTimestamptz(activity.CreatedAt),
	)

	return err
}

// GetByID retrieves a single activity.
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*domain.AccountActivity, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+activityColumns+` FROM account_activities WHERE id = $1`, id)

	activity, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}

		return nil, err
	}

	return activity, nil
}

// ListByAccount retrieves the activities touching an account, newest first.
func (r *ActivityRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.AccountActivity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM account_activities
		WHERE sender_account_id = $1 OR receiver_account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*domain.AccountActivity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}

		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

func scanActivity(row pgx.Row) (*domain.AccountActivity, error) {
	var (
		activity     domain.AccountActivity
		activityType string
		amount       pgtype.Numeric
		createdAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&activity.ID,
		&activityType,
		&activity.SenderAccountID,
		&activity.ReceiverAccountID,
		&amount,
		&activity.Explanation,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	activity.Type = domain.AccountActivityType(activityType)
	activity.Amount = numericToDecimal(amount)
	activity.CreatedAt = createdAt.Time

	return &activity, nil
}
