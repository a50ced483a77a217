package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/domain"
)

// OrderRepository implements usecase.OrderRepository.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `id, sender_account_id, receiver_account_id, amount, explanation, period_weeks, created_at`

// Create inserts a regular transfer order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.RegularTransferOrder) error {
	query := `
		INSERT INTO regular_transfer_orders (
			id, sender_account_id, receiver_account_id, amount, explanation, period_weeks, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.SenderAccountID,
		order.Transfer.ReceiverAccountID,
		decimalToNumeric(order.Transfer.Amount),
		order.Transfer.Explanation,
		order.PeriodWeeks,
		timeToPgTimestamptz(order.CreatedAt),
	)

	return err
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.RegularTransferOrder, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM regular_transfer_orders WHERE id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}

		return nil, err
	}

	return order, nil
}

// Update rewrites the order's transfer details and period. The creation
// timestamp never changes; it anchors the recurrence schedule.
func (r *OrderRepository) Update(ctx context.Context, order *domain.RegularTransferOrder) error {
	query := `
		UPDATE regular_transfer_orders
		SET sender_account_id = $2, receiver_account_id = $3, amount = $4, explanation = $5, period_weeks = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		order.ID,
		order.SenderAccountID,
		order.Transfer.ReceiverAccountID,
		decimalToNumeric(order.Transfer.Amount),
		order.Transfer.Explanation,
		order.PeriodWeeks,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM regular_transfer_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// List returns all orders ordered by creation time.
func (r *OrderRepository) List(ctx context.Context) ([]*domain.RegularTransferOrder, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+orderColumns+` FROM regular_transfer_orders ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.RegularTransferOrder
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.RegularTransferOrder, error) {
	var (
		order     domain.RegularTransferOrder
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&order.ID,
		&order.SenderAccountID,
		&order.Transfer.ReceiverAccountID,
		&amount,
		&order.Transfer.Explanation,
		&order.PeriodWeeks,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	order.Transfer.Amount = numericToDecimal(amount)
	order.CreatedAt = createdAt.Time

	return &order, nil
}
