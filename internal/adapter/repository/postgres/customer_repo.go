package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/domain"
)

// CustomerRepository implements usecase.CustomerRepository.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// GetByNationalID retrieves a customer by national ID.
func (r *CustomerRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Customer, error) {
	query := `SELECT national_id, name, surname, email FROM customers WHERE national_id = $1`

	var customer domain.Customer
	err := r.pool.QueryRow(ctx, query, nationalID).Scan(
		&customer.NationalID,
		&customer.Name,
		&customer.Surname,
		&customer.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}

		return nil, err
	}

	return &customer, nil
}
