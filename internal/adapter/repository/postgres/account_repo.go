package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, customer_national_id, city, currency, balance, account_type,
	interest_ratio, deposit_period_weeks, created_at, updated_at, closed_at`

// Create inserts a new account. The database assigns the ID.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (
			customer_national_id, city, currency, balance, account_type,
			interest_ratio, deposit_period_weeks, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	return r.pool.QueryRow(ctx, query,
		account.CustomerNationalID,
		string(account.City),
		string(account.Currency),
		decimalToNumeric(account.Balance),
		string(account.Type),
		decimalToNumeric(account.InterestRatio),
		account.DepositPeriod,
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	).Scan(&account.ID)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	return scanAccount(row)
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)

	return scanAccount(row)
}

// GetByIDsForUpdate retrieves multiple accounts with FOR UPDATE locks.
// Callers sort the IDs; ORDER BY id keeps the lock order deterministic.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// Update persists the mutable account fields.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET city = $2, interest_ratio = $3, deposit_period_weeks = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		account.ID,
		string(account.City),
		decimalToNumeric(account.InterestRatio),
		account.DepositPeriod,
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt))

	return err
}

// SetClosedAt marks an account closed.
func (r *AccountRepository) SetClosedAt(ctx context.Context, tx usecase.Transaction, id int64, closedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`UPDATE accounts SET closed_at = $2, updated_at = $2 WHERE id = $1`,
		id, timeToPgTimestamptz(closedAt))

	return err
}

// Delete removes an account row.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List returns all accounts ordered by ID.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// CountActive counts open accounts matching city, type and currency.
func (r *AccountRepository) CountActive(ctx context.Context, city domain.City, accountType domain.AccountType, currency domain.Currency) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM accounts
		WHERE city = $1 AND account_type = $2 AND currency = $3 AND closed_at IS NULL
	`

	var count int
	err := r.pool.QueryRow(ctx, query, string(city), string(accountType), string(currency)).Scan(&count)

	return count, err
}

// MaxBalanceCustomers returns each customer's highest-balance open account
// for the given type and currency, ordered by balance descending. The
// caller narrows the result to the customers sharing the top balance.
func (r *AccountRepository) MaxBalanceCustomers(ctx context.Context, accountType domain.AccountType, currency domain.Currency, city *domain.City) ([]*domain.CustomerBalanceStat, error) {
	query := `
		SELECT national_id, full_name, account_id, city, balance FROM (
			SELECT DISTINCT ON (a.customer_national_id)
				a.customer_national_id AS national_id,
				c.name || ' ' || c.surname AS full_name,
				a.id AS account_id, a.city, a.balance
			FROM accounts a
			JOIN customers c ON c.national_id = a.customer_national_id
			WHERE a.account_type = $1 AND a.currency = $2 AND a.closed_at IS NULL
	`
	args := []any{string(accountType), string(currency)}

	if city != nil {
		query += ` AND a.city = $3`
		args = append(args, string(*city))
	}

	query += `
			ORDER BY a.customer_national_id, a.balance DESC
		) per_customer
		ORDER BY balance DESC, national_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*domain.CustomerBalanceStat
	for rows.Next() {
		var (
			stat    domain.CustomerBalanceStat
			cityRaw string
			balance pgtype.Numeric
		)

		if err := rows.Scan(&stat.NationalID, &stat.FullName, &stat.AccountID, &cityRaw, &balance); err != nil {
			return nil, err
		}

		stat.City = domain.City(cityRaw)
		stat.Balance = numericToDecimal(balance)
		stats = append(stats, &stat)
	}

	return stats, rows.Err()
}

func scanAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account       domain.Account
		city          string
		currency      string
		accountType   string
		balance       pgtype.Numeric
		interestRatio pgtype.Numeric
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
		closedAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.CustomerNationalID,
		&city,
		&currency,
		&balance,
		&accountType,
		&interestRatio,
		&account.DepositPeriod,
		&createdAt,
		&updatedAt,
		&closedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.City = domain.City(city)
	account.Currency = domain.Currency(currency)
	account.Type = domain.AccountType(accountType)
	account.Balance = numericToDecimal(balance)
	account.InterestRatio = numericToDecimal(interestRatio)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	if closedAt.Valid {
		t := closedAt.Time
		account.ClosedAt = &t
	}

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
