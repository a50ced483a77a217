package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountFilter narrows full-scan account listings. Nil fields match
// everything.
type AccountFilter struct {
	Type      *domain.AccountType
	Currency  *domain.Currency
	City      *domain.City
	CreatedOn *time.Time
	OpenOnly  bool
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	UpdateBalance(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
	SetClosedAt(ctx context.Context, tx Transaction, id int64, closedAt time.Time) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Account, error)
	CountActive(ctx context.Context, city domain.City, accountType domain.AccountType, currency domain.Currency) (int, error)
	MaxBalanceCustomers(ctx context.Context, accountType domain.AccountType, currency domain.Currency, city *domain.City) ([]*domain.CustomerBalanceStat, error)
}

// ActivityRepository defines data access for the append-only activity log.
type ActivityRepository interface {
	Create(ctx context.Context, tx Transaction, activity *domain.AccountActivity) error
	GetByID(ctx context.Context, id string) (*domain.AccountActivity, error)
	ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.AccountActivity, error)
}

// OrderRepository defines data access for regular transfer orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.RegularTransferOrder) error
	GetByID(ctx context.Context, id string) (*domain.RegularTransferOrder, error)
	Update(ctx context.Context, order *domain.RegularTransferOrder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.RegularTransferOrder, error)
}

// CustomerRepository looks up account owners.
type CustomerRepository interface {
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Customer, error)
}

// NotificationSender delivers messages to customers. Implementations never
// propagate delivery failures to the caller; they log and move on.
type NotificationSender interface {
	Send(ctx context.Context, nationalID, message string)
}

// RateProvider is the external source of currency conversion rates.
type RateProvider interface {
	Rate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation after transient persistence failures
// (deadlocks, serialization aborts). Business errors pass through untouched.
type Retrier interface {
	Retry(ctx context.Context, op func() error) error
}

// IDGenerator generates unique IDs for activities and orders.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations (used for exchange rates).
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Clock abstracts "today" so the scheduler and due predicates are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
