package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// BalanceApplier is the slice of BalanceUseCase the account lifecycle
// needs for interest payouts.
type BalanceApplier interface {
	ApplyActivity(ctx context.Context, input ApplyActivityInput) (*domain.AccountActivity, error)
}

// AccountUseCase handles account lifecycle and read queries: creation,
// update, one-way closing, filtering and balance statistics.
type AccountUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	activityRepo ActivityRepository
	customerRepo CustomerRepository
	balances     BalanceApplier
	notifier     NotificationSender
	idGen        IDGenerator
	clock        Clock
	logger       zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	activityRepo ActivityRepository,
	customerRepo CustomerRepository,
	balances BalanceApplier,
	notifier NotificationSender,
	idGen IDGenerator,
	clock Clock,
	logger zerolog.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		activityRepo: activityRepo,
		customerRepo: customerRepo,
		balances:     balances,
		notifier:     notifier,
		idGen:        idGen,
		clock:        clock,
		logger:       logger,
	}
}

// CreateAccountInput represents input for opening an account.
type CreateAccountInput struct {
	CustomerNationalID string
	City               domain.City
	Currency           domain.Currency
	Type               domain.AccountType
	InterestRatio      decimal.Decimal
	DepositPeriod      int
}

// CreateAccount opens a new account with zero balance for an existing
// customer. Opening is the implicit start of the account lifecycle.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateNationalID(input.CustomerNationalID); err != nil {
		return nil, err
	}

	if input.Type == domain.AccountTypeDeposit {
		if err := domain.ValidateInterestRatio(input.InterestRatio); err != nil {
			return nil, err
		}
	}

	customer, err := uc.customerRepo.GetByNationalID(ctx, input.CustomerNationalID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	account := &domain.Account{
		CustomerNationalID: customer.NationalID,
		City:               input.City,
		Currency:           input.Currency,
		Balance:            decimal.Zero,
		Type:               input.Type,
		InterestRatio:      input.InterestRatio,
		DepositPeriod:      input.DepositPeriod,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	metrics.AccountCreated()

	uc.logger.Info().
		Int64("account_id", account.ID).
		Str("type", string(account.Type)).
		Str("currency", string(account.Currency)).
		Msg("account created")

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts applies the filter as a pure predicate over a full listing.
// This is a secondary, non-hot-path read.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, filter AccountFilter) ([]*domain.Account, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Account, 0, len(accounts))

	for _, account := range accounts {
		if matchesFilter(account, filter) {
			matched = append(matched, account)
		}
	}

	return matched, nil
}

func matchesFilter(account *domain.Account, filter AccountFilter) bool {
	if filter.Type != nil && account.Type != *filter.Type {
		return false
	}

	if filter.Currency != nil && account.Currency != *filter.Currency {
		return false
	}

	if filter.City != nil && account.City != *filter.City {
		return false
	}

	if filter.OpenOnly && account.Closed() {
		return false
	}

	if filter.CreatedOn != nil {
		y1, m1, d1 := account.CreatedAt.Date()
		y2, m2, d2 := filter.CreatedOn.Date()

		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}

	return true
}

// UpdateAccountInput represents the mutable account attributes.
type UpdateAccountInput struct {
	City          domain.City
	Currency      domain.Currency
	InterestRatio decimal.Decimal
	DepositPeriod int
}

// UpdateAccount updates the mutable attributes of an open account. The
// currency is immutable: a request carrying a different currency is a
// conflict.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id int64, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateMutable(); err != nil {
		return nil, err
	}

	if account.Currency != input.Currency {
		return nil, domain.ErrCurrencyMismatch
	}

	if account.Type == domain.AccountTypeDeposit {
		if err := domain.ValidateInterestRatio(input.InterestRatio); err != nil {
			return nil, err
		}
	}

	account.City = input.City
	account.InterestRatio = input.InterestRatio
	account.DepositPeriod = input.DepositPeriod
	account.UpdatedAt = uc.clock.Now()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id int64) error {
	if _, err := uc.accountRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info().Int64("account_id", id).Msg("account deleted")

	return nil
}

// CloseAccount closes an open, zero-balance account. Closing is terminal:
// a closed account rejects every further mutation but stays readable for
// history queries.
func (uc *AccountUseCase) CloseAccount(ctx context.Context, id int64) (*domain.Account, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateClose(); err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	if err := uc.accountRepo.SetClosedAt(ctx, tx, account.ID, now); err != nil {
		return nil, err
	}

	activity := &domain.AccountActivity{
		ID:              uc.idGen.Generate(),
		Type:            domain.ActivityAccountClose,
		SenderAccountID: &account.ID,
		Amount:          decimal.Zero,
		CreatedAt:       now,
		Explanation:     fmt.Sprintf("account %d is closed", account.ID),
	}

	if err := uc.activityRepo.Create(ctx, tx, activity); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.ClosedAt = &now

	metrics.AccountClosed()
	metrics.ActivityRecorded(string(domain.ActivityAccountClose))

	uc.logger.Info().Int64("account_id", account.ID).Time("closed_at", now).Msg("account closed")

	uc.notifyOwner(account.CustomerNationalID,
		fmt.Sprintf("Your %s account %d has been closed.", account.Currency, account.ID))

	return account, nil
}

// PayDepositInterest credits one deposit-period's interest to a DEPOSIT
// account when the period has elapsed since the last update. Returns the
// credited activity, or nil when the period is not yet complete.
func (uc *AccountUseCase) PayDepositInterest(ctx context.Context, id int64) (*domain.AccountActivity, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.Type != domain.AccountTypeDeposit {
		return nil, domain.ErrNotDepositAccount
	}

	if err := account.ValidateMutable(); err != nil {
		return nil, err
	}

	if !account.DepositPeriodCompleted(uc.clock.Now()) {
		uc.logger.Debug().Int64("account_id", id).Msg("deposit period not completed")
		return nil, nil
	}

	amount := account.InterestAmount()
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	activity, err := uc.balances.ApplyActivity(ctx, ApplyActivityInput{
		AccountID:    account.ID,
		ActivityType: domain.ActivityFee,
		Amount:       amount,
		Explanation:  fmt.Sprintf("interest of completed deposit period is credited to account %d", account.ID),
	})
	if err != nil {
		return nil, err
	}

	uc.notifyOwner(account.CustomerNationalID,
		fmt.Sprintf("Term of your %s deposit account has been renewed.", account.Currency))

	return activity, nil
}

// TotalActiveAccounts counts open accounts matching (city, type, currency).
func (uc *AccountUseCase) TotalActiveAccounts(ctx context.Context, city domain.City, accountType domain.AccountType, currency domain.Currency) (int, error) {
	return uc.accountRepo.CountActive(ctx, city, accountType, currency)
}

// CustomersWithMaximumBalance returns the customer(s) holding the maximum
// balance for a given (type, currency) pair, optionally narrowed by city.
// More than one customer is returned only on an exact balance tie. The
// query only ever sees committed state.
func (uc *AccountUseCase) CustomersWithMaximumBalance(ctx context.Context, accountType domain.AccountType, currency domain.Currency, city *domain.City) ([]*domain.CustomerBalanceStat, error) {
	stats, err := uc.accountRepo.MaxBalanceCustomers(ctx, accountType, currency, city)
	if err != nil {
		return nil, err
	}

	if len(stats) == 0 {
		return nil, nil
	}

	// Stats arrive ordered by balance descending.
	top := stats[0].Balance
	winners := stats[:1]

	for _, stat := range stats[1:] {
		if !stat.Balance.Equal(top) {
			break
		}

		winners = append(winners, stat)
	}

	return winners, nil
}

func (uc *AccountUseCase) notifyOwner(nationalID, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), NotificationTimeout)
		defer cancel()

		uc.notifier.Send(ctx, nationalID, message)
	}()
}
