package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// BalanceUseCase applies signed balance deltas to a single account. It owns
// the invariants "balance never goes negative" and "closed accounts reject
// mutation", and guarantees that every committed balance change carries
// exactly one activity record.
type BalanceUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	activityRepo ActivityRepository
	notifier     NotificationSender
	idGen        IDGenerator
	logger       zerolog.Logger
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	activityRepo ActivityRepository,
	notifier NotificationSender,
	idGen IDGenerator,
	logger zerolog.Logger,
) *BalanceUseCase {
	return &BalanceUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		activityRepo: activityRepo,
		notifier:     notifier,
		idGen:        idGen,
		logger:       logger,
	}
}

// ApplyActivityInput represents a single-account balance mutation request.
type ApplyActivityInput struct {
	AccountID    int64
	ActivityType domain.AccountActivityType
	Amount       decimal.Decimal
	Explanation  string
}

// ApplyActivity mutates one account's balance and appends the matching
// activity record in the same transaction. The amount is always positive;
// the activity type decides the sign.
func (uc *BalanceUseCase) ApplyActivity(ctx context.Context, input ApplyActivityInput) (*domain.AccountActivity, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	direction, err := input.ActivityType.Direction()
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateMutable(); err != nil {
		return nil, err
	}

	var newBalance decimal.Decimal

	switch direction {
	case domain.BalanceIncrease:
		newBalance = account.Balance.Add(input.Amount)
	case domain.BalanceDecrease:
		if err := account.ValidateWithdraw(input.Amount); err != nil {
			return nil, err
		}

		newBalance = account.Balance.Sub(input.Amount)
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	explanation := input.Explanation
	if explanation == "" {
		explanation = defaultExplanation(direction, input.Amount, account)
	}

	activity := &domain.AccountActivity{
		ID:          uc.idGen.Generate(),
		Type:        input.ActivityType,
		Amount:      input.Amount,
		CreatedAt:   now,
		Explanation: explanation,
	}

	switch direction {
	case domain.BalanceIncrease:
		activity.ReceiverAccountID = &account.ID
	case domain.BalanceDecrease:
		activity.SenderAccountID = &account.ID
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	if err := uc.activityRepo.Create(ctx, tx, activity); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.ActivityRecorded(string(input.ActivityType))

	uc.logger.Info().
		Int64("account_id", account.ID).
		Str("activity", string(input.ActivityType)).
		Str("amount", input.Amount.String()).
		Str("balance", newBalance.String()).
		Msg("balance updated")

	uc.notifyOwner(account.CustomerNationalID, explanation)

	return activity, nil
}

// notifyOwner sends a fire-and-forget notification outside the
// transactional boundary.
func (uc *BalanceUseCase) notifyOwner(nationalID, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), NotificationTimeout)
		defer cancel()

		uc.notifier.Send(ctx, nationalID, message)
	}()
}

func defaultExplanation(direction domain.BalanceActivity, amount decimal.Decimal, account *domain.Account) string {
	verb := "deposited to"
	if direction == domain.BalanceDecrease {
		verb = "withdrawn from"
	}

	return fmt.Sprintf("%s %s is %s account %d", amount, account.Currency, verb, account.ID)
}
