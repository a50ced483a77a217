package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates two-account money movement: same-currency
// transfers and cross-currency exchanges. Both balance updates and the
// single activity record commit in one database transaction.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	activityRepo ActivityRepository
	rates        RateProvider
	notifier     NotificationSender
	idGen        IDGenerator
	retrier      Retrier
	logger       zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	activityRepo ActivityRepository,
	rates RateProvider,
	notifier NotificationSender,
	idGen IDGenerator,
	logger zerolog.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		activityRepo: activityRepo,
		rates:        rates,
		notifier:     notifier,
		idGen:        idGen,
		logger:       logger,
	}
}

// WithRetrier makes the usecase re-run a whole transfer transaction after a
// transient database failure. Each attempt starts a fresh transaction.
func (uc *TransferUseCase) WithRetrier(r Retrier) *TransferUseCase {
	uc.retrier = r
	return uc
}

func (uc *TransferUseCase) run(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}

	return uc.retrier.Retry(ctx, op)
}

// TransferInput represents a same-currency money transfer request.
type TransferInput struct {
	SenderAccountID   int64
	ReceiverAccountID int64
	Amount            decimal.Decimal
	Explanation       string
}

// TransferMoney moves amount from the sender to the receiver. Both
// accounts must be open and share the same currency, and the sender must
// hold at least amount. Exactly one MONEY_TRANSFER activity referencing
// both accounts is written. Both owners are notified after commit.
func (uc *TransferUseCase) TransferMoney(ctx context.Context, input TransferInput) (*domain.AccountActivity, error) {
	if input.SenderAccountID == input.ReceiverAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var (
		sender, receiver *domain.Account
		activity         *domain.AccountActivity
		explanation      string
	)

	err := uc.run(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		sender, receiver, err = uc.lockPair(ctx, tx, input.SenderAccountID, input.ReceiverAccountID)
		if err != nil {
			return err
		}

		if sender.Currency != receiver.Currency {
			return domain.ErrCurrencyMismatch
		}

		if err := sender.ValidateWithdraw(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()

		if err := uc.accountRepo.UpdateBalance(ctx, tx, sender.ID, sender.Balance.Sub(input.Amount), now); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, receiver.ID, receiver.Balance.Add(input.Amount), now); err != nil {
			return err
		}

		explanation = input.Explanation
		if explanation == "" {
			explanation = fmt.Sprintf("%s %s is transferred from account %d to account %d",
				input.Amount, sender.Currency, sender.ID, receiver.ID)
		}

		activity = &domain.AccountActivity{
			ID:                uc.idGen.Generate(),
			Type:              domain.ActivityMoneyTransfer,
			SenderAccountID:   &sender.ID,
			ReceiverAccountID: &receiver.ID,
			Amount:            input.Amount,
			CreatedAt:         now,
			Explanation:       explanation,
		}

		if err := uc.activityRepo.Create(ctx, tx, activity); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	metrics.TransferExecuted()
	metrics.ActivityRecorded(string(domain.ActivityMoneyTransfer))

	uc.logger.Info().
		Int64("sender_id", sender.ID).
		Int64("receiver_id", receiver.ID).
		Str("amount", input.Amount.String()).
		Str("currency", string(sender.Currency)).
		Msg("money transferred")

	uc.notifyOwners(explanation, sender, receiver)

	return activity, nil
}

// ExchangeInput represents a cross-currency exchange request. Amount is
// denominated in the seller's currency.
type ExchangeInput struct {
	SellerAccountID int64
	BuyerAccountID  int64
	Amount          decimal.Decimal
}

// ExchangeMoney converts amount from the seller's currency into the
// buyer's, debiting the seller and crediting the buyer with the converted
// amount rounded to the buyer currency's minor-unit precision. The whole
// operation fails closed when the rate provider cannot answer.
func (uc *TransferUseCase) ExchangeMoney(ctx context.Context, input ExchangeInput) (*domain.AccountActivity, error) {
	if input.SellerAccountID == input.BuyerAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var (
		seller, buyer   *domain.Account
		activity        *domain.AccountActivity
		converted, rate decimal.Decimal
		explanation     string
	)

	err := uc.run(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		seller, buyer, err = uc.lockPair(ctx, tx, input.SellerAccountID, input.BuyerAccountID)
		if err != nil {
			return err
		}

		if err := seller.ValidateWithdraw(input.Amount); err != nil {
			return err
		}

		rateCtx, cancel := context.WithTimeout(ctx, RateTimeout)
		defer cancel()

		rate, err = uc.rates.Rate(rateCtx, seller.Currency, buyer.Currency)
		if err != nil {
			return err
		}

		if rate.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: non-positive rate %s", domain.ErrRateUnavailable, rate)
		}

		converted = buyer.Currency.Round(input.Amount.Mul(rate))
		now := time.Now().UTC()

		if err := uc.accountRepo.UpdateBalance(ctx, tx, seller.ID, seller.Balance.Sub(input.Amount), now); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, buyer.ID, buyer.Balance.Add(converted), now); err != nil {
			return err
		}

		explanation = fmt.Sprintf(
			"%s %s is exchanged to %s %s (rate %s) from account %d to account %d",
			input.Amount, seller.Currency, converted, buyer.Currency, rate, seller.ID, buyer.ID)

		activity = &domain.AccountActivity{
			ID:                uc.idGen.Generate(),
			Type:              domain.ActivityMoneyExchange,
			SenderAccountID:   &seller.ID,
			ReceiverAccountID: &buyer.ID,
			Amount:            input.Amount,
			CreatedAt:         now,
			Explanation:       explanation,
		}

		if err := uc.activityRepo.Create(ctx, tx, activity); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	metrics.ExchangeExecuted()
	metrics.ActivityRecorded(string(domain.ActivityMoneyExchange))

	uc.logger.Info().
		Int64("seller_id", seller.ID).
		Int64("buyer_id", buyer.ID).
		Str("amount", input.Amount.String()).
		Str("converted", converted.String()).
		Str("rate", rate.String()).
		Msg("money exchanged")

	uc.notifyOwners(explanation, seller, buyer)

	return activity, nil
}

// lockPair locks both accounts in ascending id order (deadlock prevention)
// and rejects the operation when either is missing or closed.
func (uc *TransferUseCase) lockPair(ctx context.Context, tx Transaction, firstID, secondID int64) (*domain.Account, *domain.Account, error) {
	ids := []int64{firstID, secondID}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, nil, err
	}

	if len(accounts) != 2 {
		return nil, nil, domain.ErrAccountNotFound
	}

	byID := map[int64]*domain.Account{
		accounts[0].ID: accounts[0],
		accounts[1].ID: accounts[1],
	}

	first, second := byID[firstID], byID[secondID]
	if first == nil || second == nil {
		return nil, nil, domain.ErrAccountNotFound
	}

	if err := first.ValidateMutable(); err != nil {
		return nil, nil, err
	}

	if err := second.ValidateMutable(); err != nil {
		return nil, nil, err
	}

	return first, second, nil
}

// notifyOwners sends fire-and-forget notifications to both account owners
// outside the transactional boundary.
func (uc *TransferUseCase) notifyOwners(message string, accounts ...*domain.Account) {
	for _, account := range accounts {
		nationalID := account.CustomerNationalID

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), NotificationTimeout)
			defer cancel()

			uc.notifier.Send(ctx, nationalID, message)
		}()
	}
}
