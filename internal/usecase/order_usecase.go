package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// OrderUseCase manages regular transfer orders: plain CRUD plus the due
// check the scheduler relies on. The orders themselves are never mutated
// by execution; the scheduler only triggers a transfer side effect.
type OrderUseCase struct {
	orderRepo   OrderRepository
	accountRepo AccountRepository
	idGen       IDGenerator
	clock       Clock
	logger      zerolog.Logger
}

// NewOrderUseCase creates a new OrderUseCase.
func NewOrderUseCase(
	orderRepo OrderRepository,
	accountRepo AccountRepository,
	idGen IDGenerator,
	clock Clock,
	logger zerolog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
		idGen:       idGen,
		clock:       clock,
		logger:      logger,
	}
}

// OrderInput represents input for creating or updating an order.
type OrderInput struct {
	SenderAccountID   int64
	ReceiverAccountID int64
	Amount            decimal.Decimal
	Explanation       string
	PeriodWeeks       int
}

// CreateOrder creates a standing transfer order anchored to today.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input OrderInput) (*domain.RegularTransferOrder, error) {
	if err := uc.checkAccounts(ctx, input); err != nil {
		return nil, err
	}

	order := &domain.RegularTransferOrder{
		ID:              uc.idGen.Generate(),
		SenderAccountID: input.SenderAccountID,
		Transfer: domain.RegularTransfer{
			ReceiverAccountID: input.ReceiverAccountID,
			Amount:            input.Amount,
			Explanation:       input.Explanation,
		},
		PeriodWeeks: input.PeriodWeeks,
		CreatedAt:   uc.clock.Now(),
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("order_id", order.ID).
		Int64("sender_id", order.SenderAccountID).
		Int("period_weeks", order.PeriodWeeks).
		Msg("regular transfer order created")

	return order, nil
}

// GetOrder retrieves an order by ID.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*domain.RegularTransferOrder, error) {
	return uc.orderRepo.GetByID(ctx, id)
}

// UpdateOrder replaces the transfer payload of an existing order. The
// creation date stays put, so the recurrence anchor does not move.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, id string, input OrderInput) (*domain.RegularTransferOrder, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.checkAccounts(ctx, input); err != nil {
		return nil, err
	}

	order.SenderAccountID = input.SenderAccountID
	order.Transfer = domain.RegularTransfer{
		ReceiverAccountID: input.ReceiverAccountID,
		Amount:            input.Amount,
		Explanation:       input.Explanation,
	}
	order.PeriodWeeks = input.PeriodWeeks

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// DeleteOrder deletes an order by ID.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, id string) error {
	if _, err := uc.orderRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info().Str("order_id", id).Msg("regular transfer order deleted")

	return nil
}

// OrderFilter narrows order listings. Nil fields match everything.
type OrderFilter struct {
	SenderAccountID   *int64
	ReceiverAccountID *int64
	PeriodWeeks       *int
	CreatedOn         *time.Time
}

// ListOrders applies the filter as a pure predicate over a full listing.
func (uc *OrderUseCase) ListOrders(ctx context.Context, filter OrderFilter) ([]*domain.RegularTransferOrder, error) {
	orders, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.RegularTransferOrder, 0, len(orders))

	for _, order := range orders {
		if matchesOrderFilter(order, filter) {
			matched = append(matched, order)
		}
	}

	return matched, nil
}

func matchesOrderFilter(order *domain.RegularTransferOrder, filter OrderFilter) bool {
	if filter.SenderAccountID != nil && order.SenderAccountID != *filter.SenderAccountID {
		return false
	}

	if filter.ReceiverAccountID != nil && order.Transfer.ReceiverAccountID != *filter.ReceiverAccountID {
		return false
	}

	if filter.PeriodWeeks != nil && order.PeriodWeeks != *filter.PeriodWeeks {
		return false
	}

	if filter.CreatedOn != nil {
		y1, m1, d1 := order.CreatedAt.Date()
		y2, m2, d2 := filter.CreatedOn.Date()

		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}

	return true
}

// DueOrders returns the orders whose due predicate matches today.
func (uc *OrderUseCase) DueOrders(ctx context.Context, today time.Time) ([]*domain.RegularTransferOrder, error) {
	orders, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	due := make([]*domain.RegularTransferOrder, 0)

	for _, order := range orders {
		if order.DueOn(today) {
			due = append(due, order)
		}
	}

	return due, nil
}

func (uc *OrderUseCase) checkAccounts(ctx context.Context, input OrderInput) error {
	if _, err := uc.accountRepo.GetByID(ctx, input.SenderAccountID); err != nil {
		return err
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.ReceiverAccountID); err != nil {
		return err
	}

	return nil
}
