package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/infrastructure/metrics"
	"github.com/iho/gobank/internal/usecase"
)

// OrderSource yields the standing orders due on a given day.
type OrderSource interface {
	DueOrders(ctx context.Context, today time.Time) ([]*domain.RegularTransferOrder, error)
}

// TransferExecutor runs the money movement a due order describes.
type TransferExecutor interface {
	TransferMoney(ctx context.Context, input usecase.TransferInput) (*domain.AccountActivity, error)
}

// Recurring evaluates regular transfer orders on a fixed interval and
// triggers the transfer engine for every due order. It runs decoupled from
// request handling. A failing order is logged and skipped; it never blocks
// evaluation of the remaining orders, and nothing is retried before the
// order's next period boundary.
type Recurring struct {
	orders    OrderSource
	transfers TransferExecutor
	clock     usecase.Clock
	interval  time.Duration
	logger    zerolog.Logger
}

// Config for Recurring.
type Config struct {
	Orders    OrderSource
	Transfers TransferExecutor
	Clock     usecase.Clock
	Interval  time.Duration
	Logger    zerolog.Logger
}

// New creates a Recurring scheduler.
func New(cfg Config) *Recurring {
	if cfg.Interval == 0 {
		cfg.Interval = 24 * time.Hour
	}

	if cfg.Clock == nil {
		cfg.Clock = usecase.SystemClock{}
	}

	return &Recurring{
		orders:    cfg.Orders,
		transfers: cfg.Transfers,
		clock:     cfg.Clock,
		interval:  cfg.Interval,
		logger:    cfg.Logger,
	}
}

// Start runs the scheduler loop until the context is cancelled. The first
// evaluation happens immediately.
func (s *Recurring) Start(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("recurring transfer scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("recurring transfer scheduler shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick evaluates every order once against today's date.
func (s *Recurring) Tick(ctx context.Context) {
	today := s.clock.Now()

	due, err := s.orders.DueOrders(ctx, today)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load due orders")
		return
	}

	if len(due) == 0 {
		return
	}

	s.logger.Info().Int("count", len(due)).Msg("executing due regular transfers")

	for _, order := range due {
		if _, err := s.transfers.TransferMoney(ctx, usecase.TransferInput{
			SenderAccountID:   order.SenderAccountID,
			ReceiverAccountID: order.Transfer.ReceiverAccountID,
			Amount:            order.Transfer.Amount,
			Explanation:       order.Transfer.Explanation,
		}); err != nil {
			// Not retried until the next period boundary.
			metrics.RecurringTransferFailed()
			s.logger.Error().
				Err(err).
				Str("order_id", order.ID).
				Int64("sender_id", order.SenderAccountID).
				Msg("regular transfer failed")

			continue
		}

		metrics.RecurringTransferExecuted()
		s.logger.Info().
			Str("order_id", order.ID).
			Str("amount", order.Transfer.Amount.String()).
			Msg("regular transfer executed")
	}
}
