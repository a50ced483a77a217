package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/scheduler"
	"github.com/iho/gobank/internal/usecase"
	"github.com/iho/gobank/internal/usecase/mocks"
)

type stubOrderSource struct {
	orders []*domain.RegularTransferOrder
	err    error
}

func (s *stubOrderSource) DueOrders(ctx context.Context, today time.Time) ([]*domain.RegularTransferOrder, error) {
	return s.orders, s.err
}

type recordingExecutor struct {
	mu     sync.Mutex
	inputs []usecase.TransferInput
	fail   map[int64]error
}

func (r *recordingExecutor) TransferMoney(ctx context.Context, input usecase.TransferInput) (*domain.AccountActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.fail[input.SenderAccountID]; ok {
		return nil, err
	}

	r.inputs = append(r.inputs, input)
	return &domain.AccountActivity{Type: domain.ActivityMoneyTransfer}, nil
}

func (r *recordingExecutor) executed() []usecase.TransferInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]usecase.TransferInput(nil), r.inputs...)
}

func order(id string, sender, receiver int64, amount int64) *domain.RegularTransferOrder {
	return &domain.RegularTransferOrder{
		ID:              id,
		SenderAccountID: sender,
		PeriodWeeks:     1,
		CreatedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Transfer: domain.RegularTransfer{
			ReceiverAccountID: receiver,
			Amount:            decimal.NewFromInt(amount),
		},
	}
}

func TestRecurring_Tick_ExecutesDueOrders(t *testing.T) {
	executor := &recordingExecutor{}
	s := scheduler.New(scheduler.Config{
		Orders:    &stubOrderSource{orders: []*domain.RegularTransferOrder{order("a", 1, 2, 50), order("b", 3, 4, 10)}},
		Transfers: executor,
		Clock:     mocks.FixedClock{Time: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
		Logger:    zerolog.Nop(),
	})

	s.Tick(context.Background())

	got := executor.executed()
	if len(got) != 2 {
		t.Fatalf("executed %d transfers, want 2", len(got))
	}
	if got[0].SenderAccountID != 1 || got[0].ReceiverAccountID != 2 || !got[0].Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("unexpected first transfer: %+v", got[0])
	}
}

func TestRecurring_Tick_FailedOrderDoesNotBlockOthers(t *testing.T) {
	executor := &recordingExecutor{fail: map[int64]error{1: domain.ErrInsufficientBalance}}
	s := scheduler.New(scheduler.Config{
		Orders:    &stubOrderSource{orders: []*domain.RegularTransferOrder{order("a", 1, 2, 50), order("b", 3, 4, 10)}},
		Transfers: executor,
		Logger:    zerolog.Nop(),
	})

	s.Tick(context.Background())

	got := executor.executed()
	if len(got) != 1 {
		t.Fatalf("executed %d transfers, want 1", len(got))
	}
	if got[0].SenderAccountID != 3 {
		t.Errorf("surviving transfer sender = %d, want 3", got[0].SenderAccountID)
	}
}

func TestRecurring_Tick_SourceErrorSkipsTick(t *testing.T) {
	executor := &recordingExecutor{}
	s := scheduler.New(scheduler.Config{
		Orders:    &stubOrderSource{err: errors.New("db down")},
		Transfers: executor,
		Logger:    zerolog.Nop(),
	})

	s.Tick(context.Background())

	if len(executor.executed()) != 0 {
		t.Error("no transfer may run when due orders cannot be loaded")
	}
}

func TestRecurring_Start_StopsOnContextCancel(t *testing.T) {
	executor := &recordingExecutor{}
	s := scheduler.New(scheduler.Config{
		Orders:    &stubOrderSource{},
		Transfers: executor,
		Interval:  10 * time.Millisecond,
		Logger:    zerolog.Nop(),
	})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
