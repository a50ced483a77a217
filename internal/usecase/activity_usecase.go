package usecase

import (
	"context"

	"github.com/iho/gobank/internal/domain"
)

// ActivityUseCase exposes read access to the append-only activity log.
type ActivityUseCase struct {
	activityRepo ActivityRepository
}

// NewActivityUseCase creates a new ActivityUseCase.
func NewActivityUseCase(activityRepo ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{activityRepo: activityRepo}
}

// GetActivity retrieves an activity by ID.
func (uc *ActivityUseCase) GetActivity(ctx context.Context, id string) (*domain.AccountActivity, error) {
	return uc.activityRepo.GetByID(ctx, id)
}

// ListByAccountInput represents input for listing activities.
type ListByAccountInput struct {
	AccountID int64
	Limit     int
	Offset    int
}

// ListByAccount lists the activities referencing an account as sender or
// receiver, newest first.
func (uc *ActivityUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.AccountActivity, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultActivityPageSize
	}

	if input.Limit > MaxActivityPageSize {
		input.Limit = MaxActivityPageSize
	}

	return uc.activityRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}
