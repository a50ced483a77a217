package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// ActivityService defines the behavior needed by ActivityHandler.
type ActivityService interface {
	GetActivity(ctx context.Context, id string) (*domain.AccountActivity, error)
	ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.AccountActivity, error)
}

// ActivityHandler serves the account activity log.
type ActivityHandler struct {
	activityUC ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityUC ActivityService) *ActivityHandler {
	return &ActivityHandler{activityUC: activityUC}
}

// Get retrieves a single activity.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	activity, err := h.activityUC.GetActivity(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get activity", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ActivityFromDomain(activity))
}

// ListByAccount lists the activities referencing an account.
func (h *ActivityHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	activities, err := h.activityUC.ListByAccount(r.Context(), usecase.ListByAccountInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list activities", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListActivitiesResponse{
		Activities: dto.ActivitiesFromDomain(activities),
		Total:      int64(len(activities)),
	})
}
