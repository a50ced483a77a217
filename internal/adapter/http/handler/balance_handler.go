package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	ApplyActivity(ctx context.Context, input usecase.ApplyActivityInput) (*domain.AccountActivity, error)
}

// BalanceHandler handles deposits and withdrawals on a single account.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// Deposit credits an amount to the account.
func (h *BalanceHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, domain.ActivityMoneyDeposit)
}

// Withdraw debits an amount from the account.
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, domain.ActivityWithdrawal)
}

func (h *BalanceHandler) apply(w http.ResponseWriter, r *http.Request, activityType domain.AccountActivityType) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	var req dto.MoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	activity, err := h.balanceUC.ApplyActivity(r.Context(), usecase.ApplyActivityInput{
		AccountID:    id,
		ActivityType: activityType,
		Amount:       req.Amount,
		Explanation:  req.Explanation,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply balance activity", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ActivityFromDomain(activity))
}
