package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	TransferMoney(ctx context.Context, input usecase.TransferInput) (*domain.AccountActivity, error)
	ExchangeMoney(ctx context.Context, input usecase.ExchangeInput) (*domain.AccountActivity, error)
}

// TransferHandler handles money transfers and currency exchanges.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Transfer moves money between two same-currency accounts.
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	activity, err := h.transferUC.TransferMoney(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to transfer money", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ActivityFromDomain(activity))
}

// Exchange converts money between two accounts holding different
// currencies.
func (h *TransferHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	var req dto.ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	activity, err := h.transferUC.ExchangeMoney(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to exchange money", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ActivityFromDomain(activity))
}
