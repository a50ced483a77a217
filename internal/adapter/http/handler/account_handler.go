package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, id int64, input usecase.UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
	CloseAccount(ctx context.Context, id int64) (*domain.Account, error)
	PayDepositInterest(ctx context.Context, id int64) (*domain.AccountActivity, error)
	TotalActiveAccounts(ctx context.Context, city domain.City, accountType domain.AccountType, currency domain.Currency) (int, error)
	CustomersWithMaximumBalance(ctx context.Context, accountType domain.AccountType, currency domain.Currency, city *domain.City) ([]*domain.CustomerBalanceStat, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create opens a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account attributes", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts, optionally filtered by type, currency, city,
// creation date and open/closed state.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := accountFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Update updates the mutable attributes of an account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account attributes", err.Error())
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), id, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Delete removes an account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	if err := h.accountUC.DeleteAccount(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete account", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Close closes an account. Closing is one-way and requires a zero balance.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	account, err := h.accountUC.CloseAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to close account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// PayInterest credits due deposit interest to a deposit account.
func (h *AccountHandler) PayInterest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	activity, err := h.accountUC.PayDepositInterest(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to pay deposit interest", err.Error())
		return
	}

	if activity == nil {
		// Deposit period not completed yet; nothing was credited.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, dto.ActivityFromDomain(activity))
}

// CountActive returns the number of open accounts in a city for a given
// type and currency.
func (h *AccountHandler) CountActive(w http.ResponseWriter, r *http.Request) {
	city, err := domain.ParseCity(r.URL.Query().Get("city"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid city", err.Error())
		return
	}

	accountType, err := domain.ParseAccountType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account type", err.Error())
		return
	}

	currency, err := domain.ParseCurrency(r.URL.Query().Get("currency"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency", err.Error())
		return
	}

	count, err := h.accountUC.TotalActiveAccounts(r.Context(), city, accountType, currency)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to count accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CountResponse{Count: count})
}

// MaxBalanceCustomers returns each customer's highest-balance open account
// for a given type and currency, optionally narrowed to a city.
func (h *AccountHandler) MaxBalanceCustomers(w http.ResponseWriter, r *http.Request) {
	accountType, err := domain.ParseAccountType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account type", err.Error())
		return
	}

	currency, err := domain.ParseCurrency(r.URL.Query().Get("currency"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency", err.Error())
		return
	}

	var city *domain.City
	if raw := r.URL.Query().Get("city"); raw != "" {
		parsed, err := domain.ParseCity(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid city", err.Error())
			return
		}
		city = &parsed
	}

	stats, err := h.accountUC.CustomersWithMaximumBalance(r.Context(), accountType, currency, city)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute statistics", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerBalancesFromDomain(stats))
}

func accountFilterFromQuery(r *http.Request) (usecase.AccountFilter, error) {
	var filter usecase.AccountFilter
	q := r.URL.Query()

	if raw := q.Get("type"); raw != "" {
		accountType, err := domain.ParseAccountType(raw)
		if err != nil {
			return filter, err
		}
		filter.Type = &accountType
	}

	if raw := q.Get("currency"); raw != "" {
		currency, err := domain.ParseCurrency(raw)
		if err != nil {
			return filter, err
		}
		filter.Currency = &currency
	}

	if raw := q.Get("city"); raw != "" {
		city, err := domain.ParseCity(raw)
		if err != nil {
			return filter, err
		}
		filter.City = &city
	}

	if raw := q.Get("created_on"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, err
		}
		filter.CreatedOn = &day
	}

	if q.Get("open_only") == "true" {
		filter.OpenOnly = true
	}

	return filter, nil
}
