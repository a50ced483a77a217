package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

type accountServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn        func(ctx context.Context, id int64) (*domain.Account, error)
	listFn       func(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error)
	updateFn     func(ctx context.Context, id int64, input usecase.UpdateAccountInput) (*domain.Account, error)
	deleteFn     func(ctx context.Context, id int64) error
	closeFn      func(ctx context.Context, id int64) (*domain.Account, error)
	interestFn   func(ctx context.Context, id int64) (*domain.AccountActivity, error)
	countFn      func(ctx context.Context, city domain.City, accountType domain.AccountType, currency domain.Currency) (int, error)
	maxBalanceFn func(ctx context.Context, accountType domain.AccountType, currency domain.Currency, city *domain.City) ([]*domain.CustomerBalanceStat, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error) {
	return s.listFn(ctx, filter)
}

func (s *accountServiceStub) UpdateAccount(ctx context.Context, id int64, input usecase.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, id, input)
}

func (s *accountServiceStub) DeleteAccount(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *accountServiceStub) CloseAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return s.closeFn(ctx, id)
}

func (s *accountServiceStub) PayDepositInterest(ctx context.Context, id int64) (*domain.AccountActivity, error) {
	return s.interestFn(ctx, id)
}

func (s *accountServiceStub) TotalActiveAccounts(ctx context.Context, city domain.City, accountType domain.AccountType, currency domain.Currency) (int, error) {
	return s.countFn(ctx, city, accountType, currency)
}

func (s *accountServiceStub) CustomersWithMaximumBalance(ctx context.Context, accountType domain.AccountType, currency domain.Currency, city *domain.City) ([]*domain.CustomerBalanceStat, error) {
	return s.maxBalanceFn(ctx, accountType, currency, city)
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestAccountHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return &domain.Account{ID: 1, CustomerNationalID: input.CustomerNationalID, City: input.City, Currency: input.Currency, Type: input.Type}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{
		CustomerNationalID: "11111111111",
		City:               "ANKARA",
		Currency:           "TRY",
		Type:               "CURRENT",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.City != domain.CityAnkara || captured.Currency != domain.CurrencyTRY {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestAccountHandler_Create_InvalidCurrency(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			t.Fatal("CreateAccount should not be called")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{
		CustomerNationalID: "11111111111",
		City:               "ANKARA",
		Currency:           "DOGE",
		Type:               "CURRENT",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/9", nil)
	req = setChiURLParam(req, "id", "9")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_InvalidID(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/accounts/abc", nil)
	req = setChiURLParam(req, "id", "abc")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_List_FilterFromQuery(t *testing.T) {
	var captured usecase.AccountFilter
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, error) {
			captured = filter
			return []*domain.Account{{ID: 1}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts?type=DEPOSIT&currency=EUR&open_only=true", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if captured.Type == nil || *captured.Type != domain.AccountTypeDeposit {
		t.Fatalf("expected DEPOSIT type filter, got %+v", captured)
	}
	if captured.Currency == nil || *captured.Currency != domain.CurrencyEUR {
		t.Fatalf("expected EUR currency filter, got %+v", captured)
	}
	if !captured.OpenOnly {
		t.Fatalf("expected open_only filter")
	}
}

func TestAccountHandler_Close_Conflict(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		closeFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return nil, domain.ErrBalanceNotZero
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/1/close", nil)
	req = setChiURLParam(req, "id", "1")
	rec := httptest.NewRecorder()

	handler.Close(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_PayInterest_NotDue(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		interestFn: func(ctx context.Context, id int64) (*domain.AccountActivity, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/1/interest", nil)
	req = setChiURLParam(req, "id", "1")
	rec := httptest.NewRecorder()

	handler.PayInterest(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for a deposit period still running, got %d", rec.Code)
	}
}

func TestAccountHandler_CountActive(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		countFn: func(ctx context.Context, city domain.City, accountType domain.AccountType, currency domain.Currency) (int, error) {
			if city != domain.CityIstanbul || accountType != domain.AccountTypeCurrent || currency != domain.CurrencyTRY {
				t.Fatalf("unexpected query: %s %s %s", city, accountType, currency)
			}
			return 7, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/statistics/accounts/count?city=ISTANBUL&type=CURRENT&currency=TRY", nil)
	rec := httptest.NewRecorder()

	handler.CountActive(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.CountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 7 {
		t.Fatalf("expected count 7, got %d", resp.Count)
	}
}

func TestAccountHandler_MaxBalanceCustomers(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		maxBalanceFn: func(ctx context.Context, accountType domain.AccountType, currency domain.Currency, city *domain.City) ([]*domain.CustomerBalanceStat, error) {
			if city != nil {
				t.Fatalf("expected nil city filter, got %s", *city)
			}
			return []*domain.CustomerBalanceStat{
				{NationalID: "11111111111", FullName: "Ada Lovelace", AccountID: 3, City: domain.CityLondon, Balance: decimal.NewFromInt(900)},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/statistics/customers/max-balance?type=DEPOSIT&currency=EUR", nil)
	rec := httptest.NewRecorder()

	handler.MaxBalanceCustomers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.CustomerBalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].AccountID != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
