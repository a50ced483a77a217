package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID                 int64           `json:"id"`
	CustomerNationalID string          `json:"customer_national_id"`
	City               string          `json:"city"`
	Currency           string          `json:"currency"`
	Balance            decimal.Decimal `json:"balance"`
	Type               string          `json:"type"`
	InterestRatio      decimal.Decimal `json:"interest_ratio,omitempty"`
	DepositPeriodWeeks int             `json:"deposit_period_weeks,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	ClosedAt           *time.Time      `json:"closed_at,omitempty"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:                 a.ID,
		CustomerNationalID: a.CustomerNationalID,
		City:               string(a.City),
		Currency:           string(a.Currency),
		Balance:            a.Balance,
		Type:               string(a.Type),
		InterestRatio:      a.InterestRatio,
		DepositPeriodWeeks: a.DepositPeriod,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
		ClosedAt:           a.ClosedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ActivityResponse represents an account activity in API responses.
type ActivityResponse struct {
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	SenderAccountID   *int64          `json:"sender_account_id,omitempty"`
	ReceiverAccountID *int64          `json:"receiver_account_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Explanation       string          `json:"explanation,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ActivityFromDomain converts domain activity to response.
func ActivityFromDomain(a *domain.AccountActivity) *ActivityResponse {
	return &ActivityResponse{
		ID:                a.ID,
		Type:              string(a.Type),
		SenderAccountID:   a.SenderAccountID,
		ReceiverAccountID: a.ReceiverAccountID,
		Amount:            a.Amount,
		Explanation:       a.Explanation,
		CreatedAt:         a.CreatedAt,
	}
}

// ActivitiesFromDomain converts domain activities to responses.
func ActivitiesFromDomain(activities []*domain.AccountActivity) []*ActivityResponse {
	result := make([]*ActivityResponse, len(activities))
	for i, a := range activities {
		result[i] = ActivityFromDomain(a)
	}
	return result
}

// ListActivitiesResponse wraps an activity listing.
type ListActivitiesResponse struct {
	Activities []*ActivityResponse `json:"activities"`
	Total      int64               `json:"total"`
}

// OrderResponse represents a regular transfer order in API responses.
type OrderResponse struct {
	ID                string          `json:"id"`
	SenderAccountID   int64           `json:"sender_account_id"`
	ReceiverAccountID int64           `json:"receiver_account_id"`
	Amount            decimal.Decimal `json:"amount"`
	Explanation       string          `json:"explanation,omitempty"`
	PeriodWeeks       int             `json:"period_weeks"`
	CreatedAt         time.Time       `json:"created_at"`
}

// OrderFromDomain converts domain order to response.
func OrderFromDomain(o *domain.RegularTransferOrder) *OrderResponse {
	return &OrderResponse{
		ID:                o.ID,
		SenderAccountID:   o.SenderAccountID,
		ReceiverAccountID: o.Transfer.ReceiverAccountID,
		Amount:            o.Transfer.Amount,
		Explanation:       o.Transfer.Explanation,
		PeriodWeeks:       o.PeriodWeeks,
		CreatedAt:         o.CreatedAt,
	}
}

// OrdersFromDomain converts domain orders to responses.
func OrdersFromDomain(orders []*domain.RegularTransferOrder) []*OrderResponse {
	result := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = OrderFromDomain(o)
	}
	return result
}

// ListOrdersResponse wraps an order listing.
type ListOrdersResponse struct {
	Orders []*OrderResponse `json:"orders"`
	Total  int64            `json:"total"`
}

// CountResponse wraps a single count.
type CountResponse struct {
	Count int `json:"count"`
}

// CustomerBalanceResponse represents one row of the maximum-balance
// statistics query.
type CustomerBalanceResponse struct {
	NationalID string          `json:"national_id"`
	FullName   string          `json:"full_name"`
	AccountID  int64           `json:"account_id"`
	City       string          `json:"city"`
	Balance    decimal.Decimal `json:"balance"`
}

// CustomerBalancesFromDomain converts stats rows to responses.
func CustomerBalancesFromDomain(stats []*domain.CustomerBalanceStat) []*CustomerBalanceResponse {
	result := make([]*CustomerBalanceResponse, len(stats))
	for i, s := range stats {
		result[i] = &CustomerBalanceResponse{
			NationalID: s.NationalID,
			FullName:   s.FullName,
			AccountID:  s.AccountID,
			City:       string(s.City),
			Balance:    s.Balance,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
