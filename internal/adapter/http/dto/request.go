package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	CustomerNationalID string          `json:"customer_national_id"`
	City               string          `json:"city"`
	Currency           string          `json:"currency"`
	Type               string          `json:"type"`
	InterestRatio      decimal.Decimal `json:"interest_ratio"`
	DepositPeriodWeeks int             `json:"deposit_period_weeks"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() (usecase.CreateAccountInput, error) {
	city, err := domain.ParseCity(r.City)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}

	currency, err := domain.ParseCurrency(r.Currency)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}

	accountType, err := domain.ParseAccountType(r.Type)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}

	return usecase.CreateAccountInput{
		CustomerNationalID: r.CustomerNationalID,
		City:               city,
		Currency:           currency,
		Type:               accountType,
		InterestRatio:      r.InterestRatio,
		DepositPeriod:      r.DepositPeriodWeeks,
	}, nil
}

// UpdateAccountRequest represents a request to update account attributes.
// The currency field must match the account's currency; it exists so a
// client sending the full representation gets a clean conflict instead of
// a silent ignore.
type UpdateAccountRequest struct {
	City               string          `json:"city"`
	Currency           string          `json:"currency"`
	InterestRatio      decimal.Decimal `json:"interest_ratio"`
	DepositPeriodWeeks int             `json:"deposit_period_weeks"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput() (usecase.UpdateAccountInput, error) {
	city, err := domain.ParseCity(r.City)
	if err != nil {
		return usecase.UpdateAccountInput{}, err
	}

	currency, err := domain.ParseCurrency(r.Currency)
	if err != nil {
		return usecase.UpdateAccountInput{}, err
	}

	return usecase.UpdateAccountInput{
		City:          city,
		Currency:      currency,
		InterestRatio: r.InterestRatio,
		DepositPeriod: r.DepositPeriodWeeks,
	}, nil
}

// MoneyRequest represents a deposit or withdrawal.
type MoneyRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Explanation string          `json:"explanation,omitempty"`
}

// TransferRequest represents a same-currency transfer.
type TransferRequest struct {
	SenderAccountID   int64           `json:"sender_account_id"`
	ReceiverAccountID int64           `json:"receiver_account_id"`
	Amount            decimal.Decimal `json:"amount"`
	Explanation       string          `json:"explanation,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		SenderAccountID:   r.SenderAccountID,
		ReceiverAccountID: r.ReceiverAccountID,
		Amount:            r.Amount,
		Explanation:       r.Explanation,
	}
}

// ExchangeRequest represents a cross-currency exchange. Amount is in the
// seller's currency.
type ExchangeRequest struct {
	SellerAccountID int64           `json:"seller_account_id"`
	BuyerAccountID  int64           `json:"buyer_account_id"`
	Amount          decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *ExchangeRequest) ToUseCaseInput() usecase.ExchangeInput {
	return usecase.ExchangeInput{
		SellerAccountID: r.SellerAccountID,
		BuyerAccountID:  r.BuyerAccountID,
		Amount:          r.Amount,
	}
}

// OrderRequest represents a regular transfer order create or update.
type OrderRequest struct {
	SenderAccountID   int64           `json:"sender_account_id"`
	ReceiverAccountID int64           `json:"receiver_account_id"`
	Amount            decimal.Decimal `json:"amount"`
	Explanation       string          `json:"explanation,omitempty"`
	PeriodWeeks       int             `json:"period_weeks"`
}

// ToUseCaseInput converts to use case input.
func (r *OrderRequest) ToUseCaseInput() usecase.OrderInput {
	return usecase.OrderInput{
		SenderAccountID:   r.SenderAccountID,
		ReceiverAccountID: r.ReceiverAccountID,
		Amount:            r.Amount,
		Explanation:       r.Explanation,
		PeriodWeeks:       r.PeriodWeeks,
	}
}
