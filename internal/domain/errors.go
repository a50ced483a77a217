package domain

import "errors"

var (
	// Not found errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOrderNotFound    = errors.New("regular transfer order not found")
	ErrActivityNotFound = errors.New("account activity not found")

	// Business-rule conflicts
	ErrAccountClosed       = errors.New("account is closed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCurrencyMismatch    = errors.New("currencies of the accounts do not match")
	ErrBalanceNotZero      = errors.New("balance must be zero to close the account")
	ErrNotDepositAccount   = errors.New("account is not a deposit account")
	ErrSameAccount         = errors.New("sender and receiver accounts are the same")
	ErrInvalidAmount       = errors.New("amount must be positive")

	// Validation errors
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidCity        = errors.New("invalid city")
	ErrInvalidPeriod      = errors.New("period must be a positive number of weeks")

	// External collaborators
	ErrRateUnavailable = errors.New("exchange rate is unavailable")
)
