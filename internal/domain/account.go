package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the closed set of account kinds.
type AccountType string

const (
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeDeposit AccountType = "DEPOSIT"
)

// ParseAccountType parses an account type.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountTypeCurrent, AccountTypeDeposit:
		return AccountType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
	}
}

// City is the closed set of branch cities.
type City string

const (
	CityAnkara   City = "ANKARA"
	CityIstanbul City = "ISTANBUL"
	CityIzmir    City = "IZMIR"
	CityLondon   City = "LONDON"
	CityNewYork  City = "NEW_YORK"
)

// ParseCity parses a city name.
func ParseCity(s string) (City, error) {
	switch City(s) {
	case CityAnkara, CityIstanbul, CityIzmir, CityLondon, CityNewYork:
		return City(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCity, s)
	}
}

// Account is a customer bank account. Balance never goes negative and the
// currency is immutable after creation. A non-nil ClosedAt marks the
// account as terminally closed.
type Account struct {
	ID                 int64
	CustomerNationalID string
	City               City
	Currency           Currency
	Balance            decimal.Decimal
	Type               AccountType
	// Deposit account fields
	InterestRatio decimal.Decimal
	DepositPeriod int

	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
}

// Closed reports whether the account has been closed.
func (a *Account) Closed() bool {
	return a.ClosedAt != nil
}

// ValidateMutable checks that the account still accepts balance mutations.
func (a *Account) ValidateMutable() error {
	if a.Closed() {
		return fmt.Errorf("%w since %s", ErrAccountClosed, a.ClosedAt.Format(time.RFC3339))
	}

	return nil
}

// ValidateWithdraw checks that amount can be taken out without driving the
// balance negative.
func (a *Account) ValidateWithdraw(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientBalance
	}

	return nil
}

// ValidateClose checks the close preconditions: the account is still open
// and holds exactly zero balance.
func (a *Account) ValidateClose() error {
	if a.Closed() {
		return fmt.Errorf("%w since %s", ErrAccountClosed, a.ClosedAt.Format(time.RFC3339))
	}

	if !a.Balance.IsZero() {
		return ErrBalanceNotZero
	}

	return nil
}

// DepositPeriodCompleted reports whether a full deposit period (in weeks)
// has elapsed since the account was last updated. Only meaningful for
// DEPOSIT accounts.
func (a *Account) DepositPeriodCompleted(today time.Time) bool {
	if a.Type != AccountTypeDeposit || a.DepositPeriod <= 0 {
		return false
	}

	elapsed := today.Sub(a.UpdatedAt)

	return elapsed >= time.Duration(a.DepositPeriod)*7*24*time.Hour
}

// InterestAmount computes the interest payout for one completed deposit
// period, rounded to the account currency's precision.
func (a *Account) InterestAmount() decimal.Decimal {
	interest := a.Balance.Mul(a.InterestRatio).Div(decimal.NewFromInt(100))

	return a.Currency.Round(interest)
}
