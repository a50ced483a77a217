package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivityType is the closed set of balance-affecting events.
type AccountActivityType string

const (
	ActivityMoneyTransfer AccountActivityType = "MONEY_TRANSFER"
	ActivityMoneyExchange AccountActivityType = "MONEY_EXCHANGE"
	ActivityMoneyDeposit  AccountActivityType = "MONEY_DEPOSIT"
	ActivityWithdrawal    AccountActivityType = "WITHDRAWAL"
	ActivityFee           AccountActivityType = "FEE"
	ActivityAccountClose  AccountActivityType = "ACCOUNT_CLOSE"
)

// ParseActivityType parses an account activity type.
func ParseActivityType(s string) (AccountActivityType, error) {
	switch AccountActivityType(s) {
	case ActivityMoneyTransfer, ActivityMoneyExchange, ActivityMoneyDeposit,
		ActivityWithdrawal, ActivityFee, ActivityAccountClose:
		return AccountActivityType(s), nil
	default:
		return "", fmt.Errorf("invalid account activity type: %q", s)
	}
}

// BalanceActivity is the direction a balance mutation takes.
type BalanceActivity string

const (
	BalanceIncrease BalanceActivity = "INCREASE"
	BalanceDecrease BalanceActivity = "DECREASE"
)

// Direction maps an activity type to the sign it applies to a single
// account's balance. The mapping is exhaustive over the single-account
// activity types; two-account activities (transfer, exchange) carry their
// own per-side direction.
func (t AccountActivityType) Direction() (BalanceActivity, error) {
	switch t {
	case ActivityMoneyDeposit, ActivityFee:
		return BalanceIncrease, nil
	case ActivityWithdrawal:
		return BalanceDecrease, nil
	case ActivityMoneyTransfer, ActivityMoneyExchange, ActivityAccountClose:
		return "", fmt.Errorf("activity type %s is not a single-account balance activity", t)
	default:
		return "", fmt.Errorf("invalid account activity type: %q", t)
	}
}

// AccountActivity is an immutable audit record of a balance-affecting
// event. It is created exactly once per completed operation and never
// mutated or deleted.
type AccountActivity struct {
	ID                string
	Type              AccountActivityType
	SenderAccountID   *int64
	ReceiverAccountID *int64
	Amount            decimal.Decimal
	CreatedAt         time.Time
	Explanation       string
}

// Validate checks the activity invariants before it is persisted.
func (a *AccountActivity) Validate() error {
	if a.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if a.SenderAccountID == nil && a.ReceiverAccountID == nil {
		return fmt.Errorf("account activity must reference at least one account")
	}

	return nil
}
