package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountTooLarge      = errors.New("amount exceeds maximum allowed")
	ErrInvalidInterestRate = errors.New("interest ratio must be between 0 and 100")
)

// MaxTransactionAmount bounds a single balance mutation.
const MaxTransactionAmount = "1000000000" // 1 billion

// ValidateAmount validates a transfer/exchange/deposit amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxTransactionAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum is %s", ErrAmountTooLarge, MaxTransactionAmount)
	}

	return nil
}

// ValidateInterestRatio validates a deposit account interest ratio.
func ValidateInterestRatio(ratio decimal.Decimal) error {
	if ratio.IsNegative() || ratio.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidInterestRate
	}

	return nil
}
