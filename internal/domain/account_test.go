package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateWithdraw(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		amount      decimal.Decimal
		expectError error
	}{
		{
			name:        "sufficient balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(40),
			expectError: nil,
		},
		{
			name:        "exact balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(100),
			expectError: nil,
		},
		{
			name:        "insufficient balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(101),
			expectError: ErrInsufficientBalance,
		},
		{
			name:        "zero balance",
			balance:     decimal.Zero,
			amount:      decimal.NewFromFloat(0.01),
			expectError: ErrInsufficientBalance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &Account{Balance: tt.balance}

			err := account.ValidateWithdraw(tt.amount)

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestAccount_ValidateMutable(t *testing.T) {
	closedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	open := &Account{Balance: decimal.NewFromInt(10)}
	if err := open.ValidateMutable(); err != nil {
		t.Errorf("open account should accept mutation, got %v", err)
	}

	closed := &Account{Balance: decimal.NewFromInt(10), ClosedAt: &closedAt}

	err := closed.ValidateMutable()
	if !errors.Is(err, ErrAccountClosed) {
		t.Errorf("expected ErrAccountClosed, got %v", err)
	}
}

func TestAccount_ValidateClose(t *testing.T) {
	closedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		account     *Account
		expectError error
	}{
		{
			name:        "open with zero balance",
			account:     &Account{Balance: decimal.Zero},
			expectError: nil,
		},
		{
			name:        "open with non-zero balance",
			account:     &Account{Balance: decimal.NewFromInt(5)},
			expectError: ErrBalanceNotZero,
		},
		{
			name:        "already closed",
			account:     &Account{Balance: decimal.Zero, ClosedAt: &closedAt},
			expectError: ErrAccountClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.ValidateClose()

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestAccount_DepositPeriodCompleted(t *testing.T) {
	updatedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		account *Account
		today   time.Time
		want    bool
	}{
		{
			name: "period completed",
			account: &Account{
				Type:          AccountTypeDeposit,
				DepositPeriod: 4,
				UpdatedAt:     updatedAt,
			},
			today: updatedAt.AddDate(0, 0, 28),
			want:  true,
		},
		{
			name: "period not completed",
			account: &Account{
				Type:          AccountTypeDeposit,
				DepositPeriod: 4,
				UpdatedAt:     updatedAt,
			},
			today: updatedAt.AddDate(0, 0, 27),
			want:  false,
		},
		{
			name: "current account never completes",
			account: &Account{
				Type:          AccountTypeCurrent,
				DepositPeriod: 4,
				UpdatedAt:     updatedAt,
			},
			today: updatedAt.AddDate(0, 0, 100),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.account.DepositPeriodCompleted(tt.today)
			if got != tt.want {
				t.Errorf("DepositPeriodCompleted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccount_InterestAmount(t *testing.T) {
	account := &Account{
		Currency:      CurrencyUSD,
		Balance:       decimal.NewFromInt(1000),
		InterestRatio: decimal.NewFromFloat(2.5),
	}

	got := account.InterestAmount()
	want := decimal.NewFromInt(25)

	if !got.Equal(want) {
		t.Errorf("InterestAmount() = %s, want %s", got, want)
	}
}

func TestCurrency_Round(t *testing.T) {
	amount := decimal.NewFromFloat(10.567)

	if got := CurrencyUSD.Round(amount); !got.Equal(decimal.NewFromFloat(10.57)) {
		t.Errorf("USD round = %s, want 10.57", got)
	}

	if got := CurrencyJPY.Round(amount); !got.Equal(decimal.NewFromInt(11)) {
		t.Errorf("JPY round = %s, want 11", got)
	}
}
