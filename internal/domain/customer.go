package domain

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Customer is the owner of one or more accounts. Only the fields the
// transaction core needs are modeled; full customer management lives
// outside this service.
type Customer struct {
	NationalID string
	Name       string
	Surname    string
	Email      string
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return c.Name + " " + c.Surname
}

// CustomerBalanceStat is one row of the maximum-balance statistics query.
type CustomerBalanceStat struct {
	NationalID string
	FullName   string
	AccountID  int64
	City       City
	Balance    decimal.Decimal
}

var (
	ErrInvalidNationalID = errors.New("invalid national id")

	nationalIDPattern = regexp.MustCompile(`^\d{11}$`)
)

// ValidateNationalID checks the 11-digit national id format.
func ValidateNationalID(id string) error {
	if !nationalIDPattern.MatchString(id) {
		return fmt.Errorf("%w: must be 11 digits", ErrInvalidNationalID)
	}

	return nil
}
