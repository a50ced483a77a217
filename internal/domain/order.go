package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegularTransfer is the embedded payload of a standing transfer order:
// who receives, how much, and the explanation carried into the resulting
// activity record.
type RegularTransfer struct {
	ReceiverAccountID int64
	Amount            decimal.Decimal
	Explanation       string
}

// RegularTransferOrder is a standing order to transfer money from a sender
// account every PeriodWeeks weeks, anchored to the order's creation date.
// The scheduler evaluates it but never mutates it.
type RegularTransferOrder struct {
	ID              string
	SenderAccountID int64
	Transfer        RegularTransfer
	PeriodWeeks     int
	CreatedAt       time.Time
}

// Validate checks order invariants.
func (o *RegularTransferOrder) Validate() error {
	if o.PeriodWeeks <= 0 {
		return ErrInvalidPeriod
	}

	if o.Transfer.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if o.SenderAccountID == o.Transfer.ReceiverAccountID {
		return ErrSameAccount
	}

	return nil
}

// NextTransferDate returns the first period boundary that is not before
// today, starting from the creation date and stepping by PeriodWeeks.
func (o *RegularTransferOrder) NextTransferDate(today time.Time) time.Time {
	next := dateOnly(o.CreatedAt)
	day := dateOnly(today)

	for {
		next = next.AddDate(0, 0, 7*o.PeriodWeeks)
		if !next.Before(day) {
			return next
		}
	}
}

// DueOn reports whether the order fires on the given day. The order is due
// only when the computed boundary equals today exactly; a boundary missed
// by the scheduler is never caught up on a later day.
func (o *RegularTransferOrder) DueOn(today time.Time) bool {
	return o.NextTransferDate(today).Equal(dateOnly(today))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
