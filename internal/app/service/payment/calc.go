package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/payvue/paydesk/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// TotalDue computes due - due*discount/100 + due*tax/100, rounded to 2
// decimal places. Absent discount/tax count as zero.
//
// The batch importer uses a multiplicative variant; the two disagree when
// discount and tax are both nonzero and are kept deliberately separate.
func TotalDue(due float64, discountPercent, taxPercent *float64) float64 {
	d := decimal.NewFromFloat(due)
	total := d
	if discountPercent != nil {
		total = total.Sub(d.Mul(decimal.NewFromFloat(*discountPercent)).Div(hundred))
	}
	if taxPercent != nil {
		total = total.Add(d.Mul(decimal.NewFromFloat(*taxPercent)).Div(hundred))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// DeriveStatus returns the effective status for a read. 'completed' is
// absorbing; otherwise the due date is compared to today at day precision
// in UTC. The result is never persisted by the read itself.
func DeriveStatus(dueDate, today time.Time, stored models.PaymentStatus) models.PaymentStatus {
	if stored == models.PaymentStatusCompleted {
		return stored
	}
	due := truncateToDay(dueDate)
	now := truncateToDay(today)
	switch {
	case due.Equal(now):
		return models.PaymentStatusDueNow
	case due.Before(now):
		return models.PaymentStatusOverdue
	}
	return stored
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
