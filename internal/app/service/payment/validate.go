package payment

import (
	"strings"

	"gorm.io/datatypes"

	"github.com/payvue/paydesk/internal/models"
	"github.com/payvue/paydesk/pkg/types"
)

// check is one entry in an ordered validation table. Checks run in order
// and the first failing one is reported.
type check struct {
	field  string
	reason string
	ok     bool
}

func firstViolation(checks []check) error {
	for _, c := range checks {
		if !c.ok {
			return &ValidationError{Field: c.field, Reason: c.reason}
		}
	}
	return nil
}

// NormalizePhone applies the basic E.164 rule: numeric input gets a '+'
// prefix, string input must already carry one. Digit counting is left to
// upstream systems.
func NormalizePhone(v types.FlexString) (string, error) {
	if v.Value == "" {
		return "", &ValidationError{Field: "payee_phone_number", Reason: "must not be empty"}
	}
	if v.Numeric {
		return "+" + v.Value, nil
	}
	if strings.HasPrefix(v.Value, "+") {
		return v.Value, nil
	}
	return "", &ValidationError{Field: "payee_phone_number", Reason: "must start with '+' for E.164 format"}
}

func roundTrips2(v float64) bool {
	return Round2(v) == v
}

// ValidateNew checks a full create candidate and returns the normalized
// record, without id, total or creation timestamp. Both the interactive
// service and the batch importer share these rules; only the failure
// handling differs.
func ValidateNew(p *NewPayment) (*models.Payment, error) {
	checks := []check{
		{"payee_first_name", "must not be empty", p.PayeeFirstName != ""},
		{"payee_last_name", "must not be empty", p.PayeeLastName != ""},
		{"payee_due_date", "must not be empty", !p.DueDate.IsZero()},
		{"payee_address_line_1", "must not be empty", p.AddressLine1 != ""},
		{"payee_city", "must not be empty", p.City != ""},
		{"payee_country", "must be a 2-character ISO 3166-1 alpha-2 code", len(p.Country) == 2},
		{"payee_postal_code", "must not be empty", p.PostalCode.Value != ""},
		{"payee_email", "must not be empty", p.Email != ""},
		{"currency", "must be a 3-character ISO 4217 code", len(p.Currency) == 3},
		{"discount_percent", "must be between 0 and 100", p.DiscountPercent == nil || (*p.DiscountPercent >= 0 && *p.DiscountPercent <= 100)},
		{"discount_percent", "must have at most 2 decimal places", p.DiscountPercent == nil || roundTrips2(*p.DiscountPercent)},
		{"tax_percent", "must not be negative", p.TaxPercent == nil || *p.TaxPercent >= 0},
		{"tax_percent", "must have at most 2 decimal places", p.TaxPercent == nil || roundTrips2(*p.TaxPercent)},
		{"due_amount", "must be greater than 0", p.DueAmount > 0},
	}
	if err := firstViolation(checks); err != nil {
		return nil, err
	}

	phone, err := NormalizePhone(p.PhoneNumber)
	if err != nil {
		return nil, err
	}

	return &models.Payment{
		PayeeFirstName:  p.PayeeFirstName,
		PayeeLastName:   p.PayeeLastName,
		Status:          models.PaymentStatusPending,
		DueDate:         datatypes.Date(p.DueDate),
		AddressLine1:    p.AddressLine1,
		AddressLine2:    p.AddressLine2,
		City:            p.City,
		Country:         p.Country,
		ProvinceOrState: p.ProvinceOrState,
		PostalCode:      p.PostalCode.Value,
		PhoneNumber:     phone,
		Email:           p.Email,
		Currency:        p.Currency,
		DiscountPercent: p.DiscountPercent,
		TaxPercent:      p.TaxPercent,
		DueAmount:       p.DueAmount,
	}, nil
}

// ValidateUpdate checks a partial update and converts it into a column
// update set. ErrNoFields is returned when nothing was supplied.
func ValidateUpdate(u *PaymentUpdate) (map[string]any, error) {
	if u == nil {
		return nil, ErrNoFields
	}

	checks := []check{
		{"payee_payment_status", "must be one of pending, due_now, overdue, completed", u.Status == nil || models.ValidPaymentStatus(*u.Status)},
		{"discount_percent", "must be between 0 and 100", u.DiscountPercent == nil || (*u.DiscountPercent >= 0 && *u.DiscountPercent <= 100)},
		{"discount_percent", "must have at most 2 decimal places", u.DiscountPercent == nil || roundTrips2(*u.DiscountPercent)},
		{"tax_percent", "must not be negative", u.TaxPercent == nil || *u.TaxPercent >= 0},
		{"tax_percent", "must have at most 2 decimal places", u.TaxPercent == nil || roundTrips2(*u.TaxPercent)},
		{"due_amount", "must be greater than 0", u.DueAmount == nil || *u.DueAmount > 0},
	}
	if err := firstViolation(checks); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if u.DueDate != nil {
		fields["payee_due_date"] = datatypes.Date(*u.DueDate)
	}
	if u.Status != nil {
		fields["payee_payment_status"] = *u.Status
	}
	if u.DiscountPercent != nil {
		fields["discount_percent"] = *u.DiscountPercent
	}
	if u.TaxPercent != nil {
		fields["tax_percent"] = *u.TaxPercent
	}
	if u.DueAmount != nil {
		fields["due_amount"] = *u.DueAmount
	}
	if u.EvidenceFileID != nil {
		fields["evidence_file_id"] = *u.EvidenceFileID
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	return fields, nil
}
