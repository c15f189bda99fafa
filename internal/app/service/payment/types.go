package payment

import (
	"time"

	"github.com/payvue/paydesk/internal/models"
	"github.com/payvue/paydesk/pkg/types"
)

// NewPayment is a create candidate. Postal code and phone number accept
// either a JSON string or a JSON number.
type NewPayment struct {
	PayeeFirstName  string           `json:"payee_first_name"`
	PayeeLastName   string           `json:"payee_last_name"`
	DueDate         time.Time        `json:"payee_due_date"`
	AddressLine1    string           `json:"payee_address_line_1"`
	AddressLine2    *string          `json:"payee_address_line_2"`
	City            string           `json:"payee_city"`
	Country         string           `json:"payee_country"`
	ProvinceOrState *string          `json:"payee_province_or_state"`
	PostalCode      types.FlexString `json:"payee_postal_code"`
	PhoneNumber     types.FlexString `json:"payee_phone_number"`
	Email           string           `json:"payee_email"`
	Currency        string           `json:"currency"`
	DiscountPercent *float64         `json:"discount_percent"`
	TaxPercent      *float64         `json:"tax_percent"`
	DueAmount       float64          `json:"due_amount"`
}

// PaymentUpdate carries only the fields the caller supplied; nil means
// "leave unchanged".
type PaymentUpdate struct {
	DueDate         *time.Time            `json:"payee_due_date"`
	Status          *models.PaymentStatus `json:"payee_payment_status"`
	DiscountPercent *float64              `json:"discount_percent"`
	TaxPercent      *float64              `json:"tax_percent"`
	DueAmount       *float64              `json:"due_amount"`
	EvidenceFileID  *string               `json:"evidence_file_id"`
}

// SetsEvidence reports whether the update itself attaches an evidence file.
func (u *PaymentUpdate) SetsEvidence() bool {
	return u != nil && u.EvidenceFileID != nil && *u.EvidenceFileID != ""
}
