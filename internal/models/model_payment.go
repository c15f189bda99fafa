package models

import (
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusDueNow    PaymentStatus = "due_now"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// ValidPaymentStatus reports whether s is one of the four known statuses.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusDueNow, PaymentStatusOverdue, PaymentStatusCompleted:
		return true
	}
	return false
}

// Payment 付款记录
type Payment struct {
	ID              string         `gorm:"column:id;primary_key;type:uuid" json:"id"`
	PayeeFirstName  string         `gorm:"column:payee_first_name;type:varchar(128);not null" json:"payee_first_name"`
	PayeeLastName   string         `gorm:"column:payee_last_name;type:varchar(128);not null" json:"payee_last_name"`
	Status          PaymentStatus  `gorm:"column:payee_payment_status;type:varchar(16);index" json:"payee_payment_status"`
	DueDate         datatypes.Date `gorm:"column:payee_due_date;not null" json:"payee_due_date"`
	AddressLine1    string         `gorm:"column:payee_address_line_1;type:varchar(256);not null" json:"payee_address_line_1"`
	AddressLine2    *string        `gorm:"column:payee_address_line_2;type:varchar(256)" json:"payee_address_line_2"`
	City            string         `gorm:"column:payee_city;type:varchar(128);not null" json:"payee_city"`
	Country         string         `gorm:"column:payee_country;type:varchar(2);not null" json:"payee_country"`
	ProvinceOrState *string        `gorm:"column:payee_province_or_state;type:varchar(128)" json:"payee_province_or_state"`
	// PostalCode is stored exactly as supplied; some sources send it numeric.
	PostalCode      string   `gorm:"column:payee_postal_code;type:varchar(32);not null" json:"payee_postal_code"`
	PhoneNumber     string   `gorm:"column:payee_phone_number;type:varchar(32);not null" json:"payee_phone_number"`
	Email           string   `gorm:"column:payee_email;type:varchar(256);not null" json:"payee_email"`
	Currency        string   `gorm:"column:currency;type:varchar(3);not null" json:"currency"`
	DiscountPercent *float64 `gorm:"column:discount_percent" json:"discount_percent"`
	TaxPercent      *float64 `gorm:"column:tax_percent" json:"tax_percent"`
	DueAmount       float64  `gorm:"column:due_amount;not null" json:"due_amount"`
	// TotalDue is derived from due_amount/discount_percent/tax_percent and
	// recomputed on every read; the stored value is never trusted.
	TotalDue float64 `gorm:"column:total_due" json:"total_due"`
	// AddedDateUTC 创建时间（UTC epoch 秒），创建后不可变
	AddedDateUTC   int64   `gorm:"column:payee_added_date_utc;not null" json:"payee_added_date_utc"`
	EvidenceFileID *string `gorm:"column:evidence_file_id;type:uuid" json:"evidence_file_id"`
}

func (Payment) TableName() string {
	return "payment"
}

func (p *Payment) IsCompleted() bool {
	if p == nil {
		return false
	}
	return p.Status == PaymentStatusCompleted
}

func (p *Payment) HasEvidence() bool {
	if p == nil {
		return false
	}
	return p.EvidenceFileID != nil && *p.EvidenceFileID != ""
}
