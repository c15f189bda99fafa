package normalizer

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/payvue/paydesk/internal/app/service/payment"
	"github.com/payvue/paydesk/internal/models"
	"github.com/payvue/paydesk/internal/platform/store"
)

// Row is one tabular input record keyed by column name.
type Row map[string]string

// Summary reports the outcome of one import run.
type Summary struct {
	Inserted       int64
	Dropped        int
	MissingByField map[string]int
}

var (
	countryRe  = regexp.MustCompile(`^[A-Z]{2}$`)
	currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
	emailRe    = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	phoneRe    = regexp.MustCompile(`^[1-9]\d{1,14}$`)
)

// mandatoryFields are the columns a row must carry a valid value for to
// survive the import; anything else becomes null and the row is kept.
var mandatoryFields = []string{
	"payee_address_line_1",
	"payee_city",
	"payee_country",
	"payee_postal_code",
	"payee_phone_number",
	"payee_email",
	"currency",
	"due_amount",
}

// Normalizer cleans tabular payment rows and destructively replaces the
// stored collection with the survivors. It must run with exclusive access
// to the collection; there is no merge and no rollback.
type Normalizer struct {
	log   *zap.SugaredLogger
	store store.PaymentStore
}

func New(log *zap.SugaredLogger, st store.PaymentStore) *Normalizer {
	return &Normalizer{log: log, store: st}
}

// Normalize validates every row independently, drops rows missing any
// mandatory field, and commits the survivors via ReplaceAll.
func (n *Normalizer) Normalize(ctx context.Context, rows []Row) (*Summary, error) {
	sum := &Summary{MissingByField: map[string]int{}}
	cleaned := make([]*models.Payment, 0, len(rows))

	for _, row := range rows {
		rec, gaps := cleanRow(row)
		if len(gaps) > 0 {
			for _, field := range gaps {
				sum.MissingByField[field]++
			}
			sum.Dropped++
			continue
		}
		cleaned = append(cleaned, rec)
	}

	for _, field := range mandatoryFields {
		if c := sum.MissingByField[field]; c > 0 {
			n.log.Warnw("rows missing mandatory field", "field", field, "count", c)
		}
	}

	inserted, err := n.store.ReplaceAll(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	sum.Inserted = inserted
	n.log.Infow("import finished", "inserted", sum.Inserted, "dropped", sum.Dropped)
	return sum, nil
}

// cleanRow normalizes one row and returns the mandatory fields it is
// missing after cleaning. Invalid optional values become null.
func cleanRow(row Row) (*models.Payment, []string) {
	rec := &models.Payment{}
	var gaps []string
	missing := func(field string) { gaps = append(gaps, field) }

	status := models.PaymentStatus(strings.ToLower(strings.TrimSpace(row["payee_payment_status"])))
	if models.ValidPaymentStatus(status) {
		rec.Status = status
	}

	if t := parseDate(row["payee_added_date_utc"]); t != nil {
		rec.AddedDateUTC = t.UTC().Unix()
	}
	if t := parseDate(row["payee_due_date"]); t != nil {
		rec.DueDate = datatypes.Date(*t)
	}

	rec.PayeeFirstName = strings.TrimSpace(row["payee_first_name"])
	rec.PayeeLastName = strings.TrimSpace(row["payee_last_name"])

	if v := strings.TrimSpace(row["payee_address_line_1"]); v != "" {
		rec.AddressLine1 = v
	} else {
		missing("payee_address_line_1")
	}
	if v := strings.TrimSpace(row["payee_address_line_2"]); v != "" {
		rec.AddressLine2 = &v
	}
	if v := strings.TrimSpace(row["payee_city"]); v != "" {
		rec.City = v
	} else {
		missing("payee_city")
	}
	if v := strings.TrimSpace(row["payee_country"]); countryRe.MatchString(v) {
		rec.Country = v
	} else {
		missing("payee_country")
	}
	if v := strings.TrimSpace(row["payee_province_or_state"]); v != "" {
		rec.ProvinceOrState = &v
	}
	if v := strings.TrimSpace(row["payee_postal_code"]); v != "" {
		rec.PostalCode = v
	} else {
		missing("payee_postal_code")
	}
	if v := strings.TrimSpace(row["payee_phone_number"]); phoneRe.MatchString(v) {
		rec.PhoneNumber = "+" + v
	} else {
		missing("payee_phone_number")
	}
	if v := strings.TrimSpace(row["payee_email"]); emailRe.MatchString(v) {
		rec.Email = v
	} else {
		missing("payee_email")
	}
	if v := strings.TrimSpace(row["currency"]); currencyRe.MatchString(v) {
		rec.Currency = v
	} else {
		missing("currency")
	}

	rec.DiscountPercent = parseRounded(row["discount_percent"])
	rec.TaxPercent = parseRounded(row["tax_percent"])

	if due := parseRounded(row["due_amount"]); due != nil {
		rec.DueAmount = *due
		rec.TotalDue = totalDue(*due, rec.DiscountPercent, rec.TaxPercent)
	} else {
		missing("due_amount")
	}

	return rec, gaps
}

// totalDue is the importer's multiplicative formula:
// due * (1 - discount/100) * (1 + tax/100), rounded to 2 decimal places.
// It intentionally differs from the service's additive payment.TotalDue
// whenever discount and tax are both present.
func totalDue(due float64, discountPercent, taxPercent *float64) float64 {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)

	disc := decimal.Zero
	if discountPercent != nil {
		disc = decimal.NewFromFloat(*discountPercent)
	}
	tax := decimal.Zero
	if taxPercent != nil {
		tax = decimal.NewFromFloat(*taxPercent)
	}

	total := decimal.NewFromFloat(due).
		Mul(one.Sub(disc.Div(hundred))).
		Mul(one.Add(tax.Div(hundred)))
	f, _ := total.Round(2).Float64()
	return f
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

func parseDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

func parseRounded(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	r := payment.Round2(f)
	return &r
}
