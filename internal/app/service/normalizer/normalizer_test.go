package normalizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/payvue/paydesk/internal/models"
	"github.com/payvue/paydesk/pkg/types"
)

type captureStore struct {
	replaced []*models.Payment
}

func (s *captureStore) Insert(context.Context, *models.Payment) (string, error) {
	return "", nil
}

func (s *captureStore) FindByID(context.Context, string) (*models.Payment, error) {
	return nil, nil
}

func (s *captureStore) UpdateFields(context.Context, string, map[string]any) (int64, error) {
	return 0, nil
}

func (s *captureStore) Delete(context.Context, string) (int64, error) {
	return 0, nil
}

func (s *captureStore) List(context.Context, *types.ListQuery) ([]*models.Payment, error) {
	return nil, nil
}

func (s *captureStore) ReplaceAll(_ context.Context, rows []*models.Payment) (int64, error) {
	s.replaced = rows
	return int64(len(rows)), nil
}

func validRow() Row {
	return Row{
		"payee_first_name":     "Grace",
		"payee_last_name":      "Hopper",
		"payee_payment_status": "PENDING",
		"payee_added_date_utc": "2024-01-15 10:30:00",
		"payee_due_date":       "2024-06-01",
		"payee_address_line_1": "1 Navy Yard",
		"payee_city":           "Arlington",
		"payee_country":        "US",
		"payee_postal_code":    "22202",
		"payee_phone_number":   "14155551234",
		"payee_email":          "grace@example.com",
		"currency":             "USD",
		"discount_percent":     "10",
		"tax_percent":          "5",
		"due_amount":           "100",
	}
}

func newTestNormalizer(st *captureStore) *Normalizer {
	return New(zap.NewNop().Sugar(), st)
}

func TestNormalize_MultiplicativeTotalDue(t *testing.T) {
	st := &captureStore{}
	n := newTestNormalizer(st)

	sum, err := n.Normalize(context.Background(), []Row{validRow()})
	require.NoError(t, err)
	require.Equal(t, int64(1), sum.Inserted)
	require.Equal(t, 0, sum.Dropped)

	rec := st.replaced[0]
	// 100 * (1 - 10/100) * (1 + 5/100) — multiplicative, unlike the
	// service's additive 95.00 for the same inputs.
	require.Equal(t, 94.50, rec.TotalDue)
}

func TestNormalize_CleansAndNormalizesFields(t *testing.T) {
	st := &captureStore{}
	n := newTestNormalizer(st)

	_, err := n.Normalize(context.Background(), []Row{validRow()})
	require.NoError(t, err)

	rec := st.replaced[0]
	require.Equal(t, models.PaymentStatusPending, rec.Status)
	require.Equal(t, "+14155551234", rec.PhoneNumber)
	require.Equal(t, "US", rec.Country)
	require.Equal(t, "USD", rec.Currency)
	require.NotZero(t, rec.AddedDateUTC)
}

func TestNormalize_InvalidStatusBecomesNull(t *testing.T) {
	st := &captureStore{}
	n := newTestNormalizer(st)

	row := validRow()
	row["payee_payment_status"] = "paid"

	sum, err := n.Normalize(context.Background(), []Row{row})
	require.NoError(t, err)
	require.Equal(t, 0, sum.Dropped)
	require.Equal(t, models.PaymentStatus(""), st.replaced[0].Status)
}

func TestNormalize_DropsRowsMissingMandatoryFields(t *testing.T) {
	st := &captureStore{}
	n := newTestNormalizer(st)

	badCountry := validRow()
	badCountry["payee_country"] = "usa"
	badPhone := validRow()
	badPhone["payee_phone_number"] = "+14155551234" // leading '+' fails the numeric pattern
	badAmount := validRow()
	badAmount["due_amount"] = "a lot"

	sum, err := n.Normalize(context.Background(), []Row{validRow(), badCountry, badPhone, badAmount})
	require.NoError(t, err)
	require.Equal(t, int64(1), sum.Inserted)
	require.Equal(t, 3, sum.Dropped)
	require.Equal(t, 1, sum.MissingByField["payee_country"])
	require.Equal(t, 1, sum.MissingByField["payee_phone_number"])
	require.Equal(t, 1, sum.MissingByField["due_amount"])
}

func TestNormalize_UnparseableDatesBecomeNull(t *testing.T) {
	st := &captureStore{}
	n := newTestNormalizer(st)

	row := validRow()
	row["payee_added_date_utc"] = "not a date"
	row["payee_due_date"] = "someday"

	sum, err := n.Normalize(context.Background(), []Row{row})
	require.NoError(t, err)
	require.Equal(t, 0, sum.Dropped)
	require.Zero(t, st.replaced[0].AddedDateUTC)
}

func TestNormalize_RoundsPercentsAndAmounts(t *testing.T) {
	st := &captureStore{}
	n := newTestNormalizer(st)

	row := validRow()
	row["discount_percent"] = "10.004"
	row["tax_percent"] = ""
	row["due_amount"] = "99.999"

	_, err := n.Normalize(context.Background(), []Row{row})
	require.NoError(t, err)

	rec := st.replaced[0]
	require.Equal(t, 10.0, *rec.DiscountPercent)
	require.Nil(t, rec.TaxPercent)
	require.Equal(t, 100.0, rec.DueAmount)
}

func TestNormalize_EmptyInputClearsCollection(t *testing.T) {
	st := &captureStore{replaced: []*models.Payment{{}}}
	n := newTestNormalizer(st)

	sum, err := n.Normalize(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(0), sum.Inserted)
	require.Empty(t, st.replaced)
}
