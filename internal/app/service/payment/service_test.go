package payment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/payvue/paydesk/internal/models"
	"github.com/payvue/paydesk/internal/platform/blob"
	"github.com/payvue/paydesk/internal/platform/store"
	"github.com/payvue/paydesk/pkg/types"
)

type fakeStore struct {
	seq  int
	ids  []string
	rows map[string]*models.Payment
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]*models.Payment{}}
}

func (s *fakeStore) Insert(_ context.Context, p *models.Payment) (string, error) {
	s.seq++
	p.ID = fmt.Sprintf("id-%d", s.seq)
	cp := *p
	s.rows[p.ID] = &cp
	s.ids = append(s.ids, p.ID)
	return p.ID, nil
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*models.Payment, error) {
	p, ok := s.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) UpdateFields(_ context.Context, id string, fields map[string]any) (int64, error) {
	p, ok := s.rows[id]
	if !ok {
		return 0, nil
	}
	for col, v := range fields {
		switch col {
		case "payee_due_date":
			p.DueDate = v.(datatypes.Date)
		case "payee_payment_status":
			p.Status = v.(models.PaymentStatus)
		case "discount_percent":
			f := v.(float64)
			p.DiscountPercent = &f
		case "tax_percent":
			f := v.(float64)
			p.TaxPercent = &f
		case "due_amount":
			p.DueAmount = v.(float64)
		case "evidence_file_id":
			id := v.(string)
			p.EvidenceFileID = &id
		}
	}
	return 1, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := s.rows[id]; !ok {
		return 0, nil
	}
	delete(s.rows, id)
	return 1, nil
}

func (s *fakeStore) List(_ context.Context, q *types.ListQuery) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, id := range s.ids {
		if p, ok := s.rows[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	off := q.Offset()
	if off > len(out) {
		return nil, nil
	}
	out = out[off:]
	if lim := q.Limit(); lim < len(out) {
		out = out[:lim]
	}
	return out, nil
}

func (s *fakeStore) ReplaceAll(_ context.Context, rows []*models.Payment) (int64, error) {
	s.rows = map[string]*models.Payment{}
	s.ids = nil
	for _, p := range rows {
		s.seq++
		if p.ID == "" {
			p.ID = fmt.Sprintf("id-%d", s.seq)
		}
		cp := *p
		s.rows[p.ID] = &cp
		s.ids = append(s.ids, p.ID)
	}
	return int64(len(rows)), nil
}

type fakeBlobEntry struct {
	data        []byte
	filename    string
	contentType string
}

type fakeBlob struct {
	seq   int
	blobs map[string]fakeBlobEntry
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{blobs: map[string]fakeBlobEntry{}}
}

func (b *fakeBlob) Put(_ context.Context, r io.Reader, filename, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.seq++
	id := fmt.Sprintf("blob-%d", b.seq)
	b.blobs[id] = fakeBlobEntry{data: data, filename: filename, contentType: contentType}
	return id, nil
}

func (b *fakeBlob) Open(_ context.Context, id string) (*blob.Object, error) {
	e, ok := b.blobs[id]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return &blob.Object{
		ReadCloser:  io.NopCloser(bytes.NewReader(e.data)),
		Filename:    e.filename,
		ContentType: e.contentType,
		Size:        int64(len(e.data)),
	}, nil
}

func newTestService(fs *fakeStore, fb *fakeBlob, now time.Time) *Service {
	return &Service{
		log:   zap.NewNop().Sugar(),
		store: fs,
		blobs: fb,
		now:   func() time.Time { return now },
	}
}

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestService_CreateComputesDerivedFields(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, newFakeBlob(), testNow)

	req := validCandidate()
	req.DiscountPercent = f64(10)
	req.TaxPercent = f64(5)
	req.DueAmount = 100

	id, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored := fs.rows[id]
	require.Equal(t, 95.00, stored.TotalDue)
	require.Equal(t, testNow.Unix(), stored.AddedDateUTC)
	require.Equal(t, models.PaymentStatusPending, stored.Status)
}

func TestService_CreateRejectsInvalidBeforeStore(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, newFakeBlob(), testNow)

	req := validCandidate()
	req.Country = "USA"

	_, err := svc.Create(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Empty(t, fs.rows)
}

func TestService_CreateRejectsMissingDueDate(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, newFakeBlob(), testNow)

	req := validCandidate()
	req.DueDate = time.Time{}

	_, err := svc.Create(context.Background(), req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "payee_due_date", verr.Field)
	require.Empty(t, fs.rows)
}

func TestService_ListEnrichesStatusAndTotal(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, newFakeBlob(), testNow)

	req := validCandidate()
	req.DueDate = testNow.AddDate(0, 0, -5)
	req.DiscountPercent = f64(10)
	req.TaxPercent = f64(5)
	id, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// Stale stored values must not leak through a read.
	fs.rows[id].TotalDue = -1
	fs.rows[id].Status = models.PaymentStatusPending

	rows, err := svc.List(context.Background(), &types.ListQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, models.PaymentStatusOverdue, rows[0].Status)
	require.Equal(t, 95.00, rows[0].TotalDue)

	// Derivation is read-only: stored status stays untouched.
	require.Equal(t, models.PaymentStatusPending, fs.rows[id].Status)
}

func TestService_ListPagination(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, newFakeBlob(), testNow)

	for i := 0; i < 25; i++ {
		req := validCandidate()
		req.DueDate = testNow.AddDate(0, 1, 0)
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}

	page2, err := svc.List(context.Background(), &types.ListQuery{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page2, 10)
	require.Equal(t, "id-11", page2[0].ID)
	require.Equal(t, "id-20", page2[9].ID)

	// Omitted page equals explicit page 1.
	def, err := svc.List(context.Background(), &types.ListQuery{PageSize: 10})
	require.NoError(t, err)
	explicit, err := svc.List(context.Background(), &types.ListQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, explicit, def)
}

func TestService_UpdateCompletedWithoutEvidenceRejected(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, newFakeBlob(), testNow)

	id, err := svc.Create(context.Background(), validCandidate())
	require.NoError(t, err)

	status := models.PaymentStatusCompleted
	_, err = svc.Update(context.Background(), id, &PaymentUpdate{Status: &status, DueAmount: f64(10)})
	require.ErrorIs(t, err, ErrMissingEvidence)

	// No partial write happened.
	require.Equal(t, 100.0, fs.rows[id].DueAmount)
}

func TestService_UpdateCompletedWithEvidenceInSameUpdate(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, newFakeBlob(), testNow)

	id, err := svc.Create(context.Background(), validCandidate())
	require.NoError(t, err)

	status := models.PaymentStatusCompleted
	evidence := "blob-1"
	updated, err := svc.Update(context.Background(), id, &PaymentUpdate{Status: &status, EvidenceFileID: &evidence})
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusCompleted, updated.Status)
}

func TestService_UpdateCompletedWithStoredEvidence(t *testing.T) {
	fs := newFakeStore()
	fb := newFakeBlob()
	svc := newTestService(fs, fb, testNow)

	id, err := svc.Create(context.Background(), validCandidate())
	require.NoError(t, err)

	_, err = svc.UploadEvidence(context.Background(), id, bytes.NewReader([]byte("receipt")), "receipt.pdf", "application/pdf")
	require.NoError(t, err)

	status := models.PaymentStatusCompleted
	updated, err := svc.Update(context.Background(), id, &PaymentUpdate{Status: &status})
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusCompleted, updated.Status)
}

func TestService_UpdateNotFound(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeBlob(), testNow)

	_, err := svc.Update(context.Background(), "missing", &PaymentUpdate{DueAmount: f64(10)})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteNotFound(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeBlob(), testNow)
	require.ErrorIs(t, svc.Delete(context.Background(), "missing"), ErrNotFound)
}

func TestService_DeleteRemovesRecord(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, newFakeBlob(), testNow)

	id, err := svc.Create(context.Background(), validCandidate())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), id))
	require.Empty(t, fs.rows)
}

func TestService_UploadEvidenceNotFound(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeBlob(), testNow)

	_, err := svc.UploadEvidence(context.Background(), "missing", bytes.NewReader(nil), "x.png", "image/png")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_EvidenceRoundTrip(t *testing.T) {
	fs := newFakeStore()
	fb := newFakeBlob()
	svc := newTestService(fs, fb, testNow)

	id, err := svc.Create(context.Background(), validCandidate())
	require.NoError(t, err)

	blobID, err := svc.UploadEvidence(context.Background(), id, bytes.NewReader([]byte("receipt bytes")), "receipt.pdf", "application/pdf")
	require.NoError(t, err)
	require.Equal(t, blobID, *fs.rows[id].EvidenceFileID)

	obj, err := svc.DownloadEvidence(context.Background(), id)
	require.NoError(t, err)
	defer obj.Close()

	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	require.Equal(t, "receipt bytes", string(data))
	require.Equal(t, "receipt.pdf", obj.Filename)
	require.Equal(t, "application/pdf", obj.ContentType)
}

func TestService_DownloadEvidenceWithoutAttachment(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs, newFakeBlob(), testNow)

	id, err := svc.Create(context.Background(), validCandidate())
	require.NoError(t, err)

	_, err = svc.DownloadEvidence(context.Background(), id)
	require.ErrorIs(t, err, ErrNoEvidence)
}

func TestService_DownloadEvidenceNotFoundPayment(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeBlob(), testNow)

	_, err := svc.DownloadEvidence(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
