package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/payvue/paydesk/internal/models"
	"github.com/payvue/paydesk/internal/platform/blob"
	"github.com/payvue/paydesk/internal/platform/store"
	"github.com/payvue/paydesk/pkg/types"
)

// Manager is the payment record lifecycle service consumed by the HTTP
// layer.
type Manager interface {
	// List payments with search/filter/sort/pagination, enriched with
	// derived status and total due.
	List(ctx context.Context, q *types.ListQuery) ([]*models.Payment, error)
	// Create a validated payment and return its new id.
	Create(ctx context.Context, req *NewPayment) (string, error)
	// Update applies a partial field set, then re-fetches and enriches.
	Update(ctx context.Context, id string, req *PaymentUpdate) (*models.Payment, error)
	// Delete removes a payment by id.
	Delete(ctx context.Context, id string) error
	// UploadEvidence stores the file and attaches its blob id to the payment.
	UploadEvidence(ctx context.Context, id string, r io.Reader, filename, contentType string) (string, error)
	// DownloadEvidence streams the attached evidence file back.
	DownloadEvidence(ctx context.Context, id string) (*blob.Object, error)
}

type Service struct {
	log   *zap.SugaredLogger
	store store.PaymentStore
	blobs blob.Store
	now   func() time.Time
}

func NewService(log *zap.SugaredLogger, st store.PaymentStore, bs blob.Store) Manager {
	return &Service{log: log, store: st, blobs: bs, now: time.Now}
}

// enrich applies read-time derivation: dynamic status and recomputed total.
// The stored values are never trusted and never written back here.
func (s *Service) enrich(p *models.Payment) *models.Payment {
	p.Status = DeriveStatus(time.Time(p.DueDate), s.now(), p.Status)
	p.TotalDue = TotalDue(p.DueAmount, p.DiscountPercent, p.TaxPercent)
	return p
}

func (s *Service) List(ctx context.Context, q *types.ListQuery) ([]*models.Payment, error) {
	rows, err := s.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return lo.Map(rows, func(p *models.Payment, _ int) *models.Payment {
		return s.enrich(p)
	}), nil
}

func (s *Service) Create(ctx context.Context, req *NewPayment) (string, error) {
	rec, err := ValidateNew(req)
	if err != nil {
		return "", err
	}
	rec.AddedDateUTC = s.now().UTC().Unix()
	rec.TotalDue = TotalDue(rec.DueAmount, rec.DiscountPercent, rec.TaxPercent)

	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to create payment: %w", err)
	}
	s.log.Infow("payment created", "id", id)
	return id, nil
}

func (s *Service) Update(ctx context.Context, id string, req *PaymentUpdate) (*models.Payment, error) {
	fields, err := ValidateUpdate(req)
	if err != nil {
		return nil, err
	}

	// Moving to completed requires evidence, either already attached or
	// set by this same update.
	if req.Status != nil && *req.Status == models.PaymentStatusCompleted && !req.SetsEvidence() {
		cur, err := s.store.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load payment: %w", err)
		}
		if !cur.HasEvidence() {
			return nil, ErrMissingEvidence
		}
	}

	matched, err := s.store.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	// Update and refetch are two independent store calls; a concurrent
	// delete in between surfaces as not-found here.
	cur, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reload payment: %w", err)
	}
	return s.enrich(cur), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	s.log.Infow("payment deleted", "id", id)
	return nil
}

func (s *Service) UploadEvidence(ctx context.Context, id string, r io.Reader, filename, contentType string) (string, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load payment: %w", err)
	}

	blobID, err := s.blobs.Put(ctx, r, filename, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store evidence file: %w", err)
	}
	if _, err := s.store.UpdateFields(ctx, id, map[string]any{"evidence_file_id": blobID}); err != nil {
		return "", fmt.Errorf("failed to attach evidence file: %w", err)
	}
	s.log.Infow("evidence uploaded", "payment_id", id, "evidence_file_id", blobID)
	return blobID, nil
}

func (s *Service) DownloadEvidence(ctx context.Context, id string) (*blob.Object, error) {
	cur, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if !cur.HasEvidence() {
		return nil, ErrNoEvidence
	}

	obj, err := s.blobs.Open(ctx, *cur.EvidenceFileID)
	if err != nil {
		return nil, fmt.Errorf("failed to open evidence file: %w", err)
	}
	return obj, nil
}
