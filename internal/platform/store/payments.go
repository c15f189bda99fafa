package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/payvue/paydesk/internal/models"
	"github.com/payvue/paydesk/pkg/tool"
	"github.com/payvue/paydesk/pkg/types"
)

// ErrNotFound is returned when an id does not resolve to a stored record.
var ErrNotFound = errors.New("record not found")

// PaymentStore abstracts persistence of payment records. ReplaceAll is the
// batch importer path and swaps the whole collection.
type PaymentStore interface {
	Insert(ctx context.Context, p *models.Payment) (string, error)
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	// UpdateFields applies a partial column set and returns the matched count.
	UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	List(ctx context.Context, q *types.ListQuery) ([]*models.Payment, error)
	ReplaceAll(ctx context.Context, rows []*models.Payment) (int64, error)
}

type paymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) PaymentStore {
	return &paymentStore{db: db}
}

func (s *paymentStore) Insert(ctx context.Context, p *models.Payment) (string, error) {
	if p.ID == "" {
		p.ID = tool.GenerateUUIDV7()
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return "", fmt.Errorf("failed to insert payment: %w", err)
	}
	return p.ID, nil
}

func (s *paymentStore) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	var p models.Payment
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &p, nil
}

func (s *paymentStore) UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to update payment: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

func (s *paymentStore) Delete(ctx context.Context, id string) (int64, error) {
	tx := s.db.WithContext(ctx).Delete(&models.Payment{}, "id = ?", id)
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to delete payment: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

func (s *paymentStore) List(ctx context.Context, q *types.ListQuery) ([]*models.Payment, error) {
	tx := s.db.WithContext(ctx).Model(&models.Payment{})

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where(
			s.db.Where("payee_first_name ILIKE ?", pattern).
				Or("payee_last_name ILIKE ?", pattern).
				Or("payee_email ILIKE ?", pattern),
		)
	}
	if q.Status != "" {
		tx = tx.Where("payee_payment_status = ?", q.Status)
	}
	if q.SortBy != "" {
		tx = tx.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: q.SortBy}, Desc: q.Desc()}}})
	}

	var rows []*models.Payment
	if err := tx.Offset(q.Offset()).Limit(q.Limit()).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return rows, nil
}

// ReplaceAll drops every stored payment and bulk-inserts rows. There is no
// merge and no rollback; the caller must hold exclusive access to the
// collection for the duration.
func (s *paymentStore) ReplaceAll(ctx context.Context, rows []*models.Payment) (int64, error) {
	if err := s.db.WithContext(ctx).Exec("DELETE FROM payment").Error; err != nil {
		return 0, fmt.Errorf("failed to clear payments: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	for _, p := range rows {
		if p.ID == "" {
			p.ID = tool.GenerateUUIDV7()
		}
	}
	tx := s.db.WithContext(ctx).CreateInBatches(rows, 500)
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to insert payments: %w", tx.Error)
	}
	return int64(len(rows)), nil
}

// Module exposes the payment store via Fx.
var Module = fx.Options(
	fx.Provide(NewPaymentStore),
)
