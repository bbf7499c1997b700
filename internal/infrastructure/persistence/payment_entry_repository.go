package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentEntryRepository implements PaymentEntryRepository using GORM.
// The ledger is append-only: there is no update or delete path.
type GormPaymentEntryRepository struct {
	db *gorm.DB
}

// NewGormPaymentEntryRepository creates a new GormPaymentEntryRepository
func NewGormPaymentEntryRepository(db *gorm.DB) *GormPaymentEntryRepository {
	return &GormPaymentEntryRepository{db: db}
}

// FindByID finds a payment entry by its ID
func (r *GormPaymentEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PaymentEntry, error) {
	var entry procurement.PaymentEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByOrder finds all ledger entries for a purchase order, oldest first
func (r *GormPaymentEntryRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]procurement.PaymentEntry, error) {
	var entries []procurement.PaymentEntry
	if err := r.db.WithContext(ctx).
		Where("purchase_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindReversalOf finds the reversal entry referencing the given original
func (r *GormPaymentEntryRepository) FindReversalOf(ctx context.Context, originalID uuid.UUID) (*procurement.PaymentEntry, error) {
	var entry procurement.PaymentEntry
	if err := r.db.WithContext(ctx).
		Where("reversal_of_payment_id = ?", originalID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// SumByOrder sums amount over all entries for an order. Reversals are stored
// negative, so a plain SUM yields the net amount paid.
func (r *GormPaymentEntryRepository) SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&procurement.PaymentEntry{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("purchase_order_id = ?", orderID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save appends a new ledger entry
func (r *GormPaymentEntryRepository) Save(ctx context.Context, entry *procurement.PaymentEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Ensure GormPaymentEntryRepository implements PaymentEntryRepository
var _ procurement.PaymentEntryRepository = (*GormPaymentEntryRepository)(nil)
