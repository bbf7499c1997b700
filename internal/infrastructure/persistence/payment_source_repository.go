package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentSourceRepository implements PaymentSourceRepository using GORM
type GormPaymentSourceRepository struct {
	db *gorm.DB
}

// NewGormPaymentSourceRepository creates a new GormPaymentSourceRepository
func NewGormPaymentSourceRepository(db *gorm.DB) *GormPaymentSourceRepository {
	return &GormPaymentSourceRepository{db: db}
}

// FindByID finds a payment source by its ID
func (r *GormPaymentSourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PaymentSource, error) {
	var source procurement.PaymentSource
	if err := r.db.WithContext(ctx).First(&source, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &source, nil
}

// FindByName finds a payment source by its unique name
func (r *GormPaymentSourceRepository) FindByName(ctx context.Context, name string) (*procurement.PaymentSource, error) {
	var source procurement.PaymentSource
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &source, nil
}

// Save creates or updates a payment source
func (r *GormPaymentSourceRepository) Save(ctx context.Context, source *procurement.PaymentSource) error {
	return r.db.WithContext(ctx).Save(source).Error
}

// EnsureFallback returns the UNSPECIFIED fallback source, creating it if
// absent. ON CONFLICT handles the race between concurrent first callers.
func (r *GormPaymentSourceRepository) EnsureFallback(ctx context.Context) (*procurement.PaymentSource, error) {
	source, err := r.FindByName(ctx, procurement.UnspecifiedSourceName)
	if err == nil {
		return source, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	source = procurement.NewUnspecifiedSource()
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(source).Error; err != nil {
		return nil, err
	}

	// If another caller won the insert, fetch the winning row
	if source.ID == uuid.Nil {
		return r.FindByName(ctx, procurement.UnspecifiedSourceName)
	}
	return source, nil
}

// Ensure GormPaymentSourceRepository implements PaymentSourceRepository
var _ procurement.PaymentSourceRepository = (*GormPaymentSourceRepository)(nil)
