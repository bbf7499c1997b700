package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/shared"
)

// PaymentSourceKind represents the kind of a payment source
type PaymentSourceKind string

const (
	PaymentSourceKindBank  PaymentSourceKind = "BANK"
	PaymentSourceKindCash  PaymentSourceKind = "CASH"
	PaymentSourceKindCard  PaymentSourceKind = "CARD"
	PaymentSourceKindOther PaymentSourceKind = "OTHER"
)

// IsValid checks if the kind is a valid PaymentSourceKind
func (k PaymentSourceKind) IsValid() bool {
	switch k {
	case PaymentSourceKindBank, PaymentSourceKindCash, PaymentSourceKindCard, PaymentSourceKindOther:
		return true
	}
	return false
}

// UnspecifiedSourceName is the fallback catalog entry for legacy and
// backfilled ledger data whose source was never recorded
const UnspecifiedSourceName = "UNSPECIFIED"

// PaymentSource represents an entry in the payment-source catalog
type PaymentSource struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key"`
	Name      string            `gorm:"type:varchar(100);not null;uniqueIndex"`
	Kind      PaymentSourceKind `gorm:"type:varchar(20);not null"`
	Active    bool              `gorm:"not null;default:true"`
	CreatedAt time.Time         `gorm:"not null"`
	UpdatedAt time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentSource) TableName() string {
	return "payment_sources"
}

// NewPaymentSource creates a new payment source catalog entry
func NewPaymentSource(name string, kind PaymentSourceKind) (*PaymentSource, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Payment source name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Payment source kind is not valid")
	}

	now := time.Now()
	return &PaymentSource{
		ID:        uuid.New(),
		Name:      name,
		Kind:      kind,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewUnspecifiedSource creates the fallback catalog entry
func NewUnspecifiedSource() *PaymentSource {
	source, _ := NewPaymentSource(UnspecifiedSourceName, PaymentSourceKindOther)
	return source
}

// Deactivate marks the source as inactive; existing ledger entries keep
// referencing it
func (s *PaymentSource) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
}
