package reconciliation

import (
	"context"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/audit"
	"github.com/procurement/backend/internal/domain/inventory"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/requisition"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByRequisition(ctx context.Context, requisitionID uuid.UUID) ([]procurement.PurchaseOrder, error) {
	args := m.Called(ctx, requisitionID)
	return args.Get(0).([]procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) SaveLine(ctx context.Context, line *procurement.PurchaseOrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockPaymentEntryRepository is a mock implementation of PaymentEntryRepository
type MockPaymentEntryRepository struct {
	mock.Mock
}

func (m *MockPaymentEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PaymentEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PaymentEntry), args.Error(1)
}

func (m *MockPaymentEntryRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]procurement.PaymentEntry, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]procurement.PaymentEntry), args.Error(1)
}

func (m *MockPaymentEntryRepository) FindReversalOf(ctx context.Context, originalID uuid.UUID) (*procurement.PaymentEntry, error) {
	args := m.Called(ctx, originalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PaymentEntry), args.Error(1)
}

func (m *MockPaymentEntryRepository) SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentEntryRepository) Save(ctx context.Context, entry *procurement.PaymentEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockPaymentSourceRepository is a mock implementation of PaymentSourceRepository
type MockPaymentSourceRepository struct {
	mock.Mock
}

func (m *MockPaymentSourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PaymentSource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PaymentSource), args.Error(1)
}

func (m *MockPaymentSourceRepository) FindByName(ctx context.Context, name string) (*procurement.PaymentSource, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PaymentSource), args.Error(1)
}

func (m *MockPaymentSourceRepository) Save(ctx context.Context, source *procurement.PaymentSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockPaymentSourceRepository) EnsureFallback(ctx context.Context) (*procurement.PaymentSource, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PaymentSource), args.Error(1)
}

// MockRequisitionRepository is a mock implementation of requisition.Repository
type MockRequisitionRepository struct {
	mock.Mock
}

func (m *MockRequisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*requisition.Requisition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requisition.Requisition), args.Error(1)
}

func (m *MockRequisitionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*requisition.Requisition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*requisition.Requisition), args.Error(1)
}

func (m *MockRequisitionRepository) Save(ctx context.Context, r *requisition.Requisition) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequisitionRepository) ListIDsWithOrders(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockPositionRepository is a mock implementation of PositionRepository
type MockPositionRepository struct {
	mock.Mock
}

func (m *MockPositionRepository) FindByKey(ctx context.Context, materialID, locationID uuid.UUID) (*inventory.InventoryPosition, error) {
	args := m.Called(ctx, materialID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryPosition), args.Error(1)
}

func (m *MockPositionRepository) IncrementCurrentStock(ctx context.Context, materialID, locationID uuid.UUID, quantity, unitCost decimal.Decimal, currency string) error {
	args := m.Called(ctx, materialID, locationID, quantity, unitCost, currency)
	return args.Error(0)
}

func (m *MockPositionRepository) IncrementAssignedStock(ctx context.Context, materialID, locationID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, materialID, locationID, quantity)
	return args.Error(0)
}

func (m *MockPositionRepository) AdjustCurrentStock(ctx context.Context, materialID, locationID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, materialID, locationID, delta)
	return args.Error(0)
}

func (m *MockPositionRepository) AdjustAssignedStock(ctx context.Context, materialID, locationID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, materialID, locationID, delta)
	return args.Error(0)
}

// MockMovementRepository is a mock implementation of MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryMovement), args.Error(1)
}

func (m *MockMovementRepository) FindReversalOf(ctx context.Context, originalID uuid.UUID) (*inventory.InventoryMovement, error) {
	args := m.Called(ctx, originalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryMovement), args.Error(1)
}

func (m *MockMovementRepository) Save(ctx context.Context, movement *inventory.InventoryMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) Save(ctx context.Context, a *inventory.InventoryAssignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]inventory.InventoryAssignment, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]inventory.InventoryAssignment), args.Error(1)
}

// MockAuditLogRepository is a mock implementation of audit.LogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Append(ctx context.Context, entry *audit.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) FindEarliest(ctx context.Context, entityType string, entityID uuid.UUID, action string) (*audit.LogEntry, error) {
	args := m.Called(ctx, entityType, entityID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.LogEntry), args.Error(1)
}

func (m *MockAuditLogRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]audit.LogEntry, error) {
	args := m.Called(ctx, entityType, entityID)
	return args.Get(0).([]audit.LogEntry), args.Error(1)
}

// MockDeliveryKPIRepository is a mock implementation of audit.DeliveryKPIRepository
type MockDeliveryKPIRepository struct {
	mock.Mock
}

func (m *MockDeliveryKPIRepository) Save(ctx context.Context, record *audit.DeliveryKPIRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDeliveryKPIRepository) ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}
