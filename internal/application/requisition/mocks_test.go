package requisition

import (
	"context"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/audit"
	"github.com/procurement/backend/internal/domain/procurement"
	domainrequisition "github.com/procurement/backend/internal/domain/requisition"
	"github.com/stretchr/testify/mock"
)

// MockRequisitionRepository is a mock implementation of requisition.Repository
type MockRequisitionRepository struct {
	mock.Mock
}

func (m *MockRequisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainrequisition.Requisition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainrequisition.Requisition), args.Error(1)
}

func (m *MockRequisitionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domainrequisition.Requisition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainrequisition.Requisition), args.Error(1)
}

func (m *MockRequisitionRepository) Save(ctx context.Context, r *domainrequisition.Requisition) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequisitionRepository) ListIDsWithOrders(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

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
