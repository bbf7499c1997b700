package reconciliation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/procurement/backend/internal/domain/audit"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func createOrderWithLine(t *testing.T, ordered, received decimal.Decimal) *procurement.PurchaseOrder {
	t.Helper()
	order := createTestOrder(t, decimal.NewFromInt(1000))
	order.OperationalStatus = procurement.StatusInProcess
	line, err := order.AddLine(uuid.New(), nil, ordered, decimal.NewFromInt(10))
	assert.NoError(t, err)
	if received.GreaterThan(decimal.Zero) {
		assert.NoError(t, order.GetLine(line.ID).AddReceivedQuantity(received))
	}
	return order
}

func TestReception_FullReceptionClosesOrder(t *testing.T) {
	mockOrders := new(MockPurchaseOrderRepository)
	mockAudit := new(MockAuditLogRepository)
	mockKPIs := new(MockDeliveryKPIRepository)
	service := NewReceptionCompletionService(mockOrders, mockAudit, mockKPIs, zap.NewNop())

	ctx := context.Background()
	order := createOrderWithLine(t, decimal.NewFromInt(10), decimal.NewFromInt(10))
	entered, err := audit.NewLogEntry(audit.EntityTypePurchaseOrder, order.ID, audit.ActionEnteredCollectionProcess, "")
	assert.NoError(t, err)
	entered.CreatedAt = time.Now().Add(-72 * time.Hour)

	mockOrders.On("FindByID", ctx, order.ID).Return(order, nil)
	mockOrders.On("Save", ctx, order).Return(nil)
	mockAudit.On("FindEarliest", ctx, audit.EntityTypePurchaseOrder, order.ID, audit.ActionEnteredCollectionProcess).Return(entered, nil)
	mockKPIs.On("ExistsForOrder", ctx, order.ID).Return(false, nil)
	mockKPIs.On("Save", ctx, mock.AnythingOfType("*audit.DeliveryKPIRecord")).Return(nil).Run(func(args mock.Arguments) {
		record := args.Get(1).(*audit.DeliveryKPIRecord)
		assert.Equal(t, order.ID, record.OrderID)
		assert.InDelta(t, 3.0, record.ElapsedDays, 0.01)
	})
	mockAudit.On("Append", ctx, mock.AnythingOfType("*audit.LogEntry")).Return(nil)

	closed, err := service.MaybeCloseOrder(ctx, order.ID)

	assert.NoError(t, err)
	assert.True(t, closed)
	assert.Equal(t, procurement.StatusDelivered, order.OperationalStatus)
	assert.NotNil(t, order.DeliveredAt)
	assert.False(t, order.PartialDelivery)
	mockOrders.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
	mockKPIs.AssertExpectations(t)
}

func TestReception_PartialReceptionDoesNotClose(t *testing.T) {
	mockOrders := new(MockPurchaseOrderRepository)
	mockAudit := new(MockAuditLogRepository)
	mockKPIs := new(MockDeliveryKPIRepository)
	service := NewReceptionCompletionService(mockOrders, mockAudit, mockKPIs, zap.NewNop())

	ctx := context.Background()
	order := createOrderWithLine(t, decimal.NewFromInt(10), decimal.NewFromInt(4))

	mockOrders.On("FindByID", ctx, order.ID).Return(order, nil)

	closed, err := service.MaybeCloseOrder(ctx, order.ID)

	assert.NoError(t, err)
	assert.False(t, closed)
	assert.Equal(t, procurement.StatusInProcess, order.OperationalStatus)
	mockOrders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReception_OrderWithoutLinesNeverCloses(t *testing.T) {
	mockOrders := new(MockPurchaseOrderRepository)
	mockAudit := new(MockAuditLogRepository)
	mockKPIs := new(MockDeliveryKPIRepository)
	service := NewReceptionCompletionService(mockOrders, mockAudit, mockKPIs, zap.NewNop())

	ctx := context.Background()
	order := createTestOrder(t, decimal.NewFromInt(1000))
	order.OperationalStatus = procurement.StatusInProcess

	mockOrders.On("FindByID", ctx, order.ID).Return(order, nil)

	closed, err := service.MaybeCloseOrder(ctx, order.ID)

	assert.NoError(t, err)
	assert.False(t, closed)
}

func TestReception_AlreadyDeliveredIsNoOp(t *testing.T) {
	mockOrders := new(MockPurchaseOrderRepository)
	mockAudit := new(MockAuditLogRepository)
	mockKPIs := new(MockDeliveryKPIRepository)
	service := NewReceptionCompletionService(mockOrders, mockAudit, mockKPIs, zap.NewNop())

	ctx := context.Background()
	order := createOrderWithLine(t, decimal.NewFromInt(10), decimal.NewFromInt(10))
	assert.True(t, order.CloseDelivered())

	mockOrders.On("FindByID", ctx, order.ID).Return(order, nil)

	closed, err := service.MaybeCloseOrder(ctx, order.ID)

	assert.NoError(t, err)
	assert.False(t, closed)
	mockOrders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockKPIs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockAudit.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestReception_MissingProcessingTimestampSkipsKPI(t *testing.T) {
	mockOrders := new(MockPurchaseOrderRepository)
	mockAudit := new(MockAuditLogRepository)
	mockKPIs := new(MockDeliveryKPIRepository)
	service := NewReceptionCompletionService(mockOrders, mockAudit, mockKPIs, zap.NewNop())

	ctx := context.Background()
	order := createOrderWithLine(t, decimal.NewFromInt(10), decimal.NewFromInt(10))

	mockOrders.On("FindByID", ctx, order.ID).Return(order, nil)
	mockOrders.On("Save", ctx, order).Return(nil)
	mockAudit.On("FindEarliest", ctx, audit.EntityTypePurchaseOrder, order.ID, audit.ActionEnteredCollectionProcess).Return(nil, shared.ErrNotFound)
	mockAudit.On("Append", ctx, mock.AnythingOfType("*audit.LogEntry")).Return(nil)

	closed, err := service.MaybeCloseOrder(ctx, order.ID)

	assert.NoError(t, err)
	assert.True(t, closed)
	assert.Equal(t, procurement.StatusDelivered, order.OperationalStatus)
	mockKPIs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReception_ExistingKPINotDuplicated(t *testing.T) {
	mockOrders := new(MockPurchaseOrderRepository)
	mockAudit := new(MockAuditLogRepository)
	mockKPIs := new(MockDeliveryKPIRepository)
	service := NewReceptionCompletionService(mockOrders, mockAudit, mockKPIs, zap.NewNop())

	ctx := context.Background()
	order := createOrderWithLine(t, decimal.NewFromInt(10), decimal.NewFromInt(10))
	entered, err := audit.NewLogEntry(audit.EntityTypePurchaseOrder, order.ID, audit.ActionEnteredCollectionProcess, "")
	assert.NoError(t, err)
	entered.CreatedAt = time.Now().Add(-24 * time.Hour)

	mockOrders.On("FindByID", ctx, order.ID).Return(order, nil)
	mockOrders.On("Save", ctx, order).Return(nil)
	mockAudit.On("FindEarliest", ctx, audit.EntityTypePurchaseOrder, order.ID, audit.ActionEnteredCollectionProcess).Return(entered, nil)
	mockKPIs.On("ExistsForOrder", ctx, order.ID).Return(true, nil)
	mockAudit.On("Append", ctx, mock.AnythingOfType("*audit.LogEntry")).Return(nil)

	closed, err := service.MaybeCloseOrder(ctx, order.ID)

	assert.NoError(t, err)
	assert.True(t, closed)
	mockKPIs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReception_OverReceiptStillCountsAsFull(t *testing.T) {
	mockOrders := new(MockPurchaseOrderRepository)
	mockAudit := new(MockAuditLogRepository)
	mockKPIs := new(MockDeliveryKPIRepository)
	service := NewReceptionCompletionService(mockOrders, mockAudit, mockKPIs, zap.NewNop())

	ctx := context.Background()
	order := createOrderWithLine(t, decimal.NewFromInt(10), decimal.NewFromInt(12))

	mockOrders.On("FindByID", ctx, order.ID).Return(order, nil)

	full, err := service.IsOrderFullyReceived(ctx, order.ID)

	assert.NoError(t, err)
	assert.True(t, full)
	assert.True(t, order.Lines[0].OverReceived)
}

func TestReception_MissingOrderReportsNotReceived(t *testing.T) {
	mockOrders := new(MockPurchaseOrderRepository)
	mockAudit := new(MockAuditLogRepository)
	mockKPIs := new(MockDeliveryKPIRepository)
	service := NewReceptionCompletionService(mockOrders, mockAudit, mockKPIs, zap.NewNop())

	ctx := context.Background()
	orderID := uuid.New()

	mockOrders.On("FindByID", ctx, orderID).Return(nil, shared.ErrNotFound)

	full, err := service.IsOrderFullyReceived(ctx, orderID)

	assert.NoError(t, err)
	assert.False(t, full)
}
