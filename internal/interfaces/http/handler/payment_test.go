package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	procurementapp "github.com/procurement/backend/internal/application/procurement"
	"github.com/procurement/backend/internal/application/reconciliation"
	"github.com/procurement/backend/internal/domain/procurement"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPurchaseOrderRepository implements procurement.PurchaseOrderRepository for testing
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

// MockPaymentEntryRepository implements procurement.PaymentEntryRepository for testing
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

// MockPaymentSourceRepository implements procurement.PaymentSourceRepository for testing
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

func setupPaymentTestRouter() (*gin.Engine, *MockPurchaseOrderRepository, *MockPaymentEntryRepository, *MockPaymentSourceRepository) {
	gin.SetMode(gin.TestMode)

	mockOrders := new(MockPurchaseOrderRepository)
	mockPayments := new(MockPaymentEntryRepository)
	mockSources := new(MockPaymentSourceRepository)

	scope := reconciliation.NewNoOpTransactionScope(
		mockOrders, mockPayments, mockSources,
		nil, nil, nil, nil, nil, nil,
	)
	service := procurementapp.NewPaymentService(scope, zap.NewNop())
	handler := NewPaymentHandler(service)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/"))

	return router, mockOrders, mockPayments, mockSources
}

func createHandlerTestOrder(t *testing.T) *procurement.PurchaseOrder {
	t.Helper()
	order, err := procurement.NewPurchaseOrder("PO-5001", uuid.New(), decimal.NewFromInt(1200), nil)
	require.NoError(t, err)
	order.OperationalStatus = procurement.StatusInProcess
	return order
}

func TestPaymentHandler_Register(t *testing.T) {
	router, mockOrders, mockPayments, mockSources := setupPaymentTestRouter()

	order := createHandlerTestOrder(t)
	fallback := procurement.NewUnspecifiedSource()

	mockOrders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mockSources.On("EnsureFallback", mock.Anything).Return(fallback, nil)
	mockPayments.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PaymentEntry")).Return(nil)
	mockPayments.On("SumByOrder", mock.Anything, order.ID).Return(decimal.NewFromInt(500), nil)
	mockOrders.On("Save", mock.Anything, order).Return(nil)

	body, _ := json.Marshal(map[string]any{
		"amount":    "500",
		"kind":      "ADVANCE",
		"reference": "wire 2210",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/"+order.ID.String()+"/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Kind    string `json:"kind"`
			OrderID string `json:"order_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "ADVANCE", response.Data.Kind)
	assert.Equal(t, order.ID.String(), response.Data.OrderID)
	mockPayments.AssertExpectations(t)
}

func TestPaymentHandler_Register_InvalidOrderID(t *testing.T) {
	router, _, _, _ := setupPaymentTestRouter()

	body, _ := json.Marshal(map[string]any{"amount": "500", "kind": "FULL"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/not-a-uuid/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_Register_MissingKind(t *testing.T) {
	router, _, _, _ := setupPaymentTestRouter()

	body, _ := json.Marshal(map[string]any{"amount": "500"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/"+uuid.NewString()+"/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_Register_OrderNotFound(t *testing.T) {
	router, mockOrders, _, _ := setupPaymentTestRouter()

	orderID := uuid.New()
	mockOrders.On("FindByID", mock.Anything, orderID).Return(nil, shared.ErrNotFound)

	body, _ := json.Marshal(map[string]any{"amount": "500", "kind": "FULL"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/"+orderID.String()+"/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestPaymentHandler_Reverse_AlreadyReversed(t *testing.T) {
	router, _, mockPayments, _ := setupPaymentTestRouter()

	order := uuid.New()
	original, err := procurement.NewPaymentEntry(order, decimal.NewFromInt(300), procurement.PaymentKindAdvance, uuid.New(), "")
	require.NoError(t, err)
	existing, err := procurement.NewReversalEntry(original, "")
	require.NoError(t, err)

	mockPayments.On("FindByID", mock.Anything, original.ID).Return(original, nil)
	mockPayments.On("FindReversalOf", mock.Anything, original.ID).Return(existing, nil)

	body, _ := json.Marshal(map[string]any{"reference": "duplicate attempt"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/"+original.ID.String()+"/reversals", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_CONFLICT")
}

func TestPaymentHandler_CreateSource(t *testing.T) {
	router, _, _, mockSources := setupPaymentTestRouter()

	mockSources.On("FindByName", mock.Anything, "Banorte 1143").Return(nil, shared.ErrNotFound)
	mockSources.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PaymentSource")).Return(nil)

	body, _ := json.Marshal(map[string]any{"name": "Banorte 1143", "kind": "BANK"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment-sources", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Banorte 1143")
	mockSources.AssertExpectations(t)
}
