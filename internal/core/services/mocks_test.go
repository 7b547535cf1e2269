package services_test

import (
	"context"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockReturnRepository is a mock type for the ReturnRepositoryFacade interface
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) FindReturnByID(ctx context.Context, returnID string) (*domain.ReturnRecord, error) {
	args := m.Called(ctx, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnRecord), args.Error(1)
}

func (m *MockReturnRepository) ListReturnsByPurchaseID(ctx context.Context, purchaseID string) ([]domain.ReturnRecord, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReturnRecord), args.Error(1)
}

func (m *MockReturnRepository) GetReturnStatusSummary(ctx context.Context) ([]domain.ReturnStatusSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReturnStatusSummary), args.Error(1)
}

func (m *MockReturnRepository) SaveReturn(ctx context.Context, record domain.ReturnRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockReturnRepository) UpdateReturn(ctx context.Context, record domain.ReturnRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockReturnRepository) DeleteReturn(ctx context.Context, returnID string) error {
	args := m.Called(ctx, returnID)
	return args.Error(0)
}

// MockPurchaseOrderRepository is a mock type for the PurchaseOrderRepositoryFacade interface
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindPurchaseOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) ApplyPurchaseOrderAdjustment(ctx context.Context, orderID string, expectedVersion int, adj domain.PurchaseOrderAdjustment, userID string) (int, error) {
	args := m.Called(ctx, orderID, expectedVersion, adj, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) RestorePurchaseOrder(ctx context.Context, snapshot domain.PurchaseOrder, expectedVersion int, userID string) error {
	args := m.Called(ctx, snapshot, expectedVersion, userID)
	return args.Error(0)
}

// MockSupplierRepository is a mock type for the SupplierRepositoryFacade interface
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) AdjustSupplierBalance(ctx context.Context, supplierID string, delta decimal.Decimal, userID string) error {
	args := m.Called(ctx, supplierID, delta, userID)
	return args.Error(0)
}

// amount matches a decimal argument by value rather than by representation.
func amount(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
