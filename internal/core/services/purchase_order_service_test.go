package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/SscSPs/returns_management_app/internal/apperrors"
	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/SscSPs/returns_management_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func completedLinkedReturn(id, sourceID, qty, price string) domain.ReturnRecord {
	return domain.ReturnRecord{
		ID:         id,
		Type:       domain.PurchaseReturn,
		Status:     domain.ReturnCompleted,
		PurchaseID: "po-1",
		Items: []domain.ReturnItem{
			{ID: sourceID, SourceItemID: sourceID, Quantity: dec(qty), UnitPrice: dec(price)},
		},
	}
}

func TestPurchaseOrderService_GetReturnedItems(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	returnRepo := new(MockReturnRepository)
	svc := services.NewPurchaseOrderService(orderRepo, returnRepo)

	manual := completedLinkedReturn("r-manual", "A", "99", "1")
	manual.IsManual = true

	orderRepo.On("FindPurchaseOrderByID", mock.Anything, "po-1").Return(storedOrder(), nil).Once()
	returnRepo.On("ListReturnsByPurchaseID", mock.Anything, "po-1").Return([]domain.ReturnRecord{
		completedLinkedReturn("r-1", "B", "1", "4"),
		completedLinkedReturn("r-2", "A", "2", "25"),
		manual,
	}, nil).Once()

	items, err := svc.GetReturnedItems(context.Background(), "po-1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].SourceItemID)
	assert.True(t, items[0].TotalQuantity.Equal(dec("2")), "manual returns do not count")
	assert.Equal(t, "B", items[1].SourceItemID)
	orderRepo.AssertExpectations(t)
	returnRepo.AssertExpectations(t)
}

func TestPurchaseOrderService_PreviewAdjustment(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	returnRepo := new(MockReturnRepository)
	svc := services.NewPurchaseOrderService(orderRepo, returnRepo)

	orderRepo.On("FindPurchaseOrderByID", mock.Anything, "po-1").Return(storedOrder(), nil).Once()
	returnRepo.On("ListReturnsByPurchaseID", mock.Anything, "po-1").Return([]domain.ReturnRecord{
		completedLinkedReturn("r-1", "A", "4", "25"),
	}, nil).Once()

	adj, err := svc.PreviewAdjustment(context.Background(), "po-1")

	require.NoError(t, err)
	require.NotNil(t, adj)
	assert.True(t, adj.Subtotal.Equal(dec("150")))
	assert.True(t, adj.RemainingAmount.Equal(dec("100")))
	orderRepo.AssertNotCalled(t, "ApplyPurchaseOrderAdjustment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_PreviewNothingToAdjust(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	returnRepo := new(MockReturnRepository)
	svc := services.NewPurchaseOrderService(orderRepo, returnRepo)

	orderRepo.On("FindPurchaseOrderByID", mock.Anything, "po-empty").Return(&domain.PurchaseOrder{ID: "po-empty"}, nil).Once()
	returnRepo.On("ListReturnsByPurchaseID", mock.Anything, "po-empty").Return([]domain.ReturnRecord{}, nil).Once()

	adj, err := svc.PreviewAdjustment(context.Background(), "po-empty")

	require.NoError(t, err)
	assert.Nil(t, adj)
}

func TestPurchaseOrderService_OrderNotFound(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	returnRepo := new(MockReturnRepository)
	svc := services.NewPurchaseOrderService(orderRepo, returnRepo)

	orderRepo.On("FindPurchaseOrderByID", mock.Anything, "po-x").
		Return(nil, fmt.Errorf("%w: purchase order po-x", apperrors.ErrNotFound)).Once()

	_, err := svc.GetReturnedItems(context.Background(), "po-x")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.PreviewAdjustment(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
