package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/returns_management_app/internal/apperrors"
	"github.com/SscSPs/returns_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/returns_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/returns_management_app/internal/core/ports/services"
	"github.com/SscSPs/returns_management_app/internal/core/reconciliation"
)

// purchaseOrderService serves the return-derived read model of purchase orders.
type purchaseOrderService struct {
	BaseService
	orderRepo  portsrepo.PurchaseOrderReader
	returnRepo portsrepo.ReturnReader
}

// NewPurchaseOrderService creates a new PurchaseOrderService.
func NewPurchaseOrderService(orderRepo portsrepo.PurchaseOrderReader, returnRepo portsrepo.ReturnReader) portssvc.PurchaseOrderSvcFacade {
	return &purchaseOrderService{
		orderRepo:  orderRepo,
		returnRepo: returnRepo,
	}
}

var _ portssvc.PurchaseOrderSvcFacade = (*purchaseOrderService)(nil)

func (s *purchaseOrderService) GetReturnedItems(ctx context.Context, orderID string) ([]domain.ReturnedItemSummary, error) {
	if _, err := s.loadOrder(ctx, orderID); err != nil {
		return nil, err
	}
	summaries, err := s.summaries(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ReturnedItemSummary, 0, len(summaries))
	for _, id := range reconciliation.SortedSourceIDs(summaries) {
		items = append(items, summaries[id])
	}
	return items, nil
}

func (s *purchaseOrderService) PreviewAdjustment(ctx context.Context, orderID string) (*domain.PurchaseOrderAdjustment, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summaries(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return reconciliation.BuildPurchaseOrderAdjustment(*order, summaries), nil
}

func (s *purchaseOrderService) loadOrder(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: purchase order id is required", apperrors.ErrValidation)
	}
	order, err := s.orderRepo.FindPurchaseOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load purchase order", slog.String("purchase_order_id", orderID))
		}
		return nil, fmt.Errorf("failed to get purchase order %s: %w", orderID, storeErr(err))
	}
	return order, nil
}

func (s *purchaseOrderService) summaries(ctx context.Context, orderID string) (map[string]domain.ReturnedItemSummary, error) {
	records, err := s.returnRepo.ListReturnsByPurchaseID(ctx, orderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list returns for purchase order", slog.String("purchase_order_id", orderID))
		return nil, fmt.Errorf("failed to list returns for purchase order %s: %w", orderID, storeErr(err))
	}
	return reconciliation.AggregateReturnedItems(linkedReturns(records)), nil
}
