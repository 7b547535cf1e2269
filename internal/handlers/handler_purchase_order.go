package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/returns_management_app/internal/core/ports/services"
	"github.com/SscSPs/returns_management_app/internal/dto"
	"github.com/SscSPs/returns_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type purchaseOrderHandler struct {
	orderService  portssvc.PurchaseOrderSvcFacade
	returnService portssvc.ReturnReaderSvc
}

// RegisterPurchaseOrderRoutes registers the return-related views of purchase orders.
func RegisterPurchaseOrderRoutes(rg *gin.RouterGroup, orderService portssvc.PurchaseOrderSvcFacade, returnService portssvc.ReturnReaderSvc) {
	h := &purchaseOrderHandler{orderService: orderService, returnService: returnService}

	orders := rg.Group("/purchase-orders/:orderID")
	{
		orders.GET("/returns", h.listReturns)
		orders.GET("/returned-items", h.getReturnedItems)
		orders.GET("/adjustment-preview", h.previewAdjustment)
	}
}

// listReturns godoc
// @Summary List returns of a purchase order
// @Description Lists every return filed against the order, in any status, newest first.
// @Tags purchase-orders
// @Produce  json
// @Param   orderID path string true "Purchase order ID"
// @Success 200 {object} dto.ListReturnsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list returns"
// @Security BearerAuth
// @Router /purchase-orders/{orderID}/returns [get]
func (h *purchaseOrderHandler) listReturns(c *gin.Context) {
	orderID := c.Param("orderID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("purchase_order_id", orderID))

	records, err := h.returnService.ListReturnsByPurchaseOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, logger, err, "Failed to list returns")
		return
	}
	logger.Info("Returns listed successfully", slog.Int("count", len(records)))
	c.JSON(http.StatusOK, dto.ToListReturnsResponse(records))
}

// getReturnedItems godoc
// @Summary Returned items of a purchase order
// @Description Aggregates completed returns per order line, with each line's history newest first.
// @Tags purchase-orders
// @Produce  json
// @Param   orderID path string true "Purchase order ID"
// @Success 200 {object} dto.ReturnedItemsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Purchase order not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to aggregate returned items"
// @Security BearerAuth
// @Router /purchase-orders/{orderID}/returned-items [get]
func (h *purchaseOrderHandler) getReturnedItems(c *gin.Context) {
	orderID := c.Param("orderID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("purchase_order_id", orderID))

	items, err := h.orderService.GetReturnedItems(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, logger, err, "Failed to aggregate returned items")
		return
	}
	c.JSON(http.StatusOK, dto.ToReturnedItemsResponse(orderID, items))
}

// previewAdjustment godoc
// @Summary Preview the reconciliation of a purchase order
// @Description Computes what reconciling the order would write, without writing it.
// @Tags purchase-orders
// @Produce  json
// @Param   orderID path string true "Purchase order ID"
// @Success 200 {object} dto.AdjustmentPreviewResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Purchase order not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to preview adjustment"
// @Security BearerAuth
// @Router /purchase-orders/{orderID}/adjustment-preview [get]
func (h *purchaseOrderHandler) previewAdjustment(c *gin.Context) {
	orderID := c.Param("orderID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("purchase_order_id", orderID))

	adj, err := h.orderService.PreviewAdjustment(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, logger, err, "Failed to preview adjustment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdjustmentPreviewResponse(orderID, adj))
}
