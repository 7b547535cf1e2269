package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/returns_management_app/internal/core/ports/services"
	"github.com/SscSPs/returns_management_app/internal/dto"
	"github.com/SscSPs/returns_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// returnHandler handles HTTP requests related to returns.
type returnHandler struct {
	returnService portssvc.ReturnSvcFacade
}

// newReturnHandler creates a new returnHandler.
func newReturnHandler(rs portssvc.ReturnSvcFacade) *returnHandler {
	return &returnHandler{returnService: rs}
}

// RegisterReturnRoutes registers routes related to returns.
func RegisterReturnRoutes(rg *gin.RouterGroup, returnService portssvc.ReturnSvcFacade) {
	h := newReturnHandler(returnService)

	returns := rg.Group("/returns")
	{
		returns.POST("", h.createReturn)
		returns.GET("/summary", h.getStatusSummary)
		returns.GET("/:returnID", h.getReturn)
		returns.PUT("/:returnID", h.updateReturn)
		returns.PATCH("/:returnID/status", h.changeStatus)
		returns.DELETE("/:returnID", h.deleteReturn)
	}
}

// sessionOrAbort reads the session the auth middleware attached, answering 401 when absent.
func sessionOrAbort(c *gin.Context, logger *slog.Logger) (domain.Session, bool) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		logger.Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	}
	return session, ok
}

// createReturn godoc
// @Summary Create a return
// @Description Files a new return. It always starts as PENDING.
// @Tags returns
// @Accept  json
// @Produce  json
// @Param   return body dto.SubmitReturnRequest true "Return details"
// @Success 201 {object} dto.ReturnResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create return"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Security BearerAuth
// @Router /returns [post]
func (h *returnHandler) createReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	session, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create return", slog.String("type", req.Type), slog.String("purchase_id", req.PurchaseID))

	created, err := h.returnService.SubmitReturn(c.Request.Context(), session, req.ToDomain(""))
	if err != nil {
		respondError(c, logger, err, "Failed to create return")
		return
	}

	logger.Info("Return created successfully", slog.String("return_id", created.ID))
	c.JSON(http.StatusCreated, dto.ToReturnResponse(created))
}

// getReturn godoc
// @Summary Get a return by ID
// @Tags returns
// @Produce  json
// @Param   returnID path string true "Return ID"
// @Success 200 {object} dto.ReturnResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Return not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve return"
// @Security BearerAuth
// @Router /returns/{returnID} [get]
func (h *returnHandler) getReturn(c *gin.Context) {
	returnID := c.Param("returnID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("return_id", returnID))

	record, err := h.returnService.GetReturn(c.Request.Context(), returnID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve return")
		return
	}
	c.JSON(http.StatusOK, dto.ToReturnResponse(record))
}

// updateReturn godoc
// @Summary Update a return
// @Description Replaces the content of a return. Status and creation fields are kept.
// @Tags returns
// @Accept  json
// @Produce  json
// @Param   returnID path string true "Return ID"
// @Param   return body dto.SubmitReturnRequest true "Return details"
// @Success 200 {object} dto.ReturnResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Return not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update return"
// @Security BearerAuth
// @Router /returns/{returnID} [put]
func (h *returnHandler) updateReturn(c *gin.Context) {
	returnID := c.Param("returnID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("return_id", returnID))

	var req dto.SubmitReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	session, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}

	updated, err := h.returnService.SubmitReturn(c.Request.Context(), session, req.ToDomain(returnID))
	if err != nil {
		respondError(c, logger, err, "Failed to update return")
		return
	}

	logger.Info("Return updated successfully")
	c.JSON(http.StatusOK, dto.ToReturnResponse(updated))
}

// changeStatus godoc
// @Summary Change the status of a return
// @Description PENDING may become APPROVED or REJECTED, APPROVED may become COMPLETED.
// @Tags returns
// @Accept  json
// @Param   returnID path string true "Return ID"
// @Param   status body dto.ChangeReturnStatusRequest true "Target status"
// @Success 204 "Status changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid status or transition"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Return not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to change return status"
// @Security BearerAuth
// @Router /returns/{returnID}/status [patch]
func (h *returnHandler) changeStatus(c *gin.Context) {
	returnID := c.Param("returnID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("return_id", returnID))

	var req dto.ChangeReturnStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeReturnStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	session, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}

	err := h.returnService.ChangeReturnStatus(c.Request.Context(), session, returnID, domain.ReturnStatus(req.Status))
	if err != nil {
		respondError(c, logger, err, "Failed to change return status")
		return
	}

	logger.Info("Return status changed", slog.String("status", req.Status))
	c.Status(http.StatusNoContent)
}

// deleteReturn godoc
// @Summary Delete a return
// @Description Removes a return and reverses its effect on orders and supplier balances.
// @Tags returns
// @Param   returnID path string true "Return ID"
// @Success 204 "Return deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Return not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete return"
// @Security BearerAuth
// @Router /returns/{returnID} [delete]
func (h *returnHandler) deleteReturn(c *gin.Context) {
	returnID := c.Param("returnID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("return_id", returnID))

	session, ok := sessionOrAbort(c, logger)
	if !ok {
		return
	}
	if err := h.returnService.DeleteReturn(c.Request.Context(), session, returnID); err != nil {
		respondError(c, logger, err, "Failed to delete return")
		return
	}

	logger.Info("Return deleted")
	c.Status(http.StatusNoContent)
}

// getStatusSummary godoc
// @Summary Count returns per status
// @Tags returns
// @Produce  json
// @Success 200 {object} dto.ReturnStatusSummaryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to summarise returns"
// @Security BearerAuth
// @Router /returns/summary [get]
func (h *returnHandler) getStatusSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.returnService.GetStatusSummary(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to summarise returns")
		return
	}
	c.JSON(http.StatusOK, dto.ToReturnStatusSummaryResponse(summary))
}
