package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-backend/internal/domains/purchase/model"
	"marketplace-backend/internal/domains/purchase/service"
	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/internal/shared/response"
)

type PurchaseHandler struct {
	purchaseService service.ServiceInterface
}

func NewPurchaseHandler(purchaseService service.ServiceInterface) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

func parseID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, "invalid id")
		return "", false
	}
	return id, true
}

// PurchaseProduct POST /api/v1/purchases
func (h *PurchaseHandler) PurchaseProduct(c *gin.Context) {
	buyerID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}

	purchase, err := h.purchaseService.PurchaseProduct(c.Request.Context(), buyerID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, purchase)
}

// GetPurchase GET /api/v1/purchases/:id
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, purchase)
}

// ListByBuyer GET /api/v1/purchases/buyer/:id
func (h *PurchaseHandler) ListByBuyer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.purchaseService.ListByBuyer(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Purchases, &response.Meta{Total: result.Total})
}

// ListBySeller GET /api/v1/purchases/seller/:id
func (h *PurchaseHandler) ListBySeller(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.purchaseService.ListBySeller(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Purchases, &response.Meta{Total: result.Total})
}

// UpdateStatus PATCH /api/v1/purchases/:id/status (admin)
func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}

	result, err := h.purchaseService.UpdatePurchaseStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
