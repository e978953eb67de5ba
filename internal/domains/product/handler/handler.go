package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/service"
	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/internal/shared/response"
)

type ProductHandler struct {
	productService service.ServiceInterface
}

func NewProductHandler(productService service.ServiceInterface) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), ownerID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, product)
}

// GetProduct GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// ListProducts GET /api/v1/products?for_sale=&category=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filter model.ProductFilter
	if raw := c.Query("for_sale"); raw != "" {
		forSale, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "for_sale must be true or false")
			return
		}
		filter.ForSale = &forSale
	}
	filter.Category = c.Query("category")

	result, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Products, &response.Meta{Total: result.Total})
}

// ListByOwner GET /api/v1/products/owner/:id
func (h *ProductHandler) ListByOwner(c *gin.Context) {
	ownerID := c.Param("id")
	if _, err := uuid.Parse(ownerID); err != nil {
		response.BadRequest(c, "invalid owner id")
		return
	}

	result, err := h.productService.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Products, &response.Meta{Total: result.Total})
}
