package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-backend/internal/domains/review/model"
	"marketplace-backend/internal/domains/review/service"
	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/internal/shared/response"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// pathID reads a UUID path parameter, writing a 400 when it is malformed
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, "invalid "+name)
		return "", false
	}
	return id, true
}

// actorID reads the authenticated user, writing a 401 when it is missing
func actorID(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	return userID, true
}

// =====================================================
// WRITE ENDPOINTS
// =====================================================

// CreateReview POST /api/v1/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// UpdateReview PUT /api/v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), userID, reviewID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// DeleteReview DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), userID, reviewID); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// =====================================================
// READ ENDPOINTS
// =====================================================

// GetReview GET /api/v1/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// GetSellerReviews GET /api/v1/reviews/seller/:id
func (h *ReviewHandler) GetSellerReviews(c *gin.Context) {
	sellerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.reviewService.GetSellerReviews(c.Request.Context(), sellerID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetSellerStats GET /api/v1/reviews/seller/:id/stats
func (h *ReviewHandler) GetSellerStats(c *gin.Context) {
	sellerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.reviewService.GetSellerStats(c.Request.Context(), sellerID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// GetProductReviews GET /api/v1/reviews/product/:id
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.reviewService.GetProductReviews(c.Request.Context(), productID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetProductAverage GET /api/v1/reviews/product/:id/average
func (h *ReviewHandler) GetProductAverage(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.reviewService.GetProductAverage(c.Request.Context(), productID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetUserReviews GET /api/v1/reviews/user/:id
func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.reviewService.GetUserReviews(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
