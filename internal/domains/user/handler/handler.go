package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-backend/internal/domains/user/model"
	"marketplace-backend/internal/domains/user/service"
	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/internal/shared/response"
)

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Login POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func parseUserID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.BadRequest(c, "invalid user id")
		return "", false
	}
	return id, true
}

// GetProfile GET /api/v1/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ChangePassword PUT /api/v1/users/:id/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	actorID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, model.NewInvalidRequestError(err))
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), actorID, id, req); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListUsers GET /api/v1/users (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	result, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Users, &response.Meta{Total: result.Total})
}

// UpdateStatus PUT /api/v1/users/:id/status (admin)
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUserID(c)
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

	result, err := h.userService.UpdateUserStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// DeleteUser DELETE /api/v1/users/:id (admin)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
