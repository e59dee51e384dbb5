package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Sooraj-Rao/quiz-builder/internal/controller"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/service"
)

type AdminUserController struct {
	authService      service.AuthService
	adminUserService service.AdminUserService
}

func NewAdminUserController(authService service.AuthService, adminUserService service.AdminUserService) *AdminUserController {
	return &AdminUserController{authService: authService, adminUserService: adminUserService}
}

// Login godoc
// @Summary Administrator login
// @Description Issues a bearer token scoped to the admin role.
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param body body dto.AdminLoginRequest true "Administrator credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid administrator credentials"
// @Router /admin/login [post]
func (c *AdminUserController) Login(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	resp, err := c.authService.AdminLogin(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListUsers godoc
// @Summary (Admin) List all users with their attempts
// @Tags Admin - Users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.AdminUser
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/users [get]
func (c *AdminUserController) ListUsers(ctx *gin.Context) {
	users, err := c.adminUserService.ListUsers()
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary (Admin) Update a user's name and email
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "User ID"
// @Param body body dto.UpdateUserRequest true "New details"
// @Success 200 {object} dto.AdminUser
// @Failure 400 {object} dto.ErrorResponse "Email already exists"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{userId} [put]
func (c *AdminUserController) UpdateUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user ID format"})
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	user, err := c.adminUserService.UpdateUser(uint(userID), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary (Admin) Delete a user
// @Tags Admin - Users
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{userId} [delete]
func (c *AdminUserController) DeleteUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user ID format"})
		return
	}

	if err := c.adminUserService.DeleteUser(uint(userID)); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
