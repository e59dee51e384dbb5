package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Sooraj-Rao/quiz-builder/internal/controller"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/service"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

// ListTests godoc
// @Summary (Admin) List all tests including inactive ones
// @Tags Admin - Tests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.AdminTest
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/tests [get]
func (c *AdminTestController) ListTests(ctx *gin.Context) {
	tests, err := c.adminTestService.ListTests()
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// CreateTest godoc
// @Summary (Admin) Create a new test with its questions
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.CreateTestRequest true "Test definition"
// @Success 201 {object} dto.AdminTest
// @Failure 400 {object} dto.ErrorResponse "Validation failure or duplicate test ID"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTest: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	test, err := c.adminTestService.CreateTest(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, test)
}

// GetTest godoc
// @Summary (Admin) Fetch one test for editing
// @Tags Admin - Tests
// @Produce json
// @Security ApiKeyAuth
// @Param testId path string true "Test code"
// @Success 200 {object} dto.AdminTest
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{testId} [get]
func (c *AdminTestController) GetTest(ctx *gin.Context) {
	test, err := c.adminTestService.GetTest(ctx.Param("testId"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// UpdateTest godoc
// @Summary (Admin) Update a test and replace its question set
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param testId path string true "Test code"
// @Param body body dto.UpdateTestRequest true "Updated definition"
// @Success 200 {object} dto.AdminTest
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{testId} [put]
func (c *AdminTestController) UpdateTest(ctx *gin.Context) {
	var req dto.UpdateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	test, err := c.adminTestService.UpdateTest(ctx.Param("testId"), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// DeleteTest godoc
// @Summary (Admin) Delete a test and its questions
// @Tags Admin - Tests
// @Produce json
// @Security ApiKeyAuth
// @Param testId path string true "Test code"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{testId} [delete]
func (c *AdminTestController) DeleteTest(ctx *gin.Context) {
	if err := c.adminTestService.DeleteTest(ctx.Param("testId")); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Test deleted successfully"})
}

// GetAnalytics godoc
// @Summary (Admin) Flattened list of all attempts at a test
// @Tags Admin - Reports
// @Produce json
// @Security ApiKeyAuth
// @Param testId path string true "Test code"
// @Success 200 {array} dto.AnalyticsEntry
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/analytics/{testId} [get]
func (c *AdminTestController) GetAnalytics(ctx *gin.Context) {
	entries, err := c.adminTestService.GetAnalytics(ctx.Param("testId"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// GetAttemptDetail godoc
// @Summary (Admin) Detailed result for one attempt
// @Description Rebuilds the per-question breakdown against the test's current questions.
// @Tags Admin - Reports
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "User ID"
// @Param attemptId path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetail
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/test-result/{userId}/{attemptId} [get]
func (c *AdminTestController) GetAttemptDetail(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user ID format"})
		return
	}
	attemptID, err := strconv.ParseUint(ctx.Param("attemptId"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid attempt ID format"})
		return
	}

	detail, err := c.adminTestService.GetAttemptDetail(uint(userID), uint(attemptID))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}
