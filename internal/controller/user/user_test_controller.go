package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Sooraj-Rao/quiz-builder/internal/auth"
	"github.com/Sooraj-Rao/quiz-builder/internal/controller"
	"github.com/Sooraj-Rao/quiz-builder/internal/dto"
	"github.com/Sooraj-Rao/quiz-builder/internal/service"
)

type UserTestController struct {
	userTestService       service.UserTestService
	testSubmissionService service.TestSubmissionService
}

func NewUserTestController(uts service.UserTestService, tss service.TestSubmissionService) *UserTestController {
	return &UserTestController{
		userTestService:       uts,
		testSubmissionService: tss,
	}
}

// GetAvailableTests godoc
// @Summary List active tests the caller has not attempted
// @Tags Tests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.TestSummary
// @Failure 401 {object} dto.ErrorResponse
// @Router /tests [get]
func (c *UserTestController) GetAvailableTests(ctx *gin.Context) {
	claims := auth.FromContext(ctx)
	tests, err := c.userTestService.GetAvailableTests(claims.UserID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Fetch a test for taking
// @Description Returns the test with its questions, without correct answer indices.
// @Tags Tests
// @Produce json
// @Security ApiKeyAuth
// @Param testId path string true "Test code"
// @Success 200 {object} dto.TestDetail
// @Failure 403 {object} dto.ErrorResponse "Already attempted"
// @Failure 404 {object} dto.ErrorResponse "Not found or inactive"
// @Router /tests/{testId} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	claims := auth.FromContext(ctx)
	detail, err := c.userTestService.GetTestForTaking(claims.UserID, ctx.Param("testId"))
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// SubmitTest godoc
// @Summary Submit answers for a test
// @Description Scores the answer vector and records the single allowed attempt.
// @Tags Tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param testId path string true "Test code"
// @Param body body dto.SubmitTestRequest true "Answers, time spent, violation data"
// @Success 200 {object} dto.SubmitResult
// @Failure 403 {object} dto.ErrorResponse "Already attempted"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{testId}/submit [post]
func (c *UserTestController) SubmitTest(ctx *gin.Context) {
	claims := auth.FromContext(ctx)

	var req dto.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitTest: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	result, err := c.testSubmissionService.Submit(claims.UserID, ctx.Param("testId"), req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetHistory godoc
// @Summary List the caller's attempts, newest first
// @Tags Tests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.AttemptSummary
// @Failure 401 {object} dto.ErrorResponse
// @Router /tests/user/history [get]
func (c *UserTestController) GetHistory(ctx *gin.Context) {
	claims := auth.FromContext(ctx)
	history, err := c.userTestService.GetHistory(claims.UserID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, history)
}
