package controller

import (
	"strconv"

	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService     *service.TestService
	FeedbackService *service.FeedbackService
}

func NewTestController(testService *service.TestService, feedbackService *service.FeedbackService) *TestController {
	return &TestController{
		TestService:     testService,
		FeedbackService: feedbackService,
	}
}

func testIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid test id")
		return 0, false
	}
	return uint(id), true
}

// CreateTest godoc
// @Summary Create a test
// @Description Creates a test with its questions, answer keys and grade scale in one transaction
// @Tags tests
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateTestRequest true "Test definition"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 400 {object} util.Response "Invalid definition"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.TestService.CreateTest(claims.UserID, req)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": test.ID})
}

// ListTests godoc
// @Summary List tests
// @Description Returns concise summaries of all tests
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.TestSummaryView} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	views, err := c.TestService.ListTests()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// GetTest godoc
// @Summary Get a test
// @Description Returns the full test; the answer key and grade scale are visible to the owner only
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Test ID"
// @Success 200 {object} util.Response{data=service.TestView} "Success"
// @Failure 404 {object} util.Response "Test not found"
// @Router /api/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := testIDParam(ctx)
	if !ok {
		return
	}

	view, err := c.TestService.GetTest(id, claims.UserID)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// DeleteTest godoc
// @Summary Delete a draft test
// @Description Removes a test that has not been opened yet; owner-only
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Test ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Not the owner"
// @Failure 404 {object} util.Response "Test not found"
// @Failure 409 {object} util.Response "Test already opened"
// @Router /api/tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := testIDParam(ctx)
	if !ok {
		return
	}

	if err := c.TestService.DeleteTest(id, claims.UserID); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// OpenTest godoc
// @Summary Open a test for submissions
// @Description Sets the open date; owner-only and allowed exactly once
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Test ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Not the owner"
// @Failure 404 {object} util.Response "Test not found"
// @Failure 409 {object} util.Response "Already open"
// @Router /api/tests/{id}/open [post]
func (c *TestController) OpenTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := testIDParam(ctx)
	if !ok {
		return
	}

	if err := c.TestService.Open(id, claims.UserID); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CloseTest godoc
// @Summary Close a test
// @Description Sets the close date; owner-only, after open, allowed exactly once
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Test ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Not the owner"
// @Failure 404 {object} util.Response "Test not found"
// @Failure 409 {object} util.Response "Already closed"
// @Failure 422 {object} util.Response "Not opened yet"
// @Router /api/tests/{id}/close [post]
func (c *TestController) CloseTest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := testIDParam(ctx)
	if !ok {
		return
	}

	if err := c.TestService.Close(id, claims.UserID); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListFeedbackQuestions godoc
// @Summary List feedback questions
// @Description Returns the shared feedback-question pool snapshotted by new tests
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.FeedbackQuestion} "Success"
// @Router /api/feedback-questions [get]
func (c *TestController) ListFeedbackQuestions(ctx *gin.Context) {
	questions, err := c.FeedbackService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}
