package controller

import (
	"quiz_backend/internal/service"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
	TestService       *service.TestService
}

func NewSubmissionController(submissionService *service.SubmissionService, testService *service.TestService) *SubmissionController {
	return &SubmissionController{
		SubmissionService: submissionService,
		TestService:       testService,
	}
}

// Submit godoc
// @Summary Submit answers for a test
// @Description Scores the answers against the answer key and stores the submission atomically; one submission per participant per test
// @Tags submissions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Test ID"
// @Param   body body service.SubmitRequest true "Answers"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 400 {object} util.Response "Invalid answers"
// @Failure 404 {object} util.Response "Test not found"
// @Failure 409 {object} util.Response "Already submitted"
// @Failure 410 {object} util.Response "Test closed"
// @Failure 422 {object} util.Response "Test not open"
// @Router /api/tests/{id}/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := testIDParam(ctx)
	if !ok {
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.SubmissionService.Submit(id, claims.UserID, req)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		util.HandleDomainError(ctx, err)
		return
	}

	monitoring.SubmissionCounter.WithLabelValues("accepted").Inc()
	util.Created(ctx, gin.H{
		"id":                 sub.ID,
		"submittedAt":        sub.SubmittedAt,
		"rightAnswersNumber": sub.RightAnswersNumber,
	})
}

// MySubmissions godoc
// @Summary List tests the current user has submitted
// @Description Returns concise summaries of every test the authenticated user has a submission for
// @Tags submissions
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.TestSummaryView} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/users/me/submissions [get]
func (c *SubmissionController) MySubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.TestService.ListSubmittedByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}
