package controller

import (
	"strconv"

	"quiz_backend/internal/service"
	"quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// Overview godoc
// @Summary Test result overview
// @Description Aggregates all submissions of a closed test for its owner
// @Tags results
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Test ID"
// @Success 200 {object} util.Response{data=service.OverviewView} "Success"
// @Failure 403 {object} util.Response "Not the owner"
// @Failure 404 {object} util.Response "Test not found"
// @Failure 422 {object} util.Response "Test not closed yet"
// @Router /api/tests/{id}/results/overview [get]
func (c *ResultController) Overview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := testIDParam(ctx)
	if !ok {
		return
	}

	view, err := c.ResultService.Overview(ctx.Request.Context(), id, claims.UserID)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ParticipantResult godoc
// @Summary One participant's test result
// @Description Returns a participant's scored submission and grade; readable by the owner and by the participant themselves once the test is closed
// @Tags results
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Test ID"
// @Param   userId path int true "Participant user ID"
// @Success 200 {object} util.Response{data=service.ParticipantView} "Success"
// @Failure 403 {object} util.Response "Not allowed"
// @Failure 404 {object} util.Response "Test or submission not found"
// @Failure 422 {object} util.Response "Test not closed yet"
// @Router /api/tests/{id}/results/users/{userId} [get]
func (c *ResultController) ParticipantResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := testIDParam(ctx)
	if !ok {
		return
	}
	userID, err := strconv.ParseUint(ctx.Param("userId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	view, err := c.ResultService.ParticipantResult(id, uint(userID), claims.UserID)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
