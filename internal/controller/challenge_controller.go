package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	GamificationService *service.GamificationService
}

func NewChallengeController(gamificationService *service.GamificationService) *ChallengeController {
	return &ChallengeController{GamificationService: gamificationService}
}

type SubmitChallengeRequest struct {
	ChallengeID string `json:"challengeId" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Language    string `json:"language" binding:"required"`
	Passed      bool   `json:"passed"`
}

// @Summary 提交编程挑战
// @Description 记录提交；首次通过时发放挑战经验
// @Tags 编程挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitChallengeRequest true "提交内容"
// @Success 200 {object} util.Response{data=service.ChallengeResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/challenges/submit [post]
func (c *ChallengeController) SubmitChallenge(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GamificationService.SubmitChallenge(ctx.Request.Context(), user.UserID, service.ChallengeSubmission{
		ChallengeID: req.ChallengeID,
		Code:        req.Code,
		Language:    req.Language,
		Passed:      req.Passed,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 获取挑战提交记录
// @Tags 编程挑战
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.UserChallengeSubmission}
// @Router /api/challenges/submissions [get]
func (c *ChallengeController) GetSubmissions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	submissions, err := c.GamificationService.ChallengeSubmissions(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}
