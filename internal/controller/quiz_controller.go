package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	GamificationService *service.GamificationService
}

func NewQuizController(gamificationService *service.GamificationService) *QuizController {
	return &QuizController{GamificationService: gamificationService}
}

// SubmitQuizRequest xpReward 会被忽略，经验按测验配置计算
type SubmitQuizRequest struct {
	QuizID         string `json:"quizId" binding:"required"`
	Score          *int   `json:"score" binding:"required"`
	TotalQuestions int    `json:"totalQuestions" binding:"required"`
	TimeTaken      int    `json:"timeTaken"`
	XPReward       *int   `json:"xpReward"`
}

// @Summary 提交测验成绩
// @Description 记录一次作答，按 score/totalQuestions 比例发放经验
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitQuizRequest true "作答结果"
// @Success 200 {object} util.Response{data=service.QuizResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GamificationService.SubmitQuiz(ctx.Request.Context(), user.UserID, service.QuizSubmission{
		QuizID:         req.QuizID,
		Score:          *req.Score,
		TotalQuestions: req.TotalQuestions,
		TimeTaken:      req.TimeTaken,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 获取测验作答记录
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.UserQuizAttempt}
// @Router /api/quiz/attempts [get]
func (c *QuizController) GetAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.GamificationService.QuizAttempts(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
