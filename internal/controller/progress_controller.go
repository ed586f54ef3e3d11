package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	GamificationService *service.GamificationService
}

func NewProgressController(gamificationService *service.GamificationService) *ProgressController {
	return &ProgressController{GamificationService: gamificationService}
}

// CompleteLessonRequest xpReward 仅为兼容旧客户端，服务端以课程配置为准
type CompleteLessonRequest struct {
	LessonID string `json:"lessonId" binding:"required"`
	XPReward *int   `json:"xpReward"`
}

// @Summary 获取学习进度
// @Description 获取当前用户全部课程的完成记录
// @Tags 学习进度
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.UserProgress}
// @Failure 401 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.GamificationService.GetProgress(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 完成课程
// @Description 标记课程完成；首次完成时发放课程经验，并更新连续天数与成就
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompleteLessonRequest true "课程信息"
// @Success 200 {object} util.Response{data=service.LessonCompletion}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/progress [post]
func (c *ProgressController) CompleteLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GamificationService.CompleteLesson(ctx.Request.Context(), user.UserID, req.LessonID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 获取语言学习进度
// @Description 已完成课程数、课程总数与完成百分比
// @Tags 学习进度
// @Produce json
// @Security BearerAuth
// @Param id path string true "语言ID"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Failure 404 {object} util.Response
// @Router /api/languages/{id}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.GamificationService.CourseProgress(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
