package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户统计、签到与头像
type UserController struct {
	UserService         *service.UserService
	GamificationService *service.GamificationService
}

// NewUserController 创建一个新的用户控制器实例
func NewUserController(userService *service.UserService, gamificationService *service.GamificationService) *UserController {
	return &UserController{
		UserService:         userService,
		GamificationService: gamificationService,
	}
}

// GetStats godoc
// @Summary 获取用户统计
// @Description 经验、连续天数、完成课程数、徽章数、测验数、通过挑战数与等级
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.UserStats} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/user/stats [get]
func (c *UserController) GetStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.GamificationService.Stats(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// CheckIn godoc
// @Summary 每日签到
// @Description 记录今日活跃并更新连续天数，不发放经验
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.EventResult}
// @Router /api/user/checkin [post]
func (c *UserController) CheckIn(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.GamificationService.CheckIn(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetXPHistory godoc
// @Summary 获取经验流水
// @Tags 用户
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "返回数量" default(50)
// @Success 200 {object} util.Response{data=[]model.XPAward}
// @Router /api/user/xp [get]
func (c *UserController) GetXPHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := util.ParseLimit(ctx.Query("limit"), util.DefaultHistoryLimit, util.MaxHistoryLimit)
	awards, err := c.UserService.XPHistory(ctx.Request.Context(), user.UserID, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, awards)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Description 仅支持图片，按文件内容校验类型
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param file formData file true "头像图片"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Router /api/user/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	// 读取文件头部判断真实类型，再回到文件开头上传
	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, fmt.Errorf("rewind upload: %w", err))
		return
	}

	updated, err := c.UserService.UpdateAvatar(ctx.Request.Context(), user.UserID, header.Filename, file, header.Size, mimeType)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}
