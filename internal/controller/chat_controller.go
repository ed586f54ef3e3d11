package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

// ChatController AI 助教对话与代码辅助
type ChatController struct {
	TutorService *service.TutorService
}

func NewChatController(tutorService *service.TutorService) *ChatController {
	return &ChatController{TutorService: tutorService}
}

// ChatRequest 发送给 AI 助教的消息
type ChatRequest struct {
	Message string `json:"message" example:"What is a closure?"`
}

type ExplainCodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
}

type DebugCodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
	Error    string `json:"error"`
}

type HintRequest struct {
	Problem     string `json:"problem" binding:"required"`
	CurrentCode string `json:"currentCode"`
}

// @Summary 与 AI 助教对话
// @Description 保存用户消息并返回助教回复；服务不可用时返回固定提示
// @Tags AI助教
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChatRequest true "消息"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		util.BadRequest(ctx, "Message is required")
		return
	}

	reply, err := c.TutorService.Chat(ctx.Request.Context(), user.UserID, req.Message)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"response": reply})
}

// @Summary 获取对话记录
// @Description 按时间正序返回最近的对话
// @Tags AI助教
// @Produce json
// @Security BearerAuth
// @Param limit query int false "返回数量" default(50)
// @Success 200 {object} util.Response{data=[]model.ChatMessage}
// @Router /api/chat/history [get]
func (c *ChatController) GetHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := util.ParseLimit(ctx.Query("limit"), util.DefaultHistoryLimit, util.MaxHistoryLimit)
	messages, err := c.TutorService.History(ctx.Request.Context(), user.UserID, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}

// @Summary 清空对话记录
// @Tags AI助教
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/chat/history [delete]
func (c *ChatController) ClearHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.TutorService.ClearHistory(ctx.Request.Context(), user.UserID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true})
}

// @Summary 讲解代码
// @Tags AI助教
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExplainCodeRequest true "代码"
// @Success 200 {object} util.Response
// @Router /api/tutor/explain [post]
func (c *ChatController) ExplainCode(ctx *gin.Context) {
	var req ExplainCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.TutorService.ExplainCode(ctx.Request.Context(), req.Code, req.Language)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"response": reply})
}

// @Summary 调试代码
// @Tags AI助教
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DebugCodeRequest true "代码与报错信息"
// @Success 200 {object} util.Response
// @Router /api/tutor/debug [post]
func (c *ChatController) DebugCode(ctx *gin.Context) {
	var req DebugCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.TutorService.DebugCode(ctx.Request.Context(), req.Code, req.Language, req.Error)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"response": reply})
}

// @Summary 获取解题提示
// @Tags AI助教
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body HintRequest true "题目与当前代码"
// @Success 200 {object} util.Response
// @Router /api/tutor/hint [post]
func (c *ChatController) Hint(ctx *gin.Context) {
	var req HintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.TutorService.Hint(ctx.Request.Context(), req.Problem, req.CurrentCode)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"response": reply})
}
