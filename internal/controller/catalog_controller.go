package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// @Summary 获取语言列表
// @Description 获取全部编程语言课程
// @Tags 课程目录
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Language}
// @Router /api/languages [get]
func (c *CatalogController) GetLanguages(ctx *gin.Context) {
	languages, err := c.CatalogService.GetLanguages(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, languages)
}

// @Summary 获取语言详情
// @Tags 课程目录
// @Produce json
// @Param id path string true "语言ID"
// @Success 200 {object} util.Response{data=model.Language}
// @Failure 404 {object} util.Response
// @Router /api/languages/{id} [get]
func (c *CatalogController) GetLanguage(ctx *gin.Context) {
	language, err := c.CatalogService.GetLanguage(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, language)
}

// @Summary 获取语言下的课程
// @Description 按顺序返回该语言的全部课程
// @Tags 课程目录
// @Produce json
// @Param id path string true "语言ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/languages/{id}/lessons [get]
func (c *CatalogController) GetLessons(ctx *gin.Context) {
	lessons, err := c.CatalogService.GetLessons(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// @Summary 获取课程详情
// @Tags 课程目录
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *CatalogController) GetLesson(ctx *gin.Context) {
	lesson, err := c.CatalogService.GetLesson(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary 获取语言下的测验
// @Tags 测验
// @Produce json
// @Param id path string true "语言ID"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/languages/{id}/quizzes [get]
func (c *CatalogController) GetQuizzes(ctx *gin.Context) {
	quizzes, err := c.CatalogService.GetQuizzes(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// @Summary 获取测验详情
// @Description 返回测验及其题目
// @Tags 测验
// @Produce json
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quiz/{id} [get]
func (c *CatalogController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.CatalogService.GetQuiz(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 获取编程挑战列表
// @Tags 编程挑战
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Challenge}
// @Router /api/challenges [get]
func (c *CatalogController) GetChallenges(ctx *gin.Context) {
	challenges, err := c.CatalogService.GetChallenges(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

// @Summary 获取编程挑战详情
// @Tags 编程挑战
// @Produce json
// @Param id path string true "挑战ID"
// @Success 200 {object} util.Response{data=model.Challenge}
// @Failure 404 {object} util.Response
// @Router /api/challenges/{id} [get]
func (c *CatalogController) GetChallenge(ctx *gin.Context) {
	challenge, err := c.CatalogService.GetChallenge(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}
