package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	FavoriteService *service.FavoriteService
}

func NewFavoriteController(favoriteService *service.FavoriteService) *FavoriteController {
	return &FavoriteController{FavoriteService: favoriteService}
}

type AddFavoriteRequest struct {
	LanguageID string `json:"languageId" binding:"required"`
}

// @Summary 获取收藏的语言
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.UserFavorite}
// @Router /api/favorites [get]
func (c *FavoriteController) GetFavorites(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	favorites, err := c.FavoriteService.List(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, favorites)
}

// @Summary 收藏语言
// @Description 重复收藏返回已有记录
// @Tags 收藏
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddFavoriteRequest true "语言ID"
// @Success 200 {object} util.Response{data=model.UserFavorite}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/favorites [post]
func (c *FavoriteController) AddFavorite(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddFavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	favorite, err := c.FavoriteService.Add(ctx.Request.Context(), user.UserID, req.LanguageID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, favorite)
}

// @Summary 取消收藏
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param languageId path string true "语言ID"
// @Success 200 {object} util.Response
// @Router /api/favorites/{languageId} [delete]
func (c *FavoriteController) RemoveFavorite(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.FavoriteService.Remove(ctx.Request.Context(), user.UserID, ctx.Param("languageId")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true})
}
