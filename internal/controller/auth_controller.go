package controller

import (
	"codequest_backend/internal/service"
	"codequest_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

const oauthStateKey = "oauth_state"

type AuthController struct {
	AuthService *service.AuthService
	Sessions    *util.SessionManager
	FrontendURL string
}

func NewAuthController(authService *service.AuthService, sessions *util.SessionManager, frontendURL string) *AuthController {
	if frontendURL == "" {
		frontendURL = "/"
	}
	return &AuthController{
		AuthService: authService,
		Sessions:    sessions,
		FrontendURL: frontendURL,
	}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest defines model for login
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 登录入口
// @Description dev 模式直接建立开发身份会话；oauth 模式跳转到第三方授权页
// @Tags 认证
// @Success 302
// @Router /api/login [get]
func (c *AuthController) Login(ctx *gin.Context) {
	if c.AuthService.DevMode() {
		user, err := c.AuthService.DevLogin(ctx.Request.Context())
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		if err := c.Sessions.Login(ctx.Writer, ctx.Request, user.ID, user.Email); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		ctx.Redirect(http.StatusFound, c.FrontendURL)
		return
	}

	state, err := service.NewState()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if err := c.Sessions.SetValue(ctx.Writer, ctx.Request, oauthStateKey, state); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusTemporaryRedirect, c.AuthService.AuthCodeURL(state))
}

// Callback godoc
// @Summary OAuth 回调
// @Description 校验 state，换取令牌并建立会话
// @Tags 认证
// @Param state query string true "OAuth state"
// @Param code query string true "授权码"
// @Success 302
// @Failure 401 {object} util.Response
// @Router /api/callback [get]
func (c *AuthController) Callback(ctx *gin.Context) {
	expected, err := c.Sessions.PopValue(ctx.Writer, ctx.Request, oauthStateKey)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if expected == "" || ctx.Query("state") != expected {
		util.Error(ctx, http.StatusUnauthorized, util.ErrInvalidOAuthState.Error())
		return
	}

	user, err := c.AuthService.HandleCallback(ctx.Request.Context(), ctx.Query("code"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if err := c.Sessions.Login(ctx.Writer, ctx.Request, user.ID, user.Email); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, c.FrontendURL)
}

// Logout godoc
// @Summary 退出登录
// @Tags 认证
// @Success 302
// @Router /api/logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.Sessions.Logout(ctx.Writer, ctx.Request); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, c.FrontendURL)
}

// Register godoc
// @Summary 注册新用户
// @Description 使用邮箱和密码注册
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=model.User} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(ctx.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// PasswordLogin godoc
// @Summary 邮箱密码登录
// @Description 建立会话并返回 JWT
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "用户登录凭据"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/auth/login [post]
func (c *AuthController) PasswordLogin(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if err := c.Sessions.Login(ctx.Writer, ctx.Request, user.ID, user.Email); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token, "user": user})
}

// GetUser godoc
// @Summary 获取当前用户
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/auth/user [get]
func (c *AuthController) GetUser(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.CurrentUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// IssueToken godoc
// @Summary 为当前会话签发 JWT
// @Description 供 API 客户端使用 Bearer 认证
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/auth/token [get]
func (c *AuthController) IssueToken(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.CurrentUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	token, err := c.AuthService.IssueToken(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"token": token})
}
