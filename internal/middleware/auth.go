package middleware

import (
	"codequest_backend/internal/config"
	"codequest_backend/internal/util"
	"codequest_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 接受 Bearer JWT 或会话 Cookie，二者皆无则返回 401
func AuthMiddleware(cfg *config.Config, sessions *util.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
			if err != nil {
				logger.Log.Debug("JWT解析错误", zap.Error(err))
				util.Unauthorized(c)
				c.Abort()
				return
			}

			util.SetUserInContext(c, claims)
			c.Next()
			return
		}

		if sessions != nil {
			if userID, email, ok := sessions.UserID(c.Request); ok {
				util.SetUserInContext(c, &util.Claims{UserID: userID, Email: email})
				c.Next()
				return
			}
		}

		util.Unauthorized(c)
		c.Abort()
	}
}
