package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/leon37/socializer/internal/api/response"
	"github.com/leon37/socializer/internal/model"
	"github.com/leon37/socializer/internal/service"
)

// CurrentUserKey 鉴权通过后塞进 Context 的用户对象
const CurrentUserKey = "currentUser"

// Auth 鉴权中间件：优先读 Cookie 里的 token，兼容 Authorization: Bearer。
// 校验通过会把完整的 User 查出来放进 Context，后面的 Handler 直接取
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil || tokenString == "" {
			// 没有 Cookie 再看 Header，方便非浏览器客户端
			authHeader := c.GetHeader("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		user, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			response.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser 从 Context 取鉴权用户，只能在 Auth 中间件后面用
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}
