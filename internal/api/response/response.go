package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leon37/socializer/internal/apperr"
)

// 统一响应信封：{success, message?, ...payload}
// payload 的键 (user/post/likes/...) 直接平铺在顶层，前端按名取

// Success 成功响应，payload 里的键合并进信封
func Success(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error 错误响应
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// HandleError 终端错误翻译：apperr 自带状态码，其余一律 500 且不外泄细节
func HandleError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		Error(c, appErr.Status, appErr.Message)
		return
	}
	slog.Error("请求处理失败", "path", c.FullPath(), "error", err)
	Error(c, http.StatusInternalServerError, "Internal Server Error")
}
