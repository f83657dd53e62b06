// Package apperr 定义全局错误分类：每个错误自带 HTTP 状态码，
// 由 response 包统一翻译成 {success:false, message} 响应
package apperr

import "net/http"

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation 参数缺失/不合法
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Auth 凭证缺失或无效 (沿用 400，不用 401，保持对外行为一致)
func Auth(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// NotFound 引用的实体不存在
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Conflict 状态冲突：邮箱重复、重复点赞等
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Upload 图床上传失败
func Upload(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}

// Delete 图床删除失败 (只有非 best-effort 场景才会抛出来)
func Delete(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}
