package httpapi

import "net/http"

// Response is this API's uniform envelope, matching the teacher's
// common/http/response.go shape.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	CodeSuccess      = 0
	CodeError        = -1
	CodeInvalidParam = 10001
	CodeUnauthorized = 10002
	CodeNotFound     = 10004
	CodeServerError  = 10005
)

func (c *Context) Success(data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeSuccess, Message: "success", Data: data})
}

func (c *Context) BadRequest(message string) {
	if message == "" {
		message = "invalid parameters"
	}
	c.JSON(http.StatusBadRequest, Response{Code: CodeInvalidParam, Message: message})
}

func (c *Context) Unauthorized(message string) {
	if message == "" {
		message = "unauthorized"
	}
	c.JSON(http.StatusUnauthorized, Response{Code: CodeUnauthorized, Message: message})
}

func (c *Context) NotFound(message string) {
	if message == "" {
		message = "not found"
	}
	c.JSON(http.StatusNotFound, Response{Code: CodeNotFound, Message: message})
}

func (c *Context) InternalServerError(message string) {
	if message == "" {
		message = "internal server error"
	}
	c.JSON(http.StatusInternalServerError, Response{Code: CodeServerError, Message: message})
}
