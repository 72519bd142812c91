// Package httpapi is this module's gin-gonic HTTP surface: a thin
// Context/Response wrapper around gin (so handlers never import gin
// directly), a Server that owns the *gin.Engine and its lifecycle, and
// domain routes exposing match/round history over internal/persistence.
// Grounded on common/http/context.go, response.go, server.go,
// middleware.go.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context wraps *gin.Context so handlers depend on this package's
// surface, not gin's, matching the teacher's Context.
type Context struct {
	gin *gin.Context
}

func newContext(c *gin.Context) *Context {
	return &Context{gin: c}
}

func (c *Context) Param(key string) string              { return c.gin.Param(key) }
func (c *Context) Query(key string) string               { return c.gin.Query(key) }
func (c *Context) QueryDefault(key, def string) string    { return c.gin.DefaultQuery(key, def) }
func (c *Context) Header(key string) string               { return c.gin.GetHeader(key) }
func (c *Context) BindJSON(obj interface{}) error          { return c.gin.ShouldBindJSON(obj) }
func (c *Context) SetHeader(key, value string)             { c.gin.Header(key, value) }
func (c *Context) ClientIP() string                        { return c.gin.ClientIP() }
func (c *Context) Method() string                          { return c.gin.Request.Method }
func (c *Context) Path() string                            { return c.gin.Request.URL.Path }
func (c *Context) Set(key string, value interface{})       { c.gin.Set(key, value) }
func (c *Context) Get(key string) (interface{}, bool)      { return c.gin.Get(key) }
func (c *Context) GetString(key string) string             { return c.gin.GetString(key) }
func (c *Context) Abort()                                  { c.gin.Abort() }
func (c *Context) JSON(code int, obj interface{})          { c.gin.JSON(code, obj) }

// Request exposes the underlying *http.Request for the rare handler that
// needs it directly (e.g. reading a raw body).
func (c *Context) Request() *http.Request { return c.gin.Request }
