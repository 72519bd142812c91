package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc func(*Context) error
type MiddlewareFunc func(*Context) error

// Server owns a *gin.Engine and its http.Server lifecycle, matching the
// teacher's HttpServer.
type Server struct {
	engine *gin.Engine
	server *http.Server
	port   int
}

type ServerOption func(*Server)

func WithPort(port int) ServerOption { return func(s *Server) { s.port = port } }
func WithMode(mode string) ServerOption {
	return func(s *Server) { gin.SetMode(mode) }
}

// New builds a Server with gin's logger/recovery middleware installed,
// matching the teacher's NewHttpServer.
func New(opts ...ServerOption) *Server {
	s := &Server{engine: gin.New(), port: 8080}
	for _, opt := range opts {
		opt(s)
	}
	s.engine.Use(gin.Logger(), gin.Recovery())
	return s
}

func (s *Server) wrapHandler(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := h(ctx); err != nil {
			ctx.InternalServerError(err.Error())
		}
	}
}

func (s *Server) wrapMiddleware(mw MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := mw(ctx); err != nil {
			ctx.InternalServerError(err.Error())
			c.Abort()
			return
		}
		if ctx.gin.IsAborted() {
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) GET(path string, h HandlerFunc)    { s.engine.GET(path, s.wrapHandler(h)) }
func (s *Server) POST(path string, h HandlerFunc)   { s.engine.POST(path, s.wrapHandler(h)) }
func (s *Server) PUT(path string, h HandlerFunc)    { s.engine.PUT(path, s.wrapHandler(h)) }
func (s *Server) DELETE(path string, h HandlerFunc) { s.engine.DELETE(path, s.wrapHandler(h)) }

func (s *Server) Use(middlewares ...MiddlewareFunc) {
	for _, mw := range middlewares {
		s.engine.Use(s.wrapMiddleware(mw))
	}
}

// RouterGroup mirrors the teacher's RouterGroup: a *gin.RouterGroup that
// still registers handlers through this package's HandlerFunc/Context.
type RouterGroup struct {
	group  *gin.RouterGroup
	server *Server
}

// Group creates a route group, matching the teacher's Server.Group.
func (s *Server) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	group := s.engine.Group(relativePath)
	for _, mw := range middlewares {
		group.Use(s.wrapMiddleware(mw))
	}
	return &RouterGroup{group: group, server: s}
}

func (rg *RouterGroup) GET(path string, h HandlerFunc)    { rg.group.GET(path, rg.server.wrapHandler(h)) }
func (rg *RouterGroup) POST(path string, h HandlerFunc)   { rg.group.POST(path, rg.server.wrapHandler(h)) }
func (rg *RouterGroup) PUT(path string, h HandlerFunc)    { rg.group.PUT(path, rg.server.wrapHandler(h)) }
func (rg *RouterGroup) DELETE(path string, h HandlerFunc) { rg.group.DELETE(path, rg.server.wrapHandler(h)) }

func (s *Server) Start() error {
	s.server = &http.Server{Addr: fmt.Sprintf(":%d", s.port), Handler: s.engine}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) Engine() *gin.Engine { return s.engine }
