package httpapi

import (
	"strings"
	"time"

	"mahjongcore/internal/logging"
	"mahjongcore/internal/rpc"
)

// CorsMiddleware matches the teacher's CorsMiddleware.
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if origin := c.Header("Origin"); origin != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		}
		if c.Method() == "OPTIONS" {
			c.gin.AbortWithStatus(204)
		}
		return nil
	}
}

// LoggerMiddleware matches the teacher's LoggerMiddleware.
func LoggerMiddleware(log *logging.Logger) MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		method, path, ip := c.Method(), c.Path(), c.ClientIP()
		log.Info("request %s %s from %s", method, path, ip)
		defer func() {
			log.Info("response %s %s completed in %v", method, path, time.Since(start))
		}()
		return nil
	}
}

// AuthMiddleware validates a bearer JWT against secret, matching the
// teacher's AuthMiddleware but replacing its placeholder
// validateToken/getUserIDFromToken stubs with real verification through
// internal/rpc.ParseToken.
func AuthMiddleware(secret string) MiddlewareFunc {
	return func(c *Context) error {
		token := c.Header("Authorization")
		if token == "" {
			c.Unauthorized("missing authorization token")
			c.Abort()
			return nil
		}
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := rpc.ParseToken(token, secret)
		if err != nil {
			c.Unauthorized("invalid token")
			c.Abort()
			return nil
		}
		c.Set("sessionID", claims.SessionID)
		c.Set("tableID", claims.TableID)
		return nil
	}
}
