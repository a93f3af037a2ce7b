package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Recovery converts handler panics into a plain 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(log.Fields{
					"error":  err,
					"stack":  string(debug.Stack()),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("panic recovered")
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// SafeGo runs fn on a new goroutine and logs instead of crashing on panic.
// onPanic, if non-nil, runs after the panic is logged.
func SafeGo(name string, fn func(), onPanic func(recovered any)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					"goroutine": name,
					"error":     r,
					"stack":     string(debug.Stack()),
				}).Error("goroutine panic recovered")
				if onPanic != nil {
					onPanic(r)
				}
			}
		}()
		fn()
	}()
}
