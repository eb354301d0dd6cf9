package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the JSON error envelope. The stack is only
// included when exposeStack is set (development).
func Recovery(exposeStack bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		stack := string(debug.Stack())
		log.Printf("[http][panic] %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, recovered, stack)

		body := gin.H{"success": false, "message": "Internal server error"}
		if exposeStack {
			body["error"] = fmt.Sprint(recovered)
			body["stack"] = stack
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

const exposeErrorsKey = "expose_errors"

// ErrorDetail marks whether handlers may add internal error text to 500
// responses. Only development sets it.
func ErrorDetail(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(exposeErrorsKey, expose)
		c.Next()
	}
}

// ExposeErrors reports the flag set by ErrorDetail; false when absent.
func ExposeErrors(c *gin.Context) bool {
	return c.GetBool(exposeErrorsKey)
}

// RequestLogger logs one line per request in the [http] style.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[http][%d] %s %s %s ip=%s",
			c.Writer.Status(), c.Request.Method, c.Request.URL.Path, time.Since(start), c.ClientIP())
	}
}
