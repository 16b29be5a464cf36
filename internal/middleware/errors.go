package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/dirk.krummacker/contactbook-service/internal/apierr"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/jsend"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/logger"
	"gitlab.com/dirk.krummacker/contactbook-service/internal/service"
)

// ErrorResponder answers every request that ended with an error recorded via c.Error and no
// response written yet. The last recorded error decides the status code:
//
//   - *apierr.Error carries its own status code,
//   - service.ErrContactNotFound is answered with 404,
//   - everything else is answered with 500.
//
// The body is an error envelope carrying the error message.
func ErrorResponder(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusOf(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed", "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
		}
		c.IndentedJSON(status, jsend.Error(err.Error()))
	}
}

// StatusOf maps an error onto the HTTP status code it is answered with.
func StatusOf(err error) int {
	if errors.Is(err, service.ErrContactNotFound) {
		return http.StatusNotFound
	}
	return apierr.StatusOf(err)
}

// Recovery turns a panic in a handler into a 500 answered by the ErrorResponder.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		abort(c, apierr.Internal(fmt.Errorf("%v", recovered)))
	})
}

// NotFound answers requests for unknown routes.
func NotFound(c *gin.Context) {
	abort(c, apierr.NotFound("Resource not found"))
}

// MethodNotAllowed answers requests with a verb that is not wired for a known route.
func MethodNotAllowed(c *gin.Context) {
	abort(c, apierr.MethodNotAllowed())
}
