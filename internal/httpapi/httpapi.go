// Package httpapi holds the gin boundary helpers: error rendering and
// request logging.
package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"matchday-backend/internal/apperr"
	"matchday-backend/internal/i18n"
)

// Fail renders err as a JSON body with a fixed status per error kind.
// The message is localized from the Accept-Language header; the code and
// args travel alongside so clients can render their own copy.
func Fail(c *gin.Context, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindInternal {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("internal error")
	}

	body := gin.H{
		"code":    e.Code,
		"message": i18n.Localize(c.GetHeader("Accept-Language"), e.Code, e.Args),
	}
	if len(e.Args) > 0 {
		body["args"] = e.Args
	}
	c.AbortWithStatusJSON(e.Kind.HTTPStatus(), body)
}

// Message renders a localized informational message.
func Message(c *gin.Context, status int, code string) {
	c.JSON(status, gin.H{
		"message": i18n.Localize(c.GetHeader("Accept-Language"), code, nil),
	})
}

// RequestLogger emits one structured log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
