package middlewares

import (
	"acelera/src/lib"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestMetrics records latency by route template, so ids do not explode
// the label set.
func RequestMetrics(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()
	route := ctx.FullPath()
	if route == "" {
		route = "unmatched"
	}
	lib.HTTPDuration.
		WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).
		Observe(time.Since(start).Seconds())
}
