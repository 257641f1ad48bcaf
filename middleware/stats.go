package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/copyforge/backend/logging"
)

// Tracking records unique visitors and, for analysis endpoints, request
// latency and error status. Statistics are flushed to disk every hundred
// analysis requests.
func Tracking(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		if c.Request.Method == http.MethodPost && isAnalysisPath(c.Request.URL.Path) {
			latency := float64(time.Since(start).Milliseconds())
			stats.TrackAnalysis(latency, c.Writer.Status() >= 400)

			// Save asynchronously to not block the request
			if stats.TotalRequests()%100 == 0 {
				go stats.Save()
			}
		}
	}
}

func isAnalysisPath(path string) bool {
	kind := strings.TrimPrefix(path, "/api/analytics/")
	switch kind {
	case "readability", "sentiment", "seo", "engagement", "full", "url":
		return true
	}
	return false
}
