package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paginationParams reads ?skip= (or ?offset=) and ?limit=; malformed or
// negative values fall back to zero and the repos apply their own defaults
// and caps.
func paginationParams(c *gin.Context) (offset, limit int) {
	raw := c.Query("skip")
	if raw == "" {
		raw = c.Query("offset")
	}
	if v, err := strconv.Atoi(raw); err == nil && v > 0 {
		offset = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	return offset, limit
}
