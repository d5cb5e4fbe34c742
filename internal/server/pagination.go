package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parsePage reads the page query parameter; anything that is not a positive
// integer falls back to the first page.
func parsePage(c *gin.Context) int {
	page := 1
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			page = value
		}
	}
	return page
}
