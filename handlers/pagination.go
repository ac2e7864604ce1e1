package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads page/limit query parameters with the usual bounds.
func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset = (page - 1) * limit
	return page, limit, offset
}
