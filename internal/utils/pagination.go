package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginationParams is a page window over a newest-first listing.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// GetPaginationParams reads page and limit from the query. Pages start at 1.
// A missing or non-positive limit falls back to defaultLimit; larger limits
// are clamped to maxLimit.
func GetPaginationParams(c *gin.Context, defaultLimit, maxLimit int) PaginationParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	switch {
	case err != nil || limit < 1:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
