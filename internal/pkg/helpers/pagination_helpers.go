package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParseLimitOffset extracts limit/offset query parameters.
// Missing or invalid values fall back to the defaults (limit 10, offset 0).
func ParseLimitOffset(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// CalculateSliceIndices returns the [start, end) window for limit/offset over totalItems
func CalculateSliceIndices(limit, offset, totalItems int) (start, end int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	start = offset
	if start > totalItems {
		start = totalItems
	}
	end = totalItems
	if limit < totalItems-start {
		end = start + limit
	}
	return start, end
}

// Page returns the limit/offset window of items
func Page[T any](items []T, limit, offset int) []T {
	start, end := CalculateSliceIndices(limit, offset, len(items))
	return items[start:end]
}
