package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Params holds pagination parameters from request
type Params struct {
	Limit  int
	Offset int
}

// Meta holds pagination metadata for response
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// NewMeta creates pagination metadata from params and total count
func NewMeta(params Params, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: params.Offset+params.Limit < total,
	}
}

// FromQuery reads limit/offset query parameters with defaults applied
// defaultLimit: default items per page, maxLimit: maximum allowed limit
func FromQuery(c *gin.Context, defaultLimit, maxLimit int) Params {
	limit := queryInt(c, "limit", defaultLimit)
	offset := queryInt(c, "offset", 0)

	if limit <= 0 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	if offset < 0 {
		offset = 0
	}

	return Params{
		Limit:  limit,
		Offset: offset,
	}
}

// Page returns the slice window the params select, clamped to its bounds
func Page[T any](items []T, params Params) []T {
	if params.Offset >= len(items) {
		return []T{}
	}

	end := params.Offset + params.Limit
	if end > len(items) {
		end = len(items)
	}

	return items[params.Offset:end]
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return parsed
}
