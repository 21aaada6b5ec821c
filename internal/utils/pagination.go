package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/constants"
)

// ListParams holds the search, sort and page requested for a listing.
type ListParams struct {
	Query string
	Sort  string
	Page  int
}

// PaginationParams holds the resolved window of a listing.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
	// Empty is set when the offset of Page cannot be represented; the window selects no rows
	Empty bool
}

// Page is the pagination metadata returned with every listing.
type Page struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// GetListParams extracts q, sort and page from the request.
// A missing sort means "name"; a missing or invalid page means the first page.
func GetListParams(c *gin.Context) ListParams {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = constants.MinPage
	}

	return ListParams{
		Query: strings.TrimSpace(c.Query("q")),
		Sort:  c.DefaultQuery("sort", "name"),
		Page:  NormalizePage(page),
	}
}

// NormalizePage clamps page numbers below the first page.
func NormalizePage(page int) int {
	if page < constants.MinPage {
		return constants.MinPage
	}
	return page
}

// NewPaginationParams resolves a 1-based page and fixed page size into an offset.
func NewPaginationParams(page, pageSize int) PaginationParams {
	page = NormalizePage(page)
	if pageSize > 0 && page-1 > math.MaxInt32/pageSize {
		return PaginationParams{Page: page, Limit: pageSize, Empty: true}
	}
	return PaginationParams{
		Page:   page,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
}

// NewPage builds pagination metadata for a listing of total rows.
func NewPage(page, pageSize int, total int64) Page {
	page = NormalizePage(page)

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}

	return Page{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
