package handlers

import (
	"net/http"
	"strconv"

	"storecrm_backend/internal/repositories"
	"storecrm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a path parameter as an int64 ID. On failure it writes
// a 400 response and returns false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", err.Error()))
		return 0, false
	}
	return id, true
}

// parseListOptions reads the common pagination, search and sort query params.
func parseListOptions(c *gin.Context) repositories.ListOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(repositories.DefaultPageSize)))
	opts := repositories.ListOptions{
		Page:      page,
		PageSize:  pageSize,
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	opts.Normalize()
	return opts
}

// actorID returns the authenticated user's ID set by the auth middleware.
func actorID(c *gin.Context) int64 {
	if v, exists := c.Get("userID"); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// respondList writes the standard paginated list envelope.
func respondList(c *gin.Context, data interface{}, total int, opts repositories.ListOptions) {
	c.JSON(http.StatusOK, gin.H{
		"data":      data,
		"total":     total,
		"page":      opts.Page,
		"page_size": opts.PageSize,
	})
}
