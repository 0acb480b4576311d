package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storecrm_backend/internal/services"
	"storecrm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetDashboardSummary handles fetching entity counts and recent activity for
// the dashboard.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.reportService.GetDashboardSummary()
	if err != nil {
		utils.LogError(err, "GetDashboardSummary: Error from reportService.GetDashboardSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build dashboard summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportMonthlyRevenues streams an XLSX workbook of a store's revenues for
// the requested month. Year and month default to the current date.
func (h *ReportHandler) ExportMonthlyRevenues(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Query("store_id"), 10, 64)
	if err != nil || storeID <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Query parameter 'store_id' must be a positive integer.", ""))
		return
	}

	now := time.Now()
	year := now.Year()
	month := int(now.Month())
	if raw := c.Query("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Query parameter 'year' must be an integer.", ""))
			return
		}
	}
	if raw := c.Query("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil || month < 1 || month > 12 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Query parameter 'month' must be between 1 and 12.", ""))
			return
		}
	}

	file, filename, err := h.reportService.ExportMonthlyRevenues(storeID, year, month)
	if err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store not found.", ""))
			return
		}
		utils.LogError(err, "ExportMonthlyRevenues: Error from reportService.ExportMonthlyRevenues")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export revenues.", "Internal error"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", xlsxContentType)
	if err := file.Write(c.Writer); err != nil {
		utils.LogError(err, "ExportMonthlyRevenues: Error writing workbook to response")
	}
}
