package handlers

import (
	"errors"
	"net/http"

	"storecrm_backend/internal/services"
	"storecrm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RevenueHandler holds the revenue service.
type RevenueHandler struct {
	revenueService services.RevenueService
}

// NewRevenueHandler creates a new RevenueHandler.
func NewRevenueHandler(rs services.RevenueService) *RevenueHandler {
	return &RevenueHandler{revenueService: rs}
}

func respondRevenueError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrRevenueNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Revenue record not found.", ""))
	case errors.Is(err, services.ErrStoreNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store not found.", ""))
	case errors.Is(err, services.ErrRevenueItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Revenue item not found.", ""))
	case errors.Is(err, services.ErrComplimentNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Revenue compliment not found.", ""))
	case errors.Is(err, services.ErrRevenueTypeNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Revenue type not found.", ""))
	case errors.Is(err, services.ErrRevenueExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A revenue record already exists for this store and date.", ""))
	case errors.Is(err, services.ErrItemRevenueMismatch):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Record does not belong to this revenue.", ""))
	case errors.Is(err, services.ErrRevenueDateFormat),
		errors.Is(err, services.ErrNegativeItemAmount),
		errors.Is(err, services.ErrRevenueValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	default:
		utils.LogError(err, action)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Revenue operation failed.", "Internal error"))
	}
}

// CreateRevenue handles the creation of a daily revenue record.
func (h *RevenueHandler) CreateRevenue(c *gin.Context) {
	var req services.CreateRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	revenue, err := h.revenueService.CreateRevenue(req, actorID(c))
	if err != nil {
		respondRevenueError(c, err, "CreateRevenue: Error from revenueService.CreateRevenue")
		return
	}
	c.JSON(http.StatusCreated, revenue)
}

// GetRevenues handles fetching all revenue records with pagination and search.
func (h *RevenueHandler) GetRevenues(c *gin.Context) {
	opts := parseListOptions(c)
	revenues, total, err := h.revenueService.GetRevenues(opts)
	if err != nil {
		utils.LogError(err, "GetRevenues: Error from revenueService.GetRevenues")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch revenues.", "Internal error"))
		return
	}
	respondList(c, revenues, total, opts)
}

// GetRevenueDetail handles fetching the full read model of a revenue record:
// items, compliments, totals and achievement against the monthly target.
func (h *RevenueHandler) GetRevenueDetail(c *gin.Context) {
	revenueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.revenueService.GetRevenueDetail(revenueID)
	if err != nil {
		respondRevenueError(c, err, "GetRevenueDetail: Error from revenueService.GetRevenueDetail")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateRevenue handles updating a revenue record.
func (h *RevenueHandler) UpdateRevenue(c *gin.Context) {
	revenueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	revenue, err := h.revenueService.UpdateRevenue(revenueID, req, actorID(c))
	if err != nil {
		respondRevenueError(c, err, "UpdateRevenue: Error from revenueService.UpdateRevenue")
		return
	}
	c.JSON(http.StatusOK, revenue)
}

// DeleteRevenue handles deleting a revenue record with its items and compliments.
func (h *RevenueHandler) DeleteRevenue(c *gin.Context) {
	revenueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.revenueService.DeleteRevenue(revenueID); err != nil {
		respondRevenueError(c, err, "DeleteRevenue: Error from revenueService.DeleteRevenue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Revenue record deleted successfully."})
}

// AddItem handles attaching a typed line item to a revenue record.
func (h *RevenueHandler) AddItem(c *gin.Context) {
	revenueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateRevenueItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.revenueService.AddItem(revenueID, req, actorID(c))
	if err != nil {
		respondRevenueError(c, err, "AddItem: Error from revenueService.AddItem")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles modifying a line item on a revenue record.
func (h *RevenueHandler) UpdateItem(c *gin.Context) {
	revenueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	var req services.UpdateRevenueItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.revenueService.UpdateItem(revenueID, itemID, req, actorID(c))
	if err != nil {
		respondRevenueError(c, err, "UpdateItem: Error from revenueService.UpdateItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles removing a line item from a revenue record.
func (h *RevenueHandler) DeleteItem(c *gin.Context) {
	revenueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	if err := h.revenueService.DeleteItem(revenueID, itemID); err != nil {
		respondRevenueError(c, err, "DeleteItem: Error from revenueService.DeleteItem")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Revenue item deleted successfully."})
}

// AddCompliment handles attaching a compliment to a revenue record.
func (h *RevenueHandler) AddCompliment(c *gin.Context) {
	revenueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateComplimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	compliment, err := h.revenueService.AddCompliment(revenueID, req, actorID(c))
	if err != nil {
		respondRevenueError(c, err, "AddCompliment: Error from revenueService.AddCompliment")
		return
	}
	c.JSON(http.StatusCreated, compliment)
}

// UpdateCompliment handles modifying a compliment on a revenue record.
func (h *RevenueHandler) UpdateCompliment(c *gin.Context) {
	revenueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	complimentID, ok := parseIDParam(c, "compliment_id")
	if !ok {
		return
	}

	var req services.UpdateComplimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	compliment, err := h.revenueService.UpdateCompliment(revenueID, complimentID, req, actorID(c))
	if err != nil {
		respondRevenueError(c, err, "UpdateCompliment: Error from revenueService.UpdateCompliment")
		return
	}
	c.JSON(http.StatusOK, compliment)
}

// DeleteCompliment handles removing a compliment from a revenue record.
func (h *RevenueHandler) DeleteCompliment(c *gin.Context) {
	revenueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	complimentID, ok := parseIDParam(c, "compliment_id")
	if !ok {
		return
	}

	if err := h.revenueService.DeleteCompliment(revenueID, complimentID); err != nil {
		respondRevenueError(c, err, "DeleteCompliment: Error from revenueService.DeleteCompliment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Revenue compliment deleted successfully."})
}

// SendWhatsAppReport handles sending the daily revenue report to the store's
// WhatsApp number. A failed send is reported in the body, not as an error
// status.
func (h *RevenueHandler) SendWhatsAppReport(c *gin.Context) {
	revenueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.revenueService.SendWhatsAppReport(revenueID)
	if err != nil {
		respondRevenueError(c, err, "SendWhatsAppReport: Error from revenueService.SendWhatsAppReport")
		return
	}
	c.JSON(http.StatusOK, gin.H{"whatsapp": status})
}
