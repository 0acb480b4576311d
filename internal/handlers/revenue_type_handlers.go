package handlers

import (
	"errors"
	"net/http"

	"storecrm_backend/internal/services"
	"storecrm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RevenueTypeHandler holds the revenue type service.
type RevenueTypeHandler struct {
	revenueTypeService services.RevenueTypeService
}

// NewRevenueTypeHandler creates a new RevenueTypeHandler.
func NewRevenueTypeHandler(rts services.RevenueTypeService) *RevenueTypeHandler {
	return &RevenueTypeHandler{revenueTypeService: rts}
}

// CreateRevenueType handles the creation of a new revenue type.
func (h *RevenueTypeHandler) CreateRevenueType(c *gin.Context) {
	var req services.CreateRevenueTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	revenueType, err := h.revenueTypeService.CreateRevenueType(req, actorID(c))
	if err != nil {
		utils.LogError(err, "CreateRevenueType: Error from revenueTypeService.CreateRevenueType")
		if errors.Is(err, services.ErrRevenueTypeExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Revenue type name already exists.", ""))
		} else if errors.Is(err, services.ErrRevenueValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create revenue type.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, revenueType)
}

// SearchRevenueTypes handles the autocomplete lookup over ?q=.
func (h *RevenueTypeHandler) SearchRevenueTypes(c *gin.Context) {
	results, err := h.revenueTypeService.SearchRevenueTypes(c.Query("q"))
	if err != nil {
		utils.LogError(err, "SearchRevenueTypes: Error from revenueTypeService.SearchRevenueTypes")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to search revenue types.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": results})
}

// GetRevenueTypes handles fetching all revenue types with pagination and
// search. With ?all=true it returns the full list for selection inputs, and
// with ?q= it performs the autocomplete lookup.
func (h *RevenueTypeHandler) GetRevenueTypes(c *gin.Context) {
	if c.Query("q") != "" {
		h.SearchRevenueTypes(c)
		return
	}
	if c.Query("all") == "true" {
		revenueTypes, err := h.revenueTypeService.GetAllRevenueTypes()
		if err != nil {
			utils.LogError(err, "GetRevenueTypes: Error from revenueTypeService.GetAllRevenueTypes")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch revenue types.", "Internal error"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": revenueTypes})
		return
	}

	opts := parseListOptions(c)
	revenueTypes, total, err := h.revenueTypeService.GetRevenueTypes(opts)
	if err != nil {
		utils.LogError(err, "GetRevenueTypes: Error from revenueTypeService.GetRevenueTypes")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch revenue types.", "Internal error"))
		return
	}
	respondList(c, revenueTypes, total, opts)
}

// GetRevenueTypeByID handles fetching a single revenue type by ID.
func (h *RevenueTypeHandler) GetRevenueTypeByID(c *gin.Context) {
	typeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	revenueType, err := h.revenueTypeService.GetRevenueTypeByID(typeID)
	if err != nil {
		if errors.Is(err, services.ErrRevenueTypeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Revenue type not found.", ""))
		} else {
			utils.LogError(err, "GetRevenueTypeByID: Error from revenueTypeService.GetRevenueTypeByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch revenue type.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, revenueType)
}

// UpdateRevenueType handles updating a revenue type.
func (h *RevenueTypeHandler) UpdateRevenueType(c *gin.Context) {
	typeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateRevenueTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	revenueType, err := h.revenueTypeService.UpdateRevenueType(typeID, req, actorID(c))
	if err != nil {
		utils.LogError(err, "UpdateRevenueType: Error from revenueTypeService.UpdateRevenueType")
		if errors.Is(err, services.ErrRevenueTypeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Revenue type not found.", ""))
		} else if errors.Is(err, services.ErrRevenueTypeExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Revenue type name already exists.", ""))
		} else if errors.Is(err, services.ErrRevenueValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update revenue type.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, revenueType)
}

// DeleteRevenueType handles deleting a revenue type. Types referenced by
// revenue items cannot be removed.
func (h *RevenueTypeHandler) DeleteRevenueType(c *gin.Context) {
	typeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.revenueTypeService.DeleteRevenueType(typeID); err != nil {
		if errors.Is(err, services.ErrRevenueTypeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Revenue type not found.", ""))
		} else if errors.Is(err, services.ErrRevenueTypeInUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Revenue type is referenced by revenue items.", ""))
		} else {
			utils.LogError(err, "DeleteRevenueType: Error from revenueTypeService.DeleteRevenueType")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete revenue type.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Revenue type deleted successfully."})
}
