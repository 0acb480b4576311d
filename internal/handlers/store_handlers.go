package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storecrm_backend/internal/repositories"
	"storecrm_backend/internal/services"
	"storecrm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StoreHandler holds the store and target services.
type StoreHandler struct {
	storeService  services.StoreService
	targetService services.TargetService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(ss services.StoreService, ts services.TargetService) *StoreHandler {
	return &StoreHandler{storeService: ss, targetService: ts}
}

// CreateStore handles the creation of a new store.
func (h *StoreHandler) CreateStore(c *gin.Context) {
	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	store, err := h.storeService.CreateStore(req, actorID(c))
	if err != nil {
		utils.LogError(err, "CreateStore: Error from storeService.CreateStore")
		if errors.Is(err, services.ErrStoreValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create store.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, store)
}

// GetStores handles fetching all stores with pagination and search.
// With ?all=true it returns the full unpaginated list for selection inputs.
func (h *StoreHandler) GetStores(c *gin.Context) {
	if c.Query("all") == "true" {
		stores, err := h.storeService.GetAllStores()
		if err != nil {
			utils.LogError(err, "GetStores: Error from storeService.GetAllStores")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stores.", "Internal error"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": stores})
		return
	}

	opts := parseListOptions(c)
	stores, total, err := h.storeService.GetStores(opts)
	if err != nil {
		utils.LogError(err, "GetStores: Error from storeService.GetStores")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stores.", "Internal error"))
		return
	}
	respondList(c, stores, total, opts)
}

// GetStoreByID handles fetching a single store by ID.
func (h *StoreHandler) GetStoreByID(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.storeService.GetStoreByID(storeID)
	if err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store not found.", ""))
		} else {
			utils.LogError(err, "GetStoreByID: Error from storeService.GetStoreByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch store.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, store)
}

// UpdateStore handles updating a store.
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	store, err := h.storeService.UpdateStore(storeID, req, actorID(c))
	if err != nil {
		utils.LogError(err, "UpdateStore: Error from storeService.UpdateStore")
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store not found.", ""))
		} else if errors.Is(err, services.ErrStoreValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update store.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, store)
}

// DeleteStore handles deleting a store.
func (h *StoreHandler) DeleteStore(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.storeService.DeleteStore(storeID); err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store not found.", ""))
		} else {
			utils.LogError(err, "DeleteStore: Error from storeService.DeleteStore")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete store.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Store deleted successfully."})
}

// GetStoreCustomers lists the customers linked to a store.
func (h *StoreHandler) GetStoreCustomers(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	opts := parseListOptions(c)

	customers, total, err := h.storeService.GetStoreCustomers(storeID, opts.Page, opts.PageSize)
	if err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store not found.", ""))
		} else {
			utils.LogError(err, "GetStoreCustomers: Error from storeService.GetStoreCustomers")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch store customers.", "Internal error"))
		}
		return
	}
	respondList(c, customers, total, opts)
}

// AttachCustomer links a customer to a store.
func (h *StoreHandler) AttachCustomer(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "customer_id")
	if !ok {
		return
	}

	if err := h.storeService.AttachCustomer(storeID, customerID); err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store or customer not found.", ""))
		} else {
			utils.LogError(err, "AttachCustomer: Error from storeService.AttachCustomer")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to attach customer.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer attached to store."})
}

// DetachCustomer removes a customer's link to a store.
func (h *StoreHandler) DetachCustomer(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c, "customer_id")
	if !ok {
		return
	}

	if err := h.storeService.DetachCustomer(storeID, customerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Association not found.", ""))
		} else {
			utils.LogError(err, "DetachCustomer: Error from storeService.DetachCustomer")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to detach customer.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer detached from store."})
}

// SetTarget creates or replaces a store's monthly revenue target.
func (h *StoreHandler) SetTarget(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SetTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	target, err := h.targetService.SetTarget(storeID, req, actorID(c))
	if err != nil {
		utils.LogError(err, "SetTarget: Error from targetService.SetTarget")
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store not found.", ""))
		} else if errors.Is(err, services.ErrTargetValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to set target.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, target)
}

// GetTargets lists a store's targets for a year, defaulting to the current one.
func (h *StoreHandler) GetTargets(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid year format.", err.Error()))
		return
	}

	targets, err := h.targetService.GetTargetsForStore(storeID, year)
	if err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store not found.", ""))
		} else {
			utils.LogError(err, "GetTargets: Error from targetService.GetTargetsForStore")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch targets.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": targets, "year": year})
}

// GetTargetAchievement reports a store's month against its target.
func (h *StoreHandler) GetTargetAchievement(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid year format.", err.Error()))
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid month format.", err.Error()))
		return
	}

	achievement, err := h.targetService.GetTargetAchievement(storeID, year, month)
	if err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store not found.", ""))
		} else if errors.Is(err, services.ErrTargetValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "GetTargetAchievement: Error from targetService.GetTargetAchievement")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute achievement.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, achievement)
}

// DeleteTarget removes a target belonging to the store in the path.
func (h *StoreHandler) DeleteTarget(c *gin.Context) {
	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "target_id")
	if !ok {
		return
	}

	if err := h.targetService.DeleteTarget(storeID, targetID); err != nil {
		if errors.Is(err, services.ErrTargetNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Target not found.", ""))
		} else {
			utils.LogError(err, "DeleteTarget: Error from targetService.DeleteTarget")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete target.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Target deleted successfully."})
}
