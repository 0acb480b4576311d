package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"storecrm_backend/internal/models"
	"storecrm_backend/internal/repositories"
	"storecrm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingHandler exposes the key-value settings store. Settings are thin
// enough that the handler talks to the repository directly.
type SettingHandler struct {
	settingRepo repositories.SettingRepository
	db          *sql.DB
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(sr repositories.SettingRepository, db *sql.DB) *SettingHandler {
	return &SettingHandler{settingRepo: sr, db: db}
}

// GetSettings retrieves all application settings ordered by key.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingRepo.GetSettings()
	if err != nil {
		utils.LogError(err, "GetSettings: Error from settingRepo.GetSettings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch settings.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": settings})
}

// GetSetting retrieves a single setting by its key.
func (h *SettingHandler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	setting, err := h.settingRepo.GetSetting(key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Setting not found for key: "+key, ""))
			return
		}
		utils.LogError(err, "GetSetting: Error from settingRepo.GetSetting")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch setting.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, setting)
}

// UpsertSetting creates a setting or replaces the value of an existing one.
func (h *SettingHandler) UpsertSetting(c *gin.Context) {
	var setting models.Setting
	if err := c.ShouldBindJSON(&setting); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.settingRepo.UpsertSetting(h.db, &setting); err != nil {
		utils.LogError(err, "UpsertSetting: Error from settingRepo.UpsertSetting")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to save setting.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, setting)
}

// DeleteSetting removes a setting by its key.
func (h *SettingHandler) DeleteSetting(c *gin.Context) {
	key := c.Param("key")
	if err := h.settingRepo.DeleteSetting(h.db, key); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Setting not found for key: "+key, ""))
			return
		}
		utils.LogError(err, "DeleteSetting: Error from settingRepo.DeleteSetting")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete setting.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Setting '" + key + "' deleted successfully."})
}
