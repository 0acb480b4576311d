package handlers

import (
	"errors"
	"net/http"

	"storecrm_backend/internal/services"
	"storecrm_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReservationHandler holds the reservation service.
type ReservationHandler struct {
	reservationService services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(rs services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

func respondReservationError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrReservationNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", ""))
	case errors.Is(err, services.ErrCustomerNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Customer not found.", ""))
	case errors.Is(err, services.ErrStoreNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Store not found.", ""))
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrDateFormat),
		errors.Is(err, services.ErrReservationValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	default:
		utils.LogError(err, action)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Reservation operation failed.", "Internal error"))
	}
}

// CreateReservation handles the creation of a new reservation. When the
// request asks for it, a WhatsApp confirmation goes out to the customer and
// its outcome is reported alongside the stored record.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req services.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.reservationService.CreateReservation(req, actorID(c))
	if err != nil {
		respondReservationError(c, err, "CreateReservation: Error from reservationService.CreateReservation")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetReservations handles fetching all reservations with pagination and search.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	opts := parseListOptions(c)
	reservations, total, err := h.reservationService.GetReservations(opts)
	if err != nil {
		utils.LogError(err, "GetReservations: Error from reservationService.GetReservations")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservations.", "Internal error"))
		return
	}
	respondList(c, reservations, total, opts)
}

// GetReservationByID handles fetching a single reservation by ID.
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservationByID(reservationID)
	if err != nil {
		respondReservationError(c, err, "GetReservationByID: Error from reservationService.GetReservationByID")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation handles updating a reservation.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.reservationService.UpdateReservation(reservationID, req, actorID(c))
	if err != nil {
		respondReservationError(c, err, "UpdateReservation: Error from reservationService.UpdateReservation")
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteReservation handles deleting a reservation.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationService.DeleteReservation(reservationID); err != nil {
		respondReservationError(c, err, "DeleteReservation: Error from reservationService.DeleteReservation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully."})
}
