package handlers

import (
	"errors"
	"net/http"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

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

// CreateReservation books a party.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reservation, err := h.reservationService.CreateReservation(db, req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateReservation: Error from reservationService")
			respondInternal(c, "Failed to create reservation.")
		}
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// GetReservations lists reservations, optionally filtered by date and status.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	filters := models.ReservationFilters{
		Date:   optionalQueryString(c, "date"),
		Status: optionalQueryString(c, "status"),
	}

	reservations, err := h.reservationService.GetReservations(db, filters)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReservationStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		} else {
			utils.LogError(err, "GetReservations: Error from reservationService")
			respondInternal(c, "Failed to retrieve reservations.")
		}
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReservation retrieves one reservation.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservationByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", err.Error()))
		} else {
			utils.LogError(err, "GetReservation: Error from reservationService")
			respondInternal(c, "Failed to retrieve reservation.")
		}
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation replaces a reservation's fields.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reservation, err := h.reservationService.UpdateReservation(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidReservationStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		default:
			utils.LogError(err, "UpdateReservation: Error from reservationService")
			respondInternal(c, "Failed to update reservation.")
		}
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservationStatus moves a reservation through its lifecycle.
func (h *ReservationHandler) UpdateReservationStatus(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reservation, err := h.reservationService.UpdateReservationStatus(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", err.Error()))
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Assigned table not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidReservationStatus),
			errors.Is(err, services.ErrReservationNeedsTable):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, err.Error(), ""))
		default:
			utils.LogError(err, "UpdateReservationStatus: Error from reservationService")
			respondInternal(c, "Failed to update reservation status.")
		}
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation removes a reservation.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.reservationService.DeleteReservation(db, id); err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteReservation: Error from reservationService")
			respondInternal(c, "Failed to delete reservation.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully."})
}
