package handlers

import (
	"errors"
	"net/http"

	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// CreateStaff registers a staff member.
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staff, err := h.staffService.CreateStaff(db, req)
	if err != nil {
		utils.LogError(err, "CreateStaff: Error from staffService")
		respondInternal(c, "Failed to create staff member.")
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// GetStaff lists staff members.
func (h *StaffHandler) GetStaff(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	staff, err := h.staffService.GetStaff(db)
	if err != nil {
		utils.LogError(err, "GetStaff: Error from staffService")
		respondInternal(c, "Failed to retrieve staff.")
		return
	}
	c.JSON(http.StatusOK, staff)
}

// GetStaffMember retrieves one staff member.
func (h *StaffHandler) GetStaffMember(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	staff, err := h.staffService.GetStaffByID(db, id)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.LogError(err, "GetStaffMember: Error from staffService")
			respondInternal(c, "Failed to retrieve staff member.")
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaff replaces a staff member's fields.
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staff, err := h.staffService.UpdateStaff(db, id, req)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.LogError(err, "UpdateStaff: Error from staffService")
			respondInternal(c, "Failed to update staff member.")
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// DeleteStaff removes a staff member.
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.staffService.DeleteStaff(db, id); err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteStaff: Error from staffService")
			respondInternal(c, "Failed to delete staff member.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully."})
}

// GetRoles lists distinct staff roles.
func (h *StaffHandler) GetRoles(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	roles, err := h.staffService.GetRoles(db)
	if err != nil {
		utils.LogError(err, "GetRoles: Error from staffService")
		respondInternal(c, "Failed to retrieve roles.")
		return
	}
	c.JSON(http.StatusOK, roles)
}

// ClockIn opens a shift for a staff member.
func (h *StaffHandler) ClockIn(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	shift, err := h.staffService.ClockIn(db, req)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.LogError(err, "ClockIn: Error from staffService")
			respondInternal(c, "Failed to clock in.")
		}
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// ClockOut closes an open shift.
func (h *StaffHandler) ClockOut(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	shift, err := h.staffService.ClockOut(db, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrShiftNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
		case errors.Is(err, services.ErrShiftAlreadyClosed):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Shift is already clocked out.", err.Error()))
		default:
			utils.LogError(err, "ClockOut: Error from staffService")
			respondInternal(c, "Failed to clock out.")
		}
		return
	}
	c.JSON(http.StatusOK, shift)
}

// GetShifts lists shifts, optionally for one staff member.
func (h *StaffHandler) GetShifts(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	shifts, err := h.staffService.GetShifts(db, optionalQueryInt64(c, "staff_id"))
	if err != nil {
		utils.LogError(err, "GetShifts: Error from staffService")
		respondInternal(c, "Failed to retrieve shifts.")
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// DeleteShift removes a shift record.
func (h *StaffHandler) DeleteShift(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.staffService.DeleteShift(db, id); err != nil {
		if errors.Is(err, services.ErrShiftNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteShift: Error from staffService")
			respondInternal(c, "Failed to delete shift.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted successfully."})
}

// RecordSalaryPayment records one payout to a staff member.
func (h *StaffHandler) RecordSalaryPayment(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	var req services.SalaryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	payment, err := h.staffService.RecordSalaryPayment(db, req)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.LogError(err, "RecordSalaryPayment: Error from staffService")
			respondInternal(c, "Failed to record salary payment.")
		}
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetSalaryPayments lists salary payments, optionally for one staff member.
func (h *StaffHandler) GetSalaryPayments(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	payments, err := h.staffService.GetSalaryPayments(db, optionalQueryInt64(c, "staff_id"))
	if err != nil {
		utils.LogError(err, "GetSalaryPayments: Error from staffService")
		respondInternal(c, "Failed to retrieve salary payments.")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// DeleteSalaryPayment removes a salary payment record.
func (h *StaffHandler) DeleteSalaryPayment(c *gin.Context) {
	db, ok := mustTenantDB(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.staffService.DeleteSalaryPayment(db, id); err != nil {
		if errors.Is(err, services.ErrSalaryPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Salary payment not found.", err.Error()))
		} else {
			utils.LogError(err, "DeleteSalaryPayment: Error from staffService")
			respondInternal(c, "Failed to delete salary payment.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Salary payment deleted successfully."})
}
