package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/afuentes/roster-api-go/pkg/models"
	"github.com/afuentes/roster-api-go/pkg/timeutil"
)

type availabilityInput struct {
	EmployeeID  uint   `json:"employee_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	ShiftType   string `json:"shift_type"` // empty = whole day
	IsAvailable *bool  `json:"is_available" binding:"required"`
	Notes       string `json:"notes"`
}

// UpsertAvailability creates or updates the availability entry for
// (employee, date, shift). One row per key; repeated submissions
// overwrite the flag and notes.
func (h *Handler) UpsertAvailability(c *gin.Context) {
	var req availabilityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ShiftType != "" && !models.ValidShiftType(req.ShiftType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift_type must be open, close, or omitted for whole-day"})
		return
	}
	day, err := timeutil.ParseDate(req.Date, h.Loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var emp models.Employee
	if err := h.DB.First(&emp, req.EmployeeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	entry := models.AvailabilityEntry{
		EmployeeID:  req.EmployeeID,
		Date:        timeutil.FormatDate(day),
		ShiftType:   req.ShiftType,
		IsAvailable: *req.IsAvailable,
		Notes:       req.Notes,
	}

	err = h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "date"}, {Name: "shift_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_available": entry.IsAvailable,
			"notes":        entry.Notes,
		}),
	}).Create(&entry).Error
	if err != nil {
		h.Logger.Error("upsert availability", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save availability"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ListAvailability returns availability entries, filtered by date
// range and optionally by employee.
func (h *Handler) ListAvailability(c *gin.Context) {
	q := h.DB.Order("date, employee_id, shift_type")
	if start := c.Query("start"); start != "" {
		q = q.Where("date >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		q = q.Where("date <= ?", end)
	}
	if emp := c.Query("employee_id"); emp != "" {
		q = q.Where("employee_id = ?", emp)
	}

	var entries []models.AvailabilityEntry
	if err := q.Find(&entries).Error; err != nil {
		h.Logger.Error("list availability", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": entries})
}

// DeleteAvailability removes an availability entry, restoring the
// default-available state for its slot.
func (h *Handler) DeleteAvailability(c *gin.Context) {
	res := h.DB.Delete(&models.AvailabilityEntry{}, c.Param("id"))
	if res.Error != nil {
		h.Logger.Error("delete availability", zap.Error(res.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete availability entry"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Availability entry not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability entry deleted"})
}
