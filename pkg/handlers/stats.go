package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afuentes/roster-api-go/pkg/models"
)

// ScheduleStats summarizes how evenly a date range's shifts are
// distributed: per-employee assignment counts plus totals. Useful for
// eyeballing fairness after a generation run.
func (h *Handler) ScheduleStats(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end are required"})
		return
	}

	var rows []struct {
		EmployeeID uint   `json:"employee_id"`
		Name       string `json:"name"`
		Role       string `json:"role"`
		Shifts     int64  `json:"shifts"`
	}
	err := h.DB.Model(&models.Schedule{}).
		Select("schedules.employee_id, employees.name, employees.role, count(*) as shifts").
		Joins("JOIN employees ON employees.id = schedules.employee_id").
		Where("schedules.date >= ? AND schedules.date <= ?", start, end).
		Group("schedules.employee_id, employees.name, employees.role").
		Order("shifts desc, employees.name").
		Scan(&rows).Error
	if err != nil {
		h.Logger.Error("schedule stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute stats"})
		return
	}

	var total int64
	for _, r := range rows {
		total += r.Shifts
	}

	c.JSON(http.StatusOK, gin.H{
		"start":        start,
		"end":          end,
		"total_shifts": total,
		"employees":    rows,
	})
}
