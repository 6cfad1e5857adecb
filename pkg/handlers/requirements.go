package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/afuentes/roster-api-go/pkg/models"
	"github.com/afuentes/roster-api-go/pkg/timeutil"
)

type requirementInput struct {
	Date       string `json:"date" binding:"required"`
	ShiftType  string `json:"shift_type" binding:"required"`
	Cooks      int    `json:"cooks"`
	Bartenders int    `json:"bartenders"`
	Barbacks   int    `json:"barbacks"`
	Notes      string `json:"notes"`
}

// UpsertRequirement creates or updates the explicit staffing
// requirement for (date, shift). Explicit rows always beat the weekly
// template during generation.
func (h *Handler) UpsertRequirement(c *gin.Context) {
	var req requirementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidShiftType(req.ShiftType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift_type must be open or close"})
		return
	}
	if req.Cooks < 0 || req.Bartenders < 0 || req.Barbacks < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "counts cannot be negative"})
		return
	}
	day, err := timeutil.ParseDate(req.Date, h.Loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row := models.ShiftRequirement{
		Date:      timeutil.FormatDate(day),
		ShiftType: req.ShiftType,
		RoleCounts: models.RoleCounts{
			Cooks:      req.Cooks,
			Bartenders: req.Bartenders,
			Barbacks:   req.Barbacks,
		},
		Notes: req.Notes,
	}

	err = h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}, {Name: "shift_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"cooks":      row.Cooks,
			"bartenders": row.Bartenders,
			"barbacks":   row.Barbacks,
			"notes":      row.Notes,
		}),
	}).Create(&row).Error
	if err != nil {
		h.Logger.Error("upsert requirement", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save requirement"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// ListRequirements returns explicit requirements in a date range.
func (h *Handler) ListRequirements(c *gin.Context) {
	q := h.DB.Order("date, shift_type")
	if start := c.Query("start"); start != "" {
		q = q.Where("date >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		q = q.Where("date <= ?", end)
	}

	var rows []models.ShiftRequirement
	if err := q.Find(&rows).Error; err != nil {
		h.Logger.Error("list requirements", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list requirements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requirements": rows})
}

// DeleteRequirement removes an explicit requirement; the weekly
// template takes over for that date/shift afterwards.
func (h *Handler) DeleteRequirement(c *gin.Context) {
	res := h.DB.Delete(&models.ShiftRequirement{}, c.Param("id"))
	if res.Error != nil {
		h.Logger.Error("delete requirement", zap.Error(res.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete requirement"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Requirement not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Requirement deleted"})
}
