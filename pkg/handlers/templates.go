package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afuentes/roster-api-go/pkg/models"
)

type templateRowInput struct {
	Name       string `json:"name" binding:"required"`
	DayOfWeek  *int   `json:"day_of_week" binding:"required"`
	ShiftType  string `json:"shift_type" binding:"required"`
	Cooks      int    `json:"cooks"`
	Bartenders int    `json:"bartenders"`
	Barbacks   int    `json:"barbacks"`
	IsActive   *bool  `json:"is_active"`
}

// UpsertTemplateRow creates or updates one (name, day-of-week, shift)
// slot of a weekly template.
func (h *Handler) UpsertTemplateRow(c *gin.Context) {
	var req templateRowInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day_of_week must be 0 (Sunday) through 6 (Saturday)"})
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

	row := models.WeeklyScheduleTemplate{
		Name:      req.Name,
		DayOfWeek: *req.DayOfWeek,
		ShiftType: req.ShiftType,
		RoleCounts: models.RoleCounts{
			Cooks:      req.Cooks,
			Bartenders: req.Bartenders,
			Barbacks:   req.Barbacks,
		},
		IsActive: true,
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}

	err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}, {Name: "day_of_week"}, {Name: "shift_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"cooks":      row.Cooks,
			"bartenders": row.Bartenders,
			"barbacks":   row.Barbacks,
			"is_active":  row.IsActive,
		}),
	}).Create(&row).Error
	if err != nil {
		h.Logger.Error("upsert template row", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save template row"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// ListTemplates returns template rows, optionally for one name only.
func (h *Handler) ListTemplates(c *gin.Context) {
	q := h.DB.Order("name, day_of_week, shift_type")
	if name := c.Query("name"); name != "" {
		q = q.Where("name = ?", name)
	}

	var rows []models.WeeklyScheduleTemplate
	if err := q.Find(&rows).Error; err != nil {
		h.Logger.Error("list templates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": rows})
}

// ActivateTemplate marks one template name active and every other
// template inactive, so the generation fallback is unambiguous.
func (h *Handler) ActivateTemplate(c *gin.Context) {
	name := c.Param("name")

	var count int64
	h.DB.Model(&models.WeeklyScheduleTemplate{}).Where("name = ?", name).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.WeeklyScheduleTemplate{}).
			Where("name <> ?", name).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.WeeklyScheduleTemplate{}).
			Where("name = ?", name).
			Update("is_active", true).Error
	})
	if err != nil {
		h.Logger.Error("activate template", zap.Error(err), zap.String("name", name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not activate template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template activated", "name": name})
}

// DeleteTemplateRow removes one template row by id.
func (h *Handler) DeleteTemplateRow(c *gin.Context) {
	res := h.DB.Delete(&models.WeeklyScheduleTemplate{}, c.Param("id"))
	if res.Error != nil {
		h.Logger.Error("delete template row", zap.Error(res.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete template row"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template row not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template row deleted"})
}
