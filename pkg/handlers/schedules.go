package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afuentes/roster-api-go/pkg/models"
	"github.com/afuentes/roster-api-go/pkg/scheduler"
	"github.com/afuentes/roster-api-go/pkg/timeutil"
)

// gormScheduleStore is the persistence gateway for generated rows.
// Insert and Upsert ride on the store's (employee_id, date,
// shift_type) unique index, so a row inserted by a racing request is a
// skip, never a crash.
type gormScheduleStore struct {
	db *gorm.DB
}

var scheduleConflictCols = []clause.Column{
	{Name: "employee_id"}, {Name: "date"}, {Name: "shift_type"},
}

func (s *gormScheduleStore) DeleteRange(ctx context.Context, start, end string) error {
	return s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Delete(&models.Schedule{}).Error
}

func (s *gormScheduleStore) Insert(ctx context.Context, row *models.Schedule) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   scheduleConflictCols,
		DoNothing: true,
	}).Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *gormScheduleStore) Upsert(ctx context.Context, row *models.Schedule) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: scheduleConflictCols,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"start_time": row.StartTime,
			"end_time":   row.EndTime,
		}),
	}).Create(row).Error
}

// buildEngine validates a generation request and loads everything the
// run needs up front; the engine itself never touches the store. On
// failure the HTTP error response has already been written and ok is
// false.
func (h *Handler) buildEngine(c *gin.Context, req models.GenerateRequest) (engine *scheduler.Engine, dates []string, ok bool) {
	if req.StartDate == "" || req.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return nil, nil, false
	}

	dates, err := timeutil.DateRange(req.StartDate, req.EndDate, h.Loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}
	start, end := dates[0], dates[len(dates)-1]

	var roster []models.Employee
	if err := h.DB.Where("is_active = ?", true).Order("id").Find(&roster).Error; err != nil {
		h.Logger.Error("load roster", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load roster"})
		return nil, nil, false
	}

	var explicit []models.ShiftRequirement
	if err := h.DB.Where("date >= ? AND date <= ?", start, end).Find(&explicit).Error; err != nil {
		h.Logger.Error("load requirements", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load requirements"})
		return nil, nil, false
	}

	var templateRows []models.WeeklyScheduleTemplate
	tplQuery := h.DB
	if req.TemplateName != "" {
		tplQuery = tplQuery.Where("name = ?", req.TemplateName)
	} else {
		tplQuery = tplQuery.Where("is_active = ?", true)
	}
	if err := tplQuery.Find(&templateRows).Error; err != nil {
		h.Logger.Error("load template", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load template"})
		return nil, nil, false
	}

	var entries []models.AvailabilityEntry
	if err := h.DB.Where("date >= ? AND date <= ?", start, end).Find(&entries).Error; err != nil {
		h.Logger.Error("load availability", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load availability"})
		return nil, nil, false
	}

	var existing []models.Schedule
	if err := h.DB.Where("date >= ? AND date <= ?", start, end).Find(&existing).Error; err != nil {
		h.Logger.Error("load existing schedules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load existing schedules"})
		return nil, nil, false
	}

	reqs, err := scheduler.ResolveRequirements(dates, explicit, templateRows, req.TemplateName, h.Loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	engine = scheduler.NewEngine(
		roster,
		reqs,
		scheduler.BuildAvailabilityIndex(entries),
		existing,
		h.shiftTimes(),
	)
	return engine, dates, true
}

// GenerateSchedules runs the scheduling core for a date range and
// persists the result. Missing dates fail fast; staffing shortfalls
// come back as warnings in a structured summary, never as errors.
func (h *Handler) GenerateSchedules(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine, dates, ok := h.buildEngine(c, req)
	if !ok {
		return
	}
	start, end := dates[0], dates[len(dates)-1]

	result, err := engine.Generate(dates)
	if err != nil {
		h.Logger.Error("generate schedules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	store := &gormScheduleStore{db: h.DB}
	summary, err := scheduler.Reconcile(c.Request.Context(), store, result, start, end, req.OverwriteExisting)
	if err != nil {
		h.Logger.Error("persist schedules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not persist schedules"})
		return
	}

	minN, maxN := engine.AssignmentSpread()
	h.Logger.Info("schedule generation completed",
		zap.String("start", start),
		zap.String("end", end),
		zap.Bool("overwrite", req.OverwriteExisting),
		zap.Int("created", summary.Created),
		zap.Int("skipped", summary.Skipped),
		zap.Int("warnings", len(summary.Warnings)),
		zap.Int("min_assignments", minN),
		zap.Int("max_assignments", maxN),
	)

	c.JSON(http.StatusOK, summary)
}

// PreviewSchedules is a dry run: it computes the proposed assignments
// and warnings for a range without writing anything, so an admin can
// inspect shortfalls before committing.
func (h *Handler) PreviewSchedules(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine, dates, ok := h.buildEngine(c, req)
	if !ok {
		return
	}

	result, err := engine.Generate(dates)
	if err != nil {
		h.Logger.Error("preview schedules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposed": result.Proposed,
		"warnings": result.Warnings,
	})
}

// shiftTimes builds the clock-time lookup from config.
func (h *Handler) shiftTimes() *scheduler.ClockTable {
	windows := make(map[string]map[string]scheduler.Window, len(h.Cfg.Scheduling.ShiftTimes))
	for shiftType, roles := range h.Cfg.Scheduling.ShiftTimes {
		windows[shiftType] = make(map[string]scheduler.Window, len(roles))
		for role, w := range roles {
			windows[shiftType][role] = scheduler.Window{Start: w.Start, End: w.End}
		}
	}
	return &scheduler.ClockTable{Windows: windows, Loc: h.Loc}
}

// ListSchedules returns schedule rows in a date range with their
// employees preloaded.
func (h *Handler) ListSchedules(c *gin.Context) {
	q := h.DB.Preload("Employee").Order("date, shift_type desc, start_time")
	if start := c.Query("start"); start != "" {
		q = q.Where("date >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		q = q.Where("date <= ?", end)
	}
	if emp := c.Query("employee_id"); emp != "" {
		q = q.Where("employee_id = ?", emp)
	}

	var rows []models.Schedule
	if err := q.Find(&rows).Error; err != nil {
		h.Logger.Error("list schedules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list schedules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": rows})
}

// UpdateSchedule adjusts the time fields of one assignment. The
// (employee, date, shift) identity of a row never changes; delete and
// regenerate instead.
func (h *Handler) UpdateSchedule(c *gin.Context) {
	var row models.Schedule
	if err := h.DB.First(&row, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	var req struct {
		StartTime time.Time `json:"start_time" binding:"required"`
		EndTime   time.Time `json:"end_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.EndTime.After(req.StartTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be after start_time"})
		return
	}

	row.StartTime = req.StartTime
	row.EndTime = req.EndTime
	if err := h.DB.Save(&row).Error; err != nil {
		h.Logger.Error("update schedule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update schedule"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteSchedule removes a single assignment.
func (h *Handler) DeleteSchedule(c *gin.Context) {
	res := h.DB.Delete(&models.Schedule{}, c.Param("id"))
	if res.Error != nil {
		h.Logger.Error("delete schedule", zap.Error(res.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete schedule"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}

// DeleteScheduleRange clears all assignments in a date range.
func (h *Handler) DeleteScheduleRange(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end are required"})
		return
	}

	store := &gormScheduleStore{db: h.DB}
	if err := store.DeleteRange(c.Request.Context(), start, end); err != nil {
		h.Logger.Error("delete schedule range", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete schedules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedules deleted", "start": start, "end": end})
}
