package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/afuentes/roster-api-go/pkg/models"
)

// ExportSchedules renders a date range's schedule as a downloadable
// file: an Excel workbook for the office printout, or an iCalendar
// feed staff can subscribe to. Default format is xlsx.
func (h *Handler) ExportSchedules(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end are required"})
		return
	}

	var rows []models.Schedule
	err := h.DB.Preload("Employee").
		Where("date >= ? AND date <= ?", start, end).
		Order("date, shift_type desc, start_time").
		Find(&rows).Error
	if err != nil {
		h.Logger.Error("load schedules for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load schedules"})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No schedules in range"})
		return
	}

	switch c.DefaultQuery("format", "xlsx") {
	case "xlsx":
		buf, err := h.schedulesToXLSX(rows, start, end)
		if err != nil {
			h.Logger.Error("build xlsx export", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build workbook"})
			return
		}
		filename := fmt.Sprintf("schedule_%s_%s.xlsx", start, end)
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	case "ics":
		filename := fmt.Sprintf("schedule_%s_%s.ics", start, end)
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(schedulesToICS(rows)))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be xlsx or ics"})
	}
}

func (h *Handler) schedulesToXLSX(rows []models.Schedule, start, end string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Schedule"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 8)
	f.SetColWidth(sheet, "C", "D", 14)
	f.SetColWidth(sheet, "E", "F", 18)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Shift schedule %s to %s", start, end))
	f.MergeCell(sheet, "A1", "F1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Date", "Shift", "Role", "Employee", "Start", "End"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, hd)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, row := range rows {
		name, role := "", ""
		if row.Employee != nil {
			name, role = row.Employee.Name, row.Employee.Role
		}
		values := []interface{}{
			row.Date,
			row.ShiftType,
			role,
			name,
			row.StartTime.In(h.Loc).Format("15:04"),
			row.EndTime.In(h.Loc).Format("15:04"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+3)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func schedulesToICS(rows []models.Schedule) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//roster-api-go//schedule//EN")

	for _, row := range rows {
		event := cal.AddEvent(fmt.Sprintf("shift-%d@roster-api-go", row.ID))
		event.SetCreatedTime(time.Now())
		event.SetDtStampTime(time.Now())
		event.SetStartAt(row.StartTime)
		event.SetEndAt(row.EndTime)

		summary := fmt.Sprintf("%s shift", row.ShiftType)
		if row.Employee != nil {
			summary = fmt.Sprintf("%s: %s shift", row.Employee.Name, row.ShiftType)
			event.SetDescription(fmt.Sprintf("Role: %s", row.Employee.Role))
		}
		event.SetSummary(summary)
	}

	return cal.Serialize()
}
