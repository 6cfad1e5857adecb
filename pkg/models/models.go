package models

import (
	"time"

	"gorm.io/gorm"
)

// Shift types. A shift is a named work period on a calendar date.
const (
	ShiftOpen  = "open"
	ShiftClose = "close"
)

// ShiftOrder is the fixed processing order for a date's shifts.
var ShiftOrder = []string{ShiftOpen, ShiftClose}

// Employee roles. Staffing requirements are expressed per role.
const (
	RoleCook      = "cook"
	RoleBartender = "bartender"
	RoleBarback   = "barback"
)

// RoleOrder is the fixed processing order for roles within a shift.
var RoleOrder = []string{RoleCook, RoleBartender, RoleBarback}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleCook || role == RoleBartender || role == RoleBarback
}

// ValidShiftType reports whether st is a known shift type.
func ValidShiftType(st string) bool {
	return st == ShiftOpen || st == ShiftClose
}

// Employee represents the employees table. Deactivation and soft
// deletion both remove an employee from scheduling without losing
// history.
type Employee struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Role       string         `gorm:"not null;index" json:"role"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	HourlyWage float64        `json:"hourly_wage"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// AvailabilityEntry records an employee's stated availability for a
// date. An empty ShiftType is a whole-day entry and sets the default
// for both shifts; a shift-specific entry overrides it for that shift
// only. Absence of any entry means available.
type AvailabilityEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EmployeeID  uint      `gorm:"uniqueIndex:idx_avail_emp_date_shift;not null" json:"employee_id"`
	Date        string    `gorm:"uniqueIndex:idx_avail_emp_date_shift;not null" json:"date"` // YYYY-MM-DD
	ShiftType   string    `gorm:"uniqueIndex:idx_avail_emp_date_shift" json:"shift_type,omitempty"`
	IsAvailable bool      `json:"is_available"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoleCounts is a per-role headcount.
type RoleCounts struct {
	Cooks      int `json:"cooks"`
	Bartenders int `json:"bartenders"`
	Barbacks   int `json:"barbacks"`
}

// ForRole returns the count for a single role.
func (rc RoleCounts) ForRole(role string) int {
	switch role {
	case RoleCook:
		return rc.Cooks
	case RoleBartender:
		return rc.Bartenders
	case RoleBarback:
		return rc.Barbacks
	}
	return 0
}

// IsZero reports whether no role requires any staff.
func (rc RoleCounts) IsZero() bool {
	return rc.Cooks == 0 && rc.Bartenders == 0 && rc.Barbacks == 0
}

// ShiftRequirement is an explicit, date-specific staffing requirement.
// It always takes precedence over the weekly template for its
// (date, shift_type).
type ShiftRequirement struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Date      string `gorm:"uniqueIndex:idx_req_date_shift;not null" json:"date"` // YYYY-MM-DD
	ShiftType string `gorm:"uniqueIndex:idx_req_date_shift;not null" json:"shift_type"`
	RoleCounts
	Notes     string    `json:"notes,omitempty"`
	IsFilled  bool      `json:"is_filled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeeklyScheduleTemplate is one row of a named recurring weekly
// staffing pattern, keyed by day of week (0=Sunday..6=Saturday) and
// shift type. It is the fallback when no explicit requirement exists.
type WeeklyScheduleTemplate struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex:idx_tpl_name_day_shift;not null" json:"name"`
	DayOfWeek int    `gorm:"uniqueIndex:idx_tpl_name_day_shift;not null" json:"day_of_week"`
	ShiftType string `gorm:"uniqueIndex:idx_tpl_name_day_shift;not null" json:"shift_type"`
	RoleCounts
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Schedule is a generated shift assignment. The composite unique index
// is the core invariant: an employee cannot hold two assignments for
// the same date and shift.
type Schedule struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"uniqueIndex:idx_sched_emp_date_shift;not null" json:"employee_id"`
	Date       string    `gorm:"uniqueIndex:idx_sched_emp_date_shift;not null;index" json:"date"` // YYYY-MM-DD
	ShiftType  string    `gorm:"uniqueIndex:idx_sched_emp_date_shift;not null" json:"shift_type"`
	StartTime  time.Time `gorm:"not null" json:"start_time"`
	EndTime    time.Time `gorm:"not null" json:"end_time"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GenerateRequest is the payload for the schedule-generation endpoint.
type GenerateRequest struct {
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	TemplateName      string `json:"template_name,omitempty"`
	OverwriteExisting bool   `json:"overwrite_existing"`
}

// GenerateSummary is the structured result of a generation run: a
// count breakdown plus the full list of rows, so a caller can see
// gaps and decide whether to re-run with overwrite or patch manually.
type GenerateSummary struct {
	Created   int        `json:"created"`
	Skipped   int        `json:"skipped"`
	Warnings  []string   `json:"warnings"`
	Schedules []Schedule `json:"schedules"`
}
