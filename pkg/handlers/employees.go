package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/afuentes/roster-api-go/pkg/models"
)

type employeeInput struct {
	Name       string  `json:"name" binding:"required"`
	Role       string  `json:"role" binding:"required"`
	IsActive   *bool   `json:"is_active"`
	HourlyWage float64 `json:"hourly_wage"`
}

// CreateEmployee adds a roster member.
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req employeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be cook, bartender, or barback"})
		return
	}

	emp := models.Employee{
		Name:       req.Name,
		Role:       req.Role,
		IsActive:   true,
		HourlyWage: req.HourlyWage,
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&emp).Error; err != nil {
		h.Logger.Error("create employee", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create employee"})
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// ListEmployees returns the roster. Inactive employees are included
// only with ?include_inactive=true; soft-deleted ones never appear.
func (h *Handler) ListEmployees(c *gin.Context) {
	q := h.DB.Order("id")
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if c.Query("include_inactive") != "true" {
		q = q.Where("is_active = ?", true)
	}

	var employees []models.Employee
	if err := q.Find(&employees).Error; err != nil {
		h.Logger.Error("list employees", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list employees"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// GetEmployee returns a single employee by id.
func (h *Handler) GetEmployee(c *gin.Context) {
	var emp models.Employee
	if err := h.DB.First(&emp, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	c.JSON(http.StatusOK, emp)
}

// UpdateEmployee updates name, role, wage, or active flag.
func (h *Handler) UpdateEmployee(c *gin.Context) {
	var emp models.Employee
	if err := h.DB.First(&emp, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	var req struct {
		Name       *string  `json:"name"`
		Role       *string  `json:"role"`
		IsActive   *bool    `json:"is_active"`
		HourlyWage *float64 `json:"hourly_wage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be cook, bartender, or barback"})
			return
		}
		emp.Role = *req.Role
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	if req.HourlyWage != nil {
		emp.HourlyWage = *req.HourlyWage
	}

	if err := h.DB.Save(&emp).Error; err != nil {
		h.Logger.Error("update employee", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update employee"})
		return
	}
	c.JSON(http.StatusOK, emp)
}

// DeleteEmployee soft-deletes an employee; history stays intact and
// the employee drops out of all future generation runs.
func (h *Handler) DeleteEmployee(c *gin.Context) {
	res := h.DB.Delete(&models.Employee{}, c.Param("id"))
	if res.Error != nil {
		h.Logger.Error("delete employee", zap.Error(res.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete employee"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}
