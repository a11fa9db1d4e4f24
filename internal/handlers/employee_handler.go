package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"employee-records/internal/models"
	"employee-records/internal/service"
	"employee-records/internal/store"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	svc *service.EmployeeService
}

func NewEmployeeHandler(svc *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// CreateEmployee creates one record with a freshly assigned employee_id
// POST /employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var in models.CreateEmployeeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err, "failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, out)
}

// CreateEmployeesBulk creates a batch with contiguous ids in input order
// POST /employees/bulk
func (h *EmployeeHandler) CreateEmployeesBulk(c *gin.Context) {
	var in []models.CreateEmployeeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	out, err := h.svc.CreateBulk(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err, "failed to create employees")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"employees_added": out})
}

// ListEmployees lists records, newest joining_date first
// GET /employees?department=&skip=0&limit=50
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	skip, err := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skip must be a non-negative integer"})
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	out, err := h.svc.List(c.Request.Context(), c.Query("department"), skip, limit)
	if err != nil {
		h.writeError(c, err, "failed to list employees")
		return
	}
	c.JSON(http.StatusOK, out)
}

// SearchBySkill returns records whose skills contain the exact string
// GET /employees/search?skill=go
func (h *EmployeeHandler) SearchBySkill(c *gin.Context) {
	skill := c.Query("skill")
	if skill == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skill query parameter is required"})
		return
	}

	out, err := h.svc.SearchBySkill(c.Request.Context(), skill)
	if err != nil {
		h.writeError(c, err, "failed to search employees")
		return
	}
	c.JSON(http.StatusOK, out)
}

// AvgSalary returns the mean salary per department
// GET /employees/avg-salary
func (h *EmployeeHandler) AvgSalary(c *gin.Context) {
	out, err := h.svc.AvgSalaryByDepartment(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "failed to aggregate salaries")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetEmployee fetches one record
// GET /employees/:employee_id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		h.writeError(c, err, "failed to get employee")
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdateEmployee applies a partial update
// PUT /employees/:employee_id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	out, err := h.svc.Update(c.Request.Context(), c.Param("employee_id"), fields)
	if err != nil {
		h.writeError(c, err, "failed to update employee")
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteEmployee removes one record
// DELETE /employees/:employee_id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("employee_id")); err != nil {
		h.writeError(c, err, "failed to delete employee")
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Deleted successfully"})
}

func (h *EmployeeHandler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
	case errors.Is(err, service.ErrNoUpdateFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields provided to update"})
	case errors.Is(err, service.ErrInvalidField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateEmployeeID):
		c.JSON(http.StatusConflict, gin.H{"error": "employee_id already exists"})
	case errors.Is(err, store.ErrSchemaViolation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "record failed schema validation"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
	}
}
