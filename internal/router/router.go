package router

import (
	"net/http"

	"employee-records/internal/handlers"
	"employee-records/internal/middleware"
	"employee-records/internal/store"

	"github.com/gin-gonic/gin"
)

func Setup(r *gin.Engine, eh *handlers.EmployeeHandler, ah *handlers.AuthHandler, am *middleware.AuthMiddleware, st store.Store) {
	// health
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Employees API running"})
	})
	r.GET("/health", func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "db_error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/login", ah.Login)

	// reads are open
	r.GET("/employees", eh.ListEmployees)
	r.GET("/employees/search", eh.SearchBySkill)
	r.GET("/employees/avg-salary", eh.AvgSalary)
	r.GET("/employees/:employee_id", eh.GetEmployee)

	// mutations require a bearer token
	protected := r.Group("/employees", am.Authenticate())
	protected.POST("", eh.CreateEmployee)
	protected.POST("/bulk", eh.CreateEmployeesBulk)
	protected.PUT("/:employee_id", eh.UpdateEmployee)
	protected.DELETE("/:employee_id", eh.DeleteEmployee)
}
