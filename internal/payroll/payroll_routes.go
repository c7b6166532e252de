package payroll

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, idempotency gin.HandlerFunc) {
	payrolls := r.Group("/payrolls")
	{
		payrolls.POST("/process", idempotency, handler.Process)
		payrolls.GET("/:id", handler.GetByID)
		payrolls.GET("/employee/:employeeId", handler.ListByEmployee)
		payrolls.GET("/department/:departmentId", handler.ListByDepartment)
	}
}
