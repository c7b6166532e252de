package payslip

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, idempotency gin.HandlerFunc) {
	payslips := r.Group("/payslips")
	{
		payslips.POST("/generate", idempotency, handler.Generate)
		payslips.GET("/:id", handler.GetByID)
		payslips.GET("/:id/pdf", handler.Download)
		payslips.GET("/employee/:employeeId", handler.ListByEmployee)
		payslips.GET("/employee/:employeeId/latest", handler.GetLatestByEmployee)
	}
}
