package department

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	departments := r.Group("/departments")
	{
		departments.GET("", handler.GetAll)
		departments.GET("/:id", handler.GetById)
		departments.GET("/:id/summary", handler.Summarize)
	}
}
