package timeentry

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	entries := r.Group("/time-entries")
	{
		entries.GET("", handler.Query)
		entries.POST("", handler.Record)
		entries.POST("/import", handler.Import)
		entries.PATCH("/:id/status", handler.SetStatus)
		entries.DELETE("/:id", handler.Delete)
	}
}
