package thread

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	threads := rg.Group("/threads")
	{
		threads.POST("/:board", handler.CreateThread)
		threads.GET("/:board", handler.ListThreads)
		threads.PUT("/:board", handler.ReportThread)
		threads.DELETE("/:board", handler.DeleteThread)
	}
}
