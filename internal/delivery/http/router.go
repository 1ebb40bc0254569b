package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zyra-app/zyra-change-service/internal/delivery/http/handlers"
)

func NewRouter(changeHandler *handlers.ChangeHandler, settingsHandler *handlers.SettingsHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		actions := api.Group("/autonomous-actions")
		{
			actions.POST("", changeHandler.Create)
			actions.GET("", changeHandler.List)
			actions.GET("/summary", changeHandler.Summary)
			actions.GET("/:id", changeHandler.Get)
			actions.POST("/:id/rollback", changeHandler.Rollback)
			actions.POST("/rollback-all", changeHandler.RollbackAll)
		}

		approvals := api.Group("/pending-approvals")
		{
			approvals.POST("/:id/approve", changeHandler.Approve)
			approvals.POST("/:id/reject", changeHandler.Reject)
		}

		automation := api.Group("/automation")
		{
			automation.GET("/settings", settingsHandler.Get)
			automation.PATCH("/settings", settingsHandler.Patch)
		}
	}

	return router
}
