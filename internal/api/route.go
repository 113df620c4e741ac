package api

import (
	"Fanscope/internal/api/middleware"
	"Fanscope/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		relationGroup := apiGroup.Group("/relations")
		{
			relationGroup.POST("/import", group.ImportHandler.ImportRelations)
			relationGroup.GET("/imports", group.ImportHandler.GetImportRuns)

			relationGroup.GET("/compare", group.ComparisonHandler.Compare)
			relationGroup.GET("/stats", group.StatsHandler.GetStats)

			relationGroup.POST("/snapshot", group.SnapshotHandler.RecordSnapshot)
			relationGroup.GET("/growth", group.SnapshotHandler.GetGrowth)
			relationGroup.GET("/growth/detail", group.SnapshotHandler.GetGrowthDetail)

			relationGroup.GET("/followers", group.RelationHandler.GetFollowers)
			relationGroup.GET("/following", group.RelationHandler.GetFollowing)
			relationGroup.DELETE("/:owner_id", group.RelationHandler.ResetAccount)
		}
	}

	return r
}
