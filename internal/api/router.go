package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/groundscan/gpr-backend-go/internal/config"
	"github.com/groundscan/gpr-backend-go/internal/handler"
	"github.com/groundscan/gpr-backend-go/internal/middleware"
)

// SetupRouter wires handlers onto the route tree
func SetupRouter(cfg *config.Config, survey *handler.SurveyHandler, pois *handler.POIHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS: the viewer is a browser app served from elsewhere.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "GPR Survey Backend is running",
		})
	})

	api := r.Group("/api/v1")
	{
		surveyGroup := api.Group("/survey")
		surveyGroup.Use(middleware.RateLimit(120, time.Minute))
		{
			surveyGroup.GET("/dates", survey.Dates)
			surveyGroup.GET("/slice", survey.Load)
			surveyGroup.GET("/bounds", survey.Bounds)
			surveyGroup.GET("/track", survey.Track)
			surveyGroup.GET("/location", survey.Location)
			surveyGroup.GET("/health", survey.Health)
			surveyGroup.GET("/position", survey.Position)
			surveyGroup.GET("/nearest", survey.Nearest)
		}

		poiGroup := api.Group("/pois")
		{
			poiGroup.GET("", pois.List)
			poiGroup.GET("/:id", pois.Get)

			// Mutations need a token; reads stay open for the viewer.
			authed := poiGroup.Group("")
			authed.Use(middleware.Auth(cfg.JWTSecret))
			{
				authed.POST("", pois.Create)
				authed.POST("/import", pois.Import)
				authed.PUT("/:id", pois.Update)
				authed.DELETE("/:id", pois.Delete)
			}
		}

		api.GET("/poi-types", pois.Types)
	}

	return r
}
