package server

import (
	"net/http"

	"github.com/OFFIS-RIT/feedlens/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	apiRoutes := e.Group("/api")

	// Synchronous analysis routes
	apiRoutes.POST("/analysis/summary", routes.SummaryHandler)
	apiRoutes.POST("/analysis/sentiment", routes.SentimentHandler)
	apiRoutes.POST("/analysis/overview", routes.OverviewHandler)
	apiRoutes.POST("/analysis/swot", routes.SwotHandler)
	apiRoutes.POST("/analysis/interpret", routes.InterpretHandler)

	// Report job routes
	apiRoutes.POST("/reports", routes.CreateReportHandler)
	apiRoutes.GET("/reports/:id", routes.GetReportHandler)
	apiRoutes.DELETE("/reports/:id", routes.DeleteReportHandler)
}
