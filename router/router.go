package router

import (
	"github.com/labstack/echo/v4"

	healthCtrl "agripredict/pkg/health/controller"
	"agripredict/pkg/middleware"
	predictionCtrl "agripredict/pkg/prediction/controller"
	sessionCtrl "agripredict/pkg/session/controller"
)

func New(
	e *echo.Echo,
	predCtrl predictionCtrl.PredictionController,
	refCtrl interface{ Get(echo.Context) error },
	sessCtrl sessionCtrl.SessionController,
	hCtrl healthCtrl.HealthController,
) *echo.Echo {
	e.GET("/health", hCtrl.Health)

	api := e.Group("/api/v1", middleware.Session())
	api.GET("/reference", refCtrl.Get)
	api.GET("/session", sessCtrl.Current)
	api.POST("/session/reset", sessCtrl.Reset)

	api.POST("/predict", predCtrl.Predict)
	api.POST("/evaluate", predCtrl.Evaluate)
	api.POST("/preview", predCtrl.Preview)

	api.GET("/predictions", predCtrl.History)
	api.GET("/predictions/export", predCtrl.Export)
	api.GET("/predictions/summary", predCtrl.Summary)
	api.GET("/predictions/:id", predCtrl.Get)
	return e
}
