package controller

import "github.com/labstack/echo/v4"

type PredictionController interface {
	Predict(c echo.Context) error
	Evaluate(c echo.Context) error
	Preview(c echo.Context) error
	History(c echo.Context) error
	Get(c echo.Context) error
	Export(c echo.Context) error
	Summary(c echo.Context) error
}
