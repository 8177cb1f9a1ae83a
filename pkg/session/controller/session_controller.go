package controller

import "github.com/labstack/echo/v4"

type SessionController interface {
	Current(c echo.Context) error
	Reset(c echo.Context) error
}
