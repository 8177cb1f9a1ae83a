package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agripredict/pkg/middleware"
	"agripredict/pkg/session/controller"
)

type sessionCtrl struct{}

func NewSessionController() controller.SessionController { return &sessionCtrl{} }

func (h *sessionCtrl) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"session_id": middleware.SessionID(c)})
}

// Reset starts a new session. Earlier history stays behind the old id.
func (h *sessionCtrl) Reset(c echo.Context) error {
	sid := middleware.IssueSession(c)
	return c.JSON(http.StatusOK, map[string]string{"session_id": sid})
}
