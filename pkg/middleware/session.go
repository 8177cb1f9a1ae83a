package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "AGRI_SID"
	SessionHeader = "X-Session-Id"
	sessionKey    = "sid"
)

// Session scopes prediction history to an anonymous session. API clients
// send X-Session-Id; browsers carry the cookie. A missing or malformed id
// gets a fresh one.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := valid(c.Request().Header.Get(SessionHeader))
			if sid == "" {
				if ck, err := c.Cookie(SessionCookie); err == nil {
					sid = valid(ck.Value)
				}
			}
			if sid == "" {
				sid = IssueSession(c)
			}
			c.Set(sessionKey, sid)
			return next(c)
		}
	}
}

// IssueSession sets a new session cookie and returns its id.
func IssueSession(c echo.Context) string {
	sid := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(sessionKey, sid)
	return sid
}

func SessionID(c echo.Context) string {
	sid, _ := c.Get(sessionKey).(string)
	return sid
}

func valid(id string) string {
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}
