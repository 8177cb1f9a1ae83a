package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func serve(t *testing.T, req *http.Request, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	e.Use(mw...)
	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = SessionID(c)
		return c.NoContent(http.StatusNoContent)
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestSessionIssuesCookie(t *testing.T) {
	rec, sid := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), Session())
	_, err := uuid.Parse(sid)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, sid, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionReusesValidIDs(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	rec, sid := serve(t, req, Session())
	assert.Equal(t, id, sid)
	assert.Empty(t, rec.Result().Cookies())

	hdr := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, hdr)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})
	_, sid = serve(t, req, Session())
	assert.Equal(t, hdr, sid)
}

func TestSessionReplacesMalformedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "U_DEV_DEFAULT"})
	_, sid := serve(t, req, Session())
	assert.NotEqual(t, "U_DEV_DEFAULT", sid)
	_, err := uuid.Parse(sid)
	assert.NoError(t, err)
}

func TestRequestLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	_, sid := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), Session(), RequestLog(zap.New(core)))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/", fields["path"])
	assert.EqualValues(t, http.StatusNoContent, fields["status"])
	assert.Equal(t, sid, fields["session"])
}

func TestServerChainLogsPanics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.Use(Server(zap.New(core))...)
	e.GET("/boom", func(echo.Context) error { panic("nil map") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, http.StatusInternalServerError, entries[0].ContextMap()["status"])
	assert.Equal(t, "/boom", entries[0].ContextMap()["path"])
}
