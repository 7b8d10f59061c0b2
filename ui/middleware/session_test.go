package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofarma/domain/core"
)

func serveWithSession(r *http.Request) (*httptest.ResponseRecorder, core.SessionID) {
	var seen core.SessionID
	h := EnsureSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec, seen
}

func TestEnsureSessionIssuesCookie(t *testing.T) {
	rec, sid := serveWithSession(httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, sid)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, sid.String(), cookies[0].Value)
}

func TestEnsureSessionKeepsValidCookie(t *testing.T) {
	existing := core.NewSessionID()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: existing.String()})

	rec, sid := serveWithSession(req)
	assert.Equal(t, existing, sid)
	assert.Empty(t, rec.Result().Cookies())
}

func TestEnsureSessionReplacesInvalidCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})

	rec, sid := serveWithSession(req)
	assert.NotEmpty(t, sid)
	assert.NotEqual(t, core.SessionID("not-a-uuid"), sid)
	assert.Len(t, rec.Result().Cookies(), 1)
}
