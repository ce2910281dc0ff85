package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurnickita/swadbot/internal/auth/config"
)

func protected(t *testing.T, a Auth) http.HandlerFunc {
	return a.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.Header.Get(HeaderSubjectKey)))
	})
}

func TestMiddlewareDisabled(t *testing.T) {
	a := NewAuth(config.Config{})
	require.False(t, a.Enabled())

	w := httptest.NewRecorder()
	protected(t, a)(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	_, err := a.IssueToken("owner", time.Hour)
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestMiddleware(t *testing.T) {
	a := NewAuth(config.Config{Secret: "dashboard-secret"})
	token, err := a.IssueToken("owner", time.Hour)
	require.NoError(t, err)

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		protected(t, a)(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		protected(t, a)(w, r)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "owner", w.Body.String())
	})

	t.Run("query sets cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		protected(t, a)(w, httptest.NewRequest(http.MethodGet, "/?token="+token, nil))
		require.Equal(t, http.StatusOK, w.Code)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, cookieTokenName, cookies[0].Name)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookies[0])
		w = httptest.NewRecorder()
		protected(t, a)(w, r)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign secret", func(t *testing.T) {
		other, err := NewAuth(config.Config{Secret: "other"}).IssueToken("owner", time.Hour)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+other)
		w := httptest.NewRecorder()
		protected(t, a)(w, r)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := a.IssueToken("owner", -time.Minute)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+expired)
		w := httptest.NewRecorder()
		protected(t, a)(w, r)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
