package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
	"github.com/stretchr/testify/require"
)

func TestCookieCarrier_WriteReadClear(t *testing.T) {
	carrier := &CookieCarrier{Name: "refresh_token", Secure: true}

	rec := httptest.NewRecorder()
	carrier.Write(rec, "tok-123", time.Hour)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	require.Equal(t, "refresh_token", c.Name)
	require.Equal(t, "tok-123", c.Value)
	require.True(t, c.HttpOnly)
	require.True(t, c.Secure)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	require.Equal(t, 3600, c.MaxAge)
	require.Equal(t, "/", c.Path)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(c)
	got, err := carrier.Read(req)
	require.NoError(t, err)
	require.Equal(t, "tok-123", got)

	clearRec := httptest.NewRecorder()
	carrier.Clear(clearRec)
	cleared := clearRec.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Empty(t, cleared[0].Value)
	require.Negative(t, cleared[0].MaxAge)
}

func TestCookieCarrier_Read_Missing(t *testing.T) {
	carrier := &CookieCarrier{Name: "refresh_token"}
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	_, err := carrier.Read(req)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestHeaderCarrier_WriteReadClear(t *testing.T) {
	carrier := &HeaderCarrier{Name: "X-Refresh-Token"}

	rec := httptest.NewRecorder()
	carrier.Write(rec, "tok-456", time.Hour)
	require.Equal(t, "tok-456", rec.Header().Get("X-Refresh-Token"))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Refresh-Token", "tok-456")
	got, err := carrier.Read(req)
	require.NoError(t, err)
	require.Equal(t, "tok-456", got)

	req2 := httptest.NewRequest(http.MethodPost, "/", nil)
	_, err = carrier.Read(req2)
	require.ErrorIs(t, err, common.ErrorNotFound)
}
