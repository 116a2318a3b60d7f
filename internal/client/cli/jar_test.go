package cli

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileJar_PersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "cookies.json")
	origin, _ := url.Parse("http://localhost:3000")

	j, err := OpenFileJar(path, origin, "s1")
	require.NoError(t, err)
	j.SetCookies(origin, []*http.Cookie{{Name: "authToken", Value: "tok", Path: "/"}})

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded, err := OpenFileJar(path, origin, "s1")
	require.NoError(t, err)
	cs := reloaded.Cookies(origin)
	require.Len(t, cs, 1)
	assert.Equal(t, "tok", cs[0].Value)
}

func TestFileJar_SessionCookieDroppedInNewSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	origin, _ := url.Parse("http://localhost:3000")

	j, err := OpenFileJar(path, origin, "s1")
	require.NoError(t, err)
	j.SetCookies(origin, []*http.Cookie{
		{Name: "authToken", Value: "tok", Path: "/"},
		{Name: "pref", Value: "dark", Path: "/", MaxAge: 3600},
	})

	other, err := OpenFileJar(path, origin, "s2")
	require.NoError(t, err)
	cs := other.Cookies(origin)
	require.Len(t, cs, 1, "only the cookie with a lifetime survives")
	assert.Equal(t, "pref", cs[0].Name)
}

func TestFileJar_RememberedCookieSurvivesNewSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	origin, _ := url.Parse("http://localhost:3000")

	j, err := OpenFileJar(path, origin, "s1")
	require.NoError(t, err)
	j.SetCookies(origin, []*http.Cookie{{Name: "authToken", Value: "tok", Path: "/", MaxAge: 30 * 24 * 60 * 60}})

	other, err := OpenFileJar(path, origin, "s2")
	require.NoError(t, err)
	require.Len(t, other.Cookies(origin), 1)
}

func TestFileJar_ExpiredCookiesDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	origin, _ := url.Parse("http://localhost:3000")

	j, err := OpenFileJar(path, origin, "s1")
	require.NoError(t, err)
	base := time.Now()
	j.now = func() time.Time { return base.Add(-2 * time.Hour) }
	j.SetCookies(origin, []*http.Cookie{{Name: "authToken", Value: "tok", Path: "/", MaxAge: 3600}})

	reloaded, err := OpenFileJar(path, origin, "s1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Cookies(origin))
}

func TestFileJar_ServerClearAndLocalClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	origin, _ := url.Parse("http://localhost:3000")

	j, err := OpenFileJar(path, origin, "s1")
	require.NoError(t, err)
	j.SetCookies(origin, []*http.Cookie{{Name: "authToken", Value: "tok", Path: "/"}})
	j.SetCookies(origin, []*http.Cookie{{Name: "authToken", Path: "/", MaxAge: -1}})
	assert.Empty(t, j.Cookies(origin))

	j.SetCookies(origin, []*http.Cookie{{Name: "authToken", Value: "tok", Path: "/"}})
	require.NoError(t, j.Clear())
	assert.Empty(t, j.Cookies(origin))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, j.Clear(), "clearing twice is fine")
}

func TestOpenFileJar_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	origin, _ := url.Parse("http://localhost:3000")

	_, err := OpenFileJar(path, origin, "s1")
	assert.Error(t, err)
}
