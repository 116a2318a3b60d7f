package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer starts with alice@example.com / secret1 registered; every
// session cookie carries the token "tok".
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	accounts := map[string]string{"alice@example.com": "alice"}
	mux := http.NewServeMux()
	writeErr := func(w http.ResponseWriter, status int, msg string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string][]string{"errors": {msg}})
	}

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email      string `json:"email"`
			Password   string `json:"password"`
			RememberMe bool   `json:"rememberMe"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		username, ok := accounts[req.Email]
		mu.Unlock()
		if !ok {
			writeErr(w, http.StatusNotFound, "User not found")
			return
		}
		if req.Password != "secret1" {
			writeErr(w, http.StatusUnauthorized, "Email or password incorrect")
			return
		}
		c := &http.Cookie{Name: "authToken", Value: "tok", Path: "/", HttpOnly: true}
		if req.RememberMe {
			c.MaxAge = 30 * 24 * 60 * 60
		}
		http.SetCookie(w, c)
		_ = json.NewEncoder(w).Encode(map[string]string{"username": username, "id": "u-1", "token": "tok"})
	})
	mux.HandleFunc("GET /auth/check", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("authToken"); err != nil || c.Value != "tok" {
			writeErr(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"user": "u-1"})
	})
	mux.HandleFunc("GET /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "authToken", Path: "/", MaxAge: -1})
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Logout successfully"})
	})
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		mu.Lock()
		_, exists := accounts[req["email"]]
		if !exists {
			accounts[req["email"]] = req["username"]
		}
		mu.Unlock()
		if exists {
			writeErr(w, http.StatusConflict, "User already exists")
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u-2", "username": req["username"], "email": req["email"]})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type harness struct {
	server   string
	stateDir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("TALKSY_SERVER_URL", "")
	t.Setenv("TALKSY_STATE_DIR", "")
	return &harness{server: fakeServer(t).URL, stateDir: t.TempDir()}
}

// run executes one CLI invocation, as a fresh process would.
func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(append([]string{"--server", h.server, "--state-dir", h.stateDir}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLogin_PersistsSessionAcrossInvocations(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "status")
	require.NoError(t, err)
	assert.Equal(t, "not authenticated\n", out)

	out, err = h.run(t, "", "login", "--email", "alice@example.com", "--password", "secret1", "--remember")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice")

	_, err = os.Stat(filepath.Join(h.stateDir, "cookies.json"))
	require.NoError(t, err, "cookie file written")

	out, err = h.run(t, "", "status")
	require.NoError(t, err)
	assert.Equal(t, "authenticated\n", out)

	out, err = h.run(t, "", "open", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "== Dashboard ==")

	out, err = h.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logout successfully")

	_, err = os.Stat(filepath.Join(h.stateDir, "cookies.json"))
	assert.True(t, os.IsNotExist(err), "cookie file removed")

	out, err = h.run(t, "", "open", "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "Redirecting to login")
	assert.Contains(t, out, "== Login ==")
}

func TestLogin_PromptsForMissingInput(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "alice@example.com\nsecret1\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Email: ")
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Logged in as alice")
}

func TestLogin_ServerMessages(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "login", "--email", "bob@example.com", "--password", "secret1")
	assert.EqualError(t, err, "User not found")

	_, err = h.run(t, "", "login", "--email", "alice@example.com", "--password", "wrong-pass")
	assert.EqualError(t, err, "Email or password incorrect")
}

func TestLogin_FormValidation(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "login", "--email", "nope", "--password", "123")
	assert.EqualError(t, err, "Email is invalid")
	assert.Contains(t, out, "password: Password must be at least 6 characters")
}

func TestLogin_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	h := &harness{server: srv.URL, stateDir: t.TempDir()}
	srv.Close()

	_, err := h.run(t, "", "login", "--email", "alice@example.com", "--password", "secret1")
	assert.EqualError(t, err, "An unexpected error occurred")
}

func TestRegister(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "register", "--username", "bob", "--email", "bob@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Account bob created")
	assert.Contains(t, out, "Logged in as bob")

	out, err = h.run(t, "", "status")
	require.NoError(t, err)
	assert.Equal(t, "authenticated\n", out)

	_, err = h.run(t, "", "logout")
	require.NoError(t, err)

	_, err = h.run(t, "", "register", "--username", "alice", "--email", "alice@example.com", "--password", "secret1")
	assert.EqualError(t, err, "User already exists")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "bob\nbob@example.com\nsecret1\nsecret2\n", "register")
	assert.EqualError(t, err, "Passwords do not match")
}

func TestOpen_PublicAndUnknownViews(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "open", "register")
	require.NoError(t, err)
	assert.Contains(t, out, "== Register ==")

	_, err = h.run(t, "", "open", "nowhere")
	assert.ErrorContains(t, err, `unknown view "nowhere"`)
}

func TestRoot_InvalidServerURL(t *testing.T) {
	h := &harness{server: "localhost:3000", stateDir: t.TempDir()}
	_, err := h.run(t, "", "status")
	assert.ErrorContains(t, err, "must be an http(s) URL")
}

func TestLogin_LandsOnHomeView(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "login", "--email", "alice@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as alice\n== Dashboard ==\nWelcome back.\n", out)
}

func TestRegister_LandsOnHomeView(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "register", "--username", "carol", "--email", "carol@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Account carol created\nLogged in as carol\n== Dashboard ==\nWelcome back.\n", out)
}

func TestAnonymousViews_RedirectWhenSignedIn(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "open", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "== Login ==\nSign in with: talksy login [--remember]\n")
	assert.NotContains(t, out, "Redirecting")

	_, err = h.run(t, "", "login", "--email", "alice@example.com", "--password", "secret1")
	require.NoError(t, err)

	for _, name := range []string{"login", "register"} {
		out, err = h.run(t, "", "open", name)
		require.NoError(t, err)
		assert.Contains(t, out, "Redirecting to dashboard\n== Dashboard ==\nWelcome back.\n", name)
		assert.NotContains(t, out, "== Login ==", name)
		assert.NotContains(t, out, "== Register ==", name)
	}

	// the form is not shown again
	out, err = h.run(t, "", "login")
	require.NoError(t, err)
	assert.NotContains(t, out, "Email: ")
	assert.Contains(t, out, "Redirecting to dashboard")
}

func TestLogin_SessionCookieEndsWithSession(t *testing.T) {
	h := newHarness(t)

	t.Setenv("TALKSY_SESSION", "shell-1")
	_, err := h.run(t, "", "login", "--email", "alice@example.com", "--password", "secret1")
	require.NoError(t, err)

	out, err := h.run(t, "", "status")
	require.NoError(t, err)
	assert.Equal(t, "authenticated\n", out, "same session")

	t.Setenv("TALKSY_SESSION", "shell-2")
	out, err = h.run(t, "", "status")
	require.NoError(t, err)
	assert.Equal(t, "not authenticated\n", out, "new session drops the cookie")

	_, err = h.run(t, "", "login", "--email", "alice@example.com", "--password", "secret1", "--remember")
	require.NoError(t, err)

	t.Setenv("TALKSY_SESSION", "shell-3")
	out, err = h.run(t, "", "status")
	require.NoError(t, err)
	assert.Equal(t, "authenticated\n", out, "remembered cookie outlives the session")
}
