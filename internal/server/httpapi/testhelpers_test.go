package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/talksy/internal/server/auth"
	"github.com/dmitrijs2005/talksy/internal/server/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	out   *models.User
	err   error
	calls int
}

func (f *fakeVerifier) Verify(ctx context.Context, email, password string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeIssuer struct {
	token     string
	issueErr  error
	userID    string
	verifyErr error
}

func (f *fakeIssuer) Issue(userID string) (string, time.Time, error) {
	if f.issueErr != nil {
		return "", time.Time{}, f.issueErr
	}
	return f.token, time.Now().Add(time.Hour), nil
}

func (f *fakeIssuer) Verify(token string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.userID, nil
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

type testServer struct {
	handler  http.Handler
	verifier *fakeVerifier
	issuer   *auth.Issuer
	clock    *testClock
	registry *prometheus.Registry
}

type serverOption func(*AuthDeps)

func newTestServer(t *testing.T, v *fakeVerifier, opts ...serverOption) *testServer {
	t.Helper()
	clock := &testClock{t: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	iss, err := auth.NewIssuer([]byte("test-secret"), 0, clock.now)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	deps := AuthDeps{
		Verifier: v,
		Issuer:   iss,
		Cookies:  auth.NewCookiePolicy("", false),
		Metrics:  metrics,
	}
	for _, o := range opts {
		o(&deps)
	}

	h := NewRouter(RouterDeps{Auth: NewAuthHandlers(deps), Metrics: metrics})
	return &testServer{handler: h, verifier: v, issuer: iss, clock: clock, registry: reg}
}

func (s *testServer) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Errors
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// counterValue returns the value of the counter name{outcome=outcome}, or 0.
func counterValue(t *testing.T, reg *prometheus.Registry, name, outcome string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" && l.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
