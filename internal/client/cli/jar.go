package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
	// Session is set for cookies without an expiry; it names the client
	// session that received them.
	Session string `json:"session,omitempty"`
}

// FileJar is an http.CookieJar for a single server that mirrors its cookies
// to a JSON file. Cookies without an expiry are session cookies: they are
// tagged with the jar's session and dropped when the file is opened under
// a different one.
type FileJar struct {
	mu      sync.Mutex
	path    string
	origin  *url.URL
	session string
	jar     *cookiejar.Jar
	cookies map[string]storedCookie
	now     func() time.Time
}

// OpenFileJar loads the cookie file at path, if it exists, for origin.
// Session cookies saved under another session are discarded.
func OpenFileJar(path string, origin *url.URL, session string) (*FileJar, error) {
	j := &FileJar{
		path:    path,
		origin:  origin,
		session: session,
		cookies: make(map[string]storedCookie),
		now:     time.Now,
	}
	if err := j.reset(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parse cookie file %s: %w", path, err)
	}

	now := j.now()
	live := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		if !sc.Expires.IsZero() && !sc.Expires.After(now) {
			continue
		}
		if sc.Expires.IsZero() && sc.Session != j.session {
			continue
		}
		j.cookies[sc.Name] = sc
		live = append(live, sc.httpCookie())
	}
	j.jar.SetCookies(origin, live)
	return j, nil
}

func (j *FileJar) reset() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.jar = jar
	return nil
}

// Cookies implements http.CookieJar.
func (j *FileJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// SetCookies implements http.CookieJar. Cookies from other hosts are
// accepted in memory but not persisted.
func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
	if u.Host != j.origin.Host {
		return
	}

	now := j.now()
	for _, c := range cookies {
		switch {
		case c.MaxAge < 0, c.Value == "":
			delete(j.cookies, c.Name)
		case !c.Expires.IsZero() && !c.Expires.After(now) && c.MaxAge == 0:
			delete(j.cookies, c.Name)
		default:
			sc := storedCookie{
				Name:     c.Name,
				Value:    c.Value,
				Path:     c.Path,
				Expires:  c.Expires,
				Secure:   c.Secure,
				HttpOnly: c.HttpOnly,
			}
			if c.MaxAge > 0 {
				sc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
			}
			if sc.Expires.IsZero() {
				sc.Session = j.session
			}
			j.cookies[c.Name] = sc
		}
	}
	// http.CookieJar cannot report write errors.
	_ = j.saveLocked()
}

// Clear forgets every cookie and removes the file.
func (j *FileJar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.cookies = make(map[string]storedCookie)
	if err := j.reset(); err != nil {
		return err
	}
	if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cookie file: %w", err)
	}
	return nil
}

func (j *FileJar) saveLocked() error {
	stored := make([]storedCookie, 0, len(j.cookies))
	for _, sc := range j.cookies {
		stored = append(stored, sc)
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(j.path, data, 0o600)
}

func (sc storedCookie) httpCookie() *http.Cookie {
	return &http.Cookie{
		Name:     sc.Name,
		Value:    sc.Value,
		Path:     sc.Path,
		Expires:  sc.Expires,
		Secure:   sc.Secure,
		HttpOnly: sc.HttpOnly,
	}
}
