package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/talksy/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps wires the handlers into a router.
type RouterDeps struct {
	Auth          *AuthHandlers
	Users         *UserHandlers
	Metrics       *Metrics
	DB            Pinger
	Logger        logging.Logger
	AllowedOrigin string
}

// NewRouter returns the HTTP surface of the server.
func NewRouter(d RouterDeps) http.Handler {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Instrument)
	}
	r.Use(cors(d.AllowedOrigin))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", d.Auth.Login)
		r.Get("/logout", d.Auth.Logout)
		r.With(d.Auth.RequireSession).Get("/check", d.Auth.Check)
	})

	if d.Users != nil {
		r.Post("/users", d.Users.Register)
	}

	r.Get("/healthz", healthHandler(d.DB))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrors(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrors(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
