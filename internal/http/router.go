// Package httpapi assembles the public router. Handlers stay in their domain
// packages; this is wiring only.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	compliancehandler "rentcheck/internal/compliance/handler"
	"rentcheck/internal/platform/middleware"
	propertyhandler "rentcheck/internal/property/handler"
)

// Deps carries everything the router mounts.
type Deps struct {
	Logger     *slog.Logger
	AdminToken string
	Property   *propertyhandler.Handler
	Compliance *compliancehandler.Handler
}

// NewRouter wires all public endpoints. Mutating property routes sit behind
// the admin token guard; checklist reads and toggles are open because the
// dashboard drives them.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logging(deps.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	deps.Property.Register(r)
	deps.Compliance.Register(r)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.AdminToken(deps.AdminToken))
		deps.Property.RegisterAdmin(admin)
	})

	return r
}
