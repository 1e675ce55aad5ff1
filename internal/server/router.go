package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
)

// resources lists the content entities the stub serves.
var resources = []string{"news", "event", "workshop"}

// NewRouter constructs the HTTP handler serving the stub API.
//
// Routes per resource:
//
//	GET    /{res}/public/page   public paginated listing
//	GET    /{res}/latest        most recent items
//	GET    /{res}/{id}          one entity
//	GET    /{res}/member/page   member listing       (authenticated)
//	GET    /{res}/page          admin listing        (admin)
//	GET    /{res}/management    full listing         (admin)
//	POST   /{res}/add           create, multipart    (admin)
//	PUT    /{res}/{id}          update, multipart    (admin)
//	DELETE /{res}/{id}          delete               (admin)
//
// plus POST /auth/login and POST /auth/register, which stay public.
func NewRouter(h *Handler, secret []byte, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(WithRequestLogging(logger))

	r.Post("/auth/login", h.Login)
	r.Post("/auth/register", h.Register)

	for _, res := range resources {
		r.Route("/"+res, func(r chi.Router) {
			// Public endpoints
			r.Get("/public/page", h.PublicPage(res))
			r.Get("/latest", h.Latest(res))
			r.Get("/{id}", h.ByID(res))

			// Protected group: requires a valid bearer credential
			r.Group(func(r chi.Router) {
				r.Use(BearerAuth(secret, logger))
				r.Get("/member/page", h.MemberPage(res))

				// Admin-only mutations and listings
				r.Group(func(r chi.Router) {
					r.Use(RequireAdmin)
					r.Get("/page", h.AdminPage(res))
					r.Get("/management", h.Management(res))
					r.Post("/add", h.Create(res))
					r.Put("/{id}", h.Update(res))
					r.Delete("/{id}", h.Delete(res))
				})
			})
		})
	}

	return r
}
