package notify

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/shipfwd/notifyd/pkg/requestid"
)

// Mountable is anything that yields an http.Handler to mount under a prefix.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which handlers the notify module mounts. Each is
// optional and skipped when nil.
type RouterOptions struct {
	Notifications Mountable
	Preferences   Mountable

	// AllowedOrigins configures CORS. Empty means same-origin only.
	AllowedOrigins []string
}

// Router builds the notify module router.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/api", notify.Router(notify.RouterOptions{
//	    Notifications: notificationHandler,
//	    Preferences:   preferenceHandler,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if opts.Notifications != nil {
		r.Mount("/notifications", opts.Notifications.Handle())
	}
	if opts.Preferences != nil {
		r.Mount("/preferences", opts.Preferences.Handle())
	}

	return r
}
