package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/petermazzocco/temple-desk/internal/auth"
	"github.com/petermazzocco/temple-desk/internal/handlers"
	"github.com/petermazzocco/temple-desk/internal/store"
)

type Deps struct {
	DB             store.Database
	Accounts       *auth.AccountService
	Notifier       handlers.Notifier
	MaxUploadBytes int64
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	if deps.MaxUploadBytes > 0 {
		r.Use(middleware.RequestSize(deps.MaxUploadBytes))
	}

	forms := handlers.NewFormHandler(deps.DB)
	events := handlers.NewEventHandler(deps.DB)
	carousel := handlers.NewCarouselHandler(deps.DB)
	tickets := handlers.NewTicketHandler(deps.DB, deps.Notifier)
	users := handlers.NewAuthHandler(deps.Accounts, auth.Users)
	admins := handlers.NewAuthHandler(deps.Accounts, auth.Admins)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/forms", forms.List)
	r.Post("/forms/add", forms.Add)

	r.Get("/events", events.List)
	r.Post("/events/add", events.Add)
	r.Delete("/events/{id}", events.Delete)

	r.Get("/carousel", carousel.List)
	r.Post("/carousel/add", carousel.Add)
	r.Delete("/carousel/{id}", carousel.Delete)

	r.Get("/tickets", tickets.List)
	r.Post("/tickets/add", tickets.Add)

	// Tokens issued here are not checked by any route yet; see auth.Middleware.
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", users.Register)
		r.Post("/login", users.Login)
		r.Post("/admin/register", admins.Register)
		r.Post("/admin/login", admins.Login)
	})

	return r
}
