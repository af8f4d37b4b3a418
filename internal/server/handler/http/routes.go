package http

import (
	"net/http"

	"github.com/atinyakov/postboard/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// postboard API.
//
// Routes:
//
//	GET    /             → postHandler.Index
//	GET    /login        → authHandler.LoginPage
//	POST   /login        → authHandler.Login
//	GET    /register     → authHandler.RegisterPage
//	GET    /logout       → authHandler.Logout        (login required)
//	GET    /users        → userHandler.List
//	POST   /users        → userHandler.Register
//	GET    /users/{id}   → userHandler.Show          (login required)
//	PUT    /users/{id}   → userHandler.Update        (owner only)
//	DELETE /users/{id}   → userHandler.Delete        (owner only)
//	POST   /posts        → postHandler.Create        (login required)
//	GET    /posts/{id}   → postHandler.Show
//	PUT    /posts/{id}   → postHandler.Update        (owner only)
//	DELETE /posts/{id}   → postHandler.Delete        (owner only)
//	GET    /p/{slug}     → postHandler.ShowBySlug
//
// Middleware chain (applied in order):
//  1. RequestID, Recoverer
//  2. AllowContentType(form, json): rejects other request bodies
//  3. WithRequestLogging(logger)
//  4. SessionAuth(sessions): resolves the session cookie
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	postHandler *PostHandler,
	sessions middleware.SessionResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)

	// Bodies arrive as browser form posts or JSON
	r.Use(chiMiddleware.AllowContentType("application/x-www-form-urlencoded", "application/json"))

	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.SessionAuth(sessions))

	r.Get("/", postHandler.Index)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterPage)
	r.With(middleware.LoginRequired).Get("/logout", authHandler.Logout)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Register)
		r.With(middleware.LoginRequired).Get("/{id}", userHandler.Show)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	r.Route("/posts", func(r chi.Router) {
		r.With(middleware.LoginRequired).Post("/", postHandler.Create)
		r.Get("/{id}", postHandler.Show)
		r.Put("/{id}", postHandler.Update)
		r.Delete("/{id}", postHandler.Delete)
	})

	r.Get("/p/{slug}", postHandler.ShowBySlug)

	return r
}
