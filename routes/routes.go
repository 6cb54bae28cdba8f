package routes

import (
	"net/http"

	"stratplan/handlers"
	"stratplan/middlewares"
)

type Handlers struct {
	Auth            *handlers.AuthHandler
	StrategicIssues *handlers.StrategicIssueHandler
	Strategies      *handlers.StrategyHandler
	Projects        *handlers.ProjectHandler
	Users           *handlers.UserHandler
}

func Setup(h Handlers, jwtSecret string) *http.ServeMux {
	mux := http.NewServeMux()

	jwt := middlewares.JWTMiddleware(jwtSecret)
	protected := func(handler http.HandlerFunc) http.Handler {
		return jwt(handler)
	}

	// Auth
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	// The only anonymous record access in the system: the two public
	// project endpoints, mounted deliberately without the middleware.
	mux.HandleFunc("GET /api/public/projects", h.Projects.PublicList)
	mux.HandleFunc("GET /api/public/projects/stats", h.Projects.PublicStats)

	// Strategic issues
	mux.Handle("GET /api/strategic-issues", protected(h.StrategicIssues.List))
	mux.Handle("POST /api/strategic-issues", protected(h.StrategicIssues.Create))
	mux.Handle("GET /api/strategic-issues/{id}", protected(h.StrategicIssues.GetByID))
	mux.Handle("PUT /api/strategic-issues/{id}", protected(h.StrategicIssues.Update))
	mux.Handle("DELETE /api/strategic-issues/{id}", protected(h.StrategicIssues.Delete))

	// Strategies
	mux.Handle("GET /api/strategies", protected(h.Strategies.List))
	mux.Handle("POST /api/strategies", protected(h.Strategies.Create))
	mux.Handle("GET /api/strategies/{id}", protected(h.Strategies.GetByID))
	mux.Handle("PUT /api/strategies/{id}", protected(h.Strategies.Update))
	mux.Handle("DELETE /api/strategies/{id}", protected(h.Strategies.Delete))

	// Projects
	mux.Handle("GET /api/projects", protected(h.Projects.List))
	mux.Handle("POST /api/projects", protected(h.Projects.Create))
	mux.Handle("GET /api/projects/{id}", protected(h.Projects.GetByID))
	mux.Handle("PUT /api/projects/{id}", protected(h.Projects.Update))
	mux.Handle("DELETE /api/projects/{id}", protected(h.Projects.Delete))

	// Users: literal "me" patterns take precedence over {id}.
	mux.Handle("GET /api/users/me", protected(h.Users.Me))
	mux.Handle("PUT /api/users/me", protected(h.Users.UpdateMe))
	mux.Handle("PUT /api/users/me/password", protected(h.Users.ChangeMyPassword))
	mux.Handle("GET /api/users", protected(h.Users.List))
	mux.Handle("POST /api/users", protected(h.Users.Create))
	mux.Handle("GET /api/users/{id}", protected(h.Users.GetByID))
	mux.Handle("PUT /api/users/{id}", protected(h.Users.Update))
	mux.Handle("PUT /api/users/{id}/password", protected(h.Users.ChangePassword))
	mux.Handle("DELETE /api/users/{id}", protected(h.Users.Deactivate))

	return mux
}
