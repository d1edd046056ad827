package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Amantay09/league-system/docs"
	"github.com/Amantay09/league-system/handlers"
	"github.com/Amantay09/league-system/middleware"
	"github.com/Amantay09/league-system/models"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Team         *handlers.TeamHandler
	Tournament   *handlers.TournamentHandler
	Registration *handlers.RegistrationHandler
	Fixture      *handlers.FixtureHandler
	Dashboard    *handlers.DashboardHandler
	WebSocket    *handlers.WebSocketHandler
}

// SetupRoutes mounts the full HTTP surface on the given router.
func SetupRoutes(router *chi.Mux, h Handlers, jwtSecret string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	// Public surface.
	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Get("/swagger/doc.json", docs.ServeOpenAPISpec)
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.List)
		r.Get("/{teamID}", h.Team.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.Team.Create)
			r.Patch("/{teamID}", h.Team.Rename)
			r.Post("/{teamID}/logo", h.Team.UploadLogo)
			r.Post("/{teamID}/players", h.Team.AddPlayer)
			r.Delete("/{teamID}/players/{playerID}", h.Team.RemovePlayer)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.List)
		r.Get("/{tournamentID}", h.Tournament.GetByID)
		r.Get("/{tournamentID}/standings", h.Tournament.GetStandings)
		r.Get("/{tournamentID}/player-stats", h.Tournament.GetPlayerStats)
		r.Get("/{tournamentID}/fixtures", h.Fixture.List)
		r.Get("/{tournamentID}/registrations", h.Registration.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			// Team admins register their own team.
			r.Post("/{tournamentID}/registrations", h.Registration.Register)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authorize(models.RoleOrganizer))
				r.Post("/", h.Tournament.Create)
				r.Patch("/{tournamentID}", h.Tournament.Update)
				r.Patch("/{tournamentID}/status", h.Tournament.UpdateStatus)
				r.Delete("/{tournamentID}", h.Tournament.Delete)
				r.Post("/{tournamentID}/logo", h.Tournament.UploadLogo)
				r.Post("/{tournamentID}/fixtures/generate", h.Fixture.Generate)
				r.Post("/{tournamentID}/fixtures", h.Fixture.Create)
			})
		})
	})

	router.Route("/registrations", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.Authorize(models.RoleOrganizer))
		r.Post("/{registrationID}/approve", h.Registration.Approve)
		r.Post("/{registrationID}/reject", h.Registration.Reject)
	})

	router.Route("/fixtures", func(r chi.Router) {
		r.Get("/{fixtureID}", h.Fixture.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.Authorize(models.RoleOrganizer, models.RoleReferee))
			r.Patch("/{fixtureID}/score", h.Fixture.UpdateScore)
			r.Patch("/{fixtureID}/schedule", h.Fixture.UpdateSchedule)
		})
	})

	router.Route("/users", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/me", h.User.GetMe)
		r.Patch("/me", h.User.UpdateMe)
	})

	router.Route("/dashboard", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.Authorize(models.RoleOrganizer))
		r.Get("/stats", h.Dashboard.Stats)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "route not found", http.StatusNotFound)
	})
}
