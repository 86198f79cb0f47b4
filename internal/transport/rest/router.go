package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/pushparaj09/medishift-ai/internal/auth"
	"github.com/pushparaj09/medishift-ai/internal/employee"
	"github.com/pushparaj09/medishift-ai/internal/forecast"
	"github.com/pushparaj09/medishift-ai/internal/leave"
	"github.com/pushparaj09/medishift-ai/internal/notification"
	"github.com/pushparaj09/medishift-ai/internal/schedule"
	"github.com/pushparaj09/medishift-ai/internal/transport"
	"github.com/pushparaj09/medishift-ai/internal/transport/middleware"
	"github.com/pushparaj09/medishift-ai/internal/transport/swagger"
)

type Handlers struct {
	Auth         *auth.Handler
	Employee     *employee.Handler
	Schedule     *schedule.Handler
	Leave        *leave.Handler
	Notification *notification.Handler
	Forecast     *forecast.Handler
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, authService auth.ServiceAPI, allowedOrigins string, forecastConfigured bool, logger *slog.Logger) {
	healthHandler := NewHealthHandler(forecastConfigured)
	base := transport.NewBaseHandler(logger)

	requireAuth := auth.Middleware(authService, base)
	requireAdmin := auth.RequireAdmin(base)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.Refresh)
			sr.Post("/logout", h.Auth.Logout)
			sr.Post("/password-reset/request", h.Auth.RequestReset)
			sr.Post("/password-reset/verify", h.Auth.VerifyResetCode)
			sr.Post("/password-reset/confirm", h.Auth.ResetPassword)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(requireAuth)

			pr.Get("/users/me", h.Auth.Me)
			pr.Put("/users/me/credentials", h.Employee.UpdateCredentials)

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employee.ListEmployees)
				er.Get("/{id}", h.Employee.GetEmployee)
				er.Get("/nearest", h.Employee.NearestAvailable)
				er.Put("/{id}/status", h.Employee.UpdateStatus)
				er.Put("/{id}", h.Employee.UpdateEmployee)

				// Directory management is admin only
				er.Group(func(ar chi.Router) {
					ar.Use(requireAdmin)
					ar.Post("/", h.Employee.CreateEmployee)
					ar.Delete("/{id}", h.Employee.DeleteEmployee)
					ar.Post("/dispatch", h.Employee.Dispatch)
				})
			})

			pr.Route("/schedule", func(sr chi.Router) {
				sr.Get("/", h.Schedule.GetWeekSchedule)
				sr.Put("/shifts", h.Schedule.SetShift)

				sr.Group(func(ar chi.Router) {
					ar.Use(requireAdmin)
					ar.Post("/autofill", h.Schedule.AutoFill)
				})
			})

			pr.Route("/swaps", func(sr chi.Router) {
				sr.Get("/", h.Schedule.ListSwaps)
				sr.Post("/mode/enter", h.Schedule.EnterSwapMode)
				sr.Post("/mode/exit", h.Schedule.ExitSwapMode)
				sr.Get("/selection", h.Schedule.SelectionState)
				sr.Post("/select", h.Schedule.SelectCell)

				sr.Group(func(ar chi.Router) {
					ar.Use(requireAdmin)
					ar.Patch("/{id}/approve", h.Schedule.ApproveSwap)
					ar.Patch("/{id}/reject", h.Schedule.RejectSwap)
				})
			})

			pr.Route("/leaves", func(lr chi.Router) {
				lr.Post("/", h.Leave.SubmitLeave)
				lr.Get("/", h.Leave.ListLeaves)

				lr.Group(func(ar chi.Router) {
					ar.Use(requireAdmin)
					ar.Patch("/{id}/approve", h.Leave.ApproveLeave)
					ar.Patch("/{id}/reject", h.Leave.RejectLeave)
				})
			})

			pr.Route("/notifications", func(nr chi.Router) {
				nr.Get("/", h.Notification.ListMyNotifications)
				nr.Patch("/{id}/read", h.Notification.MarkRead)
				nr.Get("/toasts", h.Notification.ListToasts)
				nr.Delete("/toasts/{id}", h.Notification.DismissToast)
			})

			pr.Get("/forecast", h.Forecast.GetForecast)
		})
	})
}
