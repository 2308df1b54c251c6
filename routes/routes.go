package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/app"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/handlers"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware. Credentialed cookies require explicit origins.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(deps.TokenCodec, deps.Logger)
	userHandler := handlers.NewUserHandler(deps.Repos.Users, deps.Logger)
	campHandler := handlers.NewCampHandler(deps.Repos.Camps, deps.Logger)
	registrationHandler := handlers.NewRegistrationHandler(deps.Repos.Registrations, deps.Repos.Camps, deps.TxManager, deps.Logger)
	feedbackHandler := handlers.NewFeedbackHandler(deps.Repos.Feedbacks, deps.Logger)
	paymentHandler := handlers.NewPaymentHandler(deps.Repos.Orders, deps.Repos.Registrations, deps.Payments, deps.Config.Payment.Currency, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Logger)

	auth := deps.AuthMiddleware

	// Health check endpoints
	r.Get("/healthz", healthHandler.HandleHealth)
	r.Get("/readyz", healthHandler.HandleReadiness)

	// Session endpoints
	r.Post("/jwt", authHandler.HandleIssueToken)
	r.With(auth.RequireAuth).Get("/logout", authHandler.HandleLogout)

	// User endpoints
	r.Post("/users", userHandler.HandleCreateUser)
	r.With(auth.RequireAuth, auth.RequireOrganizer).Get("/users", userHandler.HandleListUsers)
	r.With(auth.RequireAuth).Get("/users/{email}", userHandler.HandleGetUserByEmail)
	r.With(auth.RequireAuth).Patch("/users/{id}", userHandler.HandleUpdateUser)

	// Camp endpoints
	r.Get("/camps", campHandler.HandleListCamps)
	r.Get("/camp-details/{id}", campHandler.HandleCampDetails)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Use(auth.RequireOrganizer)
		r.Post("/addCamp", campHandler.HandleAddCamp)
		r.Get("/manage-camp/{email}", campHandler.HandleManageCamps)
		r.Patch("/update-camp/{campId}", campHandler.HandleUpdateCamp)
		r.Delete("/delete-camp/{campId}", campHandler.HandleDeleteCamp)
	})

	// Registration endpoints
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Post("/registrations/{email}", registrationHandler.HandleCreateRegistration)
		r.Get("/registrations/{email}", registrationHandler.HandleListRegistrations)
		r.Delete("/registrations/{id}", registrationHandler.HandleDeleteRegistration)
		r.Patch("/registrations-participantCount/{id}", registrationHandler.HandleIncrementParticipantCount)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Use(auth.RequireOrganizer)
		r.Patch("/order-confirm", registrationHandler.HandleConfirmOrder)
		r.Delete("/cancel-registration", registrationHandler.HandleCancelRegistration)
	})

	// Feedback endpoints
	r.With(auth.RequireAuth).Post("/feedback", feedbackHandler.HandlePostFeedback)
	r.Get("/feedback", feedbackHandler.HandleListFeedback)

	// Payment endpoints
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Post("/create-payment-intent", paymentHandler.HandleCreatePaymentIntent)
		r.Post("/order", paymentHandler.HandleCreateOrder)
		r.Patch("/payment-status-update", paymentHandler.HandleUpdatePaymentStatus)
		r.Get("/payment-status-update", paymentHandler.HandleGetPaymentHistory)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
