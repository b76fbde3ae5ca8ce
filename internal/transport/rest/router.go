package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/expense-tracker/internal/auth"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/dashboard"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/insight"
	"github.com/frahmantamala/expense-tracker/internal/transport/middleware"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RegisterAllRoutes wires every handler onto the /api/v1 surface. Everything
// except registration, login, refresh and health sits behind the auth gate.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	authHandler *auth.Handler,
	expenseHandler *expense.Handler,
	budgetHandler *budget.Handler,
	dashboardHandler *dashboard.Handler,
	insightHandler *insight.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", authHandler.Me)

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", expenseHandler.CreateExpense)        // POST /expenses
				er.Get("/", expenseHandler.ListExpenses)          // GET /expenses
				er.Put("/{id}", expenseHandler.UpdateExpense)     // PUT /expenses/:id
				er.Delete("/{id}", expenseHandler.DeleteExpense)  // DELETE /expenses/:id
			})

			pr.Route("/budgets", func(br chi.Router) {
				br.Post("/", budgetHandler.UpsertBudget)                  // POST /budgets
				br.Get("/", budgetHandler.ListBudgets)                    // GET /budgets
				br.Delete("/{id}", budgetHandler.DeleteBudget)            // DELETE /budgets/:id
				br.Get("/status/{category}", budgetHandler.CategoryStatus) // GET /budgets/status/:category
			})

			pr.Route("/dashboard", func(dr chi.Router) {
				dr.Get("/summary", dashboardHandler.Summary)
				dr.Get("/pie", dashboardHandler.Pie)
				dr.Get("/line", dashboardHandler.Line)
			})

			pr.Route("/reports", func(rr chi.Router) {
				rr.Post("/generate", insightHandler.GenerateReport)
				rr.Get("/", insightHandler.ListReports)
			})

			pr.Get("/suggestions", insightHandler.Suggestions)
		})
	})
}
