package budget_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/expense-tracker/internal/auth"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	budgetPostgres "github.com/frahmantamala/expense-tracker/internal/budget/postgres"
)

type sqliteBudget struct {
	ID          string    `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:idx_budgets_user_category"`
	Category    string    `gorm:"not null;uniqueIndex:idx_budgets_user_category"`
	LimitAmount float64   `gorm:"column:limit_amount;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (sqliteBudget) TableName() string {
	return "budgets"
}

type fixedSummer struct {
	totals map[string]float64
}

func (f *fixedSummer) SumCategorySince(userID int64, category string, since time.Time) (float64, error) {
	return f.totals[category], nil
}

var _ = Describe("Budget Handler Integration", func() {
	var (
		db      *gorm.DB
		summer  *fixedSummer
		handler *budget.Handler
		router  *chi.Mux
	)

	asUser := func(req *http.Request, userID int64) *http.Request {
		user := &auth.User{ID: userID, Email: "user@example.com"}
		return req.WithContext(context.WithValue(req.Context(), auth.ContextUserKey, user))
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteBudget{})
		Expect(err).NotTo(HaveOccurred())

		repo := budgetPostgres.NewBudgetRepository(db)
		summer = &fixedSummer{totals: map[string]float64{}}
		service := budget.NewService(repo, summer, slogger)
		handler = budget.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/budgets", handler.UpsertBudget)
		router.Get("/budgets", handler.ListBudgets)
		router.Delete("/budgets/{id}", handler.DeleteBudget)
		router.Get("/budgets/status/{category}", handler.CategoryStatus)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("POST /budgets", func() {
		It("should create a budget and return 201", func() {
			body := `{"category": "Food", "limit": 800}`
			req := asUser(httptest.NewRequest(http.MethodPost, "/budgets", bytes.NewBufferString(body)), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created budget.Budget
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.LimitAmount).To(Equal(800.0))
		})

		It("should overwrite the limit when the category repeats", func() {
			for _, body := range []string{`{"category": "Food", "limit": 800}`, `{"category": "Food", "limit": 300}`} {
				req := asUser(httptest.NewRequest(http.MethodPost, "/budgets", bytes.NewBufferString(body)), 1)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				Expect(w.Code).To(Equal(http.StatusCreated))
			}

			req := asUser(httptest.NewRequest(http.MethodGet, "/budgets", nil), 1)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			var budgets []budget.Budget
			Expect(json.NewDecoder(w.Body).Decode(&budgets)).To(Succeed())
			Expect(budgets).To(HaveLen(1))
			Expect(budgets[0].LimitAmount).To(Equal(300.0))
		})

		It("should reject an unrecognized category with 400", func() {
			body := `{"category": "Groceries", "limit": 100}`
			req := asUser(httptest.NewRequest(http.MethodPost, "/budgets", bytes.NewBufferString(body)), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /budgets/status/{category}", func() {
		It("should report a no-budget sentinel when nothing is configured", func() {
			req := asUser(httptest.NewRequest(http.MethodGet, "/budgets/status/Food", nil), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"status": "no-budget"}`))
		})

		It("should compute spent against the configured limit", func() {
			body := `{"category": "Food", "limit": 100}`
			req := asUser(httptest.NewRequest(http.MethodPost, "/budgets", bytes.NewBufferString(body)), 1)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusCreated))

			summer.totals["Food"] = 85

			statusReq := asUser(httptest.NewRequest(http.MethodGet, "/budgets/status/Food", nil), 1)
			statusW := httptest.NewRecorder()
			router.ServeHTTP(statusW, statusReq)

			Expect(statusW.Code).To(Equal(http.StatusOK))

			var status budget.Status
			Expect(json.NewDecoder(statusW.Body).Decode(&status)).To(Succeed())
			Expect(status.Spent).To(Equal(85.0))
			Expect(status.Limit).To(Equal(100.0))
			Expect(status.Alert).To(Equal(budget.AlertWarning))
		})

		It("should reject an unknown category with 400", func() {
			req := asUser(httptest.NewRequest(http.MethodGet, "/budgets/status/Groceries", nil), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("DELETE /budgets/{id}", func() {
		It("should return 404 for a foreign budget", func() {
			body := `{"category": "Food", "limit": 100}`
			req := asUser(httptest.NewRequest(http.MethodPost, "/budgets", bytes.NewBufferString(body)), 1)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			var created budget.Budget
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

			delReq := asUser(httptest.NewRequest(http.MethodDelete, "/budgets/"+created.ID, nil), 2)
			delW := httptest.NewRecorder()
			router.ServeHTTP(delW, delReq)

			Expect(delW.Code).To(Equal(http.StatusNotFound))
		})
	})
})
