package expense_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
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
	"github.com/frahmantamala/expense-tracker/internal/expense"
	expensePostgres "github.com/frahmantamala/expense-tracker/internal/expense/postgres"
)

type sqliteExpense struct {
	ID            string    `gorm:"primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null"`
	Amount        float64   `gorm:"not null"`
	Category      string    `gorm:"not null"`
	ExpenseDate   time.Time `gorm:"column:expense_date;not null"`
	PaymentMethod string    `gorm:"column:payment_method;not null"`
	Notes         string    `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (sqliteExpense) TableName() string {
	return "expenses"
}

var _ = Describe("Expense Handler Integration", func() {
	var (
		db      *gorm.DB
		service *expense.Service
		handler *expense.Handler
		router  *chi.Mux
	)

	asUser := func(req *http.Request, userID int64) *http.Request {
		user := &auth.User{ID: userID, Email: fmt.Sprintf("user%d@example.com", userID)}
		return req.WithContext(context.WithValue(req.Context(), auth.ContextUserKey, user))
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteExpense{})
		Expect(err).NotTo(HaveOccurred())

		repo := expensePostgres.NewExpenseRepository(db)
		service = expense.NewService(repo, slogger)
		handler = expense.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/expenses", handler.CreateExpense)
		router.Get("/expenses", handler.ListExpenses)
		router.Put("/expenses/{id}", handler.UpdateExpense)
		router.Delete("/expenses/{id}", handler.DeleteExpense)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("POST /expenses", func() {
		It("should create an expense and return 201", func() {
			body := `{"amount": 120.50, "category": "Food", "date": "2026-08-15T12:00:00Z", "payment_method": "Cash", "notes": "lunch"}`
			req := asUser(httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewBufferString(body)), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created expense.Expense
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.Amount).To(Equal(120.50))
			Expect(created.UserID).To(Equal(int64(1)))
		})

		It("should reject an unrecognized category with 400", func() {
			body := `{"amount": 10, "category": "Bribes", "date": "2026-08-15T12:00:00Z", "payment_method": "Cash"}`
			req := asUser(httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewBufferString(body)), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a request without an authenticated user", func() {
			body := `{"amount": 10, "category": "Food", "date": "2026-08-15T12:00:00Z", "payment_method": "Cash"}`
			req := httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewBufferString(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GET /expenses", func() {
		BeforeEach(func() {
			seed := []string{
				`{"amount": 100, "category": "Food", "date": "2026-08-15T12:00:00Z", "payment_method": "Cash", "notes": "lunch"}`,
				`{"amount": 1200, "category": "Rent", "date": "2026-08-10T09:00:00Z", "payment_method": "Debit Card", "notes": "monthly rent"}`,
				`{"amount": 340, "category": "Travel", "date": "2026-08-05T08:00:00Z", "payment_method": "Credit Card", "notes": "train tickets"}`,
			}
			for _, body := range seed {
				req := asUser(httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewBufferString(body)), 1)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				Expect(w.Code).To(Equal(http.StatusCreated))
			}
		})

		It("should list all expenses newest first with no params", func() {
			req := asUser(httptest.NewRequest(http.MethodGet, "/expenses", nil), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var result []expense.Expense
			Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
			Expect(result).To(HaveLen(3))
			Expect(result[0].Category).To(Equal("Food"))
			Expect(result[2].Category).To(Equal("Travel"))
		})

		It("should apply category and date filters from the query", func() {
			req := asUser(httptest.NewRequest(http.MethodGet, "/expenses?category=Rent&startDate=2026-08-01&endDate=2026-08-12", nil), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var result []expense.Expense
			Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Amount).To(Equal(1200.0))
		})

		It("should apply text search from the query", func() {
			req := asUser(httptest.NewRequest(http.MethodGet, "/expenses?search=tickets", nil), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			var result []expense.Expense
			Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Category).To(Equal("Travel"))
		})

		It("should reject a malformed date param with 400", func() {
			req := asUser(httptest.NewRequest(http.MethodGet, "/expenses?startDate=yesterday", nil), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return an empty array, not null, for a user with nothing", func() {
			req := asUser(httptest.NewRequest(http.MethodGet, "/expenses", nil), 42)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`[]`))
		})
	})

	Describe("PUT and DELETE /expenses/{id}", func() {
		var createdID string

		BeforeEach(func() {
			body := `{"amount": 100, "category": "Food", "date": "2026-08-15T12:00:00Z", "payment_method": "Cash"}`
			req := asUser(httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewBufferString(body)), 1)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			var created expense.Expense
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			createdID = created.ID
		})

		It("should update an owned expense", func() {
			body := `{"amount": 250, "category": "Travel", "date": "2026-08-14T12:00:00Z", "payment_method": "UPI"}`
			req := asUser(httptest.NewRequest(http.MethodPut, "/expenses/"+createdID, bytes.NewBufferString(body)), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var updated expense.Expense
			Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
			Expect(updated.Amount).To(Equal(250.0))
			Expect(updated.Category).To(Equal("Travel"))
		})

		It("should return 404 when another user updates it", func() {
			body := `{"amount": 250, "category": "Travel", "date": "2026-08-14T12:00:00Z", "payment_method": "UPI"}`
			req := asUser(httptest.NewRequest(http.MethodPut, "/expenses/"+createdID, bytes.NewBufferString(body)), 2)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should delete an owned expense", func() {
			req := asUser(httptest.NewRequest(http.MethodDelete, "/expenses/"+createdID, nil), 1)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			listReq := asUser(httptest.NewRequest(http.MethodGet, "/expenses", nil), 1)
			listW := httptest.NewRecorder()
			router.ServeHTTP(listW, listReq)
			Expect(listW.Body.String()).To(MatchJSON(`[]`))
		})

		It("should return 404 when another user deletes it", func() {
			req := asUser(httptest.NewRequest(http.MethodDelete, "/expenses/"+createdID, nil), 2)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
