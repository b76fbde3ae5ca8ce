package insight_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/insight"
)

func TestInsight(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Insight Module Suite")
}

// Stub client recording what the relay sends upstream
type stubClient struct {
	reportResponse     json.RawMessage
	suggestionResponse json.RawMessage
	reportError        error
	suggestionError    error

	sentExpenses []insight.ExpensePayload
	sentBudgets  []insight.BudgetPayload
}

func (c *stubClient) GenerateReport(ctx context.Context, expenses []insight.ExpensePayload, budgets []insight.BudgetPayload) (json.RawMessage, error) {
	c.sentExpenses = expenses
	c.sentBudgets = budgets
	if c.reportError != nil {
		return nil, c.reportError
	}
	return c.reportResponse, nil
}

func (c *stubClient) GetSuggestions(ctx context.Context, expenses []insight.ExpensePayload) (json.RawMessage, error) {
	c.sentExpenses = expenses
	if c.suggestionError != nil {
		return nil, c.suggestionError
	}
	return c.suggestionResponse, nil
}

type stubExpenseSource struct {
	expenses []*expense.Expense
	since    time.Time
	getError error
}

func (s *stubExpenseSource) GetByUserSince(userID int64, since time.Time) ([]*expense.Expense, error) {
	s.since = since
	if s.getError != nil {
		return nil, s.getError
	}
	return s.expenses, nil
}

type stubBudgetSource struct {
	budgets  []*budget.Budget
	getError error
}

func (s *stubBudgetSource) GetByUser(userID int64) ([]*budget.Budget, error) {
	if s.getError != nil {
		return nil, s.getError
	}
	return s.budgets, nil
}

var _ = Describe("InsightService", func() {
	var (
		insightService *insight.Service
		client         *stubClient
		expenses       *stubExpenseSource
		budgets        *stubBudgetSource
		logger         *slog.Logger
		ctx            context.Context
	)

	BeforeEach(func() {
		client = &stubClient{
			reportResponse:     json.RawMessage(`{"totalSpent": 270, "highlights": ["Food is trending up"]}`),
			suggestionResponse: json.RawMessage(`{"suggestions": ["cook at home more often"]}`),
		}
		expenses = &stubExpenseSource{
			expenses: []*expense.Expense{
				{Amount: 100, Category: "Food", PaymentMethod: "Cash", Notes: "groceries", ExpenseDate: time.Now()},
				{Amount: 170, Category: "Rent", PaymentMethod: "UPI", ExpenseDate: time.Now()},
			},
		}
		budgets = &stubBudgetSource{
			budgets: []*budget.Budget{
				{UserID: 1, Category: "Food", LimitAmount: 800},
			},
		}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		insightService = insight.NewService(client, expenses, budgets, logger)
		ctx = context.Background()
	})

	Describe("GenerateReport", func() {
		It("should relay the upstream response unchanged", func() {
			// When
			raw, err := insightService.GenerateReport(ctx, 1)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(raw).To(MatchJSON(client.reportResponse))
		})

		It("should bundle the month's expenses and all budgets", func() {
			_, err := insightService.GenerateReport(ctx, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(client.sentExpenses).To(HaveLen(2))
			Expect(client.sentExpenses[0].Category).To(Equal("Food"))
			Expect(client.sentExpenses[0].Notes).To(Equal("groceries"))
			Expect(client.sentBudgets).To(HaveLen(1))
			Expect(client.sentBudgets[0].Limit).To(Equal(800.0))

			// current calendar month window
			Expect(expenses.since).To(Equal(expense.MonthStart(time.Now())))
		})

		It("should return service unavailable when the upstream fails", func() {
			client.reportError = insight.ErrUpstream

			raw, err := insightService.GenerateReport(ctx, 1)

			Expect(raw).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusServiceUnavailable))
			Expect(insight.IsUpstreamError(err)).To(BeTrue())
		})

		It("should surface a storage failure untouched", func() {
			expenses.getError = errors.New("connection refused")

			_, err := insightService.GenerateReport(ctx, 1)

			Expect(err).To(HaveOccurred())
			_, ok := internal.IsAppError(err)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("MonthlyReports", func() {
		It("should wrap the report in a one-element array with a month key", func() {
			entries, err := insightService.MonthlyReports(ctx, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0]).To(HaveKeyWithValue("month", time.Now().Format("2006-01")))
			Expect(entries[0]).To(HaveKeyWithValue("totalSpent", 270.0))
		})

		It("should return service unavailable when the upstream fails", func() {
			client.reportError = insight.ErrUpstream

			entries, err := insightService.MonthlyReports(ctx, 1)

			Expect(entries).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusServiceUnavailable))
		})

		It("should reject a non-object upstream body", func() {
			client.reportResponse = json.RawMessage(`[1, 2, 3]`)

			entries, err := insightService.MonthlyReports(ctx, 1)

			Expect(entries).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusServiceUnavailable))
		})
	})

	Describe("Suggestions", func() {
		It("should relay the upstream response unchanged", func() {
			raw, err := insightService.Suggestions(ctx, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(raw).To(MatchJSON(client.suggestionResponse))
		})

		It("should send the trailing thirty days of expenses", func() {
			before := time.Now().AddDate(0, 0, -30)

			_, err := insightService.Suggestions(ctx, 1)
			after := time.Now().AddDate(0, 0, -30)

			Expect(err).ToNot(HaveOccurred())
			Expect(expenses.since).To(BeTemporally(">=", before))
			Expect(expenses.since).To(BeTemporally("<=", after))
			Expect(client.sentExpenses).To(HaveLen(2))
		})

		It("should return service unavailable when the upstream fails", func() {
			client.suggestionError = insight.ErrUpstream

			raw, err := insightService.Suggestions(ctx, 1)

			Expect(raw).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusServiceUnavailable))
		})
	})
})
