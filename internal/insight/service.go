package insight

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/expense"
)

// ExpenseSource is the windowed read the relay needs from the expense store.
type ExpenseSource interface {
	GetByUserSince(userID int64, since time.Time) ([]*expense.Expense, error)
}

// BudgetSource lists a user's budgets for report bundles.
type BudgetSource interface {
	GetByUser(userID int64) ([]*budget.Budget, error)
}

// Service bundles the caller's data and relays it to the external
// intelligence service. No local fallback: when the call fails the caller
// gets a service-unavailable error.
type Service struct {
	client   Client
	expenses ExpenseSource
	budgets  BudgetSource
	logger   *slog.Logger
}

func NewService(client Client, expenses ExpenseSource, budgets BudgetSource, logger *slog.Logger) *Service {
	return &Service{
		client:   client,
		expenses: expenses,
		budgets:  budgets,
		logger:   logger,
	}
}

// GenerateReport sends the current month's expenses plus all budgets and
// relays the response unchanged.
func (s *Service) GenerateReport(ctx context.Context, userID int64) (json.RawMessage, error) {
	expenses, budgets, err := s.reportBundle(userID)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateReport(ctx, expenses, budgets)
	if err != nil {
		s.logger.Error("report generation failed", "error", err, "user_id", userID)
		return nil, internal.NewExternalError("could not generate report", err)
	}

	return raw, nil
}

// MonthlyReports returns the current month's report wrapped in a one-element
// array with a month key, the shape the listing endpoint has always had.
func (s *Service) MonthlyReports(ctx context.Context, userID int64) ([]ReportEntry, error) {
	expenses, budgets, err := s.reportBundle(userID)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateReport(ctx, expenses, budgets)
	if err != nil {
		s.logger.Error("report fetch failed", "error", err, "user_id", userID)
		return nil, internal.NewExternalError("could not fetch reports", err)
	}

	entry := ReportEntry{}
	if err := json.Unmarshal(raw, &entry); err != nil {
		s.logger.Error("report response is not an object", "error", err, "user_id", userID)
		return nil, internal.NewExternalError("could not fetch reports", ErrUpstream)
	}
	entry["month"] = time.Now().Format("2006-01")

	return []ReportEntry{entry}, nil
}

// Suggestions sends the trailing 30 days of expenses and relays the response
// unchanged.
func (s *Service) Suggestions(ctx context.Context, userID int64) (json.RawMessage, error) {
	since := time.Now().AddDate(0, 0, -30)
	items, err := s.expenses.GetByUserSince(userID, since)
	if err != nil {
		s.logger.Error("failed to load expenses for suggestions", "error", err, "user_id", userID)
		return nil, err
	}

	raw, err := s.client.GetSuggestions(ctx, toExpensePayloads(items))
	if err != nil {
		s.logger.Error("suggestions fetch failed", "error", err, "user_id", userID)
		return nil, internal.NewExternalError("could not get suggestions", err)
	}

	return raw, nil
}

func (s *Service) reportBundle(userID int64) ([]ExpensePayload, []BudgetPayload, error) {
	items, err := s.expenses.GetByUserSince(userID, expense.MonthStart(time.Now()))
	if err != nil {
		s.logger.Error("failed to load expenses for report", "error", err, "user_id", userID)
		return nil, nil, err
	}

	budgets, err := s.budgets.GetByUser(userID)
	if err != nil {
		s.logger.Error("failed to load budgets for report", "error", err, "user_id", userID)
		return nil, nil, err
	}

	budgetPayloads := make([]BudgetPayload, 0, len(budgets))
	for _, b := range budgets {
		budgetPayloads = append(budgetPayloads, BudgetPayload{
			Category: b.Category,
			Limit:    b.LimitAmount,
		})
	}

	return toExpensePayloads(items), budgetPayloads, nil
}

func toExpensePayloads(items []*expense.Expense) []ExpensePayload {
	payloads := make([]ExpensePayload, 0, len(items))
	for _, e := range items {
		payloads = append(payloads, ExpensePayload{
			Amount:        e.Amount,
			Category:      e.Category,
			Date:          e.ExpenseDate,
			PaymentMethod: e.PaymentMethod,
			Notes:         e.Notes,
		})
	}
	return payloads
}

// IsUpstreamError reports whether err came from the external service call.
func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}
