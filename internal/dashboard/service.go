package dashboard

import (
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/expense"
)

// ExpenseSource is the month-window read the aggregator needs from the
// expense store.
type ExpenseSource interface {
	GetByUserSince(userID int64, since time.Time) ([]*expense.Expense, error)
}

// Service computes the dashboard reductions. All three reads are pure
// in-memory passes over the current month's expenses.
type Service struct {
	expenses ExpenseSource
	logger   *slog.Logger
}

func NewService(expenses ExpenseSource, logger *slog.Logger) *Service {
	return &Service{
		expenses: expenses,
		logger:   logger,
	}
}

func (s *Service) currentMonth(userID int64) ([]*expense.Expense, error) {
	items, err := s.expenses.GetByUserSince(userID, expense.MonthStart(time.Now()))
	if err != nil {
		s.logger.Error("failed to load current month expenses", "error", err, "user_id", userID)
		return nil, err
	}
	return items, nil
}

// MonthlySummary returns total spent, the category with the highest amount
// sum and up to three payment methods ranked by transaction count. Ties keep
// whichever key was encountered first.
func (s *Service) MonthlySummary(userID int64) (*Summary, error) {
	items, err := s.currentMonth(userID)
	if err != nil {
		return nil, err
	}

	var total float64
	categoryTotals := map[string]float64{}
	var categoryOrder []string
	methodCounts := map[string]int{}
	var methodOrder []string

	for _, e := range items {
		total += e.Amount

		if _, seen := categoryTotals[e.Category]; !seen {
			categoryOrder = append(categoryOrder, e.Category)
		}
		categoryTotals[e.Category] += e.Amount

		if _, seen := methodCounts[e.PaymentMethod]; !seen {
			methodOrder = append(methodOrder, e.PaymentMethod)
		}
		methodCounts[e.PaymentMethod]++
	}

	var topCategory string
	for _, c := range categoryOrder {
		if topCategory == "" || categoryTotals[c] > categoryTotals[topCategory] {
			topCategory = c
		}
	}

	// Stable sort keeps first-encountered order among equal counts.
	sort.SliceStable(methodOrder, func(i, j int) bool {
		return methodCounts[methodOrder[i]] > methodCounts[methodOrder[j]]
	})
	if len(methodOrder) > 3 {
		methodOrder = methodOrder[:3]
	}
	if methodOrder == nil {
		methodOrder = []string{}
	}

	return &Summary{
		TotalSpent:        total,
		TopCategory:       topCategory,
		TopPaymentMethods: methodOrder,
	}, nil
}

// CategoryPie returns category → summed amount for the current month.
func (s *Service) CategoryPie(userID int64) (CategoryBreakdown, error) {
	items, err := s.currentMonth(userID)
	if err != nil {
		return nil, err
	}

	data := CategoryBreakdown{}
	for _, e := range items {
		data[e.Category] += e.Amount
	}
	return data, nil
}

// DailyLine returns day key → summed amount for the current month.
func (s *Service) DailyLine(userID int64) (DailySeries, error) {
	items, err := s.currentMonth(userID)
	if err != nil {
		return nil, err
	}

	data := DailySeries{}
	for _, e := range items {
		day := e.ExpenseDate.Format("2006-01-02")
		data[day] += e.Amount
	}
	return data, nil
}
