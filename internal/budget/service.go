package budget

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
)

// Repository interface defines the data access methods for budgets
type Repository interface {
	Upsert(budget *Budget) error
	GetByUser(userID int64) ([]*Budget, error)
	GetByUserAndCategory(userID int64, category string) (*Budget, error)
	Delete(id string, userID int64) error
}

// ExpenseSummer is the narrow read the status evaluator needs from the
// expense store.
type ExpenseSummer interface {
	SumCategorySince(userID int64, category string, since time.Time) (float64, error)
}

// Service handles budget business logic
type Service struct {
	repo     Repository
	expenses ExpenseSummer
	logger   *slog.Logger
}

// NewService creates a new budget service
func NewService(repo Repository, expenses ExpenseSummer, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		expenses: expenses,
		logger:   logger,
	}
}

// UpsertBudget creates the budget for (user, category) or overwrites its
// limit. Idempotent: posting the same category twice updates the one row.
func (s *Service) UpsertBudget(userID int64, dto UpsertBudgetDTO) (*Budget, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("budget validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	budget := &Budget{
		UserID:      userID,
		Category:    dto.Category,
		LimitAmount: dto.LimitAmount,
	}

	if err := s.repo.Upsert(budget); err != nil {
		s.logger.Error("failed to upsert budget", "error", err, "user_id", userID, "category", dto.Category)
		return nil, err
	}

	// Reload so the caller sees the surviving row, not the transient insert.
	stored, err := s.repo.GetByUserAndCategory(userID, dto.Category)
	if err != nil {
		return nil, err
	}

	s.logger.Info("budget upserted",
		"budget_id", stored.ID,
		"user_id", userID,
		"category", dto.Category,
		"limit", dto.LimitAmount)

	return stored, nil
}

// ListBudgets returns all budgets for the user.
func (s *Service) ListBudgets(userID int64) ([]*Budget, error) {
	budgets, err := s.repo.GetByUser(userID)
	if err != nil {
		s.logger.Error("failed to list budgets", "error", err, "user_id", userID)
		return nil, err
	}
	return budgets, nil
}

// DeleteBudget removes an owned budget; a foreign or missing id is not found.
func (s *Service) DeleteBudget(userID int64, budgetID string) error {
	if err := s.repo.Delete(budgetID, userID); err != nil {
		if err == ErrBudgetNotFound {
			return ErrBudgetNotFound
		}
		s.logger.Error("failed to delete budget", "error", err, "budget_id", budgetID)
		return err
	}

	s.logger.Info("budget deleted", "budget_id", budgetID, "user_id", userID)
	return nil
}

// CategoryStatus computes spent-to-date for the current calendar month against
// the configured limit. Pure read: nothing is cached or persisted.
func (s *Service) CategoryStatus(userID int64, category string) (*Status, error) {
	if !expense.IsValidCategory(category) {
		return nil, internal.NewValidationError("unrecognized category", internal.ErrCodeInvalidCategory)
	}

	b, err := s.repo.GetByUserAndCategory(userID, category)
	if err != nil {
		if err == ErrBudgetNotFound {
			return nil, ErrNoBudget
		}
		s.logger.Error("failed to load budget", "error", err, "user_id", userID, "category", category)
		return nil, err
	}

	spent, err := s.expenses.SumCategorySince(userID, category, expense.MonthStart(time.Now()))
	if err != nil {
		s.logger.Error("failed to sum category spending", "error", err, "user_id", userID, "category", category)
		return nil, err
	}

	return &Status{
		Spent: spent,
		Limit: b.LimitAmount,
		Alert: AlertFor(spent, b.LimitAmount),
	}, nil
}
