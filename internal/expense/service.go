package expense

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Repository interface defines the data access methods for expenses
type Repository interface {
	Create(expense *Expense) error
	GetByID(id string, userID int64) (*Expense, error)
	Search(userID int64, filter Filter) ([]*Expense, error)
	Update(expense *Expense) error
	Delete(id string, userID int64) error
}

// Service handles expense business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new expense service
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateExpense validates and stores a new expense for the given user.
func (s *Service) CreateExpense(userID int64, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	now := time.Now()
	expense := &Expense{
		ID:            uuid.NewString(),
		UserID:        userID,
		Amount:        dto.Amount,
		Category:      dto.Category,
		ExpenseDate:   dto.ExpenseDate,
		PaymentMethod: dto.PaymentMethod,
		Notes:         dto.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(expense); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("expense created",
		"expense_id", expense.ID,
		"user_id", userID,
		"amount", dto.Amount,
		"category", dto.Category)

	return expense, nil
}

// ListExpenses returns the user's expenses matching the filter, newest first.
func (s *Service) ListExpenses(userID int64, filter Filter) ([]*Expense, error) {
	expenses, err := s.repo.Search(userID, filter)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", userID)
		return nil, err
	}
	return expenses, nil
}

// UpdateExpense replaces the mutable fields of an owned expense. A missing or
// foreign expense surfaces as not found, never as forbidden.
func (s *Service) UpdateExpense(userID int64, expenseID string, dto UpdateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err, "user_id", userID, "expense_id", expenseID)
		return nil, err
	}

	expense, err := s.repo.GetByID(expenseID, userID)
	if err != nil {
		return nil, ErrExpenseNotFound
	}

	expense.Amount = dto.Amount
	expense.Category = dto.Category
	expense.ExpenseDate = dto.ExpenseDate
	expense.PaymentMethod = dto.PaymentMethod
	expense.Notes = dto.Notes
	expense.UpdatedAt = time.Now()

	if err := s.repo.Update(expense); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", expenseID)
		return nil, err
	}

	s.logger.Info("expense updated", "expense_id", expenseID, "user_id", userID)
	return expense, nil
}

// DeleteExpense removes an owned expense, with the same not-found scoping as update.
func (s *Service) DeleteExpense(userID int64, expenseID string) error {
	if _, err := s.repo.GetByID(expenseID, userID); err != nil {
		return ErrExpenseNotFound
	}

	if err := s.repo.Delete(expenseID, userID); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", expenseID)
		return err
	}

	s.logger.Info("expense deleted", "expense_id", expenseID, "user_id", userID)
	return nil
}
