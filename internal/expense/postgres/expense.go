package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM.
// It also serves the month-window reads used by budget status, dashboard and
// the insight relay.
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create saves a new expense to the database
func (r *ExpenseRepository) Create(exp *expense.Expense) error {
	return r.db.Create(exp).Error
}

// GetByID retrieves an expense by its ID, scoped to the owning user
func (r *ExpenseRepository) GetByID(id string, userID int64) (*expense.Expense, error) {
	var exp expense.Expense
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&exp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expense.ErrExpenseNotFound
		}
		return nil, err
	}
	return &exp, nil
}

// Search retrieves a user's expenses matching the filter, date descending.
// Date bounds are inclusive on both ends at day granularity.
func (r *ExpenseRepository) Search(userID int64, f expense.Filter) ([]*expense.Expense, error) {
	q := r.db.Where("user_id = ?", userID)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.PaymentMethod != "" {
		q = q.Where("payment_method = ?", f.PaymentMethod)
	}
	if f.StartDate != nil {
		q = q.Where("expense_date >= ?", expense.DayStart(*f.StartDate))
	}
	if f.EndDate != nil {
		q = q.Where("expense_date < ?", expense.DayStart(*f.EndDate).AddDate(0, 0, 1))
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(notes) LIKE ? OR LOWER(category) LIKE ? OR LOWER(payment_method) LIKE ?",
			pattern, pattern, pattern)
	}

	var expenses []*expense.Expense
	err := q.Order("expense_date DESC").Find(&expenses).Error
	return expenses, err
}

// Update updates an existing expense
func (r *ExpenseRepository) Update(exp *expense.Expense) error {
	exp.UpdatedAt = time.Now()
	return r.db.Save(exp).Error
}

// Delete removes an expense scoped to the owning user
func (r *ExpenseRepository) Delete(id string, userID int64) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&expense.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

// GetByUserSince retrieves a user's expenses dated on/after since.
func (r *ExpenseRepository) GetByUserSince(userID int64, since time.Time) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Where("user_id = ? AND expense_date >= ?", userID, since).
		Order("expense_date ASC").
		Find(&expenses).Error
	return expenses, err
}

// SumCategorySince sums a user's spending in one category dated on/after since.
func (r *ExpenseRepository) SumCategorySince(userID int64, category string, since time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&expense.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category = ? AND expense_date >= ?", userID, category, since).
		Scan(&total).Error
	return total, err
}
