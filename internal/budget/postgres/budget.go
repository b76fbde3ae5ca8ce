package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetRepository implements the budget.Repository interface using GORM.
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Upsert inserts the budget or, when (user_id, category) already exists,
// overwrites its limit. Atomicity comes from the database's ON CONFLICT, not
// from any application lock.
func (r *BudgetRepository) Upsert(b *budget.Budget) error {
	now := time.Now()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"limit_amount": b.LimitAmount,
			"updated_at":   now,
		}),
	}).Create(b).Error
}

// GetByUser retrieves all budgets for a user
func (r *BudgetRepository) GetByUser(userID int64) ([]*budget.Budget, error) {
	var budgets []*budget.Budget
	err := r.db.Where("user_id = ?", userID).
		Order("category ASC").
		Find(&budgets).Error
	return budgets, err
}

// GetByUserAndCategory retrieves the single budget for (user, category)
func (r *BudgetRepository) GetByUserAndCategory(userID int64, category string) (*budget.Budget, error) {
	var b budget.Budget
	err := r.db.Where("user_id = ? AND category = ?", userID, category).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budget.ErrBudgetNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Delete removes a budget scoped to the owning user
func (r *BudgetRepository) Delete(id string, userID int64) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&budget.Budget{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return budget.ErrBudgetNotFound
	}
	return nil
}
