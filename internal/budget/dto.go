package budget

import (
	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
)

// UpsertBudgetDTO represents the request payload for creating or replacing a
// category budget.
type UpsertBudgetDTO struct {
	Category    string  `json:"category"`
	LimitAmount float64 `json:"limit"`
}

func (dto UpsertBudgetDTO) Validate() error {
	if dto.Category == "" {
		return internal.NewValidationError("category is required", internal.ErrCodeInvalidCategory)
	}
	if !expense.IsValidCategory(dto.Category) {
		return internal.NewValidationError("unrecognized category", internal.ErrCodeInvalidCategory)
	}
	if dto.LimitAmount < 0 {
		return internal.NewValidationError("limit must not be negative", internal.ErrCodeInvalidAmount)
	}
	return nil
}
