package expense

import (
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
)

// CreateExpenseDTO represents the request payload for creating an expense
type CreateExpenseDTO struct {
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	ExpenseDate   time.Time `json:"date"`
	PaymentMethod string    `json:"payment_method"`
	Notes         string    `json:"notes,omitempty"`
}

// Validate validates the CreateExpenseDTO. Categories and payment methods are
// closed enums; unrecognized values are rejected rather than stored as-is.
func (dto CreateExpenseDTO) Validate() error {
	if dto.Amount <= 0 {
		return internal.NewValidationError("amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if dto.Category == "" {
		return internal.NewValidationError("category is required", internal.ErrCodeInvalidCategory)
	}
	if !IsValidCategory(dto.Category) {
		return internal.NewValidationError("unrecognized category", internal.ErrCodeInvalidCategory)
	}
	if dto.ExpenseDate.IsZero() {
		return internal.NewValidationError("date is required", internal.ErrCodeInvalidDate)
	}
	if dto.PaymentMethod == "" {
		return internal.NewValidationError("payment method is required", internal.ErrCodeInvalidPayment)
	}
	if !IsValidPaymentMethod(dto.PaymentMethod) {
		return internal.NewValidationError("unrecognized payment method", internal.ErrCodeInvalidPayment)
	}
	if len(dto.Notes) > 500 {
		return internal.NewValidationError("notes must be less than 500 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateExpenseDTO carries a full replacement of the mutable expense fields.
type UpdateExpenseDTO struct {
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	ExpenseDate   time.Time `json:"date"`
	PaymentMethod string    `json:"payment_method"`
	Notes         string    `json:"notes,omitempty"`
}

func (dto UpdateExpenseDTO) Validate() error {
	return CreateExpenseDTO(dto).Validate()
}

// Filter holds optional constraints for the expense listing. Zero values mean
// "no constraint on that field".
type Filter struct {
	Category      string
	PaymentMethod string
	StartDate     *time.Time
	EndDate       *time.Time
	Search        string
}
