package expense

import (
	"errors"
	"time"
)

// Expense belongs to exactly one user; every accessor is scoped by that user.
type Expense struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID        int64     `json:"user_id" gorm:"column:user_id;not null;index"`
	Amount        float64   `json:"amount" gorm:"not null"`
	Category      string    `json:"category" gorm:"not null"`
	ExpenseDate   time.Time `json:"date" gorm:"column:expense_date;not null"`
	PaymentMethod string    `json:"payment_method" gorm:"column:payment_method;not null"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// Categories is the closed set accepted at the API boundary.
var Categories = []string{
	"Food",
	"Rent",
	"Shopping",
	"Travel",
	"Utilities",
	"Entertainment",
	"Health",
	"Other",
}

// PaymentMethods is the closed set accepted at the API boundary.
var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"UPI",
	"Other",
}

func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

func IsValidPaymentMethod(name string) bool {
	for _, m := range PaymentMethods {
		if m == name {
			return true
		}
	}
	return false
}

// MonthStart truncates t to the first day of its calendar month, start of day,
// in t's location. Budget status and dashboard windows both key off this.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DayStart truncates t to the start of its day in t's location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Domain errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
)
