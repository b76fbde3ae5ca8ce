package budget

import (
	"errors"
	"time"
)

// Budget holds one monthly limit per (user, category). The unique index backs
// the upsert semantics: posting an existing category overwrites the limit.
type Budget struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_budgets_user_category"`
	Category    string    `json:"category" gorm:"not null;uniqueIndex:idx_budgets_user_category"`
	LimitAmount float64   `json:"limit" gorm:"column:limit_amount;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

// TableName returns the table name for GORM
func (Budget) TableName() string {
	return "budgets"
}

// Alert levels derived from spent-vs-limit. None is the zero value so it is
// omitted from JSON, matching the null alert the frontend expects.
const (
	AlertNone    = ""
	AlertWarning = "warning"
	AlertOver    = "over"
)

// warningRatio is the fraction of the limit at which spending alerts early.
const warningRatio = 0.8

// Status is the derived spent-to-date view for one category. Never persisted;
// spent is recomputed from the current calendar month at query time.
type Status struct {
	Spent float64 `json:"spent"`
	Limit float64 `json:"limit"`
	Alert string  `json:"alert,omitempty"`
}

// AlertFor classifies spending against a limit: over when spent reaches the
// limit (a zero limit is immediately over), warning at 80% of it.
func AlertFor(spent, limit float64) string {
	if spent >= limit {
		return AlertOver
	}
	if spent >= warningRatio*limit {
		return AlertWarning
	}
	return AlertNone
}

// Domain errors
var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrNoBudget       = errors.New("no budget configured for category")
)
