package insight

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ExpensePayload is the wire shape the external service expects for one
// expense. Field names follow its contract, not this repo's JSON style.
type ExpensePayload struct {
	Amount        float64   `json:"amount"`
	Category      string    `json:"category"`
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"paymentMethod"`
	Notes         string    `json:"notes"`
}

// BudgetPayload is the wire shape for one category budget.
type BudgetPayload struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

// Client submits bundled expense data to the external intelligence service
// and returns its response verbatim. Injected so tests can stub it.
type Client interface {
	GenerateReport(ctx context.Context, expenses []ExpensePayload, budgets []BudgetPayload) (json.RawMessage, error)
	GetSuggestions(ctx context.Context, expenses []ExpensePayload) (json.RawMessage, error)
}

// ReportEntry wraps one month's report for the listing endpoint.
type ReportEntry map[string]interface{}

// ErrUpstream covers any failed call to the external service: network error,
// non-success status or an undecodable body. Never retried.
var ErrUpstream = errors.New("insight service unavailable")
