package dashboard

// Summary is the current-month roll-up shown at the top of the dashboard.
type Summary struct {
	TotalSpent        float64  `json:"total_spent"`
	TopCategory       string   `json:"top_category,omitempty"`
	TopPaymentMethods []string `json:"top_payment_methods"`
}

// CategoryBreakdown maps category to summed amount for the pie chart.
type CategoryBreakdown map[string]float64

// DailySeries maps a "YYYY-MM-DD" day key to that day's summed amount.
// Iteration order is not guaranteed; consumers sort by key when they need a
// chronological sequence.
type DailySeries map[string]float64
