package expense

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/auth"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateExpense(userID int64, dto CreateExpenseDTO) (*Expense, error)
	ListExpenses(userID int64, filter Filter) ([]*Expense, error)
	UpdateExpense(userID int64, expenseID string, dto UpdateExpenseDTO) (*Expense, error)
	DeleteExpense(userID int64, expenseID string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := h.Service.CreateExpense(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, expense)
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := h.Service.ListExpenses(user.ID, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if expenses == nil {
		expenses = []*Expense{}
	}
	h.WriteJSON(w, http.StatusOK, expenses)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expenseID := chi.URLParam(r, "id")

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := h.Service.UpdateExpense(user.ID, expenseID, dto)
	if err != nil {
		if err == ErrExpenseNotFound {
			h.WriteError(w, http.StatusNotFound, "expense not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, expense)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expenseID := chi.URLParam(r, "id")

	if err := h.Service.DeleteExpense(user.ID, expenseID); err != nil {
		if err == ErrExpenseNotFound {
			h.WriteError(w, http.StatusNotFound, "expense not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}

// filterFromQuery maps the listing query params onto a Filter. Absent params
// leave their field unconstrained.
func filterFromQuery(r *http.Request) (Filter, error) {
	q := r.URL.Query()

	filter := Filter{
		Category:      q.Get("category"),
		PaymentMethod: q.Get("paymentMethod"),
		Search:        q.Get("search"),
	}

	if raw := q.Get("startDate"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return Filter{}, err
		}
		filter.StartDate = &t
	}

	if raw := q.Get("endDate"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return Filter{}, err
		}
		filter.EndDate = &t
	}

	return filter, nil
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
