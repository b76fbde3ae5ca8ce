package budget

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/expense-tracker/internal/auth"
	"github.com/frahmantamala/expense-tracker/internal/transport"
	"github.com/frahmantamala/expense-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	UpsertBudget(userID int64, dto UpsertBudgetDTO) (*Budget, error)
	ListBudgets(userID int64) ([]*Budget, error)
	DeleteBudget(userID int64, budgetID string) error
	CategoryStatus(userID int64, category string) (*Status, error)
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

func (h *Handler) UpsertBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpsertBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	budget, err := h.Service.UpsertBudget(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, budget)
}

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	budgets, err := h.Service.ListBudgets(user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if budgets == nil {
		budgets = []*Budget{}
	}
	h.WriteJSON(w, http.StatusOK, budgets)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	budgetID := chi.URLParam(r, "id")

	if err := h.Service.DeleteBudget(user.ID, budgetID); err != nil {
		if err == ErrBudgetNotFound {
			h.WriteError(w, http.StatusNotFound, "budget not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "budget deleted"})
}

func (h *Handler) CategoryStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	category := chi.URLParam(r, "category")

	status, err := h.Service.CategoryStatus(user.ID, category)
	if err != nil {
		if err == ErrNoBudget {
			h.WriteJSON(w, http.StatusOK, map[string]string{"status": "no-budget"})
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, status)
}
