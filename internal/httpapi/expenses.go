package httpapi

import (
	"net/http"

	"github.com/smartsplit/backend/internal/middleware"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description       string   `json:"description"`
		Amount            float64  `json:"amount"`
		PaidByID          string   `json:"paid_by_id"`
		SelectedMemberIDs []string `json:"selected_member_ids"`
	}
	if !decode(w, r, &req) {
		return
	}

	// The payer defaults to the caller.
	payerID := req.PaidByID
	if payerID == "" {
		payerID = middleware.GetUserID(r.Context())
	}

	expense, err := s.expenses.CreateExpense(r.Context(), r.PathValue("groupID"), payerID, req.Amount, req.Description, req.SelectedMemberIDs)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "expense created", toExpenseDTO(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListExpenses(r.Context(), r.PathValue("groupID"))
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]expenseDTO, len(expenses))
	for i := range expenses {
		out[i] = toExpenseDTO(&expenses[i])
	}
	respond(w, http.StatusOK, "expenses", out)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string             `json:"description"`
		Amount      float64            `json:"amount"`
		PaidByID    string             `json:"paid_by_id"`
		Splits      map[string]float64 `json:"splits"`
	}
	if !decode(w, r, &req) {
		return
	}

	expense, err := s.expenses.UpdateExpense(r.Context(), r.PathValue("groupID"), r.PathValue("expenseID"),
		req.Description, req.Amount, req.PaidByID, req.Splits)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "expense updated", toExpenseDTO(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteExpense(r.Context(), r.PathValue("groupID"), r.PathValue("expenseID")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "expense deleted", nil)
}
