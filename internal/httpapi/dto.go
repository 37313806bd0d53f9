package httpapi

import "github.com/smartsplit/backend/internal/models"

// userDTO is the API shape of a user; credentials and token fields never
// leave the server.
type userDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Verified    bool   `json:"verified"`
}

type memberDTO struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name"`
	Balance     float64 `json:"balance"`
}

type groupDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	AdminID   string      `json:"admin_id"`
	Members   []memberDTO `json:"members"`
	CreatedAt int64       `json:"created_at"`
}

type expenseDTO struct {
	ID          string             `json:"id"`
	GroupID     string             `json:"group_id"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	PaidByID    string             `json:"paid_by_id"`
	Splits      map[string]float64 `json:"splits"`
	CreatedAt   int64              `json:"created_at"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Verified:    u.Verified,
	}
}

// toGroupDTO renders a group with each member's net balance attached, the
// way the group-details view consumes it.
func toGroupDTO(g *models.Group, balances map[string]float64) groupDTO {
	members := make([]memberDTO, len(g.Members))
	for i, m := range g.Members {
		members[i] = memberDTO{
			ID:          m.ID,
			Email:       m.Email,
			DisplayName: m.DisplayName,
			Balance:     balances[m.ID],
		}
	}
	return groupDTO{
		ID:        g.ID,
		Name:      g.Name,
		AdminID:   g.AdminID,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func toExpenseDTO(e *models.Expense) expenseDTO {
	return expenseDTO{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidByID:    e.PayerID,
		Splits:      e.Splits,
		CreatedAt:   e.CreatedAt,
	}
}
