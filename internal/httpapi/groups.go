package httpapi

import (
	"net/http"

	"github.com/smartsplit/backend/internal/middleware"
	"github.com/smartsplit/backend/internal/models"
)

// groupWithBalances loads a group and attaches the derived member balances,
// the shape the group-details view wants.
func (s *Server) groupWithBalances(r *http.Request, group *models.Group) (groupDTO, error) {
	balances, err := s.groups.GroupBalances(r.Context(), group.ID)
	if err != nil {
		return groupDTO{}, err
	}
	return toGroupDTO(group, balances), nil
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}

	// The caller becomes the admin; identity always comes from the token,
	// never from the request body.
	adminID := middleware.GetUserID(r.Context())

	group, err := s.groups.CreateGroup(r.Context(), req.Name, adminID)
	if err != nil {
		respondError(w, err)
		return
	}

	dto, err := s.groupWithBalances(r, group)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, "group created", dto)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), r.PathValue("groupID"))
	if err != nil {
		respondError(w, err)
		return
	}

	dto, err := s.groupWithBalances(r, group)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "group details", dto)
}

func (s *Server) handleMyGroups(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	groups, err := s.groups.ListGroupsForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	// The per-user group list carries the caller's own balance per group.
	type myGroup struct {
		groupDTO
		MyBalance float64 `json:"my_balance"`
	}
	out := make([]myGroup, len(groups))
	for i := range groups {
		dto, err := s.groupWithBalances(r, &groups[i])
		if err != nil {
			respondError(w, err)
			return
		}
		balance, err := s.groups.MemberBalance(r.Context(), userID, groups[i].ID)
		if err != nil {
			respondError(w, err)
			return
		}
		out[i] = myGroup{groupDTO: dto, MyBalance: balance}
	}

	respond(w, http.StatusOK, "groups", out)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if !decode(w, r, &req) {
		return
	}

	group, err := s.groups.AddMember(r.Context(), r.PathValue("groupID"), req.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	dto, err := s.groupWithBalances(r, group)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "member added", dto)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	group, err := s.groups.RemoveMember(r.Context(), r.PathValue("groupID"), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	dto, err := s.groupWithBalances(r, group)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "member removed", dto)
}

func (s *Server) handleRenameGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}

	group, err := s.groups.RenameGroup(r.Context(), r.PathValue("groupID"), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	dto, err := s.groupWithBalances(r, group)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "group renamed", dto)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.DeleteGroup(r.Context(), r.PathValue("groupID")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "group deleted", nil)
}

func (s *Server) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.groups.GroupBalances(r.Context(), r.PathValue("groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "group balances", balances)
}

func (s *Server) handleMemberBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.groups.MemberBalance(r.Context(), r.PathValue("userID"), r.PathValue("groupID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "member balance", map[string]float64{"balance": balance})
}
