package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartsplit/backend/internal/auth"
	"github.com/smartsplit/backend/internal/middleware"
	"github.com/smartsplit/backend/internal/service"
)

// Server ties the services to the route table and middleware chain.
type Server struct {
	users    *service.UserService
	groups   *service.GroupService
	expenses *service.ExpenseService
	jwt      *auth.JWTManager
}

// NewServer creates a Server over the given services.
func NewServer(users *service.UserService, groups *service.GroupService, expenses *service.ExpenseService, jwt *auth.JWTManager) *Server {
	return &Server{
		users:    users,
		groups:   groups,
		expenses: expenses,
		jwt:      jwt,
	}
}

// Handler builds the full HTTP handler: routes wrapped in metrics, logging
// and CORS, with JWT auth on everything except registration, login and the
// token flows.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	authed := middleware.RequireAuth(s.jwt)

	// Public user flows.
	mux.HandleFunc("POST /api/users/register", s.handleRegister)
	mux.HandleFunc("POST /api/users/login", s.handleLogin)
	mux.HandleFunc("GET /api/users/verify", s.handleVerifyAccount)
	mux.HandleFunc("POST /api/users/reset-password", s.handleRequestPasswordReset)
	mux.HandleFunc("POST /api/users/verify-reset-token", s.handleVerifyResetToken)
	mux.HandleFunc("POST /api/users/update-password", s.handleUpdatePassword)

	// Authenticated user endpoints.
	mux.Handle("GET /api/users/profile", authed(http.HandlerFunc(s.handleProfile)))
	mux.Handle("PUT /api/users/update-profile", authed(http.HandlerFunc(s.handleUpdateProfile)))

	// Groups.
	mux.Handle("POST /api/groups/create", authed(http.HandlerFunc(s.handleCreateGroup)))
	mux.Handle("GET /api/groups/my-groups", authed(http.HandlerFunc(s.handleMyGroups)))
	mux.Handle("GET /api/groups/{groupID}", authed(http.HandlerFunc(s.handleGetGroup)))
	mux.Handle("POST /api/groups/{groupID}/add-member", authed(http.HandlerFunc(s.handleAddMember)))
	mux.Handle("DELETE /api/groups/{groupID}/remove-member", authed(http.HandlerFunc(s.handleRemoveMember)))
	mux.Handle("PUT /api/groups/{groupID}/update-name", authed(http.HandlerFunc(s.handleRenameGroup)))
	mux.Handle("DELETE /api/groups/{groupID}", authed(http.HandlerFunc(s.handleDeleteGroup)))
	mux.Handle("GET /api/groups/{groupID}/balances", authed(http.HandlerFunc(s.handleGroupBalances)))
	mux.Handle("GET /api/groups/{groupID}/members/{userID}/balance", authed(http.HandlerFunc(s.handleMemberBalance)))

	// Expenses.
	mux.Handle("POST /api/expenses/{groupID}", authed(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("GET /api/expenses/{groupID}", authed(http.HandlerFunc(s.handleListExpenses)))
	mux.Handle("PUT /api/expenses/{groupID}/{expenseID}", authed(http.HandlerFunc(s.handleUpdateExpense)))
	mux.Handle("DELETE /api/expenses/{groupID}/{expenseID}", authed(http.HandlerFunc(s.handleDeleteExpense)))

	// Operational endpoints.
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, "ok", nil)
	})

	var handler http.Handler = mux
	handler = middleware.Logging()(handler)
	handler = middleware.Metrics(mux)(handler)
	handler = middleware.CORS()(handler)
	return handler
}
