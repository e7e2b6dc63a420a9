package admin

import (
	"net/http"
	"time"

	"github.com/ketenci/carsi/internal/handler"
	"github.com/ketenci/carsi/internal/service"
)

// UserHandler serves account administration.
type UserHandler struct {
	accounts *service.AccountService
}

func NewUserHandler(accounts *service.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type adminUserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// List handles GET /admin/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	resp := make([]adminUserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, adminUserResponse{
			ID: u.ID, Username: u.Username, Email: u.Email,
			IsAdmin: u.IsAdmin, IsActive: u.IsActive, CreatedAt: u.CreatedAt,
		})
	}
	handler.JSON(w, http.StatusOK, resp)
}

// Get handles GET /admin/users/{userID}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := handler.URLParamInt64(r, "userID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	u, err := h.accounts.GetUser(r.Context(), userID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, adminUserResponse{
		ID: u.ID, Username: u.Username, Email: u.Email,
		IsAdmin: u.IsAdmin, IsActive: u.IsActive, CreatedAt: u.CreatedAt,
	})
}

type updateUserRequest struct {
	IsActive *bool `json:"is_active"`
	IsAdmin  *bool `json:"is_admin"`
}

// Update handles PUT /admin/users/{userID}. Deactivating an account blocks
// login without touching its data.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := handler.URLParamInt64(r, "userID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	var req updateUserRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	u, err := h.accounts.SetUserFlags(r.Context(), userID, req.IsActive, req.IsAdmin)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, adminUserResponse{
		ID: u.ID, Username: u.Username, Email: u.Email,
		IsAdmin: u.IsAdmin, IsActive: u.IsActive, CreatedAt: u.CreatedAt,
	})
}

// Delete handles DELETE /admin/users/{userID}. Users with order history are
// rejected with a conflict.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := handler.URLParamInt64(r, "userID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	if err := h.accounts.DeleteUser(r.Context(), userID); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}
