package storefront

import (
	"net/http"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
	"github.com/ketenci/carsi/internal/middleware"
	"github.com/ketenci/carsi/internal/service"
	"github.com/ketenci/carsi/internal/session"
)

// AuthHandler serves signup, login and logout. Logging in binds the user to
// the existing session, so an anonymous cart survives authentication.
type AuthHandler struct {
	accounts *service.AccountService
	sessions session.Store
}

func NewAuthHandler(accounts *service.AccountService, sessions session.Store) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=40"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	user, err := h.accounts.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	if err := h.bindSession(r, user.ID); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /login. Identity may be a username or an email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Identity, req.Password)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	if err := h.bindSession(r, user.ID); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, toUserResponse(user))
}

// Logout handles POST /logout. The session and its cart are discarded.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSessionToken(r.Context())
	if err := h.sessions.Delete(r.Context(), token); err != nil {
		handler.Error(w, r, domain.Internal(err, "auth.logout", "failed to end session"))
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"logged_out": true})
}

// Me handles GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	handler.JSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) bindSession(r *http.Request, userID int64) error {
	token := middleware.GetSessionToken(r.Context())
	sess, err := session.GetOrCreate(r.Context(), h.sessions, token)
	if err != nil {
		return domain.Internal(err, "auth.bind_session", "failed to load session")
	}
	sess.UserID = userID
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		return domain.Internal(err, "auth.bind_session", "failed to save session")
	}
	return nil
}
