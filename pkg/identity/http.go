package identity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/httpx"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
)

type Handler struct {
	service *Service
	jwt     *JWTManager
}

func NewHandler(service *Service, jwt *JWTManager) *Handler {
	return &Handler{service: service, jwt: jwt}
}

// Register mounts the public auth endpoints. RegisterProtected mounts the
// ones that require an authenticated caller.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/auth/login", h.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", h.handleRegister).Methods(http.MethodPost)
}

func (h *Handler) RegisterProtected(r *mux.Router) {
	r.HandleFunc("/auth/me", h.handleMe).Methods(http.MethodGet)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		logger.Log.WithError(err).Error("failed to authenticate user")
		http.Error(w, "failed to authenticate", http.StatusInternalServerError)
		return
	}

	token, err := h.jwt.IssueToken(user)
	if err != nil {
		logger.Log.WithError(err).Error("failed to issue token")
		http.Error(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input RegisterUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.service.RegisterUser(r.Context(), input)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		logger.Log.WithError(err).Error("failed to register user")
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to load user")
		http.Error(w, "failed to load user", http.StatusInternalServerError)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
