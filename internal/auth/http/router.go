package http

import (
	"net/http"

	"github.com/AlibekovAA/messenger/backend/internal/auth/service"
	commonhttp "github.com/AlibekovAA/messenger/backend/internal/common/http"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	userservice "github.com/AlibekovAA/messenger/backend/internal/user/service"
)

type registerRequest struct {
	Username  string `json:"username" validate:"required,max=64"`
	Password  string `json:"password" validate:"required,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=32"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	auth   *service.AuthService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(auth *service.AuthService, log *logger.Logger) http.Handler {
	h := &Handler{auth: auth, errors: commonhttp.NewErrorHandler(log), log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", h.register)
	mux.HandleFunc("POST /auth/login", h.login)
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "register_bad_request"}).Warnf("register failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}

	token, err := h.auth.Register(r.Context(), userservice.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "login_bad_request"}).Warnf("login failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}

	token, err := h.auth.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}
