package http

import (
	"net/http"

	"github.com/AlibekovAA/messenger/backend/internal/auth/guard"
	"github.com/AlibekovAA/messenger/backend/internal/auth/policy"
	commonhttp "github.com/AlibekovAA/messenger/backend/internal/common/http"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	"github.com/AlibekovAA/messenger/backend/internal/user/service"
)

type Handler struct {
	directory *service.Directory
	errors    *commonhttp.ErrorHandler
}

func NewHandler(directory *service.Directory, log *logger.Logger) http.Handler {
	h := &Handler{directory: directory, errors: commonhttp.NewErrorHandler(log)}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", h.list)
	mux.HandleFunc("GET /users/{username}", h.get)
	mux.HandleFunc("GET /users/{username}/to", h.messagesTo)
	mux.HandleFunc("GET /users/{username}/from", h.messagesFrom)
	return mux
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if err := policy.LoggedIn(guard.FromContext(r.Context())); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	users, err := h.directory.All(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"users": newSummaryViews(users)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if err := policy.IsUser(guard.FromContext(r.Context()), username); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	user, err := h.directory.Get(r.Context(), username)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"user": newDetailView(user)})
}

func (h *Handler) messagesTo(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if err := policy.IsUser(guard.FromContext(r.Context()), username); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	messages, err := h.directory.MessagesTo(r.Context(), username)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"messages": newReceivedViews(messages)})
}

func (h *Handler) messagesFrom(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if err := policy.IsUser(guard.FromContext(r.Context()), username); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	messages, err := h.directory.MessagesFrom(r.Context(), username)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"messages": newSentViews(messages)})
}
