package http

import (
	"net/http"
	"strconv"
	"time"

	authdomain "github.com/AlibekovAA/messenger/backend/internal/auth/domain"
	"github.com/AlibekovAA/messenger/backend/internal/auth/guard"
	"github.com/AlibekovAA/messenger/backend/internal/auth/policy"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	commonhttp "github.com/AlibekovAA/messenger/backend/internal/common/http"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	"github.com/AlibekovAA/messenger/backend/internal/message/domain"
	"github.com/AlibekovAA/messenger/backend/internal/message/service"
	userhttp "github.com/AlibekovAA/messenger/backend/internal/user/http"
)

type createRequest struct {
	ToUsername string `json:"to_username" validate:"required,max=64"`
	Body       string `json:"body" validate:"required,max=4000"`
}

type createdView struct {
	ID           int64     `json:"id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
}

type detailView struct {
	ID       int64                `json:"id"`
	Body     string               `json:"body"`
	SentAt   time.Time            `json:"sent_at"`
	ReadAt   *time.Time           `json:"read_at"`
	FromUser userhttp.ProfileView `json:"from_user"`
	ToUser   userhttp.ProfileView `json:"to_user"`
}

type receiptView struct {
	ID     int64     `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

type Handler struct {
	ledger *service.Ledger
	errors *commonhttp.ErrorHandler
}

func NewHandler(ledger *service.Ledger, log *logger.Logger) http.Handler {
	h := &Handler{ledger: ledger, errors: commonhttp.NewErrorHandler(log)}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /messages", h.create)
	mux.HandleFunc("GET /messages/{id}", h.get)
	mux.HandleFunc("POST /messages/{id}/read", h.markRead)
	return mux
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	caller := guard.FromContext(r.Context())
	if err := policy.LoggedIn(caller); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	var req createRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	msg, err := h.ledger.Create(r.Context(), caller.Username, req.ToUsername, req.Body)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, map[string]any{"message": createdView{
		ID:           msg.ID,
		FromUsername: msg.FromUsername,
		ToUsername:   msg.ToUsername,
		Body:         msg.Body,
		SentAt:       msg.SentAt,
	}})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.loadForCaller(w, r, policy.IsParticipant)
	if !ok {
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"message": detailView{
		ID:       msg.ID,
		Body:     msg.Body,
		SentAt:   msg.SentAt,
		ReadAt:   msg.ReadAt,
		FromUser: userhttp.NewProfileView(msg.FromUser),
		ToUser:   userhttp.NewProfileView(msg.ToUser),
	}})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.loadForCaller(w, r, policy.IsRecipient)
	if !ok {
		return
	}

	receipt, err := h.ledger.MarkRead(r.Context(), msg.ID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]any{"message": receiptView{ID: receipt.ID, ReadAt: receipt.ReadAt}})
}

// loadForCaller requires a logged-in caller, loads the message named in the
// path and applies rule to it. On failure the error response is written.
func (h *Handler) loadForCaller(
	w http.ResponseWriter,
	r *http.Request,
	rule func(caller authdomain.Identity, msg policy.Participants) error,
) (domain.Detail, bool) {
	caller := guard.FromContext(r.Context())
	if err := policy.LoggedIn(caller); err != nil {
		h.errors.HandleError(w, r, err)
		return domain.Detail{}, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.errors.HandleError(w, r, commonerrors.ErrMessageNotFound)
		return domain.Detail{}, false
	}

	msg, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return domain.Detail{}, false
	}

	if err := rule(caller, msg); err != nil {
		h.errors.HandleError(w, r, err)
		return domain.Detail{}, false
	}
	return msg, true
}
