// internal/api/handler/user.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"agent-ledger/internal/api/types"
	"agent-ledger/internal/service"
	"agent-ledger/internal/util"
)

// UserHandler handles HTTP requests for users, their subscriptions and usage.
type UserHandler struct {
	responder
	users         service.UserService
	subscriptions service.SubscriptionService
	usage         service.UsageService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	users service.UserService,
	subscriptions service.SubscriptionService,
	usage service.UsageService,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		responder:     responder{logger: logger},
		users:         users,
		subscriptions: subscriptions,
		usage:         usage,
	}
}

// CreateUser resolves or creates the user for a pubkey.
// POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}

	user, created, err := h.users.ResolveOrCreate(r.Context(), req.Pubkey)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		h.logger.Info("User created", "user_id", user.ID)
	}
	h.respondWithJSON(w, status, user)
}

// ListUsers returns every user.
// GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, users)
}

// GetUser returns a user together with its api key, if one was issued.
// GET /users/{pubkey}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserWithAPIKey(r.Context(), chi.URLParam(r, "pubkey"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, user)
}

// MutateSubscriptions applies a subscribe or unsubscribe instruction.
// PATCH /users/{pubkey}
func (h *UserHandler) MutateSubscriptions(w http.ResponseWriter, r *http.Request) {
	pubkey := chi.URLParam(r, "pubkey")

	var req types.MutateSubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if req.Method == "" {
		h.respondWithError(w, r, util.ErrInvalidMethodKeyword)
		return
	}

	if _, err := h.subscriptions.Mutate(r.Context(), pubkey, req.Method, req.Keys); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithText(w, http.StatusOK, "Subscriptions updated for user: "+pubkey)
}

// GetUsage reports remaining credits, the last purchase and total spend.
// GET /users/{pubkey}/usage
func (h *UserHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	summary, err := h.usage.Summarize(r.Context(), chi.URLParam(r, "pubkey"))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.NewUsageResponse(summary))
}
