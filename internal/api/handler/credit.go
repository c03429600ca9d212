// internal/api/handler/credit.go
package handler

import (
	"log/slog"
	"net/http"

	"agent-ledger/internal/api/types"
	"agent-ledger/internal/service"
	"agent-ledger/internal/util"
)

// CreditHandler handles HTTP requests against the credit ledger.
type CreditHandler struct {
	responder
	credits service.CreditService
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(credits service.CreditService, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{
		responder: responder{logger: logger},
		credits:   credits,
	}
}

// ListPackages returns the purchasable credit packages.
// GET /packages
func (h *CreditHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.credits.ListPackages(r.Context())
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, packages)
}

// BuyCredits records a package purchase and credits the user.
// POST /credits/buy
func (h *CreditHandler) BuyCredits(w http.ResponseWriter, r *http.Request) {
	var req types.BuyCreditsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	if req.Pubkey == "" || req.PackageID <= 0 {
		h.respondWithError(w, r, util.ErrInvalidInput)
		return
	}

	transaction, remaining, err := h.credits.BuyCredits(r.Context(), req.Pubkey, req.PackageID)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	h.logger.Info("Credits purchased", "transaction_id", transaction.ID, "package_id", transaction.PackageID)
	h.respondWithJSON(w, http.StatusCreated, types.BuyCreditsResponse{
		Transaction:      transaction,
		RemainingCredits: remaining,
	})
}

// Debit consumes credits. Insufficient credits answer 402.
// POST /credits/debit
func (h *CreditHandler) Debit(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAmount(w, r)
	if !ok {
		return
	}
	remaining, err := h.credits.DebitByPubkey(r.Context(), req.Pubkey, req.Amount)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.BalanceResponse{RemainingCredits: remaining})
}

// Refund returns credits to a user.
// POST /credits/refund
func (h *CreditHandler) Refund(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAmount(w, r)
	if !ok {
		return
	}
	remaining, err := h.credits.RefundByPubkey(r.Context(), req.Pubkey, req.Amount)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.BalanceResponse{RemainingCredits: remaining})
}

func (h *CreditHandler) decodeAmount(w http.ResponseWriter, r *http.Request) (types.CreditAmountRequest, bool) {
	var req types.CreditAmountRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return req, false
	}
	if req.Pubkey == "" || req.Amount <= 0 {
		h.respondWithError(w, r, util.ErrInvalidInput)
		return req, false
	}
	return req, true
}
