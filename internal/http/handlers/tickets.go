package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
)

// TicketBalance returns the user's derived ticket balance.
func (a *App) TicketBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, err := a.Users.Profile(r.Context(), userID); err != nil {
		a.domainError(w, err)
		return
	}
	balance, err := a.Tickets.Balance(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"userId": userID, "balance": balance})
}

type consumeRequest struct {
	Reason string `json:"reason"`
}

// ConsumeTicket spends one ticket, typically to start a mission attempt.
func (a *App) ConsumeTicket(w http.ResponseWriter, r *http.Request) {
	var req consumeRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Reason == "" {
		req.Reason = "mission attempt"
	}

	userID := chi.URLParam(r, "userID")
	if err := a.Tickets.Consume(r.Context(), userID, req.Reason); err != nil {
		a.domainError(w, err)
		return
	}
	balance, err := a.Tickets.Balance(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"userId": userID, "balance": balance})
}

type transactionResponse struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Amount        int    `json:"amount"`
	BalanceBefore int    `json:"balanceBefore"`
	BalanceAfter  int    `json:"balanceAfter"`
	Reason        string `json:"reason"`
	CreatedAt     string `json:"createdAt"`
}

// TicketHistory lists the user's ledger entries, most recent first.
func (a *App) TicketHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, err := a.Users.Profile(r.Context(), userID); err != nil {
		a.domainError(w, err)
		return
	}
	txs, err := a.Tickets.History(r.Context(), userID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	items := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, toTransactionResponse(tx))
	}
	a.json(w, http.StatusOK, map[string]any{"userId": userID, "transactions": items})
}

func toTransactionResponse(tx domain.TicketTransaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		Reason:        tx.Reason,
		CreatedAt:     tx.CreatedAt.UTC().Format(time.RFC3339),
	}
}
