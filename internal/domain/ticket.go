package domain

import "time"

// TransactionType enumerates ticket ledger entry kinds.
type TransactionType string

const (
	TransactionInitial    TransactionType = "INITIAL"     // welcome grant on signup
	TransactionRefill     TransactionType = "REFILL"      // periodic top-up
	TransactionConsume    TransactionType = "CONSUME"     // spent on a mission
	TransactionAdminGrant TransactionType = "ADMIN_GRANT" // plan upgrade bonus / operator grant
)

// TicketTransaction is an immutable ledger entry. The current balance of a
// user is never stored anywhere; it is always the sum of Amount over the
// user's entries. Rows are appended by the ticket service and never updated
// or deleted.
type TicketTransaction struct {
	ID            string
	UserID        string
	Type          TransactionType
	Amount        int
	BalanceBefore int
	BalanceAfter  int
	Reason        string
	CreatedAt     time.Time
}

// NewTicketTransaction builds a ledger entry, deriving BalanceAfter so the
// balanceAfter = balanceBefore + amount invariant holds by construction.
func NewTicketTransaction(userID string, typ TransactionType, amount, balanceBefore int, reason string) *TicketTransaction {
	return &TicketTransaction{
		UserID:        userID,
		Type:          typ,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceBefore + amount,
		Reason:        reason,
	}
}
