package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/infra"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/sqlinline"
)

// TicketTransactionRepositoryPG implements domain.TicketTransactionRepository.
// The table is append-only; there is no update or delete path.
type TicketTransactionRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewTicketTransactionRepository creates a new ledger repository.
func NewTicketTransactionRepository(sql infra.SQLExecutor) *TicketTransactionRepositoryPG {
	return &TicketTransactionRepositoryPG{sql: sql}
}

// Append inserts a ledger entry. The id is assigned here when the caller left
// it empty; created_at is server-assigned and written back into tx.
func (r *TicketTransactionRepositoryPG) Append(ctx context.Context, tx *domain.TicketTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertTicketTransaction,
		tx.ID,
		tx.UserID,
		tx.Type,
		tx.Amount,
		tx.BalanceBefore,
		tx.BalanceAfter,
		tx.Reason,
	)
	return row.Scan(&tx.CreatedAt)
}

// SumAmounts derives the current balance. No transactions yields 0, not an error.
func (r *TicketTransactionRepositoryPG) SumAmounts(ctx context.Context, userID string) (int, error) {
	var sum int
	if err := r.sql.QueryRow(ctx, sqlinline.QSumTicketAmounts, userID).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

func (r *TicketTransactionRepositoryPG) LastByType(ctx context.Context, userID string, typ domain.TransactionType) (*domain.TicketTransaction, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectLastTransactionByType, userID, typ)
	var tx domain.TicketTransaction
	if err := scanTransaction(row, &tx); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *TicketTransactionRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.TicketTransaction, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectTransactionsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TicketTransaction
	for rows.Next() {
		var tx domain.TicketTransaction
		if err := scanTransaction(rows, &tx); err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row, tx *domain.TicketTransaction) error {
	return row.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.BalanceBefore, &tx.BalanceAfter, &tx.Reason, &tx.CreatedAt)
}

var _ domain.TicketTransactionRepository = (*TicketTransactionRepositoryPG)(nil)
