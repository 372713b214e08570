package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/infra"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/sqlinline"
)

// MembershipRepositoryPG implements domain.MembershipRepository.
type MembershipRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewMembershipRepository creates a new MembershipRepositoryPG.
func NewMembershipRepository(sql infra.SQLExecutor) *MembershipRepositoryPG {
	return &MembershipRepositoryPG{sql: sql}
}

// Create inserts a membership row. The unique (team_id, user_id) constraint
// backs the at-most-one-membership rule; a violation surfaces as
// domain.ErrAlreadyMember.
func (r *MembershipRepositoryPG) Create(ctx context.Context, m *domain.Membership) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertMembership,
		m.ID,
		m.TeamID,
		m.UserID,
		m.Role,
		m.Status,
	)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyMember
	}
	return err
}

func (r *MembershipRepositoryPG) Get(ctx context.Context, teamID, userID string) (*domain.Membership, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectMembership, teamID, userID)
	var m domain.Membership
	if err := row.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepositoryPG) SetStatus(ctx context.Context, teamID, userID string, status domain.MembershipStatus) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateMembershipStatus, teamID, userID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MembershipRepositoryPG) ActiveByUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectActiveMembershipsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.Status, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ domain.MembershipRepository = (*MembershipRepositoryPG)(nil)
