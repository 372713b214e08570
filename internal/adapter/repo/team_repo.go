package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/infra"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/sqlinline"
)

// TeamRepositoryPG implements domain.TeamRepository.
type TeamRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewTeamRepository creates a new TeamRepositoryPG.
func NewTeamRepository(sql infra.SQLExecutor) *TeamRepositoryPG {
	return &TeamRepositoryPG{sql: sql}
}

func (r *TeamRepositoryPG) Create(ctx context.Context, team *domain.Team) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertTeam,
		team.ID,
		team.Name,
		team.Description,
		team.Code,
		team.OwnerID,
		team.MaxMembers,
	)
	return err
}

func (r *TeamRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	return scanTeam(r.sql.QueryRow(ctx, sqlinline.QSelectTeamByID, id))
}

func (r *TeamRepositoryPG) GetByCode(ctx context.Context, code string) (*domain.Team, error) {
	return scanTeam(r.sql.QueryRow(ctx, sqlinline.QSelectTeamByCode, code))
}

func (r *TeamRepositoryPG) Members(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectTeamMembers, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.UserID, &m.Name, &m.Role, &m.Status, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SyncMemberCount recomputes current_members from the roster and returns the
// new value.
func (r *TeamRepositoryPG) SyncMemberCount(ctx context.Context, teamID string) (int, error) {
	var count int
	if err := r.sql.QueryRow(ctx, sqlinline.QSyncTeamMemberCount, teamID).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return count, nil
}

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var t domain.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Code, &t.OwnerID, &t.MaxMembers, &t.CurrentMembers, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

var _ domain.TeamRepository = (*TeamRepositoryPG)(nil)
