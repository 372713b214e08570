package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/infra"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertUser,
		user.ID,
		user.AuthUserID,
		user.Email,
		user.Name,
		user.Phone,
		user.ProfileImageURL,
		user.Tier,
	)
	return err
}

func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id))
}

func (r *UserRepositoryPG) GetByAuthUserID(ctx context.Context, authUserID string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByAuthUserID, authUserID))
}

func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByEmail, email))
}

func (r *UserRepositoryPG) UpdateProfile(ctx context.Context, id, name, phone string) error {
	return r.execExpectingRow(ctx, sqlinline.QUpdateUserProfile, id, name, phone)
}

func (r *UserRepositoryPG) UpdateProfileImage(ctx context.Context, id, imageURL string) error {
	return r.execExpectingRow(ctx, sqlinline.QUpdateUserProfileImage, id, imageURL)
}

func (r *UserRepositoryPG) UpdateTier(ctx context.Context, id string, tier domain.Tier) error {
	return r.execExpectingRow(ctx, sqlinline.QUpdateUserTier, id, tier)
}

func (r *UserRepositoryPG) SetActive(ctx context.Context, id string, active bool) error {
	return r.execExpectingRow(ctx, sqlinline.QSetUserActive, id, active)
}

// ForEach streams every user through fn in creation order. The scheduler
// relies on this to avoid materializing the whole user table per tick.
func (r *UserRepositoryPG) ForEach(ctx context.Context, fn func(*domain.User) error) error {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectAllUsers)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.AuthUserID, &u.Email, &u.Name, &u.Phone, &u.ProfileImageURL, &u.Tier, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		if err := fn(&u); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *UserRepositoryPG) execExpectingRow(ctx context.Context, query string, args ...any) error {
	tag, err := r.sql.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.AuthUserID, &u.Email, &u.Name, &u.Phone, &u.ProfileImageURL, &u.Tier, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
