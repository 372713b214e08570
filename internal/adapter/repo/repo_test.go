package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/sqlinline"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

// fakeSQL answers every call with the scripted results. Queries are checked
// against the expected sqlinline constant so a handler cannot silently run
// the wrong statement.
type fakeSQL struct {
	t *testing.T

	wantQuery string
	execTag   pgconn.CommandTag
	execErr   error
	row       fakeRow
}

func (f *fakeSQL) check(query string) {
	f.t.Helper()
	if f.wantQuery != "" && query != f.wantQuery {
		f.t.Fatalf("unexpected query:\n%s", query)
	}
}

func (f *fakeSQL) Exec(_ context.Context, query string, _ ...any) (pgconn.CommandTag, error) {
	f.check(query)
	return f.execTag, f.execErr
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, _ ...any) pgx.Row {
	f.check(query)
	return f.row
}

func (f *fakeSQL) Query(_ context.Context, query string, _ ...any) (pgx.Rows, error) {
	f.check(query)
	return nil, errors.New("query not scripted")
}

func TestGetByIDMapsNoRowsToNotFound(t *testing.T) {
	sql := &fakeSQL{t: t, wantQuery: sqlinline.QSelectUserByID}
	r := NewUserRepository(sql)

	_, err := r.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID = %v, want ErrNotFound", err)
	}
}

func TestUpdateTierZeroRowsIsNotFound(t *testing.T) {
	sql := &fakeSQL{t: t, wantQuery: sqlinline.QUpdateUserTier, execTag: pgconn.NewCommandTag("UPDATE 0")}
	r := NewUserRepository(sql)

	err := r.UpdateTier(context.Background(), "missing", domain.TierPro)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("UpdateTier = %v, want ErrNotFound", err)
	}
}

func TestUpdateTierAffectedRowSucceeds(t *testing.T) {
	sql := &fakeSQL{t: t, wantQuery: sqlinline.QUpdateUserTier, execTag: pgconn.NewCommandTag("UPDATE 1")}
	r := NewUserRepository(sql)

	if err := r.UpdateTier(context.Background(), "u1", domain.TierPro); err != nil {
		t.Fatalf("UpdateTier: %v", err)
	}
}

func TestMembershipCreateMapsUniqueViolation(t *testing.T) {
	sql := &fakeSQL{t: t, wantQuery: sqlinline.QInsertMembership, execErr: &pgconn.PgError{Code: "23505"}}
	r := NewMembershipRepository(sql)

	err := r.Create(context.Background(), &domain.Membership{TeamID: "t1", UserID: "u1"})
	if !errors.Is(err, domain.ErrAlreadyMember) {
		t.Fatalf("Create = %v, want ErrAlreadyMember", err)
	}
}

func TestMembershipCreateKeepsOtherErrors(t *testing.T) {
	boom := &pgconn.PgError{Code: "23503"}
	sql := &fakeSQL{t: t, wantQuery: sqlinline.QInsertMembership, execErr: boom}
	r := NewMembershipRepository(sql)

	err := r.Create(context.Background(), &domain.Membership{TeamID: "t1", UserID: "u1"})
	if !errors.Is(err, boom) {
		t.Fatalf("Create = %v, want the original pg error", err)
	}
}

func TestAppendAssignsIDAndReadsCreatedAt(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sql := &fakeSQL{t: t, wantQuery: sqlinline.QInsertTicketTransaction, row: fakeRow{scan: func(dest ...any) error {
		*(dest[0].(*time.Time)) = createdAt
		return nil
	}}}
	r := NewTicketTransactionRepository(sql)

	tx := domain.NewTicketTransaction("u1", domain.TransactionInitial, 3, 0, "welcome grant (FREE)")
	if err := r.Append(context.Background(), tx); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if tx.ID == "" {
		t.Fatal("Append must assign an id")
	}
	if !tx.CreatedAt.Equal(createdAt) {
		t.Fatalf("CreatedAt = %s, want %s", tx.CreatedAt, createdAt)
	}
}

func TestLastByTypeMapsNoRowsToNotFound(t *testing.T) {
	sql := &fakeSQL{t: t, wantQuery: sqlinline.QSelectLastTransactionByType}
	r := NewTicketTransactionRepository(sql)

	_, err := r.LastByType(context.Background(), "u1", domain.TransactionRefill)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("LastByType = %v, want ErrNotFound", err)
	}
}

func TestSyncMemberCountReturnsNewValue(t *testing.T) {
	sql := &fakeSQL{t: t, wantQuery: sqlinline.QSyncTeamMemberCount, row: fakeRow{scan: func(dest ...any) error {
		*(dest[0].(*int)) = 4
		return nil
	}}}
	r := NewTeamRepository(sql)

	count, err := r.SyncMemberCount(context.Background(), "t1")
	if err != nil {
		t.Fatalf("SyncMemberCount: %v", err)
	}
	if count != 4 {
		t.Fatalf("count = %d, want 4", count)
	}
}
