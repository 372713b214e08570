package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/http/handlers"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/http/httpapi"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/providers/mission"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) GetByAuthUserID(_ context.Context, authUserID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.AuthUserID == authUserID {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id, name, phone string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Name, u.Phone = name, phone
	return nil
}

func (r *stubUserRepo) UpdateProfileImage(_ context.Context, id, imageURL string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.ProfileImageURL = imageURL
	return nil
}

func (r *stubUserRepo) UpdateTier(_ context.Context, id string, tier domain.Tier) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Tier = tier
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Active = active
	return nil
}

func (r *stubUserRepo) ForEach(_ context.Context, fn func(*domain.User) error) error {
	for _, u := range r.users {
		if err := fn(u); err != nil {
			return err
		}
	}
	return nil
}

type stubLedger struct {
	entries map[string][]domain.TicketTransaction
}

func (l *stubLedger) Append(_ context.Context, tx *domain.TicketTransaction) error {
	l.entries[tx.UserID] = append(l.entries[tx.UserID], *tx)
	return nil
}

func (l *stubLedger) SumAmounts(_ context.Context, userID string) (int, error) {
	sum := 0
	for _, tx := range l.entries[userID] {
		sum += tx.Amount
	}
	return sum, nil
}

func (l *stubLedger) LastByType(_ context.Context, userID string, typ domain.TransactionType) (*domain.TicketTransaction, error) {
	entries := l.entries[userID]
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Type == typ {
			tx := entries[i]
			return &tx, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (l *stubLedger) ListByUser(_ context.Context, userID string) ([]domain.TicketTransaction, error) {
	entries := l.entries[userID]
	out := make([]domain.TicketTransaction, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

type stubTeamRepo struct {
	teams       map[string]*domain.Team
	memberships *stubMembershipRepo
}

func (r *stubTeamRepo) Create(_ context.Context, t *domain.Team) error {
	r.teams[t.ID] = t
	return nil
}

func (r *stubTeamRepo) GetByID(_ context.Context, id string) (*domain.Team, error) {
	if t, ok := r.teams[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubTeamRepo) GetByCode(_ context.Context, code string) (*domain.Team, error) {
	for _, t := range r.teams {
		if t.Code == code {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubTeamRepo) Members(_ context.Context, teamID string) ([]domain.TeamMember, error) {
	var out []domain.TeamMember
	for _, m := range r.memberships.rows {
		if m.TeamID == teamID {
			out = append(out, domain.TeamMember{UserID: m.UserID, Role: m.Role, Status: m.Status})
		}
	}
	return out, nil
}

func (r *stubTeamRepo) SyncMemberCount(_ context.Context, teamID string) (int, error) {
	t, ok := r.teams[teamID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	count := 0
	for _, m := range r.memberships.rows {
		if m.TeamID == teamID && m.Status == domain.MembershipActive {
			count++
		}
	}
	t.CurrentMembers = count
	return count, nil
}

type stubMembershipRepo struct {
	rows []*domain.Membership
}

func (r *stubMembershipRepo) Create(_ context.Context, m *domain.Membership) error {
	for _, existing := range r.rows {
		if existing.TeamID == m.TeamID && existing.UserID == m.UserID {
			return domain.ErrAlreadyMember
		}
	}
	r.rows = append(r.rows, m)
	return nil
}

func (r *stubMembershipRepo) Get(_ context.Context, teamID, userID string) (*domain.Membership, error) {
	for _, m := range r.rows {
		if m.TeamID == teamID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubMembershipRepo) SetStatus(_ context.Context, teamID, userID string, status domain.MembershipStatus) error {
	for _, m := range r.rows {
		if m.TeamID == teamID && m.UserID == userID {
			m.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *stubMembershipRepo) ActiveByUser(_ context.Context, userID string) ([]domain.Membership, error) {
	var out []domain.Membership
	for _, m := range r.rows {
		if m.UserID == userID && m.Status == domain.MembershipActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

type stubMissions struct{}

func (stubMissions) Attempts(context.Context, string, string) ([]mission.AttemptSummary, error) {
	return nil, nil
}

func newTestRouter(users ...*domain.User) (http.Handler, *stubLedger) {
	userRepo := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	ledger := &stubLedger{entries: make(map[string][]domain.TicketTransaction)}
	memberships := &stubMembershipRepo{}
	teams := &stubTeamRepo{teams: make(map[string]*domain.Team), memberships: memberships}

	logger := zerolog.Nop()
	resolver := service.NewPlanResolver(userRepo, teams, memberships, logger)
	tickets := service.NewTicketService(userRepo, ledger, resolver, logger)
	userSvc := service.NewUserService(userRepo, tickets, stubMissions{}, logger)
	teamSvc := service.NewTeamService(teams, memberships, userRepo, logger)

	app := handlers.NewApp(userSvc, tickets, teamSvc, nil, logger)
	return httpapi.NewRouter(app, httpapi.Options{Logger: logger}), ledger
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTicketBalanceEndpoint(t *testing.T) {
	router, ledger := newTestRouter(&domain.User{ID: "u1", Tier: domain.TierFree})
	ledger.entries["u1"] = []domain.TicketTransaction{
		{UserID: "u1", Type: domain.TransactionInitial, Amount: 3},
		{UserID: "u1", Type: domain.TransactionConsume, Amount: -1},
	}

	rec := doRequest(t, router, http.MethodGet, "/api/users/u1/tickets/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		UserID  string `json:"userId"`
		Balance int    `json:"balance"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Balance != 2 {
		t.Fatalf("balance = %d, want 2", resp.Balance)
	}
}

func TestTicketBalanceUnknownUser(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/api/users/ghost/tickets/", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["code"] != "NOT_FOUND" {
		t.Fatalf("error code = %q, want NOT_FOUND", resp["code"])
	}
}

func TestConsumeEndpointConflictsWhenEmpty(t *testing.T) {
	router, _ := newTestRouter(&domain.User{ID: "u1", Tier: domain.TierFree})

	rec := doRequest(t, router, http.MethodPost, "/api/users/u1/tickets/consume", `{"reason":"mission attempt"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["code"] != "CONFLICT" {
		t.Fatalf("error code = %q, want CONFLICT", resp["code"])
	}
}

func TestConsumeEndpointSpendsTicket(t *testing.T) {
	router, ledger := newTestRouter(&domain.User{ID: "u1", Tier: domain.TierFree})
	ledger.entries["u1"] = []domain.TicketTransaction{
		{UserID: "u1", Type: domain.TransactionInitial, Amount: 3},
	}

	rec := doRequest(t, router, http.MethodPost, "/api/users/u1/tickets/consume", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp struct {
		Balance int `json:"balance"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Balance != 2 {
		t.Fatalf("balance = %d, want 2", resp.Balance)
	}
}

func TestTicketHistoryEndpoint(t *testing.T) {
	router, ledger := newTestRouter(&domain.User{ID: "u1", Tier: domain.TierFree})
	ledger.entries["u1"] = []domain.TicketTransaction{
		{ID: "tx1", UserID: "u1", Type: domain.TransactionInitial, Amount: 3, BalanceAfter: 3},
		{ID: "tx2", UserID: "u1", Type: domain.TransactionConsume, Amount: -1, BalanceBefore: 3, BalanceAfter: 2},
	}

	rec := doRequest(t, router, http.MethodGet, "/api/users/u1/tickets/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Transactions []struct {
			ID string `json:"id"`
		} `json:"transactions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(resp.Transactions))
	}
	// Most recent first.
	if resp.Transactions[0].ID != "tx2" {
		t.Fatalf("first transaction = %s, want tx2", resp.Transactions[0].ID)
	}
}

func TestUserPlanEndpoint(t *testing.T) {
	router, _ := newTestRouter(&domain.User{ID: "u1", Tier: domain.TierBasic})

	rec := doRequest(t, router, http.MethodGet, "/api/users/u1/plan", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		PlanType           string `json:"planType"`
		InitialGrant       int    `json:"initialGrant"`
		MaxBalance         int    `json:"maxBalance"`
		RefillIntervalMins int    `json:"refillIntervalMins"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.PlanType != "BASIC" || resp.MaxBalance != 10 || resp.RefillIntervalMins != 360 {
		t.Fatalf("plan = %+v", resp)
	}
}

func TestCreateAndJoinTeamEndpoints(t *testing.T) {
	router, _ := newTestRouter(
		&domain.User{ID: "owner", Tier: domain.TierEnterprise},
		&domain.User{ID: "joiner", Tier: domain.TierFree},
	)

	rec := doRequest(t, router, http.MethodPost, "/api/teams/", `{"ownerId":"owner","name":"Trip Crew"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var team struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&team); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/teams/join", `{"userId":"joiner","code":"`+team.Code+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("join status = %d, want 201: %s", rec.Code, rec.Body)
	}

	// Second join conflicts.
	rec = doRequest(t, router, http.MethodPost, "/api/teams/join", `{"userId":"joiner","code":"`+team.Code+`"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate join status = %d, want 409", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/teams/"+team.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var view struct {
		Members []map[string]any `json:"members"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Members) != 2 {
		t.Fatalf("roster size = %d, want 2", len(view.Members))
	}
}

func TestUpdateProfileEndpointValidatesPayload(t *testing.T) {
	router, _ := newTestRouter(&domain.User{ID: "u1", Name: "Old"})

	rec := doRequest(t, router, http.MethodPut, "/api/users/u1/", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/v1/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
