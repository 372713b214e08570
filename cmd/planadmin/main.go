// Command planadmin moves a user to a new plan tier from the command line,
// granting the same upgrade bonus a payment event would. Meant for support
// operators fixing a missed subscription-changed event.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/adapter/repo"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/infra"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/providers/mission"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/service"
)

func main() {
	var (
		idFlag    string
		emailFlag string
		planFlag  string
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.StringVar(&planFlag, "plan", "", "plan to assign (FREE, BASIC, PRO, ENTERPRISE)")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)
	plan := strings.TrimSpace(planFlag)

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	if plan == "" {
		exitWithError(errors.New("-plan is required"))
	}
	tier := domain.ParseTier(plan)
	if !strings.EqualFold(plan, string(tier)) {
		exitWithError(fmt.Errorf("unsupported plan %q", plan))
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}
	logger := infra.NewLogger("cli", "planadmin")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	users := repo.NewUserRepository(runner)
	ledger := repo.NewTicketTransactionRepository(runner)
	teams := repo.NewTeamRepository(runner)
	memberships := repo.NewMembershipRepository(runner)

	resolver := service.NewPlanResolver(users, teams, memberships, logger)
	tickets := service.NewTicketService(users, ledger, resolver, logger)
	missions := mission.NewClient(cfg.MissionServiceBaseURL, cfg.MissionClientTimeout)
	userSvc := service.NewUserService(users, tickets, missions, logger)

	user, err := lookupUser(ctx, users, userID, email)
	if err != nil {
		exitWithError(fmt.Errorf("failed to load user: %w", err))
	}

	if err := userSvc.ChangeSubscription(ctx, user.ID, tier); err != nil {
		exitWithError(fmt.Errorf("failed to change plan: %w", err))
	}

	balance, err := tickets.Balance(ctx, user.ID)
	if err != nil {
		exitWithError(fmt.Errorf("plan changed but balance read failed: %w", err))
	}

	fmt.Printf("User %s (%s) moved to plan %s, balance now %d\n", user.ID, user.Email, tier, balance)
}

func lookupUser(ctx context.Context, users domain.UserRepository, userID, email string) (*domain.User, error) {
	if userID != "" {
		return users.GetByID(ctx, userID)
	}
	return users.GetByEmail(ctx, email)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
