package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/adapter/repo"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/infra"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/scheduler"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "scheduler")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	users := repo.NewUserRepository(runner)
	ledger := repo.NewTicketTransactionRepository(runner)
	teams := repo.NewTeamRepository(runner)
	memberships := repo.NewMembershipRepository(runner)

	resolver := service.NewPlanResolver(users, teams, memberships, logger)
	tickets := service.NewTicketService(users, ledger, resolver, logger)

	job := scheduler.NewRefill(cfg.RefillSchedulerPeriod, tickets, users, logger)
	if err := job.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("scheduler stopped with error")
	}
}
