package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/adapter/repo"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/http/handlers"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/http/httpapi"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/infra"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/providers/mission"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "api")

	ctx := context.Background()
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
	missions := mission.NewClient(cfg.MissionServiceBaseURL, cfg.MissionClientTimeout)
	userSvc := service.NewUserService(users, tickets, missions, logger)
	teamSvc := service.NewTeamService(teams, memberships, users, logger)

	app := handlers.NewApp(userSvc, tickets, teamSvc, pool, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("api listening")
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
