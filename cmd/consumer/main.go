package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/adapter/repo"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/infra"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/infra/geoip"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/ingest"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/providers/mission"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "consumer")

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
	missions := mission.NewClient(cfg.MissionServiceBaseURL, cfg.MissionClientTimeout)
	userSvc := service.NewUserService(users, tickets, missions, logger)

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}

	dispatcher := ingest.NewDispatcher(userSvc, geo, logger)

	topics := []string{cfg.AuthEventsTopic, cfg.SubscriptionEventsTopic, cfg.PaymentEventsTopic}
	var wg sync.WaitGroup
	for _, topic := range topics {
		consumer := ingest.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, topic, dispatcher, logger)
		wg.Add(1)
		go func(topic string) {
			defer wg.Done()
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Str("topic", topic).Msg("consumer stopped with error")
				stop()
			}
		}(topic)
	}
	wg.Wait()
	logger.Info().Msg("all consumers stopped")
}
