package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NightRunnerEB/Genome-sub000/internal/config"
	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	dbmodel "github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/observability/metrics"
	"github.com/NightRunnerEB/Genome-sub000/internal/observability/tracing"
	"github.com/NightRunnerEB/Genome-sub000/internal/queue"
	"github.com/NightRunnerEB/Genome-sub000/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the Genome escrow engine server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up escrow db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	// Create a basic zap logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating zap logger")
	}
	defer func() {
		// syncing stderr fails on some platforms, nothing to do about it
		_ = zapLogger.Sync()
	}()

	var publisher services.EventPublisher
	if cfg.Queue != nil {
		queuePublisher, err := queue.NewPublisher(cfg.Queue, zapLogger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize event publisher")
		}
		defer queuePublisher.Shutdown()
		publisher = queuePublisher
	} else {
		log.Warn().Msg("No queue configured, events will not be published")
	}

	service := services.NewService(cfg, dbClient, publisher)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort, dbClient.Ping)

	service.StartStatsPoller(ctx)

	log.Info().Msg("Escrow engine started")
	<-ctx.Done()
	log.Info().Msg("Shutting down escrow engine")
	return nil
}
