package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/resumeworker/internal/database"
	"github.com/muhammadolammi/resumeworker/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "resumeworker",
		Short:         "Extract text from resumes and score them with keyword heuristics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(parseLevel(loadConfig().LogLevel))
		},
	}
	root.AddCommand(workerCmd(), analyzeCmd(), resultsCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func parseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return parsed
}

func openDB(dbURL string) (*database.Queries, func() error, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening db: %w", err)
	}
	return database.New(db), db.Close, nil
}

func serveMetrics(port string, m *metrics.WorkerMetrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Info().Str("addr", srv.Addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("metrics server stopped")
	}
}

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume analysis sessions from RabbitMQ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := loadConfig()
			if err := cfg.validateWorker(); err != nil {
				return err
			}

			dbQueries, closeDB, err := openDB(cfg.DBURL)
			if err != nil {
				return err
			}
			defer closeDB()

			store, err := newR2Store(ctx, cfg.R2)
			if err != nil {
				return err
			}

			extractor, analyzer, err := buildPipeline(ctx, cfg)
			if err != nil {
				return err
			}

			conn, err := amqp.Dial(cfg.RabbitMQURL)
			if err != nil {
				return fmt.Errorf("error connecting to RabbitMQ: %w", err)
			}
			defer conn.Close()

			workerMetrics := metrics.NewWorkerMetrics()
			go serveMetrics(cfg.MetricsPort, workerMetrics)

			workerConfig := WorkerConfig{
				DB:          dbQueries,
				Store:       store,
				Notifier:    &amqpNotifier{conn: conn},
				Extractor:   extractor,
				Analyzer:    analyzer,
				Metrics:     workerMetrics,
				RABBITMQUrl: cfg.RabbitMQURL,
			}

			log.Info().Int("workers", cfg.Workers).Msg("starting consumer pool")
			workerConfig.StartConsumerWorkerPool(ctx, cfg.Workers)
			return nil
		},
	}
}

func resultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results <session-id>",
		Short: "Print the stored analyses of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid session id: %w", err)
			}
			cfg := loadConfig()
			if cfg.DBURL == "" {
				return errors.New("empty DB_URL in environment")
			}
			dbQueries, closeDB, err := openDB(cfg.DBURL)
			if err != nil {
				return err
			}
			defer closeDB()

			row, err := dbQueries.GetAnalysesResultsBySession(cmd.Context(), sessionID)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("no analyses stored for session %s", sessionID)
			}
			if err != nil {
				return fmt.Errorf("error reading analyses: %w", err)
			}

			var out bytes.Buffer
			if err := json.Indent(&out, row.Results, "", "  "); err != nil {
				return fmt.Errorf("stored analyses are not valid json: %w", err)
			}
			out.WriteByte('\n')
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
