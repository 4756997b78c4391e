package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/synfhir/synfhir/internal/config"
	"github.com/synfhir/synfhir/internal/convert"
	"github.com/synfhir/synfhir/internal/domain/conversion"
	"github.com/synfhir/synfhir/internal/fhir"
	"github.com/synfhir/synfhir/internal/platform/auth"
	"github.com/synfhir/synfhir/internal/platform/db"
	"github.com/synfhir/synfhir/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "synfhir-server",
		Short: "Converter between flat clinical records and FHIR documents",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(revertCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the conversion API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger().Level(level)
	}
	return logger
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx := context.Background()
	var repo conversion.Repository
	var pool *pgxpool.Pool
	if cfg.HasStore() {
		p, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer p.Close()
		logger.Info().Msg("connected to database")
		repo = conversion.NewRepoPG(p)
		pool = p
	} else {
		logger.Info().Msg("no database configured; conversions will not be recorded")
	}

	svc := conversion.NewService(repo, logger)
	handler := conversion.NewHandler(svc)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))

	apiV1 := e.Group("/api/v1", auth.Middleware(cfg.AuthSecret))
	handler.RegisterRoutes(apiV1)

	e.GET("/health", db.HealthHandler(pool))

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a flat CSV table to newline-delimited FHIR documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			if !conversion.KnownKind(kind) {
				return fmt.Errorf("unknown record kind %q", kind)
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			svc := conversion.NewService(nil, logger)

			records, err := readFlatCSV(in)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			w := bufio.NewWriter(f)
			enc := json.NewEncoder(w)
			total := 0
			for _, record := range records {
				docs, _, err := svc.Convert(context.Background(), kind, record, convert.Overrides{})
				if err != nil {
					return err
				}
				for _, doc := range docs {
					if err := enc.Encode(doc); err != nil {
						return err
					}
					total++
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("Wrote %d document(s) to %s\n", total, out)
			return nil
		},
	}
	cmd.Flags().String("kind", "", "Record kind (e.g. patients, encounters)")
	cmd.Flags().String("in", "", "Input CSV file")
	cmd.Flags().String("out", "", "Output NDJSON file")
	cmd.MarkFlagRequired("kind")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")
	return cmd
}

func revertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revert",
		Short: "Convert newline-delimited FHIR documents back to a flat CSV table",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			if !conversion.KnownKind(kind) {
				return fmt.Errorf("unknown record kind %q", kind)
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			svc := conversion.NewService(nil, logger)

			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			var records []map[string]string
			dec := json.NewDecoder(f)
			for dec.More() {
				var doc fhir.Resource
				if err := dec.Decode(&doc); err != nil {
					return err
				}
				rows, _, err := svc.Revert(context.Background(), kind, doc)
				if err != nil {
					return err
				}
				records = append(records, rows...)
			}

			if err := writeFlatCSV(out, conversion.Columns(kind), records); err != nil {
				return err
			}

			fmt.Printf("Wrote %d record(s) to %s\n", len(records), out)
			return nil
		},
	}
	cmd.Flags().String("kind", "", "Record kind (e.g. patients, encounters)")
	cmd.Flags().String("in", "", "Input NDJSON file")
	cmd.Flags().String("out", "", "Output CSV file")
	cmd.MarkFlagRequired("kind")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")
	return cmd
}

func readFlatCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var out []map[string]string
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = row[i]
			}
		}
		out = append(out, fields)
	}
	return out, nil
}

func writeFlatCSV(path string, columns []string, records []map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, record := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = record[col]
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
