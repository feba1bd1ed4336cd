package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/homestay-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/homestay-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/homestay-backend-go/internal/service/attendance"
	reportService "github.com/cmlabs-hris/homestay-backend-go/internal/service/report"
	shiftService "github.com/cmlabs-hris/homestay-backend-go/internal/service/shift"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	appName    = "homestay-backend"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.LogLevel(),
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	// work_hours is rendered as a JSON number
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	locker, closeLocker, err := newLocker(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	clk := clock.New(cfg.Location())

	staffRepo := postgresql.NewStaffRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	transactor := postgresql.NewTransactor(db)

	shiftSvc := shiftService.NewShiftService(transactor, shiftRepo, staffRepo, locker, logger)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, shiftRepo, staffRepo, clk, cfg.GracePeriod(), logger)
	reportSvc := reportService.NewReportService(reportRepo, clk, logger)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			AllowedOrigins: cfg.App.CORSOrigins,
			LogLevel:       cfg.LogLevel(),
		},
		JWTService,
		appHTTP.NewShiftHandler(shiftSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewReportHandler(reportSvc),
	)

	scheduler := cron.NewScheduler(logger)
	if cfg.Cron.Enabled {
		cron.NewShiftJobs(shiftSvc, clk).RegisterJobs(scheduler, cfg.Cron.MissedShiftInterval)
		scheduler.Start(ctx)
	}
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newLocker uses redis when REDIS_ADDR is set so several API instances share
// per-staff shift locks. Without it locks are process-local.
func newLocker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (lock.Locker, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("shift locks are process-local", "reason", "REDIS_ADDR not set")
		return lock.NewLocal(lock.DefaultWait), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
	}

	logger.Info("shift locks backed by redis", "addr", cfg.Redis.Addr)
	return lock.NewRedis(client, cfg.Redis.Prefix, lock.DefaultTTL, lock.DefaultWait), func() { _ = client.Close() }, nil
}
