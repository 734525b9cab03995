package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/config"
	syncDomain "github.com/staffsync/attendance-backend-go/internal/domain/sync"
	appHTTP "github.com/staffsync/attendance-backend-go/internal/handler/http"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cache"
	"github.com/staffsync/attendance-backend-go/internal/pkg/cron"
	"github.com/staffsync/attendance-backend-go/internal/pkg/events"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffsync/attendance-backend-go/internal/pkg/remote"
	"github.com/staffsync/attendance-backend-go/internal/repository/memory"
	attendanceService "github.com/staffsync/attendance-backend-go/internal/service/attendance"
	authService "github.com/staffsync/attendance-backend-go/internal/service/auth"
	deductionService "github.com/staffsync/attendance-backend-go/internal/service/deduction"
	employeeService "github.com/staffsync/attendance-backend-go/internal/service/employee"
	leaveService "github.com/staffsync/attendance-backend-go/internal/service/leave"
	payrollService "github.com/staffsync/attendance-backend-go/internal/service/payroll"
	syncService "github.com/staffsync/attendance-backend-go/internal/service/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})).With(slog.String("app", "staffsync-attendance"))

	var store cache.Cache
	if cfg.Cache.Path != "" {
		store, err = cache.NewSQLite(cfg.Cache.Path, cfg.Cache.CapacityBytes)
		if err != nil {
			logger.Error("opening local cache failed", slog.String("error", err.Error()))
			return
		}
	} else {
		store = cache.NewMemory(int(cfg.Cache.CapacityBytes))
	}

	hub := events.NewHub()

	local := memory.NewStore(store, hub, logger)
	if err := local.Load(); err != nil {
		logger.Error("loading local data failed", slog.String("error", err.Error()))
		return
	}

	employeeRepo := memory.NewEmployeeRepository(local)
	attendanceRepo := memory.NewAttendanceRepository(local)
	leaveRepo := memory.NewLeaveRepository(local)
	deductionRepo := memory.NewDeductionRepository(local)

	remoteStore, err := remote.NewPostgres(cfg.DatabaseURL())
	if err != nil {
		logger.Error("connecting to remote store failed", slog.String("error", err.Error()))
		return
	}

	engine := syncService.NewEngine(store, remoteStore, local, hub, logger)
	if err := engine.Load(); err != nil {
		logger.Error("loading sync queue failed", slog.String("error", err.Error()))
		return
	}

	accessExpiration, err := time.ParseDuration(cfg.JWT.AccessExpiration)
	if err != nil {
		logger.Error("invalid JWT_ACCESS_EXPIRATION_TIME", slog.String("error", err.Error()))
		return
	}
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, accessExpiration)

	authSvc := authService.NewService(cfg.Auth.AdminPasswordHash, JWTService, logger)
	employeeSvc := employeeService.NewService(employeeRepo, engine, logger)
	attendanceSvc := attendanceService.NewService(attendanceRepo, employeeRepo, leaveRepo, engine, logger)
	leaveSvc := leaveService.NewService(leaveRepo, employeeRepo, engine, logger)
	deductionSvc := deductionService.NewService(deductionRepo, employeeRepo, engine, logger)
	payrollSvc := payrollService.NewService(employeeRepo, attendanceRepo, leaveRepo, deductionRepo, logger)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		JWTService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewDeductionHandler(deductionSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewSyncHandler(engine),
		appHTTP.NewEventsHandler(hub),
	)

	// First connectivity check before the scheduler takes over.
	_ = engine.Probe(context.Background())

	scheduler := cron.NewScheduler(logger)
	scheduler.AddJob("connectivity-probe", cfg.Sync.ProbeInterval, engine.Probe)
	scheduler.AddJob("queue-drain", cfg.Sync.DrainInterval, func(ctx context.Context) error {
		if err := engine.Drain(ctx); err != nil && !errors.Is(err, syncDomain.ErrSyncInProgress) {
			return err
		}
		return nil
	})
	scheduler.AddJob("auto-mark-absent", cfg.Sync.AbsentInterval, attendanceSvc.AutoMarkAbsent)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server listening", slog.String("addr", port), slog.String("env", cfg.App.Env))
	if err := http.ListenAndServe(port, router); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
