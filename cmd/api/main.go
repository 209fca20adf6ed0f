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

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/empatt-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/empatt-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/redis"
	"github.com/cmlabs-hris/empatt-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/empatt-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/empatt-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/empatt-backend-go/internal/service/employee"
	reportService "github.com/cmlabs-hris/empatt-backend-go/internal/service/report"
	serverRoomService "github.com/cmlabs-hris/empatt-backend-go/internal/service/serverroom"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.App)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		migrator, err := database.NewMigrator(db)
		if err != nil {
			return err
		}
		err = migrator.Up()
		_ = migrator.Close()
		if err != nil {
			return err
		}
	}

	// Redis is optional: without it locks and the token blacklist live in this process.
	var (
		locker    lock.Locker
		blacklist jwt.TokenBlacklist
	)
	if cfg.Redis.Addr != "" {
		redisClient, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		locker = lock.NewRedisLocker(redisClient.Cmdable(), cfg.Attendance.PunchLockTTL)
		blacklist = redisClient
	} else {
		slog.Warn("REDIS_ADDR not set, using in-process locks and token blacklist")
		locker = lock.NewLocalLocker()
		blacklist = jwt.NewMemoryBlacklist()
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, blacklist)
	if err != nil {
		return err
	}

	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	serverRoomRepo := postgresql.NewServerRoomActionRepository(db)
	adminRepo := postgresql.NewAdminRepository(db)
	jobRepo := postgresql.NewScheduledJobRepository(db)

	loc := cfg.Location()
	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		attendanceRepo,
		employeeRepo,
		jobRepo,
		locker,
		attendanceService.Rules{
			ViolationLimit:             cfg.Attendance.ViolationLimit,
			EmergencyAutoCheckoutAfter: cfg.Attendance.EmergencyAutoCheckoutAfter,
			DefaultLocation:            cfg.Attendance.DefaultLocation,
			Location:                   loc,
		},
	)
	authSvc := serviceAuth.NewAuthService(adminRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, loc)
	serverRoomSvc := serverRoomService.NewServerRoomService(serverRoomRepo, employeeRepo, cfg.Attendance.ServerRoomLocation, loc)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		ServerRoom: appHTTP.NewServerRoomHandler(serverRoomSvc),
	}, appHTTP.RouterOptions{
		Logger:             log,
		CORSAllowedOrigins: cfg.App.CORSAllowedOrigins,
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, jobRepo, cfg.Jobs).RegisterJobs(scheduler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		scheduler.Start(gctx)
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
