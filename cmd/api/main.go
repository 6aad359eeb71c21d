package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/workpulse/attendance-backend-go/internal/config"
	"github.com/workpulse/attendance-backend-go/internal/domain/kpi"
	appHTTP "github.com/workpulse/attendance-backend-go/internal/handler/http"
	"github.com/workpulse/attendance-backend-go/internal/pkg/cron"
	"github.com/workpulse/attendance-backend-go/internal/pkg/database"
	"github.com/workpulse/attendance-backend-go/internal/pkg/jwt"
	"github.com/workpulse/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workpulse/attendance-backend-go/internal/service/attendance"
	kpiService "github.com/workpulse/attendance-backend-go/internal/service/kpi"
	locationService "github.com/workpulse/attendance-backend-go/internal/service/location"
	messageService "github.com/workpulse/attendance-backend-go/internal/service/message"
	taskService "github.com/workpulse/attendance-backend-go/internal/service/task"
	userService "github.com/workpulse/attendance-backend-go/internal/service/user"
	worklogService "github.com/workpulse/attendance-backend-go/internal/service/worklog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	workLogRepo := postgresql.NewWorkLogRepository(db)
	messageRepo := postgresql.NewMessageRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	kpiRepo := postgresql.NewKPIRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	targets := kpi.Targets{
		WorkHours:           cfg.KPI.WorkHoursTarget,
		ResponseTimeSeconds: cfg.KPI.ResponseTimeTargetSeconds,
		TaskCompletion:      cfg.KPI.TaskCompletionTarget,
		Productivity:        cfg.KPI.ProductivityTarget,
	}

	userSvc := userService.NewUserService(userRepo)
	locationSvc := locationService.NewLocationService(locationRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, locationRepo, userRepo)
	workLogSvc := worklogService.NewWorkLogService(workLogRepo)
	messageSvc := messageService.NewMessageService(messageRepo)
	taskSvc := taskService.NewTaskService(taskRepo)
	kpiSvc := kpiService.NewKPIService(kpiRepo, attendanceRepo, workLogRepo, messageRepo, taskRepo, targets)

	// Background recompute keeps current-month metrics fresh without waiting
	// for an explicit calculate call.
	scheduler := cron.NewScheduler()
	scheduler.AddJob("kpi-recompute", cfg.KPI.RecalcInterval, func(ctx context.Context) error {
		now := time.Now().UTC()

		users, err := userRepo.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to list active users: %w", err)
		}

		for _, u := range users {
			if _, err := kpiSvc.CalculateForUser(ctx, u.ID, int(now.Month()), now.Year()); err != nil {
				slog.Error("KPI recompute failed for user", "user_id", u.ID, "error", err)
			}
		}
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	locationHandler := appHTTP.NewLocationHandler(locationSvc)
	workLogHandler := appHTTP.NewWorkLogHandler(workLogSvc)
	messageHandler := appHTTP.NewMessageHandler(messageSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	kpiHandler := appHTTP.NewKPIHandler(kpiSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		attendanceHandler,
		locationHandler,
		workLogHandler,
		messageHandler,
		taskHandler,
		kpiHandler,
		userHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
