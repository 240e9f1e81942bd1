package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "todo-service.com/todo-service/internal/configs"
	httpapi "todo-service.com/todo-service/internal/http"
	"todo-service.com/todo-service/internal/notify"
	repository "todo-service.com/todo-service/internal/repositories"
	"todo-service.com/todo-service/internal/scheduler"
	"todo-service.com/todo-service/internal/services"
	"todo-service.com/todo-service/internal/settings"
	"todo-service.com/todo-service/internal/syncsvc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the to-do HTTP API, reminder dispatcher and expiry sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		logger := config.NewLogger()
		defer logger.Sync()

		redisClient := config.NewRedisClient(cfg)
		defer redisClient.Close()

		database := config.New(cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(database)

		notifier := notify.NewRedisNotifier(
			redisClient, cfg.RemindersPendingKey, cfg.RemindersPayloadKey, logger,
		)
		notifier.StartDispatcher(time.Duration(cfg.DispatchIntervalSeconds) * time.Second)

		reminderScheduler := scheduler.NewReminderScheduler(notifier, logger)

		sweeper := scheduler.NewExpirySweeper(taskRepo, logger)
		sweeper.Start(time.Duration(cfg.SweepIntervalSeconds) * time.Second)

		syncService := syncsvc.NewSyncService(taskRepo, redisClient, cfg.SyncSnapshotKey, logger)
		syncService.Subscribe(func(status syncsvc.Status) {
			logger.Infow("sync status changed", "state", status.State, "message", status.Message)
		})

		settingsStore, err := settings.NewStore(cfg.SettingsPath)
		if err != nil {
			return err
		}

		taskService := services.NewTaskService(taskRepo, reminderScheduler, syncService, logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		handler := httpapi.NewHandler(taskService, syncService, settingsStore)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			logger.Infof("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				logger.Infof("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(shutdownCtx)

		sweeper.Stop()
		notifier.StopDispatcher()
		taskService.Shutdown()
		syncService.Wait()

		logger.Info("HTTP server and background loops shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
