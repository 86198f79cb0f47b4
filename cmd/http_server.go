package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"

	"github.com/pushparaj09/medishift-ai/internal"
	"github.com/pushparaj09/medishift-ai/internal/auth"
	"github.com/pushparaj09/medishift-ai/internal/core/events"
	"github.com/pushparaj09/medishift-ai/internal/employee"
	employeestore "github.com/pushparaj09/medishift-ai/internal/employee/memstore"
	"github.com/pushparaj09/medishift-ai/internal/forecast"
	"github.com/pushparaj09/medishift-ai/internal/leave"
	leavestore "github.com/pushparaj09/medishift-ai/internal/leave/memstore"
	"github.com/pushparaj09/medishift-ai/internal/notification"
	notificationstore "github.com/pushparaj09/medishift-ai/internal/notification/memstore"
	"github.com/pushparaj09/medishift-ai/internal/schedule"
	schedulestore "github.com/pushparaj09/medishift-ai/internal/schedule/memstore"
	"github.com/pushparaj09/medishift-ai/internal/seed"
	"github.com/pushparaj09/medishift-ai/internal/transport/rest"
	"github.com/pushparaj09/medishift-ai/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config        *internal.Config
	Router        *chi.Mux
	Notifications *notification.Service
	Logger        *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		deps.Notifications.Close()
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Logging.Level, config.Logging.Format)
	log := logger.LoggerWrapper()

	bus := events.NewEventBus(log)

	employeeStore := employeestore.NewEmployeeStore()
	shiftStore := schedulestore.NewShiftStore()
	swapStore := schedulestore.NewSwapStore()
	leaveStore := leavestore.NewLeaveStore()
	toastStore := notificationstore.NewToastStore(notification.DefaultToastTTL)
	notificationStore := notificationstore.NewNotificationStore()

	notificationService := notification.NewService(toastStore, notificationStore, log)
	notificationService.RegisterEventHandlers(bus)

	employeeService := employee.NewService(employeeStore, nil, bus, config.Security.BCryptCost, log)
	scheduleService := schedule.NewService(shiftStore, swapStore, employeeService, bus, log)
	// The scheduler needs the directory and the directory needs shift
	// lookups, so the second edge is wired after construction.
	employeeService.SetShiftLookup(scheduleService)

	leaveService := leave.NewService(leaveStore, employeeService, bus, log)
	forecastClient := forecast.NewClient(config.Forecast, log)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(employeeService, tokenGenerator, config.Security.BCryptCost, log)

	if loadDemoData {
		err := seed.Load(seed.Stores{
			Employees:     employeeStore,
			Shifts:        shiftStore,
			Leaves:        leaveStore,
			Notifications: notificationStore,
		}, config.Security.BCryptCost, log)
		if err != nil {
			return nil, fmt.Errorf("failed to load demo data: %w", err)
		}
	}

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService, employeeService),
		Employee:     employee.NewHandler(employeeService),
		Schedule:     schedule.NewHandler(scheduleService),
		Leave:        leave.NewHandler(leaveService),
		Notification: notification.NewHandler(notificationService),
		Forecast:     forecast.NewHandler(forecastClient),
	}

	router := chi.NewRouter()
	forecastConfigured := config.Forecast.APIURL != "" && config.Forecast.APIKey != ""
	rest.RegisterAllRoutes(router, handlers, authService, config.Server.AllowedOrigins, forecastConfigured, log)

	return &Dependencies{
		Config:        config,
		Router:        router,
		Notifications: notificationService,
		Logger:        log,
	}, nil
}
