package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelSessionHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/cancel_session"
	createAvailabilityHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/create_availability"
	createSessionHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/create_session"
	deleteAvailabilityHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/delete_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_available_slots"
	getMentorSessionsHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_mentor_sessions"
	getMentorSettingsHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_mentor_settings"
	getSessionHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_session"
	getUserSessionsHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/get_user_sessions"
	listAvailabilityHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/list_availability"
	updateMentorSettingsHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/update_mentor_settings"
	updateSessionStatusHandler "github.com/m04kA/SMC-MentorshipService/internal/api/handlers/update_session_status"
	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/availability"
	sessionRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/session"
	settingsRepo "github.com/m04kA/SMC-MentorshipService/internal/infra/storage/settings"
	profileServiceClient "github.com/m04kA/SMC-MentorshipService/internal/integrations/profileservice"
	availabilityService "github.com/m04kA/SMC-MentorshipService/internal/service/availability"
	sessionsService "github.com/m04kA/SMC-MentorshipService/internal/service/sessions"
	settingsService "github.com/m04kA/SMC-MentorshipService/internal/service/settings"
	createSessionUC "github.com/m04kA/SMC-MentorshipService/internal/usecase/create_session"
	getAvailableSlotsUC "github.com/m04kA/SMC-MentorshipService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-MentorshipService/internal/worker"
	"github.com/m04kA/SMC-MentorshipService/migrations"
	"github.com/m04kA/SMC-MentorshipService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/logger"
	"github.com/m04kA/SMC-MentorshipService/pkg/metrics"
	"github.com/m04kA/SMC-MentorshipService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-MentorshipService...")

	// Метрики (nil, если выключены: все обёртки это переживают)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Миграции
	if cfg.Database.AutoMigrate {
		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := migrator.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	stopMetricsCh := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Репозитории и transaction manager
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	sessionRepository := sessionRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграции
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Сервисы
	availabilitySvc := availabilityService.NewService(availabilityRepository, profileClient, log)
	sessionsSvc := sessionsService.NewService(sessionRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, profileClient, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		sessionRepository,
		settingsRepository,
		profileClient,
		metricsCollector,
		cfg.Slots.WindowDays,
		log,
	)

	createSessionUseCase := createSessionUC.NewUseCase(
		availabilityRepository,
		sessionRepository,
		settingsRepository,
		profileClient,
		txMgr,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createSession := createSessionHandler.NewHandler(createSessionUseCase, log)
	getSession := getSessionHandler.NewHandler(sessionsSvc, log)
	cancelSession := cancelSessionHandler.NewHandler(sessionsSvc, log)
	updateSessionStatus := updateSessionStatusHandler.NewHandler(sessionsSvc, log)
	getUserSessions := getUserSessionsHandler.NewHandler(sessionsSvc, log)
	getMentorSessions := getMentorSessionsHandler.NewHandler(sessionsSvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	getMentorSettings := getMentorSettingsHandler.NewHandler(settingsSvc, log)
	updateMentorSettings := updateMentorSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные подслоты ментора на неделю
	api.HandleFunc("/mentors/{mentorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Окна доступности ментора (определения)
	api.HandleFunc("/mentors/{mentorId}/availability", listAvailability.Handle).Methods(http.MethodGet)

	// Настройки бронирования ментора
	api.HandleFunc("/mentors/{mentorId}/settings", getMentorSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии ---
	protected.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{sessionId}/cancel", cancelSession.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/sessions/{sessionId}/status", updateSessionStatus.Handle).Methods(http.MethodPatch)

	// История сессий спортсмена
	protected.HandleFunc("/users/{userId}/sessions", getUserSessions.Handle).Methods(http.MethodGet)

	// --- Кабинет ментора ---
	protected.HandleFunc("/mentors/{mentorId}/sessions", getMentorSessions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/mentors/{mentorId}/availability", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/{slotId}", deleteAvailability.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/mentors/{mentorId}/settings", updateMentorSettings.Handle).Methods(http.MethodPut)

	// Фоновое истечение неподтверждённых сессий
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var expirer *worker.Expirer
	if cfg.Sessions.PendingTTLMinutes > 0 {
		expirer = worker.NewExpirer(
			sessionRepository,
			metricsCollector,
			time.Duration(cfg.Sessions.PendingTTLMinutes)*time.Minute,
			time.Duration(cfg.Sessions.ExpireIntervalSeconds)*time.Second,
			log,
		)
		expirer.Start(workerCtx)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if expirer != nil {
		expirer.Stop()
	}
	stopWorkers()
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
