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

	cancelAllocationHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/cancel_allocation"
	evaluateBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/evaluate_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getFreeWindowsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_free_windows"
	getPolicyHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_policy"
	updatePolicyHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_policy"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	allocationRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/allocation"
	policyRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
	policiesService "github.com/m04kA/SMC-AvailabilityService/internal/service/policies"
	cancelAllocationUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/cancel_allocation"
	evaluateBookingUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/evaluate_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	getFreeWindowsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_free_windows"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории
	policyRepository := policyRepo.NewRepository(db)
	allocationRepository := allocationRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	policiesSvc := policiesService.NewService(policyRepository, log)

	// Инициализируем use cases
	evaluateBookingUseCase := evaluateBookingUC.NewUseCase(
		allocationRepository,
		policiesSvc,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		allocationRepository,
		policiesSvc,
		log,
	)
	getFreeWindowsUseCase := getFreeWindowsUC.NewUseCase(
		allocationRepository,
		policiesSvc,
		log,
	)
	cancelAllocationUseCase := cancelAllocationUC.NewUseCase(
		allocationRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	evaluateBooking := evaluateBookingHandler.NewHandler(evaluateBookingUseCase, metricsCollector, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, metricsCollector, log)
	getFreeWindows := getFreeWindowsHandler.NewHandler(getFreeWindowsUseCase, log)
	getPolicy := getPolicyHandler.NewHandler(policiesSvc, log)
	cancelAllocation := cancelAllocationHandler.NewHandler(cancelAllocationUseCase, log)
	updatePolicy := updatePolicyHandler.NewHandler(policiesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение активной политики ресурса
	api.HandleFunc("/resources/{resourceId}/policy",
		getPolicy.Handle).Methods(http.MethodGet)

	// Получение доступных слотов по сетке
	api.HandleFunc("/resources/{resourceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Получение непрерывных свободных окон
	api.HandleFunc("/resources/{resourceId}/free-windows",
		getFreeWindows.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Обновление политики ресурса
	protected.HandleFunc("/resources/{resourceId}/policy",
		updatePolicy.Handle).Methods(http.MethodPut)

	// Решение о допуске бронирования
	protected.HandleFunc("/resources/{resourceId}/evaluate",
		evaluateBooking.Handle).Methods(http.MethodPost)

	// Отмена аллокации ресурса
	protected.HandleFunc("/allocations/{allocationId}/cancel",
		cancelAllocation.Handle).Methods(http.MethodPost)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
