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

	bookSlotHandler "github.com/mentorweb/MW-SchedulingService/internal/api/handlers/book_slot"
	createAvailabilityHandler "github.com/mentorweb/MW-SchedulingService/internal/api/handlers/create_availability"
	deleteSlotHandler "github.com/mentorweb/MW-SchedulingService/internal/api/handlers/delete_slot"
	getAppointmentHandler "github.com/mentorweb/MW-SchedulingService/internal/api/handlers/get_appointment"
	getFeedbackHandler "github.com/mentorweb/MW-SchedulingService/internal/api/handlers/get_feedback"
	getProgramSlotsHandler "github.com/mentorweb/MW-SchedulingService/internal/api/handlers/get_program_slots"
	getUserAppointmentsHandler "github.com/mentorweb/MW-SchedulingService/internal/api/handlers/get_user_appointments"
	submitFeedbackHandler "github.com/mentorweb/MW-SchedulingService/internal/api/handlers/submit_feedback"
	transitionAppointmentHandler "github.com/mentorweb/MW-SchedulingService/internal/api/handlers/transition_appointment"
	updateSlotStatusHandler "github.com/mentorweb/MW-SchedulingService/internal/api/handlers/update_slot_status"
	"github.com/mentorweb/MW-SchedulingService/internal/api/middleware"
	"github.com/mentorweb/MW-SchedulingService/internal/config"
	"github.com/mentorweb/MW-SchedulingService/internal/events"
	appointmentRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/appointment"
	feedbackRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/feedback"
	slotRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/slot"
	identityServiceClient "github.com/mentorweb/MW-SchedulingService/internal/integrations/identityservice"
	programServiceClient "github.com/mentorweb/MW-SchedulingService/internal/integrations/programservice"
	appointmentsService "github.com/mentorweb/MW-SchedulingService/internal/service/appointments"
	feedbackService "github.com/mentorweb/MW-SchedulingService/internal/service/feedback"
	slotsService "github.com/mentorweb/MW-SchedulingService/internal/service/slots"
	bookSlotUC "github.com/mentorweb/MW-SchedulingService/internal/usecase/book_slot"
	expandAvailabilityUC "github.com/mentorweb/MW-SchedulingService/internal/usecase/expand_availability"
	transitionAppointmentUC "github.com/mentorweb/MW-SchedulingService/internal/usecase/transition_appointment"
	"github.com/mentorweb/MW-SchedulingService/pkg/dbmetrics"
	"github.com/mentorweb/MW-SchedulingService/pkg/logger"
	"github.com/mentorweb/MW-SchedulingService/pkg/metrics"
	"github.com/mentorweb/MW-SchedulingService/pkg/simpletxmanager"
	"github.com/mentorweb/MW-SchedulingService/pkg/txmanager"
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

	log.Info("Starting MW-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

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

	// Инициализируем интеграционных клиентов
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	programClient := programServiceClient.NewClient(
		cfg.ProgramService.URL,
		time.Duration(cfg.ProgramService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds, ProgramService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout, cfg.ProgramService.URL, cfg.ProgramService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository        *slotRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		feedbackRepository    *feedbackRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		feedbackRepository = feedbackRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		feedbackRepository = feedbackRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Публикация событий жизненного цикла
	publisher := events.NewLogPublisher(log)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	slotsSvc := slotsService.NewService(slotRepository, appointmentRepository, log)
	feedbackSvc := feedbackService.NewService(
		feedbackRepository,
		appointmentRepository,
		publisher,
		feedbackService.Policy{FeedbackAfterMissed: cfg.Policy.FeedbackAfterMissed},
		log,
	)

	// Инициализируем use cases
	expandAvailabilityUseCase := expandAvailabilityUC.NewUseCase(
		slotRepository,
		programClient,
		txMgr,
		log,
	)
	bookSlotUseCase := bookSlotUC.NewUseCase(
		slotRepository,
		appointmentRepository,
		programClient,
		txMgr,
		publisher,
		log,
	)
	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(
		appointmentRepository,
		slotRepository,
		txMgr,
		publisher,
		log,
	)

	// Инициализируем handlers
	createAvailability := createAvailabilityHandler.NewHandler(expandAvailabilityUseCase, log)
	getProgramSlots := getProgramSlotsHandler.NewHandler(slotsSvc, log)
	updateSlotStatus := updateSlotStatusHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	submitFeedback := submitFeedbackHandler.NewHandler(feedbackSvc, log)
	getFeedback := getFeedbackHandler.NewHandler(feedbackSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты программы - участники выбирают из открытых при бронировании
	api.HandleFunc("/programs/{programID}/slots", getProgramSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	auth := middleware.NewAuth(identityClient, log)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// --- Доступность (для хостов) ---
	// Публикация недельного паттерна доступности
	protected.HandleFunc("/programs/{programID}/availability", createAvailability.Handle).Methods(http.MethodPost)

	// Переключение статуса слота open <-> inactive
	protected.HandleFunc("/slots/{slotID}/status", updateSlotStatus.Handle).Methods(http.MethodPatch)

	// Удаление слота без активной записи
	protected.HandleFunc("/slots/{slotID}", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	// Бронирование слота участником
	protected.HandleFunc("/slots/{slotID}/appointments", bookSlot.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentID}", getAppointment.Handle).Methods(http.MethodGet)

	// Перевод записи по жизненному циклу
	protected.HandleFunc("/appointments/{appointmentID}/status", transitionAppointment.Handle).Methods(http.MethodPatch)

	// Записи пользователя по корзинам pending/upcoming/past
	protected.HandleFunc("/users/{userID}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Отзывы ---
	protected.HandleFunc("/appointments/{appointmentID}/feedback", submitFeedback.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentID}/feedback", getFeedback.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
