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
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockDateHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/block_date"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_appointment"
	deleteScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_schedule"
	exportReportHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/export_report"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getAvailableStylistsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_stylists"
	getReportSummaryHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_report_summary"
	getScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_appointments"
	listSchedulesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_schedules"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reschedule_appointment"
	unblockDateHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/unblock_date"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_appointment_status"
	upsertScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/upsert_schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/lock"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/queue"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/messaging"
	appointmentsService "github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	reportsService "github.com/m04kA/SMC-SalonBooking/internal/service/reports"
	schedulesService "github.com/m04kA/SMC-SalonBooking/internal/service/schedules"
	createAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	getAvailableStylistsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_stylists"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/database"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/redis"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Notifier постановка уведомлений клиенту в очередь
type Notifier interface {
	EnqueueConfirmation(ctx context.Context, appt *domain.Appointment) error
	EnqueueReminder(ctx context.Context, appt *domain.Appointment) error
	EnqueueCancellation(ctx context.Context, appt *domain.Appointment) error
}

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

	log.Info("Starting SMC-SalonBooking...")

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

	if cfg.Database.RunMigrations {
		if err := database.RunMigrations(db, log); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
	}

	// Обёртка над БД: с метриками замеряет запросы и пул соединений, без них - прозрачна
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)

	// Redis: блокировка слотов и очередь уведомлений
	var (
		slotLocker createAppointmentUC.SlotLocker = lock.NoopLocker{}
		notifier   Notifier                       = queue.NoopClient{}
		worker     *queue.Worker
	)

	if cfg.Redis.Enabled {
		rdb, err := redis.NewClient(context.Background(), redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()

		slotLocker = lock.NewSlotLocker(rdb, cfg.Redis.LockTTL())
		log.Info("Redis slot locking enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL())
	}

	if cfg.Notifications.Enabled {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}

		asynqClient := asynq.NewClient(redisOpt)
		defer asynqClient.Close()
		notifier = queue.NewClient(asynqClient, cfg.Notifications.ReminderBefore(), log)

		messagingClient := messaging.NewClient(
			cfg.Messaging.URL,
			cfg.Messaging.Token,
			time.Duration(cfg.Messaging.Timeout)*time.Second,
			log,
		)

		worker = queue.NewWorker(redisOpt, appointmentRepository, messagingClient, queue.WorkerConfig{
			Concurrency: cfg.Notifications.Concurrency,
			Channel:     messaging.Channel(cfg.Messaging.Channel),
			SalonName:   cfg.Notifications.SalonName,
			NotFound:    appointmentRepo.ErrAppointmentNotFound,
		}, log, log.Sugar())

		if err := worker.Start(); err != nil {
			log.Fatal("Failed to start notification worker: %v", err)
		}
		log.Info("Notifications enabled (channel=%s, reminder_before=%s)",
			cfg.Messaging.Channel, cfg.Notifications.ReminderBefore())
	}

	policy := domain.BookingPolicy{
		Location:           cfg.Booking.Location(),
		MinNoticeMinutes:   cfg.Booking.MinNoticeMinutes,
		AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
	}
	log.Info("Booking policy: timezone=%s, min_notice=%dm, advance_days=%d",
		cfg.Booking.Timezone, policy.MinNoticeMinutes, policy.AdvanceBookingDays)

	// Инициализируем сервисы
	scheduleSvc := schedulesService.NewService(scheduleRepository, txManager, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, notifier, txManager, log)
	reportSvc := reportsService.NewService(appointmentRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		appointmentRepository,
		policy,
		metricsCollector,
		log,
	)
	getAvailableStylistsUseCase := getAvailableStylistsUC.NewUseCase(
		scheduleRepository,
		appointmentRepository,
		policy,
		metricsCollector,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		scheduleRepository,
		appointmentRepository,
		slotLocker,
		notifier,
		txManager,
		policy,
		cfg.Booking.DefaultDurationMinutes,
		metricsCollector,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		scheduleRepository,
		appointmentRepository,
		slotLocker,
		notifier,
		txManager,
		policy,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableStylists := getAvailableStylistsHandler.NewHandler(getAvailableStylistsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	listSchedules := listSchedulesHandler.NewHandler(scheduleSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	upsertSchedule := upsertScheduleHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)
	blockDate := blockDateHandler.NewHandler(scheduleSvc, log)
	unblockDate := unblockDateHandler.NewHandler(scheduleSvc, log)
	getReportSummary := getReportSummaryHandler.NewHandler(reportSvc, log)
	exportReport := exportReportHandler.NewHandler(reportSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиентская запись)
	// ============================================================

	// Доступность
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-stylists", getAvailableStylists.Handle).Methods(http.MethodGet)

	// Записи
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId:[0-9]+}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId:[0-9]+}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Мастера
	api.HandleFunc("/schedules", listSchedules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedules/{stylist}", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminOnly)

	// --- Записи ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId:[0-9]+}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Расписания мастеров ---
	admin.HandleFunc("/schedules/{stylist}", upsertSchedule.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/schedules/{stylist}", deleteSchedule.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/schedules/{stylist}/blocked-dates", blockDate.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/schedules/{stylist}/blocked-dates/{date}", unblockDate.Handle).Methods(http.MethodDelete)

	// --- Отчёты ---
	admin.HandleFunc("/reports/summary", getReportSummary.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reports/appointments.xlsx", exportReport.Handle).Methods(http.MethodGet)

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

	if worker != nil {
		worker.Shutdown()
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
