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
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apartmentsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/apartments"
	bookingRequestsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/booking_requests"
	changeBookingStatusHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/change_booking_status"
	checkAvailabilityHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/check_availability"
	convertBookingRequestHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/convert_booking_request"
	createBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_booking"
	getUnavailableDatesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_unavailable_dates"
	listBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_bookings"
	maintenanceHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/maintenance"
	notificationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/notifications"
	updateBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_booking"
	updatePaymentHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_payment"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	apartmentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/apartment"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	bookingRequestRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking_request"
	maintenanceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/maintenance"
	notificationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailqueue"
	apartmentsService "github.com/m04kA/SMC-RentalService/internal/service/apartments"
	"github.com/m04kA/SMC-RentalService/internal/service/availability"
	bookingRequestsService "github.com/m04kA/SMC-RentalService/internal/service/booking_requests"
	bookingsService "github.com/m04kA/SMC-RentalService/internal/service/bookings"
	maintenanceService "github.com/m04kA/SMC-RentalService/internal/service/maintenance"
	notificationsService "github.com/m04kA/SMC-RentalService/internal/service/notifications"
	"github.com/m04kA/SMC-RentalService/internal/service/notifier"
	convertBookingRequestUC "github.com/m04kA/SMC-RentalService/internal/usecase/convert_booking_request"
	createBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	updateBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-RentalService/migrations"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
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

	log.Info("Starting SMC-RentalService...")
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

	// Применяем миграции при старте (для локального запуска и docker-compose)
	if cfg.Database.AutoMigrate {
		if err := migrate(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		executor dbmetrics.DBExecutor = db
		txMgr    *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	apartmentRepository := apartmentRepo.NewRepository(executor)
	bookingRepository := bookingRepo.NewRepository(executor)
	requestRepository := bookingRequestRepo.NewRepository(executor)
	maintenanceRepository := maintenanceRepo.NewRepository(executor)
	notificationRepository := notificationRepo.NewRepository(executor)

	// Очередь писем для гостей
	var mailPublisher notifier.MailPublisher
	if cfg.Mail.Enabled {
		publisher, err := mailqueue.NewPublisher(mailqueue.Config{
			URL:        cfg.Mail.AMQPURL,
			Exchange:   cfg.Mail.Exchange,
			RoutingKey: cfg.Mail.RoutingKey,
			Timeout:    time.Duration(cfg.Mail.Timeout) * time.Second,
		}, log)
		if err != nil {
			log.Fatal("Failed to connect to mail queue: %v", err)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("Failed to close mail queue: %v", err)
			}
		}()

		mailPublisher = publisher
		log.Info("Mail queue connected (exchange=%s, routing_key=%s)", cfg.Mail.Exchange, cfg.Mail.RoutingKey)
	} else {
		log.Info("Mail queue disabled, guest e-mails are not sent")
	}

	notify := notifier.New(
		notificationRepository,
		mailPublisher,
		time.Duration(cfg.Mail.Timeout)*time.Second,
		log,
	)

	// Движок доступности считает конфликты только при включенных метриках
	var conflictCounter availability.ConflictCounter
	if cfg.Metrics.Enabled {
		conflictCounter = metricsCollector
	}
	engine := availability.NewEngine(bookingRepository, apartmentRepository, conflictCounter, log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		apartmentRepository,
		notify,
		txMgr,
		log,
	)
	requestSvc := bookingRequestsService.NewService(
		requestRepository,
		apartmentRepository,
		engine,
		notify,
		txMgr,
		log,
	)
	apartmentSvc := apartmentsService.NewService(apartmentRepository, bookingRepository, log)
	maintenanceSvc := maintenanceService.NewService(maintenanceRepository, notify, txMgr, log)
	notificationSvc := notificationsService.NewService(notificationRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		apartmentRepository,
		engine,
		notify,
		txMgr,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		apartmentRepository,
		engine,
		txMgr,
		log,
	)
	convertUseCase := convertBookingRequestUC.NewUseCase(
		requestRepository,
		bookingRepository,
		apartmentRepository,
		engine,
		notify,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(engine, log)
	getUnavailableDates := getUnavailableDatesHandler.NewHandler(engine, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	changeBookingStatus := changeBookingStatusHandler.NewHandler(bookingSvc, log)
	updatePayment := updatePaymentHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	bookingRequests := bookingRequestsHandler.NewHandler(requestSvc, log)
	convertBookingRequest := convertBookingRequestHandler.NewHandler(convertUseCase, log)
	apartments := apartmentsHandler.NewHandler(apartmentSvc, log)
	maintenance := maintenanceHandler.NewHandler(maintenanceSvc, log)
	notifications := notificationsHandler.NewHandler(notificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.NewCORSHandler(cfg.CORS.AllowedOrigins))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.Path))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (сайт: календарь занятости и заявки гостей)
	// ============================================================

	api.HandleFunc("/apartments/{apartmentId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/apartments/{apartmentId}/unavailable-dates",
		getUnavailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/booking-requests", bookingRequests.Create).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (админка, требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/check-in", changeBookingStatus.CheckIn).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/check-out", changeBookingStatus.CheckOut).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", changeBookingStatus.Cancel).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/no-show", changeBookingStatus.NoShow).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", updatePayment.Handle).Methods(http.MethodPatch)

	// --- Заявки с сайта ---
	protected.HandleFunc("/booking-requests", bookingRequests.List).Methods(http.MethodGet)
	protected.HandleFunc("/booking-requests/{requestId}", bookingRequests.Get).Methods(http.MethodGet)
	protected.HandleFunc("/booking-requests/{requestId}", bookingRequests.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/booking-requests/{requestId}/approve", bookingRequests.Approve).Methods(http.MethodPatch)
	protected.HandleFunc("/booking-requests/{requestId}/reject", bookingRequests.Reject).Methods(http.MethodPatch)
	protected.HandleFunc("/booking-requests/{requestId}/cancel", bookingRequests.Cancel).Methods(http.MethodPatch)
	protected.HandleFunc("/booking-requests/{requestId}/communications",
		bookingRequests.AddCommunication).Methods(http.MethodPost)
	protected.HandleFunc("/booking-requests/{requestId}/convert",
		convertBookingRequest.Handle).Methods(http.MethodPost)

	// --- Квартиры ---
	protected.HandleFunc("/apartments", apartments.Create).Methods(http.MethodPost)
	protected.HandleFunc("/apartments", apartments.List).Methods(http.MethodGet)
	protected.HandleFunc("/apartments/{apartmentId}", apartments.Get).Methods(http.MethodGet)
	protected.HandleFunc("/apartments/{apartmentId}", apartments.Update).Methods(http.MethodPut)
	protected.HandleFunc("/apartments/{apartmentId}", apartments.Delete).Methods(http.MethodDelete)

	// --- Обслуживание ---
	protected.HandleFunc("/maintenance-requests", maintenance.Create).Methods(http.MethodPost)
	protected.HandleFunc("/maintenance-requests", maintenance.List).Methods(http.MethodGet)
	protected.HandleFunc("/maintenance-requests/{requestId}", maintenance.Get).Methods(http.MethodGet)
	protected.HandleFunc("/maintenance-requests/{requestId}", maintenance.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/maintenance-requests/{requestId}/status", maintenance.ChangeStatus).Methods(http.MethodPatch)

	// --- Уведомления админа ---
	// read-all регистрируется раньше {notificationId}
	protected.HandleFunc("/notifications", notifications.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", notifications.MarkAllRead).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{notificationId}/read", notifications.MarkRead).Methods(http.MethodPatch)

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

	// Дожидаемся писем, которые уже ушли в очередь
	notify.Wait()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}

// migrate применяет встроенные goose миграции
func migrate(db *sql.DB, log *logger.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}

	for _, res := range results {
		log.Info("Applied migration %s (%s)", res.Source.Path, res.Duration)
	}
	log.Info("Database schema is up to date (%d applied)", len(results))

	return nil
}
