package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approveBookingHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/approve_booking"
	blockSlotHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/block_slot"
	cancelBookingHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/cancel_booking"
	changeStatusHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/change_status"
	checkInHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/check_out"
	createBookingHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/create_booking"
	createSlotHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/delete_slot"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/get_bookings"
	rescheduleDelayedHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/reschedule_delayed"
	updateBookingHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/update_booking"
	updateSlotHandler "github.com/m04kA/SMC-DockService/internal/api/handlers/update_slot"
	"github.com/m04kA/SMC-DockService/internal/api/middleware"
	"github.com/m04kA/SMC-DockService/internal/config"
	"github.com/m04kA/SMC-DockService/internal/infra/db"
	auditRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/audit"
	bookingRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/booking"
	companyRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/company"
	timeslotRepo "github.com/m04kA/SMC-DockService/internal/infra/storage/timeslot"
	licenseServiceClient "github.com/m04kA/SMC-DockService/internal/integrations/licenseservice"
	notifyServiceClient "github.com/m04kA/SMC-DockService/internal/integrations/notifyservice"
	bookingsService "github.com/m04kA/SMC-DockService/internal/service/bookings"
	slotsService "github.com/m04kA/SMC-DockService/internal/service/slots"
	createBookingUC "github.com/m04kA/SMC-DockService/internal/usecase/create_booking"
	rescheduleDelayedUC "github.com/m04kA/SMC-DockService/internal/usecase/reschedule_delayed"
	"github.com/m04kA/SMC-DockService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DockService/pkg/logger"
	"github.com/m04kA/SMC-DockService/pkg/metrics"
	"github.com/m04kA/SMC-DockService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-DockService/pkg/txmanager"
)

// TxManager общий интерфейс менеджеров транзакций для сервисов и usecases
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

	log.Info("Starting SMC-DockService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	conn, err := db.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := db.RunMigrations(conn, cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}
	log.Info("Migrations applied from %s", cfg.Database.MigrationsPath)

	// Инициализируем интеграционных клиентов
	licenseClient := licenseServiceClient.NewClient(
		cfg.LicenseService.URL,
		time.Duration(cfg.LicenseService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (LicenseService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.LicenseService.URL, cfg.LicenseService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *timeslotRepo.Repository
		bookingRepository *bookingRepo.Repository
		companyRepository *companyRepo.Repository
		auditRepository   *auditRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(conn, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = timeslotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		companyRepository = companyRepo.NewRepository(wrappedDB)
		auditRepository = auditRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = timeslotRepo.NewRepository(conn)
		bookingRepository = bookingRepo.NewRepository(conn)
		companyRepository = companyRepo.NewRepository(conn)
		auditRepository = auditRepo.NewRepository(conn)
		txMgr = simpletxmanager.NewTransactionManager(conn)
	}

	// Инициализируем сервисы
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		txMgr,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		txMgr,
		&bookingsService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		companyRepository,
		licenseClient,
		txMgr,
		log,
	)
	rescheduleDelayedUseCase := rescheduleDelayedUC.NewUseCase(
		bookingRepository,
		slotRepository,
		notifyClient,
		txMgr,
		cfg.Scheduler.SearchHorizonDays,
		log,
	)

	// Инициализируем handlers
	createSlot := createSlotHandler.NewHandler(slotSvc, auditRepository, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, auditRepository, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, auditRepository, log)
	blockSlot := blockSlotHandler.NewHandler(slotSvc, auditRepository, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, auditRepository, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, auditRepository, log)
	approveBooking := approveBookingHandler.NewHandler(bookingSvc, auditRepository, log)
	checkIn := checkInHandler.NewHandler(bookingSvc, auditRepository, log)
	checkOut := checkOutHandler.NewHandler(bookingSvc, auditRepository, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, auditRepository, log)
	changeStatus := changeStatusHandler.NewHandler(bookingSvc, auditRepository, log)
	rescheduleDelayed := rescheduleDelayedHandler.NewHandler(rescheduleDelayedUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 10*time.Minute)
		r.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Все маршруты API требуют аутентификации через заголовки шлюза
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authenticate(log))

	// authorize оборачивает handler проверкой права на действие
	authorize := func(resource, action string, h http.HandlerFunc) http.Handler {
		return middleware.Authorize(resource, action, log)(h)
	}

	// --- Слоты ---
	api.Handle("/slots",
		authorize(middleware.ResourceSlots, middleware.ActionManage, createSlot.Handle)).Methods(http.MethodPost)
	api.Handle("/slots/{slotId}",
		authorize(middleware.ResourceSlots, middleware.ActionManage, updateSlot.Handle)).Methods(http.MethodPut)
	api.Handle("/slots/{slotId}",
		authorize(middleware.ResourceSlots, middleware.ActionManage, deleteSlot.Handle)).Methods(http.MethodDelete)
	api.Handle("/slots/{slotId}/block",
		authorize(middleware.ResourceSlots, middleware.ActionManage, blockSlot.HandleBlock)).Methods(http.MethodPatch)
	api.Handle("/slots/{slotId}/unblock",
		authorize(middleware.ResourceSlots, middleware.ActionManage, blockSlot.HandleUnblock)).Methods(http.MethodPatch)
	api.Handle("/warehouses/{warehouseId}/available-slots",
		authorize(middleware.ResourceSlots, middleware.ActionRead, getAvailableSlots.Handle)).Methods(http.MethodGet)

	// --- Бронирования ---
	api.Handle("/bookings",
		authorize(middleware.ResourceBookings, middleware.ActionBook, createBooking.Handle)).Methods(http.MethodPost)
	api.Handle("/bookings",
		authorize(middleware.ResourceBookings, middleware.ActionRead, getBookings.Handle)).Methods(http.MethodGet)
	api.Handle("/bookings/reschedule-delayed",
		authorize(middleware.ResourceBookings, middleware.ActionReschedule, rescheduleDelayed.Handle)).Methods(http.MethodPost)
	api.Handle("/bookings/qr/{qrCode}",
		authorize(middleware.ResourceBookings, middleware.ActionRead, getBooking.HandleByQR)).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId}",
		authorize(middleware.ResourceBookings, middleware.ActionRead, getBooking.Handle)).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId}",
		authorize(middleware.ResourceBookings, middleware.ActionBook, updateBooking.Handle)).Methods(http.MethodPut)
	api.Handle("/bookings/{bookingId}/approve",
		authorize(middleware.ResourceBookings, middleware.ActionApprove, approveBooking.Handle)).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId}/check-in",
		authorize(middleware.ResourceBookings, middleware.ActionGate, checkIn.Handle)).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId}/check-out",
		authorize(middleware.ResourceBookings, middleware.ActionGate, checkOut.Handle)).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId}/cancel",
		authorize(middleware.ResourceBookings, middleware.ActionBook, cancelBooking.Handle)).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId}/status",
		authorize(middleware.ResourceBookings, middleware.ActionOverride, changeStatus.Handle)).Methods(http.MethodPatch)

	// Планировщик автоматических переносов
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	if cfg.Scheduler.Enabled {
		go runScheduler(schedulerCtx, rescheduleDelayedUseCase, metricsCollector,
			time.Duration(cfg.Scheduler.IntervalMinutes)*time.Minute, log)
		log.Info("Reschedule scheduler started (interval=%dm, horizon=%dd)",
			cfg.Scheduler.IntervalMinutes, cfg.Scheduler.SearchHorizonDays)
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopScheduler()

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

// runScheduler периодически переносит отложенные бронирования,
// чей слот уже закончился
func runScheduler(
	ctx context.Context,
	uc *rescheduleDelayedUC.UseCase,
	m *metrics.Metrics,
	interval time.Duration,
	log *logger.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Reschedule scheduler stopped")
			return
		case <-ticker.C:
			start := time.Now()

			resp, err := uc.Execute(ctx)

			if m != nil {
				m.RescheduleRunDuration.Observe(time.Since(start).Seconds())
				if err != nil {
					m.RescheduleRunsTotal.WithLabelValues("error").Inc()
				} else {
					m.RescheduleRunsTotal.WithLabelValues("success").Inc()
					m.RescheduledTotal.Add(float64(resp.RescheduledCount))
					m.RescheduleErrorsTotal.Add(float64(resp.FailedCount))
				}
			}

			if err != nil {
				log.Error("Scheduler: reschedule run failed: %v", err)
			}
		}
	}
}
