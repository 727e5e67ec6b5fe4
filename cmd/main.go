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
	"github.com/redis/go-redis/v9"

	approveEditRequestHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/approve_edit_request"
	batchCreateInvoicesHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/batch_create_invoices"
	createInvoiceHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/create_invoice"
	createLedgerEntryHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/create_ledger_entry"
	createOverrideHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/create_override"
	createReviewHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/create_review"
	deleteOverrideHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/delete_override"
	deleteReviewHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/delete_review"
	getAvailabilityRuleHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/get_availability_rule"
	getAvailableSlotsHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/get_business_bookings"
	getCustomerBookingsHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/get_customer_bookings"
	getInvoiceHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/get_invoice"
	getQuoteHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/get_quote"
	listLedgerHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/list_ledger"
	listOverridesHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/list_overrides"
	previewPricingHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/preview_pricing"
	recordPaymentHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/record_payment"
	rejectEditRequestHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/reject_edit_request"
	respondQuoteHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/respond_quote"
	sendInvoiceHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/send_invoice"
	updateAvailabilityRuleHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/update_availability_rule"
	updateBookingHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/update_booking"
	updateInvoiceHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/update_invoice"
	updateReviewHandler "github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/update_review"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/config"
	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	availabilityRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/availability"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	editRequestRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/editrequest"
	invoiceRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/invoice"
	ledgerRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/ledger"
	quoteRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/quote"
	reviewRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/review"
	scheduledJobRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/scheduledjob"
	"github.com/LomaCotta/haulers-app-sub001/internal/integrations/rpc"
	availabilityService "github.com/LomaCotta/haulers-app-sub001/internal/service/availability"
	bookingsService "github.com/LomaCotta/haulers-app-sub001/internal/service/bookings"
	editRequestsService "github.com/LomaCotta/haulers-app-sub001/internal/service/editrequests"
	invoicesService "github.com/LomaCotta/haulers-app-sub001/internal/service/invoices"
	ledgerService "github.com/LomaCotta/haulers-app-sub001/internal/service/ledger"
	pricingService "github.com/LomaCotta/haulers-app-sub001/internal/service/pricing"
	quotesService "github.com/LomaCotta/haulers-app-sub001/internal/service/quotes"
	reviewsService "github.com/LomaCotta/haulers-app-sub001/internal/service/reviews"
	batchCreateInvoicesUC "github.com/LomaCotta/haulers-app-sub001/internal/usecase/batch_create_invoices"
	getAvailableSlotsUC "github.com/LomaCotta/haulers-app-sub001/internal/usecase/get_available_slots"
	updateBookingUC "github.com/LomaCotta/haulers-app-sub001/internal/usecase/update_booking"
	"github.com/LomaCotta/haulers-app-sub001/pkg/dbmetrics"
	"github.com/LomaCotta/haulers-app-sub001/pkg/locker"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
	"github.com/LomaCotta/haulers-app-sub001/pkg/metrics"
	"github.com/LomaCotta/haulers-app-sub001/pkg/migrator"
	"github.com/LomaCotta/haulers-app-sub001/pkg/txmanager"
)

const lockPrefix = "haulers:lock:"

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

	log.Info("Starting haulers booking service...")

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		version, err := migrator.Up(db, cfg.Database.MigrationsDir)
		if err != nil {
			log.Fatal("Failed to apply migrations from %s: %v", cfg.Database.MigrationsDir, err)
		}
		log.Info("Database schema at version %d", version)
	}

	// Без коллектора обертка только прокидывает запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Распределенная блокировка для пакетного выставления счетов
	var batchLocker batchCreateInvoicesUC.Locker = locker.NoopLocker{}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		batchLocker = locker.NewRedisLocker(rdb, lockPrefix, cfg.Redis.LockTTL())
		log.Info("Redis locker enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL())
	} else {
		log.Warn("Redis is disabled, batch invoicing runs without distributed lock")
	}

	// Клиент хранимых процедур
	caller, err := rpc.NewSupabaseCaller(cfg.RPC.URL, cfg.RPC.ServiceKey, cfg.RPC.Schema)
	if err != nil {
		log.Fatal("Failed to initialize rpc client: %v", err)
	}
	procedures := rpc.NewClient(caller, log)
	log.Info("RPC client initialized (url=%s, schema=%s)", cfg.RPC.URL, cfg.RPC.Schema)

	// Значения тарифов по умолчанию (Validate уже проверил формат)
	packingRate, _ := cfg.Pricing.PackingRoomRateCents()
	stairsRate, _ := cfg.Pricing.StairsFlightRateCents()
	pricingDefaults := domain.PricingSettings{
		PackingRoomRateCents:  packingRate,
		StairsFlightRateCents: stairsRate,
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	businessRepository := businessRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	scheduledJobRepository := scheduledJobRepo.NewRepository(wrappedDB)
	quoteRepository := quoteRepo.NewRepository(wrappedDB)
	editRequestRepository := editRequestRepo.NewRepository(wrappedDB)
	invoiceRepository := invoiceRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	ledgerRepository := ledgerRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, businessRepository, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, businessRepository, log)
	pricingSvc := pricingService.NewService(businessRepository, pricingDefaults, metricsCollector, log)
	quoteSvc := quotesService.NewService(
		quoteRepository,
		bookingRepository,
		businessRepository,
		procedures,
		quotesService.RealTimeProvider{},
		log,
	)
	editRequestSvc := editRequestsService.NewService(
		editRequestRepository,
		bookingRepository,
		businessRepository,
		procedures,
		log,
	)
	invoiceSvc := invoicesService.NewService(
		invoiceRepository,
		bookingRepository,
		businessRepository,
		txMgr,
		invoicesService.RealTimeProvider{},
		log,
	)
	reviewSvc := reviewsService.NewService(
		reviewRepository,
		bookingRepository,
		businessRepository,
		reviewsService.RealTimeProvider{},
		log,
	)
	ledgerSvc := ledgerService.NewService(ledgerRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		businessRepository,
		availabilitySvc,
		availabilitySvc,
		getAvailableSlotsUC.NewMergedCommitments(bookingRepository, scheduledJobRepository),
		metricsCollector,
		getAvailableSlotsUC.Options{
			ApplyExtraCapacity:    cfg.Availability.ApplyExtraCapacity,
			DefaultMinNoticeHours: cfg.Availability.DefaultMinNoticeHours,
			MaxRangeDays:          cfg.Availability.MaxRangeDays,
		},
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		businessRepository,
		pricingSvc,
		txMgr,
		log,
	)
	batchCreateInvoicesUseCase := batchCreateInvoicesUC.NewUseCase(
		bookingRepository,
		businessRepository,
		invoiceRepository,
		batchLocker,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailabilityRule := getAvailabilityRuleHandler.NewHandler(availabilitySvc, log)
	updateAvailabilityRule := updateAvailabilityRuleHandler.NewHandler(availabilitySvc, log)
	listOverrides := listOverridesHandler.NewHandler(availabilitySvc, log)
	createOverride := createOverrideHandler.NewHandler(availabilitySvc, log)
	deleteOverride := deleteOverrideHandler.NewHandler(availabilitySvc, log)
	previewPricing := previewPricingHandler.NewHandler(pricingSvc, log)

	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)

	getQuote := getQuoteHandler.NewHandler(quoteSvc, log)
	respondQuote := respondQuoteHandler.NewHandler(quoteSvc, log)
	approveEditRequest := approveEditRequestHandler.NewHandler(editRequestSvc, log)
	rejectEditRequest := rejectEditRequestHandler.NewHandler(editRequestSvc, log)

	createInvoice := createInvoiceHandler.NewHandler(invoiceSvc, log)
	getInvoice := getInvoiceHandler.NewHandler(invoiceSvc, log)
	updateInvoice := updateInvoiceHandler.NewHandler(invoiceSvc, log)
	sendInvoice := sendInvoiceHandler.NewHandler(invoiceSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(invoiceSvc, log)
	batchCreateInvoices := batchCreateInvoicesHandler.NewHandler(batchCreateInvoicesUseCase, log)

	createReview := createReviewHandler.NewHandler(reviewSvc, log)
	updateReview := updateReviewHandler.NewHandler(reviewSvc, log)
	deleteReview := deleteReviewHandler.NewHandler(reviewSvc, log)

	listLedger := listLedgerHandler.NewHandler(ledgerSvc, log)
	createLedgerEntry := createLedgerEntryHandler.NewHandler(ledgerSvc, log)

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

	// Свободные слоты компании за период
	api.HandleFunc("/businesses/{businessId}/availability/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Правило доступности на день недели
	api.HandleFunc("/businesses/{businessId}/availability/rules/{weekday}",
		getAvailabilityRule.Handle).Methods(http.MethodGet)

	// Предварительный расчет стоимости переезда
	api.HandleFunc("/businesses/{businessId}/pricing/preview",
		previewPricing.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(middleware.NewTokenParser(cfg.Auth.JWTSecret, cfg.Auth.Issuer), log))

	// --- Доступность (для владельцев компаний) ---
	protected.HandleFunc("/businesses/{businessId}/availability/rules/{weekday}",
		updateAvailabilityRule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/availability/overrides",
		listOverrides.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/availability/overrides",
		createOverride.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/availability/overrides/{overrideId}",
		deleteOverride.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// --- Сметы и запросы на изменение ---
	protected.HandleFunc("/bookings/{bookingId}/quote", getQuote.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/quotes/{quoteId}/respond", respondQuote.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/edit-requests/{requestId}/approve", approveEditRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/edit-requests/{requestId}/reject", rejectEditRequest.Handle).Methods(http.MethodPost)

	// --- Счета ---
	// /invoices/batch регистрируется раньше /invoices/{invoiceId}
	protected.HandleFunc("/invoices/batch", batchCreateInvoices.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/invoices", createInvoice.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/invoices/{invoiceId}", getInvoice.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/invoices/{invoiceId}", updateInvoice.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/invoices/{invoiceId}/send", sendInvoice.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/invoices/{invoiceId}/payments", recordPayment.Handle).Methods(http.MethodPost)

	// --- Отзывы ---
	protected.HandleFunc("/bookings/{bookingId}/reviews", createReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{reviewId}", updateReview.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reviews/{reviewId}", deleteReview.Handle).Methods(http.MethodDelete)

	// --- Бухгалтерия (только администраторы) ---
	protected.HandleFunc("/admin/ledger", listLedger.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/ledger", createLedgerEntry.Handle).Methods(http.MethodPost)

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

	// Останавливаем сбор метрик connection pool
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
