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

	"github.com/benbjohnson/clock"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBlackoutHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/create_blackout"
	createExamSlotHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/create_exam_slot"
	deleteBlackoutHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/delete_blackout"
	deleteExamSlotHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/delete_exam_slot"
	dismissNoticeHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/dismiss_notice"
	endSessionHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/end_session"
	getAvailabilityHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/get_booking"
	getBookingCalendarHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/get_booking_calendar"
	getEmailStatusHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/get_email_status"
	getExamSlotHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/get_exam_slot"
	getPriceHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/get_price"
	getRatesHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/get_rates"
	getSessionHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/get_session"
	listBlackoutsHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/list_blackouts"
	listExamSlotsHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/list_exam_slots"
	proceedToPaymentHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/proceed_to_payment"
	resendEmailHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/resend_email"
	revokePrerequisiteHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/revoke_prerequisite"
	startSessionHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/start_session"
	submitPaymentHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/submit_payment"
	updateExamSlotHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/update_exam_slot"
	updateSelectionHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/update_selection"
	uploadPrerequisiteHandler "github.com/m04kA/SMC-ExamBookingService/internal/api/handlers/upload_prerequisite"
	"github.com/m04kA/SMC-ExamBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ExamBookingService/internal/calendar"
	"github.com/m04kA/SMC-ExamBookingService/internal/config"
	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/infra/holdstore"
	blackoutRepo "github.com/m04kA/SMC-ExamBookingService/internal/infra/storage/blackout"
	bookingRepo "github.com/m04kA/SMC-ExamBookingService/internal/infra/storage/booking"
	examSlotRepo "github.com/m04kA/SMC-ExamBookingService/internal/infra/storage/examslot"
	"github.com/m04kA/SMC-ExamBookingService/internal/integrations/mailer"
	"github.com/m04kA/SMC-ExamBookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-ExamBookingService/internal/integrations/ratesservice"
	"github.com/m04kA/SMC-ExamBookingService/internal/pricing"
	bookingsService "github.com/m04kA/SMC-ExamBookingService/internal/service/bookings"
	schedulingService "github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling"
	sessionsService "github.com/m04kA/SMC-ExamBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-ExamBookingService/internal/upload"
	getAvailabilityUC "github.com/m04kA/SMC-ExamBookingService/internal/usecase/get_availability"
	submitPaymentUC "github.com/m04kA/SMC-ExamBookingService/internal/usecase/submit_payment"
	"github.com/m04kA/SMC-ExamBookingService/internal/wizard"
	"github.com/m04kA/SMC-ExamBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ExamBookingService/pkg/logger"
	"github.com/m04kA/SMC-ExamBookingService/pkg/metrics"
	"github.com/m04kA/SMC-ExamBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-ExamBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	clk := clock.New()

	// Метрики (если включены); методы nil-коллектора ничего не делают
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Реестр удержаний в Redis (опционально)
	var (
		redisClient  *redis.Client
		holdRegistry wizard.HoldRegistry
		holdChecker  submitPaymentUC.HoldStore
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := holdstore.New(redisClient, cfg.Redis.KeyPrefix)
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		err := store.Ping(pingCtx)
		cancelPing()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		holdRegistry = store
		holdChecker = store
		log.Info("Hold registry connected to redis (addr=%s)", cfg.Redis.Addr)
	} else {
		log.Warn("Redis address is empty, holds are tracked in memory only")
	}

	// Курсы валют: удаленный сервис с откатом на статическую таблицу
	baseCurrency, _ := domain.ParseCurrency(cfg.Pricing.BaseCurrency)
	var ratesProvider pricing.RatesProvider
	if cfg.RatesService.URL != "" {
		ratesProvider = ratesservice.NewClient(cfg.RatesService.URL, baseCurrency, cfg.RatesService.TimeoutValue(), log)
		log.Info("Rates service client initialized (url=%s timeout=%ds)", cfg.RatesService.URL, cfg.RatesService.Timeout)
	}

	basePrices, rates, zeroDecimal := cfg.PricingTables()
	pricingLookup := pricing.NewLookup(pricing.Config{
		BasePrices:  basePrices,
		Rates:       rates,
		ZeroDecimal: zeroDecimal,
		CacheTTL:    cfg.Pricing.CacheTTLValue(),
	}, ratesProvider, log)

	uploadValidator := upload.NewValidator(cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)

	// Симуляторы платежей и почты
	var decider paymentgateway.Decider
	if cfg.Payment.Mode == config.PaymentModeFixed {
		outcome, _ := domain.ParsePaymentStatus(cfg.Payment.FixedOutcome)
		decider = paymentgateway.FixedDecider(outcome)
	} else {
		seed := cfg.Payment.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		decider = paymentgateway.NewRandomDecider(cfg.Payment.SuccessRate, seed)
	}
	gateway := paymentgateway.New(paymentgateway.Config{
		ProcessingDelay: cfg.Payment.ProcessingDelayValue(),
		VerificationURL: cfg.Payment.VerificationURL,
	}, clk, decider, log)
	log.Info("Payment gateway simulator initialized (mode=%s, success_rate=%.2f)", cfg.Payment.Mode, cfg.Payment.SuccessRate)

	mail := mailer.New(mailer.Config{
		DeliveryDelay: cfg.Mail.DeliveryDelayValue(),
		MaxResends:    cfg.Mail.MaxResends,
	}, clk, log, metricsCollector)

	calendarGenerator := calendar.NewGenerator(calendar.Config{
		ProductID:       cfg.Calendar.ProductID,
		UIDDomain:       cfg.Calendar.UIDDomain,
		DefaultLocation: cfg.Calendar.Location,
	}, clk)

	// Репозитории
	examSlotRepository := examSlotRepo.NewRepository(wrappedDB)
	blackoutRepository := blackoutRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Use cases и сервисы
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(examSlotRepository, blackoutRepository, clk, log)

	sessionSvc := sessionsService.NewService(
		sessionsService.Config{
			HoldDuration:  cfg.Wizard.HoldDurationValue(),
			IdleTimeout:   cfg.Wizard.IdleTimeoutValue(),
			SweepInterval: cfg.Wizard.SweepIntervalValue(),
			MaxSessions:   cfg.Wizard.MaxSessions,
		},
		clk,
		wizard.Dependencies{
			Availability: getAvailabilityUseCase,
			Pricing:      pricingLookup,
			Uploads:      uploadValidator,
			HoldRegistry: holdRegistry,
			Recorder:     metricsCollector,
			Logger:       log,
		},
		metricsCollector,
		log,
	)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	sessionSvc.Start(sweepCtx)

	submitPaymentUseCase := submitPaymentUC.NewUseCase(
		sessionSvc,
		holdChecker,
		examSlotRepository,
		bookingRepository,
		gateway,
		mail,
		txMgr,
		clk,
		metricsCollector,
		log,
	)

	bookingSvc := bookingsService.NewService(bookingRepository, calendarGenerator, mail, log)
	schedulingSvc := schedulingService.NewService(examSlotRepository, blackoutRepository, clk, log)

	// Инициализируем handlers
	startSession := startSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	endSession := endSessionHandler.NewHandler(sessionSvc, log)
	updateSelection := updateSelectionHandler.NewHandler(sessionSvc, log)
	uploadPrerequisite := uploadPrerequisiteHandler.NewHandler(sessionSvc, cfg.Upload.MaxSize, log)
	revokePrerequisite := revokePrerequisiteHandler.NewHandler(sessionSvc, log)
	proceedToPayment := proceedToPaymentHandler.NewHandler(sessionSvc, log)
	submitPayment := submitPaymentHandler.NewHandler(submitPaymentUseCase, log)
	dismissNotice := dismissNoticeHandler.NewHandler(sessionSvc, log)

	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getPrice := getPriceHandler.NewHandler(pricingLookup, log)
	getRates := getRatesHandler.NewHandler(pricingLookup, log)

	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingCalendar := getBookingCalendarHandler.NewHandler(bookingSvc, log)
	getEmailStatus := getEmailStatusHandler.NewHandler(bookingSvc, log)
	resendEmail := resendEmailHandler.NewHandler(bookingSvc, log)

	createExamSlot := createExamSlotHandler.NewHandler(schedulingSvc, log)
	listExamSlots := listExamSlotsHandler.NewHandler(schedulingSvc, log)
	getExamSlot := getExamSlotHandler.NewHandler(schedulingSvc, log)
	updateExamSlot := updateExamSlotHandler.NewHandler(schedulingSvc, log)
	deleteExamSlot := deleteExamSlotHandler.NewHandler(schedulingSvc, log)
	createBlackout := createBlackoutHandler.NewHandler(schedulingSvc, log)
	listBlackouts := listBlackoutsHandler.NewHandler(schedulingSvc, log)
	deleteBlackout := deleteBlackoutHandler.NewHandler(schedulingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Лимит запросов на загрузку документа и оплату
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
	limited := func(h http.HandlerFunc) http.Handler {
		return limiter.Middleware()(h)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// МАСТЕР БРОНИРОВАНИЯ
	// ============================================================

	api.HandleFunc("/sessions", startSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", endSession.Handle).Methods(http.MethodDelete)

	// Выбор уровня, формата, даты, времени и валюты
	api.HandleFunc("/sessions/{sessionId}/selection", updateSelection.Handle).Methods(http.MethodPut)

	// Документ-пререквизит для частичной сдачи
	api.Handle("/sessions/{sessionId}/prerequisite", limited(uploadPrerequisite.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/prerequisite", revokePrerequisite.Handle).Methods(http.MethodDelete)

	// Удержание слота и оплата
	api.HandleFunc("/sessions/{sessionId}/hold", proceedToPayment.Handle).Methods(http.MethodPost)
	api.Handle("/sessions/{sessionId}/payment", limited(submitPayment.Handle)).Methods(http.MethodPost)

	api.HandleFunc("/sessions/{sessionId}/notice", dismissNotice.Handle).Methods(http.MethodDelete)

	// ============================================================
	// СПРАВОЧНЫЕ ДАННЫЕ
	// ============================================================

	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/prices/{examOption}", getPrice.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rates", getRates.Handle).Methods(http.MethodGet)

	// ============================================================
	// ПОДТВЕРЖДЕННЫЕ БРОНИРОВАНИЯ
	// ============================================================

	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{reference}/calendar.ics", getBookingCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{reference}/email", getEmailStatus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{reference}/email/resend", resendEmail.Handle).Methods(http.MethodPost)

	// ============================================================
	// КОНСОЛЬ АДМИНИСТРАТОРА
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/exam-slots", createExamSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/exam-slots", listExamSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/exam-slots/{slotId}", getExamSlot.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/exam-slots/{slotId}", updateExamSlot.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/exam-slots/{slotId}", deleteExamSlot.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/blackouts", createBlackout.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blackouts", listBlackouts.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blackouts/{blackoutId}", deleteBlackout.Handle).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Закрываем сессии мастера: таймеры удержаний отменяются, удержания освобождаются
	stopSweep()
	sessionSvc.CloseAll(shutdownCtx)
	mail.Shutdown()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
