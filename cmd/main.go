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

	"github.com/Diana0617/BC-sub011/internal/api/handlers"
	createBookingHandler "github.com/Diana0617/BC-sub011/internal/api/handlers/create_booking"
	getAppointmentHandler "github.com/Diana0617/BC-sub011/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/Diana0617/BC-sub011/internal/api/handlers/get_availability"
	getAvailabilityRangeHandler "github.com/Diana0617/BC-sub011/internal/api/handlers/get_availability_range"
	getAvailableSpecialistsHandler "github.com/Diana0617/BC-sub011/internal/api/handlers/get_available_specialists"
	getBookingPolicyHandler "github.com/Diana0617/BC-sub011/internal/api/handlers/get_booking_policy"
	listAppointmentsHandler "github.com/Diana0617/BC-sub011/internal/api/handlers/list_appointments"
	updateAppointmentStatusHandler "github.com/Diana0617/BC-sub011/internal/api/handlers/update_appointment_status"
	validateSlotHandler "github.com/Diana0617/BC-sub011/internal/api/handlers/validate_slot"
	"github.com/Diana0617/BC-sub011/internal/api/middleware"
	"github.com/Diana0617/BC-sub011/internal/config"
	"github.com/Diana0617/BC-sub011/internal/infra/cache"
	"github.com/Diana0617/BC-sub011/internal/infra/lock"
	appointmentRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/appointment"
	branchRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/branch"
	businessRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/business"
	catalogRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/catalog"
	clientRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/client"
	scheduleRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/schedule"
	specialistRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/specialist"
	"github.com/Diana0617/BC-sub011/internal/integrations/events"
	"github.com/Diana0617/BC-sub011/internal/integrations/wompi"
	appointmentsService "github.com/Diana0617/BC-sub011/internal/service/appointments"
	availabilityService "github.com/Diana0617/BC-sub011/internal/service/availability"
	rulesService "github.com/Diana0617/BC-sub011/internal/service/rules"
	specialistsService "github.com/Diana0617/BC-sub011/internal/service/specialists"
	createBookingUC "github.com/Diana0617/BC-sub011/internal/usecase/create_booking"
	"github.com/Diana0617/BC-sub011/pkg/dbmetrics"
	"github.com/Diana0617/BC-sub011/pkg/logger"
	"github.com/Diana0617/BC-sub011/pkg/metrics"
	"github.com/Diana0617/BC-sub011/pkg/simpletxmanager"
	"github.com/Diana0617/BC-sub011/pkg/txmanager"
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

	log.Info("Starting booking service...")

	// Часовой пояс уже проверен в config.Validate
	defaultLoc, _ := cfg.Booking.Location()
	handlers.SetDebug(cfg.Server.Debug)

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

	// Исполнитель запросов и менеджер транзакций (с метриками или без)
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB, metricsCollector)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Репозитории
	appointments := appointmentRepo.NewRepository(executor)
	branches := branchRepo.NewRepository(executor)
	businesses := businessRepo.NewRepository(executor)
	catalog := catalogRepo.NewRepository(executor)
	clients := clientRepo.NewRepository(executor)
	schedules := scheduleRepo.NewRepository(executor)
	specialistsStore := specialistRepo.NewRepository(executor)

	// Redis: блокировка календаря и кэш бизнес-правил
	var (
		ruleSource rulesService.RuleRepository    = businesses
		locker     createBookingUC.CalendarLocker = lock.NoopLocker{}
	)

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()

		if err != nil {
			log.Warn("Redis is unavailable, calendar lock and rule cache disabled: %v", err)
		} else {
			ruleSource = cache.NewRuleCache(
				businesses,
				cache.NewRedisStore(rdb),
				time.Duration(cfg.Redis.RuleCacheTTL)*time.Second,
				businessRepo.ErrRuleNotFound,
				log,
			)
			locker = lock.NewCalendarLocker(rdb, time.Duration(cfg.Booking.LockTTL)*time.Second)
			log.Info("Redis connected (addr=%s): calendar lock ttl=%ds, rule cache ttl=%ds",
				cfg.Redis.Addr, cfg.Booking.LockTTL, cfg.Redis.RuleCacheTTL)
		}
	}

	// Kafka: события о созданных записях
	var publisher createBookingUC.EventPublisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Платежный шлюз
	gateway := wompi.NewClient(
		cfg.Wompi.URL,
		cfg.Wompi.PrivateKey,
		cfg.Wompi.RedirectURL,
		time.Duration(cfg.Wompi.Timeout)*time.Second,
		log,
	)
	log.Info("Payment gateway client initialized (url=%s, timeout=%ds)", cfg.Wompi.URL, cfg.Wompi.Timeout)

	// Сервисы
	rulesSvc := rulesService.NewService(ruleSource, businesses, log)
	specialistsSvc := specialistsService.NewService(specialistsStore, log)

	availabilitySvc := availabilityService.NewService(
		branches,
		catalog,
		schedules,
		appointments,
		specialistsSvc,
		rulesSvc,
		defaultLoc,
		log,
		availabilityService.WithMetrics(metricsCollector),
		availabilityService.WithRangeConcurrency(cfg.Booking.RangeConcurrency),
	)

	appointmentsSvc := appointmentsService.NewService(
		appointments,
		specialistsStore,
		txMgr,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		appointments,
		clients,
		branches,
		catalog,
		schedules,
		specialistsSvc,
		rulesSvc,
		gateway,
		txMgr,
		defaultLoc,
		cfg.Booking.Currency,
		log,
		createBookingUC.WithLocker(locker),
		createBookingUC.WithPublisher(publisher),
		createBookingUC.WithMetrics(metricsCollector),
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailabilityRange := getAvailabilityRangeHandler.NewHandler(availabilitySvc, log)
	getAvailableSpecialists := getAvailableSpecialistsHandler.NewHandler(availabilitySvc, log)
	validateSlot := validateSlotHandler.NewHandler(availabilitySvc, log)
	getBookingPolicy := getBookingPolicyHandler.NewHandler(rulesSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/businesses/{businessId}/booking-policy", getBookingPolicy.Handle).Methods(http.MethodGet)

	branchPath := "/businesses/{businessId}/branches/{branchId}"

	api.HandleFunc(branchPath+"/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc(branchPath+"/availability/range", getAvailabilityRange.Handle).Methods(http.MethodGet)
	api.HandleFunc(branchPath+"/availability/validate", validateSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc(branchPath+"/available-specialists", getAvailableSpecialists.Handle).Methods(http.MethodGet)

	// Публичная онлайн-запись, ограничена по IP
	public := api.PathPrefix("/public").Subrouter()
	limiter := middleware.NewRateLimiter(cfg.Booking.PublicRateLimit, cfg.Booking.PublicRateBurst, 10*time.Minute)
	public.Use(limiter.Limit)
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/businesses/{businessId}/appointments", listAppointments.Handle).Methods(http.MethodGet)

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
