package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/campusops/college-events/internal/handlers"
	appjwt "github.com/campusops/college-events/internal/jwt"
	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/middlewares"
	"github.com/campusops/college-events/internal/repositories"
	"github.com/campusops/college-events/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title college-events API
// @version 1.0.0
// @description Backend for college event management and student registration
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword, cacheTTLSecond,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtAccessExpHour, jwtRefreshExpHour,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword, cacheTTLSecond,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtAccessExpHour, jwtRefreshExpHour,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, logging, and JWT configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	cacheTTLSecond int,
	kafkaBrokers, kafkaTopic string,
	jwtSecret string, jwtAccessExpHour, jwtRefreshExpHour int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "college_events")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if cacheTTLSecond, err = strconv.Atoi(getEnv("EVENT_CACHE_TTL_SECOND", "60")); err != nil {
		return
	}

	// Kafka config; leave KAFKA_BROKERS empty to disable the audit stream
	kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "registrations")

	// JWT config
	jwtSecret = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtAccessExpHour, err = strconv.Atoi(getEnv("JWT_ACCESS_EXP_HOUR", "24")); err != nil {
		return
	}
	if jwtRefreshExpHour, err = strconv.Atoi(getEnv("JWT_REFRESH_EXP_HOUR", "720")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka writer, and HTTP
// server. It sets up routes, applies middleware, and handles graceful
// shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	cacheTTLSecond int,
	kafkaBrokers, kafkaTopic string,
	jwtSecret string, jwtAccessExpHour, jwtRefreshExpHour int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL: %s:%d/%s", pgHost, pgPort, pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Fatal("PostgreSQL ping failed:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Kafka writer for the registration audit stream
	var auditWriter services.KafkaWriter
	if kafkaBrokers != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(kafkaBrokers, ",")...),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		auditWriter = w
	}

	// Initialize token service
	tokens := appjwt.New(jwtSecret,
		time.Duration(jwtAccessExpHour)*time.Hour,
		time.Duration(jwtRefreshExpHour)*time.Hour,
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	collegeRepo := repositories.NewCollegeRepository(db, middlewares.GetTxFromContext)
	eventReadRepo := repositories.NewEventReadRepository(db)
	eventWriteRepo := repositories.NewEventWriteRepository(db, middlewares.GetTxFromContext)
	regReadRepo := repositories.NewRegistrationReadRepository(db)
	regWriteRepo := repositories.NewRegistrationWriteRepository(db, middlewares.GetTxFromContext)
	eventCacheRepo := repositories.NewEventListCacheRepository(rdb, time.Duration(cacheTTLSecond)*time.Second)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens)
	userService := services.NewUserService(userReadRepo, userWriteRepo, collegeRepo)
	eventService := services.NewEventService(eventReadRepo, eventWriteRepo, collegeRepo, regReadRepo, eventCacheRepo)
	registrationService := services.NewRegistrationService(eventReadRepo, userReadRepo, regReadRepo, regWriteRepo, auditWriter)

	// Initialize handlers
	loginHandler := handlers.NewLoginHandler(authService)
	refreshHandler := handlers.NewRefreshHandler(authService)
	logoutHandler := handlers.NewLogoutHandler()
	profileHandler := handlers.NewProfileHandler()
	createUserHandler := handlers.NewCreateUserHandler(userService)
	listUsersHandler := handlers.NewListUsersHandler(userService)
	deleteUserHandler := handlers.NewDeleteUserHandler(userService)
	createEventHandler := handlers.NewCreateEventHandler(eventService)
	updateEventHandler := handlers.NewUpdateEventHandler(eventService)
	deleteEventHandler := handlers.NewDeleteEventHandler(eventService)
	getEventHandler := handlers.NewGetEventHandler(eventService)
	listEventsHandler := handlers.NewListEventsHandler(eventService)
	dashboardHandler := handlers.NewDashboardHandler(eventService)
	registerHandler := handlers.NewRegisterHandler(registrationService)
	checkInHandler := handlers.NewCheckInHandler(registrationService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	authMiddleware := middlewares.AuthMiddleware(tokens, userReadRepo)
	adminMiddleware := middlewares.AdminMiddleware()
	txMiddleware := middlewares.TxMiddleware(db)

	// Public routes
	r.Post("/users/login", loginHandler)
	r.Post("/users/refresh", refreshHandler)
	r.With(txMiddleware).Post("/users", createUserHandler)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/users/logout", logoutHandler)
		r.Get("/users/profile", profileHandler)
		r.Get("/events", listEventsHandler)
		r.Get("/events/{id}", getEventHandler)
		r.With(txMiddleware).Post("/events/{id}/register", registerHandler)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)

			r.Get("/users", listUsersHandler)
			r.With(txMiddleware).Delete("/users/{id}", deleteUserHandler)
			r.With(txMiddleware).Post("/events", createEventHandler)
			r.With(txMiddleware).Put("/events/{id}", updateEventHandler)
			r.With(txMiddleware).Delete("/events/{id}", deleteEventHandler)
			r.Get("/events/dashboard", dashboardHandler)
			r.With(txMiddleware).Post("/events/registrations/{id}/check-in", checkInHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
