package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/autoreg"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/gymstats/exercises"
	gymstatsmcp "github.com/2beens/liftlog/internal/gymstats/mcp"
	"github.com/2beens/liftlog/internal/gymstats/programs"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/refdata"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config       *config.Config
	dbPool       *pgxpool.Pool
	refDataCache *refdata.Cache
	cron         *cron.Cron

	redisClient  *redis.Client
	rateLimiter  middleware.RequestRateLimiter
	loginChecker auth.Checker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbParams := db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	}

	if params.Config.RunMigrations {
		if err := db.RunMigrations(dbParams, params.Config.MigrationsPath); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftlog-backend", rdb)
	if err != nil {
		return nil, err
	}

	refDataCache := refdata.NewCache(refdata.NewRepo(dbPool), params.Config.RefDataCacheSizeMB)
	if err := refDataCache.Reload(ctx); err != nil {
		// lookups retry the load lazily
		log.Errorf("initial reference data load: %s", err)
	}

	sessionTTL := params.Config.SessionTTL.Duration
	return &Server{
		config:       params.Config,
		dbPool:       dbPool,
		refDataCache: refDataCache,
		versionInfo:  params.VersionInfo,

		redisClient:  rdb,
		rateLimiter:  redis_rate.NewLimiter(rdb),
		authService:  auth.NewService(sessionTTL, rdb, auth.NewUsersRepo(dbPool)),
		loginChecker: auth.NewLoginChecker(sessionTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET", "OPTIONS").Name("root")

	refDataHandler := refdata.NewHandler(s.refDataCache)
	r.HandleFunc("/muscle-groups", refDataHandler.HandleMuscleGroups).Methods("GET", "OPTIONS").Name("list-muscle-groups")
	r.HandleFunc("/movement-types", refDataHandler.HandleMovementTypes).Methods("GET", "OPTIONS").Name("list-movement-types")
	r.HandleFunc("/muscle-groups-and-movement-types", refDataHandler.HandleAll).Methods("GET", "OPTIONS").Name("list-reference-data")

	exercisesHandler := exercises.NewHandler(exercises.NewRepo(s.dbPool), s.refDataCache)
	r.HandleFunc("/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", exercisesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id}", exercisesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")
	r.HandleFunc("/exercises/{id}", exercisesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise")

	programsHandler := programs.NewHandler(programs.NewRepo(s.dbPool))
	r.HandleFunc("/programs", programsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-programs")
	r.HandleFunc("/programs", programsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-program")

	defaultScheme, err := autoreg.ParseRepScheme(s.config.DefaultRepScheme)
	if err != nil {
		return nil, fmt.Errorf("default rep scheme: %w", err)
	}
	workoutsRepo := workouts.NewRepo(s.dbPool)
	workoutsService := workouts.NewService(workoutsRepo, s.metricsManager, defaultScheme)
	workoutsHandler := workouts.NewHandler(workoutsRepo, workoutsService)
	r.HandleFunc("/workouts", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", workoutsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/details", workoutsHandler.HandleListDetails).Methods("GET", "OPTIONS").Name("list-workouts-details")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id}/exercises", workoutsHandler.HandleWorkoutExercises).Methods("GET", "OPTIONS").Name("list-workout-exercises")
	r.HandleFunc("/workouts/{id}/exercises", workoutsHandler.HandleAddWorkoutExercises).Methods("POST", "OPTIONS").Name("new-workout-exercises")
	r.HandleFunc("/workouts/{id}/volume", workoutsHandler.HandleVolume).Methods("GET", "OPTIONS").Name("workout-volume")
	r.HandleFunc("/workouts/{id}/adjustments", workoutsHandler.HandleAdjustments).Methods("GET", "OPTIONS").Name("workout-adjustments")
	r.HandleFunc("/workouts/{id}/summary", workoutsHandler.HandleSummary).Methods("GET", "OPTIONS").Name("workout-summary")
	r.HandleFunc("/workout-exercises/{id}/sets", workoutsHandler.HandleSets).Methods("GET", "OPTIONS").Name("list-sets")
	r.HandleFunc("/workout-exercises/{id}/sets", workoutsHandler.HandleAddSet).Methods("POST", "OPTIONS").Name("new-set")
	r.HandleFunc("/adjust", workoutsHandler.HandleAdjust).Methods("POST", "OPTIONS").Name("adjust-set")

	authHandler := auth.NewHandler(s.authService, s.metricsManager)
	authRouter := r.PathPrefix("/a").Subrouter()
	authRouter.HandleFunc("/register", authHandler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	authRouter.HandleFunc("/login", authHandler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", authHandler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	authRouter.Use(middleware.RateLimit(s.rateLimiter, "auth", s.config.LoginRateLimitAllowedPerMin, s.metricsManager))

	if s.config.MCPEnabled {
		mcpServer := gymstatsmcp.NewServer(workoutsService, s.versionInfo)
		r.Handle("/mcp", mcpserver.NewStreamableHTTPServer(mcpServer)).Methods("GET", "POST", "DELETE", "OPTIONS").Name("mcp")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "liftlog "+s.versionInfo)
}

// startJobs schedules the periodic reference data refresh and session cleanup.
func (s *Server) startJobs(ctx context.Context) error {
	s.cron = cron.New()

	if err := s.cron.AddFunc(s.config.RefDataRefreshSpec, func() {
		if err := s.refDataCache.Reload(ctx); err != nil {
			log.Errorf("reference data refresh: %s", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule reference data refresh [%s]: %w", s.config.RefDataRefreshSpec, err)
	}

	if err := s.cron.AddFunc(s.config.SessionCleanupSpec, func() {
		s.authService.ScanAndClean(ctx)
	}); err != nil {
		return fmt.Errorf("schedule session cleanup [%s]: %w", s.config.SessionCleanupSpec, err)
	}

	s.cron.Start()
	return nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	if err := s.startJobs(ctx); err != nil {
		log.Fatalf("failed to start jobs: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.cron != nil {
		s.cron.Stop()
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
