package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/2beens/getfitpro/internal/coach"
	"github.com/2beens/getfitpro/internal/config"
	"github.com/2beens/getfitpro/internal/db"
	"github.com/2beens/getfitpro/internal/exercises"
	"github.com/2beens/getfitpro/internal/gate"
	"github.com/2beens/getfitpro/internal/kvstore"
	"github.com/2beens/getfitpro/internal/middleware"
	"github.com/2beens/getfitpro/internal/profile"
	"github.com/2beens/getfitpro/internal/progress"
	"github.com/2beens/getfitpro/internal/quiz"
	"github.com/2beens/getfitpro/internal/registry"
	"github.com/2beens/getfitpro/internal/scheduler"
	"github.com/2beens/getfitpro/internal/telemetry/metrics"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/internal/workout"
	"github.com/2beens/getfitpro/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	store       kvstore.Store
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	coachClient *coach.Client

	quizFlows       *registry.Registry[*quiz.Flow]
	workoutSessions *registry.Registry[*workout.Session]
	scheduler       *scheduler.Scheduler

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	PostgresUser            string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	var collectors []prometheus.Collector
	var dbPool *pgxpool.Pool
	if cfg.StoreEngine == config.StoreEnginePostgres {
		var err error
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         params.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager("getfit", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	// redis backs the rate limiter even when another store engine is used
	var rdb *redis.Client
	if cfg.StoreEngine == config.StoreEngineRedis || cfg.RedisHost != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0,
		})
		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "getfit-backend", rdb)
	if err != nil {
		return nil, err
	}

	store, err := kvstore.NewByEngine(ctx, kvstore.Params{
		Engine:     cfg.StoreEngine,
		KeyPrefix:  cfg.StoreKeyPrefix,
		Redis:      rdb,
		Postgres:   dbPool,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("new store: %w", err)
	}
	log.Infof("using [%s] store engine", cfg.StoreEngine)

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   time.Duration(cfg.CoachTimeoutSeconds) * time.Second,
	}

	s := &Server{
		config:      cfg,
		store:       store,
		dbPool:      dbPool,
		redisClient: rdb,
		coachClient: coach.NewClient(cfg.CoachBaseURL, tracedHttpClient),

		quizFlows:       registry.New[*quiz.Flow](metricsManager.GaugeActiveSessions.WithLabelValues("quiz")),
		workoutSessions: registry.New[*workout.Session](metricsManager.GaugeActiveSessions.WithLabelValues("workout")),
		scheduler:       scheduler.New(),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if err := s.scheduleEviction(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Server) scheduleEviction() error {
	maxIdle := time.Duration(s.config.SessionTTLMinutes) * time.Minute
	every := time.Duration(s.config.EvictEveryMinutes) * time.Minute
	return s.scheduler.Every(every, "evict-idle-sessions", func() {
		s.evictIdle(maxIdle)
	})
}

func (s *Server) evictIdle(maxIdle time.Duration) (flows, sessions int) {
	flows = s.quizFlows.EvictIdle(maxIdle)
	sessions = s.workoutSessions.EvictIdle(maxIdle)
	if flows+sessions > 0 {
		log.Debugf(
			"evicted %d idle quiz flows and %d idle workout sessions, %d and %d still live",
			flows, sessions, s.quizFlows.Len(), s.workoutSessions.Len(),
		)
	}
	return flows, sessions
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("getfit-router"))

	// preflight; CORS headers come from the middleware below
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Name("preflight")

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "getfit pro backend")
	}).Methods("GET").Name("health")

	profileService := profile.NewService(
		s.store,
		s.coachClient,
		s.metricsManager,
		profile.ServiceOptions{TrackLongestStreak: s.config.TrackLongestStreak},
	)
	quizRepo := quiz.NewRepo(s.store)

	quiz.NewHandler(quizRepo, s.quizFlows, s.metricsManager).SetupRoutes(r)

	// everything below needs a completed quiz
	gated := r.NewRoute().Subrouter()
	gated.Use(gate.New(quizRepo).Middleware())

	profile.NewHandler(profileService).SetupRoutes(gated)
	exercises.NewHandler().SetupRoutes(gated)

	catalog := workout.NewCatalog(s.store, nil)
	workout.NewHandler(
		catalog,
		workout.NewBuilder(catalog, s.coachClient, profileService),
		profileService,
		s.workoutSessions,
	).SetupRoutes(gated)

	progress.NewHandler(
		progress.NewAggregator(s.store),
	).SetupRoutes(gated)

	aiRouter := gated.NewRoute().Subrouter()
	if s.redisClient != nil {
		aiRouter.Use(middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"ai",
			s.config.AIRateLimitPerMin,
			s.metricsManager,
		))
	} else {
		log.Warnln("redis not configured, AI routes are not rate limited")
	}
	coach.NewHandler(s.coachClient, profileService, s.metricsManager).SetupRoutes(aiRouter)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
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

	s.scheduler.Start()
	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// main and metrics listeners drain in parallel, sharing the deadline
	g := new(errgroup.Group)
	for name, srv := range map[string]*http.Server{
		"main":    s.httpServer,
		"metrics": s.metricsHttpServer,
	} {
		if srv == nil {
			continue
		}
		g.Go(func() error {
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("%s http server: %w", name, err)
			}
			log.Warnf("%s server shut down", name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorf(" >>> failed to gracefully shutdown: %s", err)
	}

	s.scheduler.Stop()

	if err := s.store.Close(); err != nil {
		log.Errorf("failed to close store: %s", err)
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
		s.dbPool.Close()
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
