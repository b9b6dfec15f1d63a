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
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/ipinfo/go/v2/ipinfo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
	"golang.org/x/oauth2"

	"github.com/2beens/stravastats/internal/activities"
	"github.com/2beens/stravastats/internal/athlete"
	"github.com/2beens/stravastats/internal/auth"
	"github.com/2beens/stravastats/internal/config"
	"github.com/2beens/stravastats/internal/db"
	"github.com/2beens/stravastats/internal/geoip"
	"github.com/2beens/stravastats/internal/middleware"
	"github.com/2beens/stravastats/internal/strava"
	"github.com/2beens/stravastats/internal/telemetry/metrics"
	"github.com/2beens/stravastats/internal/telemetry/tracing"
	"github.com/2beens/stravastats/pkg"
)

const (
	sessionsCleanupInterval = 8 * time.Hour
	maxRequestBodyBytes     = 64 << 10
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	sessions          *auth.SessionStore
	oauthConfig       *oauth2.Config
	stravaClients     *stravaClients
	activitiesService *activities.Service
	geoIp             *geoip.Api
	tracedHttpClient  *http.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	StravaClientID          string
	StravaClientSecret      string
	IpInfoToken             string
	VersionInfo             string
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

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "stravastats")
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	var (
		dbPool           *pgxpool.Pool
		pgxpoolCollector prometheus.Collector
		store            activities.Store
	)
	switch cfg.ActivitiesStore {
	case config.ActivitiesStorePostgres:
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

		pgStore := activities.NewPostgresStore(dbPool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("ensure activities schema: %w", err)
		}
		store = pgStore
		pgxpoolCollector = pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		)
	default:
		store = activities.NewRedisStore(rdb, cfg.ActivitiesCacheTTL.Duration)
	}
	log.Debugf("activities store: %s", cfg.ActivitiesStore)

	promRegistry := metrics.SetupPrometheus("stravastats", params.VersionInfo, pgxpoolCollector)
	metricsManager := metrics.NewManager("stravastats", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // will be set to 1 when all is set and ran

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   30 * time.Second,
	}

	sessions := auth.NewSessionStore(cfg.SessionTTL.Duration, rdb)
	go func() {
		ticker := time.NewTicker(sessionsCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sessions.ScanAndClean(ctx)
			}
		}
	}()

	oauthConfig := strava.NewOAuthConfig(params.StravaClientID, params.StravaClientSecret, cfg.StravaRedirectURL)

	ipInfoClient := ipinfo.NewClient(tracedHttpClient, nil, params.IpInfoToken)

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		redisClient: rdb,
		versionInfo: params.VersionInfo,

		sessions:    sessions,
		oauthConfig: oauthConfig,
		stravaClients: &stravaClients{
			oauthConfig:    oauthConfig,
			baseURL:        cfg.StravaBaseURL,
			httpClient:     tracedHttpClient,
			cache:          strava.NewResponseCache(cfg.StravaCacheSizeMB * 1024 * 1024),
			sessions:       sessions,
			metricsManager: metricsManager,
		},
		activitiesService: activities.NewService(store, cfg.HistoryPageSize, metricsManager),
		geoIp:             geoip.NewApi(ipInfoClient, rdb, cfg.IPInfoCacheTTL.Duration),
		tracedHttpClient:  tracedHttpClient,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("stravastats-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(auth.NewHandlerParams{
		OAuthConfig:    s.oauthConfig,
		Sessions:       s.sessions,
		Athletes:       s.stravaClients,
		HttpClient:     s.tracedHttpClient,
		MetricsManager: s.metricsManager,
		FrontendURL:    s.config.FrontendURL,
		CookieSecure:   s.config.CookieSecure,
		OnLogout: func(session *auth.Session) {
			s.activitiesService.ForgetSession(session.AthleteID, session.ID)
		},
	})
	authHandler.SetupRoutes(r, middleware.RateLimit(
		reqRateLimiter,
		s.metricsManager,
		"strava-login",
		s.config.LoginRateLimitAllowedPerMin,
	))

	activitiesHandler := activities.NewHandler(s.activitiesService, s.stravaClients)
	activitiesHandler.SetupRoutes(r)

	athleteHandler := athlete.NewHandler(s.stravaClients)
	athleteHandler.SetupRoutes(r)

	geoIpHandler := geoip.NewHandler(s.geoIp)
	geoIpHandler.SetupRoutes(r)

	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.sessions)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))

	return r
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	version := s.versionInfo
	if version == "" {
		version = "unknown"
	}
	pkg.WriteTextResponseOK(w, version)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
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

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}

	// in-flight history loads are canceled, their partial results dropped
	s.activitiesService.Shutdown()
	log.Debugln("activities service shut down")

	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
