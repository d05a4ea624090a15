package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-gstbill/internal/app"
	"github.com/noah-isme/backend-gstbill/internal/auth"
	"github.com/noah-isme/backend-gstbill/internal/cache"
	"github.com/noah-isme/backend-gstbill/internal/cart"
	"github.com/noah-isme/backend-gstbill/internal/catalog"
	"github.com/noah-isme/backend-gstbill/internal/checkout"
	"github.com/noah-isme/backend-gstbill/internal/common"
	"github.com/noah-isme/backend-gstbill/internal/config"
	"github.com/noah-isme/backend-gstbill/internal/customer"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
	"github.com/noah-isme/backend-gstbill/internal/gst"
	"github.com/noah-isme/backend-gstbill/internal/health"
	"github.com/noah-isme/backend-gstbill/internal/inventory"
	"github.com/noah-isme/backend-gstbill/internal/invoice"
	"github.com/noah-isme/backend-gstbill/internal/lock"
	"github.com/noah-isme/backend-gstbill/internal/obs"
	"github.com/noah-isme/backend-gstbill/internal/order"
	"github.com/noah-isme/backend-gstbill/internal/ratelimit"
	"github.com/noah-isme/backend-gstbill/internal/report"
	"github.com/noah-isme/backend-gstbill/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "gstbill")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "gstbill-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				ctx := context.Background()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	if cfg.MigrateOnStart {
		migrator, err := migrate.New("file://"+cfg.MigrationsDir, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("initialise migrations")
		}
		if err := app.RunMigrations(migrator); err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
		if srcErr, dbErr := migrator.Close(); srcErr != nil || dbErr != nil {
			logger.Error().AnErr("source", srcErr).AnErr("database", dbErr).Msg("close migrator")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "gstbill-api"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	queries := dbgen.New(pool)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if metricsEnabled {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	validate := validator.New()

	catalogService, err := catalog.NewService(catalog.ServiceConfig{
		Queries:           queries,
		Cache:             cache.New(redisClient, cfg.CatalogCacheTTL),
		DefaultPage:       cfg.CatalogDefaultPage,
		DefaultLimit:      cfg.CatalogDefaultLimit,
		MaxLimit:          cfg.CatalogMaxLimit,
		DefaultGSTRateBps: cfg.DefaultGSTRateBps,
		DefaultMinStock:   cfg.DefaultMinStock,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}
	catalogHandler := catalog.NewHandler(catalog.HandlerConfig{Service: catalogService, Validate: validate})

	authService, err := auth.NewService(auth.Config{
		Queries:         queries,
		Secret:          cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		ResetTokenTTL:   cfg.PasswordResetTTL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise auth service")
	}
	authHandler := &auth.Handler{
		Service:           authService,
		Mailer:            common.NopEmailSender{},
		PublicBaseURL:     cfg.PublicBaseURL,
		RefreshCookieName: cfg.RefreshCookieName,
		CookieDomain:      cfg.RefreshCookieDomain,
		CookieSecure:      cfg.RefreshCookieSecure,
		CookieSameSite:    cfg.RefreshCookieSameSite,
	}
	authMiddleware := auth.Middleware{Service: authService}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}

	cartSvc := &cart.Service{Q: queries}
	cartHandler := &cart.Handler{Q: queries, Svc: cartSvc, Currency: cfg.CurrencyCode}

	checkoutSvc := &checkout.Service{
		Q:           queries,
		Pool:        pool,
		CartSvc:     cartSvc,
		OrderPrefix: cfg.OrderPrefix,
	}
	checkoutHandler := &checkout.Handler{Svc: checkoutSvc}

	orderSvc := &order.Service{Q: queries, Pool: pool}
	orderHandler := &order.Handler{Q: queries, Svc: orderSvc}
	orderAdmin := &order.AdminHandler{Q: queries, Svc: orderSvc}

	customerService := customer.NewService(queries)
	customerHandler := customer.NewHandler(customer.HandlerConfig{Service: customerService, Validate: validate})

	inventorySvc := &inventory.Service{Pool: pool, Q: queries}
	inventoryHandler := &inventory.Handler{Svc: inventorySvc}

	invoiceSvc := &invoice.Service{
		Q:       queries,
		Pool:    pool,
		Locker:  lock.Locker{R: redisClient},
		Prefix:  cfg.InvoicePrefix,
		DueDays: cfg.InvoiceDueDays,
	}
	invoiceHandler := &invoice.Handler{Svc: invoiceSvc, Q: queries, Validate: validate}

	gstHandler := &gst.Handler{Svc: gst.NewService(queries, cache.New(redisClient, cfg.ReportCacheTTL))}
	reportHandler := &report.Handler{Svc: report.NewService(queries, cache.New(redisClient, cfg.ReportCacheTTL))}

	loginLimiter := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "rl:login"},
		Config: ratelimit.Config{
			Key:    clientKey,
			Window: cfg.LoginRateLimitWindow,
			Max:    cfg.LoginRateLimitMax,
		},
		OnError: func(err error) {
			logger.Error().Err(err).Msg("login rate limiter")
		},
	}

	apiLimiter, err := app.NewIPRateLimiter(
		redisClient,
		int64(envInt("RATE_LIMIT_API_MAX", 300)),
		envDurationMillis("RATE_LIMIT_API_WINDOW_MS", 60_000),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise api rate limiter")
	}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{
		Enable:                envBool("SECURE_HEADERS_ENABLED", true),
		EnableHSTS:            envBool("SECURE_HSTS_ENABLED", false),
		HSTSMaxAge:            envInt("SECURE_HSTS_MAX_AGE", 31536000),
		HSTSIncludeSubdomains: envBool("SECURE_HSTS_INCLUDE_SUBDOMAINS", true),
	}.Middleware)
	r.Use(security.BodyLimit{Max: int64(envInt("SECURE_MAX_BODY_BYTES", 1<<20))}.Middleware)
	if envBool("SECURE_CSRF_ENABLED", false) {
		r.Use(security.CSRF{Header: envOrDefault("SECURE_CSRF_HEADER", "X-CSRF-Token")}.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	pprofEnabled := envBool("OBS_ENABLE_PPROF", true)
	if pprofEnabled {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker:      readinessChecker{db: pool, redis: redisClient},
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(apiLimiter)

		v.Get("/products", catalogHandler.Products)
		v.Get("/products/{sku}", catalogHandler.ProductBySKU)

		v.Route("/auth", func(a chi.Router) {
			a.Post("/register", authHandler.Register)
			a.With(loginLimiter.Middleware).Post("/login", authHandler.Login)
			a.Post("/refresh", authHandler.Refresh)
			a.Post("/logout", authHandler.Logout)
			a.Post("/password/forgot", authHandler.Forgot)
			a.Post("/password/reset", authHandler.Reset)

			a.Group(func(protected chi.Router) {
				protected.Use(authMiddleware.RequireAuth)
				protected.Get("/me", authHandler.Me)
				protected.Put("/business", authHandler.UpdateBusiness)
			})
		})

		v.Group(func(authR chi.Router) {
			authR.Use(authMiddleware.RequireAuth)

			authR.Route("/cart", func(c chi.Router) {
				c.Get("/", cartHandler.Get)
				c.Put("/customer", cartHandler.AssignCustomer)
				c.Delete("/", cartHandler.Clear)
				c.Group(func(g chi.Router) {
					g.Use(idem.Middleware)
					g.Post("/items", cartHandler.AddItem)
					g.Patch("/items/{itemId}", cartHandler.UpdateItem)
					g.Delete("/items/{itemId}", cartHandler.RemoveItem)
				})
			})

			authR.With(idem.Middleware).Post("/checkout", checkoutHandler.Checkout)

			authR.Get("/orders", orderHandler.List)
			authR.Get("/orders/{id}", orderHandler.Get)
			authR.Post("/orders/{id}/cancel", orderHandler.Cancel)

			authR.Route("/customers", func(c chi.Router) {
				c.Get("/", customerHandler.List)
				c.Post("/", customerHandler.Create)
				c.Get("/{id}", customerHandler.Get)
				c.Put("/{id}", customerHandler.Update)
				c.Delete("/{id}", customerHandler.Delete)
				c.Get("/{id}/orders", customerHandler.Orders)
				c.Post("/{id}/prices", customerHandler.SetPrice)
				c.Get("/{id}/prices/{productId}", customerHandler.GetPrice)
				c.Delete("/{id}/prices/{productId}", customerHandler.RemovePrice)
			})

			authR.Route("/inventory", func(i chi.Router) {
				i.With(idem.Middleware).Post("/movements", inventoryHandler.RecordMovement)
				i.Get("/movements", inventoryHandler.RecentMovements)
				i.Get("/products/{productId}/movements", inventoryHandler.ListMovements)
				i.Get("/low-stock", inventoryHandler.LowStock)
			})
		})

		v.Route("/admin", func(admin chi.Router) {
			admin.Use(authMiddleware.RequireAuth)
			admin.Use(requireRole(queries, "admin"))

			admin.Route("/products", func(p chi.Router) {
				p.Get("/", catalogHandler.Owned)
				p.With(idem.Middleware).Post("/", catalogHandler.Create)
				p.Put("/{id}", catalogHandler.Update)
				p.Delete("/{id}", catalogHandler.Delete)
			})

			admin.Patch("/orders/{id}/status", orderAdmin.PatchStatus)

			admin.Route("/invoices", func(inv chi.Router) {
				inv.Get("/", invoiceHandler.List)
				inv.With(idem.Middleware).Post("/", invoiceHandler.Create)
				inv.With(idem.Middleware).Post("/from-order", invoiceHandler.CreateFromOrder)
				inv.Get("/{id}", invoiceHandler.Get)
				inv.Put("/{id}", invoiceHandler.Update)
				inv.Patch("/{id}/status", invoiceHandler.PatchStatus)
				inv.Get("/{id}/pdf", invoiceHandler.PDF)
			})

			admin.Route("/gst", func(g chi.Router) {
				g.Get("/summary", gstHandler.Summary)
				g.Get("/gstr1", gstHandler.GSTR1)
				g.Get("/gstr3b", gstHandler.GSTR3B)
				g.Get("/reports", gstHandler.Stored)
			})

			admin.Route("/reports", func(rep chi.Router) {
				rep.Get("/sales", reportHandler.Sales)
				rep.Get("/top-products", reportHandler.TopProducts)
				rep.Get("/inventory", reportHandler.Inventory)
			})

			admin.Group(func(sa chi.Router) {
				sa.Use(requireRole(queries, "super_admin"))
				sa.Get("/users/pending", authHandler.PendingUsers)
				sa.Post("/users/{id}/approve", authHandler.ApproveUser)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func clientKey(r *http.Request) string {
	return common.ClientIP(r)
}

func requireRole(q dbgen.Querier, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if q == nil {
				common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "role validator not configured", nil)
				return
			}
			userID, ok := common.UserID(r.Context())
			if !ok {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "forbidden", nil)
				return
			}
			uid, err := cart.ToUUID(userID)
			if err != nil {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "forbidden", nil)
				return
			}
			user, err := q.GetUserByID(r.Context(), uid)
			if err != nil {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "forbidden", nil)
				return
			}
			if !slices.Contains(user.Roles, role) {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type readinessChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func (c readinessChecker) PingDB(ctx context.Context, timeout time.Duration) error {
	if c.db == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/block", pprof.Handler("block"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	mux.Handle("/mutex", pprof.Handler("mutex"))
	mux.Handle("/threadcreate", pprof.Handler("threadcreate"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
