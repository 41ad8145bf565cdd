package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/oschwald/geoip2-golang"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "cat-api/docs"
	"cat-api/internal/adapters/cache/rediscache"
	mem "cat-api/internal/adapters/storage/memory"
	pg "cat-api/internal/adapters/storage/postgres"
	lite "cat-api/internal/adapters/storage/sqlite"
	"cat-api/internal/domain/cats"
	"cat-api/internal/domain/users"
	"cat-api/internal/middleware"
	"cat-api/internal/platform/config"
	"cat-api/internal/platform/logger"
	"cat-api/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev con headers de debug)

	// Opcional: si viene, se usa directo como backend Postgres y se ignora
	// la selección por config (útil para tests con DB propia).
	DB *sql.DB

	Cfg config.Config
	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{Level: logger.Info})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	catsRepo, usersRepo := openRepos(opts, log)

	// Cache opcional de gato-por-id (se resuelve mucho al armar responses)
	if addr := opts.Cfg.RedisAddr; addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr, Password: opts.Cfg.RedisPass})
		catsRepo = rediscache.New(catsRepo, rdb)
		log.Info("redis cache enabled", map[string]any{"addr": addr})
	}

	catsSvc := cats.NewService(catsRepo)
	usersSvc := users.NewService(usersRepo)

	uploadDir := opts.Cfg.UploadDir
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	cats.RegisterRoutes(r, catsSvc, usersSvc,
		middleware.StoreUpload(uploadDir),
		middleware.DeriveCoordinates(openGeoIP(opts.Cfg, log)),
	)
	users.RegisterRoutes(r, usersSvc)

	return r
}

// openRepos elige el backend: DB explícita > DSN postgres > path sqlite >
// in-memory. El contrato de repos es el mismo en los tres.
func openRepos(opts Options, log logger.Logger) (cats.Repository, users.Repository) {
	db := opts.DB
	if db == nil && opts.Cfg.DBDSN != "" {
		opened, err := pg.Open(opts.Cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable, falling back", map[string]any{"err": err.Error()})
		} else {
			db = opened
		}
	}
	if db != nil {
		log.Info("storage backend", map[string]any{"kind": "postgres"})
		return pg.NewCatsRepo(db), pg.NewUsersRepo(db)
	}

	if path := opts.Cfg.SQLitePath; path != "" {
		sdb, err := lite.Open(path)
		if err != nil {
			log.Error("sqlite unavailable, falling back", map[string]any{"err": err.Error(), "path": path})
		} else {
			log.Info("storage backend", map[string]any{"kind": "sqlite", "path": path})
			return lite.NewCatsRepo(sdb), lite.NewUsersRepo(sdb)
		}
	}

	log.Info("storage backend", map[string]any{"kind": "memory"})
	return mem.NewCatsRepo(), mem.NewUsersRepo()
}

func openGeoIP(cfg config.Config, log logger.Logger) *geoip2.Reader {
	if cfg.GeoIPPath == "" {
		return nil
	}
	reader, err := geoip2.Open(cfg.GeoIPPath)
	if err != nil {
		log.Warn("geoip db not loaded, create without coordinates will fail", map[string]any{
			"err":  err.Error(),
			"path": cfg.GeoIPPath,
		})
		return nil
	}
	return reader
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Debug("http request", map[string]any{
				"method":  r.Method,
				"path":    r.URL.Path,
				"status":  ww.Status(),
				"elapsed": time.Since(start).String(),
				"reqid":   chimw.GetReqID(r.Context()),
			})
		})
	}
}
