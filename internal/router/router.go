package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pet-qr-tags/internal/app"
	_ "pet-qr-tags/internal/docs"
	"pet-qr-tags/internal/domain/authgate"
	"pet-qr-tags/internal/domain/finder"
	"pet-qr-tags/internal/domain/lostmode"
	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/domain/scans"
	"pet-qr-tags/internal/domain/tags"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/middleware"
	"pet-qr-tags/internal/platform/credentials"
	"pet-qr-tags/internal/platform/logger"
	"pet-qr-tags/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// TokenService emite y verifica los tokens de sesión.
type TokenService interface {
	auth.AuthVerifier
	auth.Issuer
}

type Options struct {
	Backends Backends
	Tokens   TokenService
	Log      logger.Logger

	// Hasher es argon2id por defecto. Los tests pasan parámetros livianos.
	Hasher credentials.Hasher

	AdminAPIKey    string
	Version        string
	GeoTimeout     time.Duration
	NoticeLimit    int
	CodeTTL        time.Duration
	AllowedOrigins []string

	// SeedTags: etiquetas EMPTY a crear al arrancar (code → PIN). Solo dev.
	SeedTags map[string]string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	hasher := opts.Hasher
	if hasher == nil {
		hasher = credentials.NewArgon2(nil)
	}
	b := opts.Backends

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.DeviceHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Use(middleware.AuthContext(opts.Tokens))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if b.Media != nil {
		r.Get(MediaPrefix+"/{key}", b.Media.ServeHTTP)
	}

	// Services por módulo
	petsSvc := pets.NewService(b.Pets, b.Blobs)
	tagsSvc := tags.NewService(b.Tags, hasher)
	resolver := tags.NewResolver(b.Tags, petsSvc)
	usersSvc := users.NewService(users.Deps{
		Repo:    b.Users,
		Hasher:  hasher,
		Codes:   b.Codes,
		Mailer:  b.Mailer,
		Log:     log,
		CodeTTL: opts.CodeTTL,
	})
	gate := authgate.New(authgate.Deps{
		Tags:   b.Tags,
		Users:  b.Users,
		Hasher: hasher,
		Events: b.Events,
		Log:    log,
	})
	lostSvc := lostmode.NewService(petsSvc, usersSvc, b.Events, log)
	finderSvc := finder.NewService(petsSvc, b.Users, log)
	scansSvc := scans.NewService(b.Scans, b.IPLookup, b.Events, log)

	appSvc := app.NewService(app.Deps{
		Sessions:    b.Sessions,
		Resolver:    resolver,
		Gate:        gate,
		Users:       usersSvc,
		Pets:        petsSvc,
		Lost:        lostSvc,
		Finder:      finderSvc,
		Scans:       scansSvc,
		Tokens:      opts.Tokens,
		Log:         log,
		Version:     opts.Version,
		GeoTimeout:  opts.GeoTimeout,
		NoticeLimit: opts.NoticeLimit,
	})

	seed(tagsSvc, opts.SeedTags, log)

	// Rutas por módulo
	tags.RegisterRoutes(r, tagsSvc, resolver, opts.AdminAPIKey)
	finder.RegisterRoutes(r, finderSvc)
	pets.RegisterRoutes(r, petsSvc)
	scans.RegisterRoutes(r, scansSvc)
	app.RegisterRoutes(r, appSvc)

	return r
}

func seed(svc *tags.Service, codes map[string]string, log logger.Logger) {
	for code, pin := range codes {
		_, err := svc.Provision(context.Background(), code, pin)
		switch {
		case err == nil:
			log.Info("seeded tag", map[string]any{"tag_code": code})
		case errors.Is(err, tags.ErrAlreadyExists):
		default:
			log.Warn("seed tag failed", map[string]any{"tag_code": code, "error": err.Error()})
		}
	}
}
