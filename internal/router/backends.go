package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jwtsession "pet-qr-tags/internal/adapters/auth/jwtsession"
	rediscache "pet-qr-tags/internal/adapters/cache/redis"
	evt "pet-qr-tags/internal/adapters/events"
	"pet-qr-tags/internal/adapters/mailer"
	mem "pet-qr-tags/internal/adapters/storage/memory"
	mongostore "pet-qr-tags/internal/adapters/storage/mongo"
	pg "pet-qr-tags/internal/adapters/storage/postgres"
	s3store "pet-qr-tags/internal/adapters/storage/s3"
	"pet-qr-tags/internal/config"
	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/domain/scans"
	"pet-qr-tags/internal/domain/tags"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/platform/httpclient"
	"pet-qr-tags/internal/platform/logger"
	"pet-qr-tags/internal/ports/events"
	"pet-qr-tags/internal/ports/session"
)

// MediaPrefix es donde se sirven las fotos cuando no hay S3.
const MediaPrefix = "/media"

// Backends son las implementaciones concretas de cada puerto.
type Backends struct {
	Tags     tags.Repository
	Users    users.Repository
	Pets     pets.Repository
	Scans    scans.Repository
	Sessions session.Store
	Codes    users.CodeStore
	Blobs    pets.BlobStore
	Mailer   users.Mailer
	Events   events.Publisher
	IPLookup scans.IPLookup

	// Media sirve las fotos del blob store en memoria; nil con S3.
	Media http.Handler
}

// Memory arma todo en memoria (dev y tests). Sin lookup de IP externa.
func Memory(log logger.Logger) Backends {
	db := mem.NewDB()
	blobs := mem.NewBlobStore(MediaPrefix)
	return Backends{
		Tags:     mem.NewTagRepo(db),
		Users:    mem.NewUserRepo(db),
		Pets:     mem.NewPetRepo(db),
		Scans:    mem.NewScanRepo(db),
		Sessions: mem.NewSessionStore(),
		Codes:    mem.NewCodeStore(),
		Blobs:    blobs,
		Mailer:   mailer.NewLog(log),
		Events:   evt.NewLogPublisher(log),
		Media:    blobs.Handler(),
	}
}

// Open elige cada backend según la config; lo que no está configurado
// queda en memoria. cleanup libera las conexiones abiertas.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (b Backends, cleanup func(), err error) {
	if log == nil {
		log = logger.Nop()
	}
	b = Memory(log)

	var closers []func() error
	cleanup = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if cerr := closers[i](); cerr != nil {
				log.Warn("backend close failed", map[string]any{"error": cerr.Error()})
			}
		}
	}
	defer func() {
		if err != nil {
			cleanup()
		}
	}()

	if dsn := strings.TrimSpace(cfg.Database.URL); dsn != "" {
		db, err := pg.Open(dsn)
		if err != nil {
			return b, cleanup, fmt.Errorf("postgres: %w", err)
		}
		closers = append(closers, db.Close)
		if err := pg.Migrate(ctx, db); err != nil {
			return b, cleanup, fmt.Errorf("postgres migrate: %w", err)
		}
		b.Tags = pg.NewTagsRepo(db)
		b.Users = pg.NewUsersRepo(db)
		b.Pets = pg.NewPetsRepo(db)
		b.Scans = pg.NewScansRepo(db)
		log.Info("using postgres", nil)
	}

	if url := strings.TrimSpace(cfg.Redis.URL); url != "" {
		client, err := rediscache.Open(url)
		if err != nil {
			return b, cleanup, fmt.Errorf("redis: %w", err)
		}
		closers = append(closers, client.Close)
		b.Sessions = rediscache.NewSessionStore(client, cfg.Auth.SessionTTL)
		b.Codes = rediscache.NewCodeStore(client)
		log.Info("using redis for sessions", nil)
	}

	if uri := strings.TrimSpace(cfg.Mongo.URI); uri != "" {
		client, err := mongostore.Connect(ctx, uri)
		if err != nil {
			return b, cleanup, fmt.Errorf("mongo: %w", err)
		}
		closers = append(closers, func() error { return client.Disconnect(context.Background()) })
		repo := mongostore.NewScansRepo(client, cfg.Mongo.Database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return b, cleanup, fmt.Errorf("mongo indexes: %w", err)
		}
		b.Scans = repo
		log.Info("using mongo for scan logs", nil)
	}

	if bucket := strings.TrimSpace(cfg.Storage.S3Bucket); bucket != "" {
		store, err := s3store.New(ctx, s3store.Config{
			Bucket:        bucket,
			Region:        cfg.Storage.S3Region,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		})
		if err != nil {
			return b, cleanup, fmt.Errorf("s3: %w", err)
		}
		b.Blobs = store
		b.Media = nil
	}

	if url := strings.TrimSpace(cfg.NATS.URL); url != "" {
		pub, err := evt.NewNATSPublisher(url, cfg.Log.App, log)
		if err != nil {
			return b, cleanup, fmt.Errorf("nats: %w", err)
		}
		closers = append(closers, pub.Close)
		b.Events = pub
	}

	switch {
	case cfg.Email.MailerSendKey != "":
		b.Mailer = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail, log)
	case cfg.Email.SendGridKey != "":
		b.Mailer = mailer.NewSendGrid(cfg.Email.SendGridKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	if url := strings.TrimSpace(cfg.IPLookup.URL); url != "" {
		client, err := httpclient.NewWithBaseURL(url, cfg.IPLookup.Timeout)
		if err != nil {
			return b, cleanup, fmt.Errorf("ip lookup: %w", err)
		}
		b.IPLookup = scans.NewHTTPLookup(client)
	}

	return b, cleanup, nil
}

// Tokens arma el emisor/verificador de sesiones.
func Tokens(cfg *config.Config) (*jwtsession.Tokens, error) {
	secret := strings.TrimSpace(cfg.Auth.JWTSecret)
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return jwtsession.New(secret, cfg.Auth.SessionTTL), nil
}
