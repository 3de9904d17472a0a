package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppVersion es la versión que el cliente compara contra la marca guardada
// en el dispositivo. Se puede pisar con -ldflags "-X pet-qr-tags/internal/config.AppVersion=...".
var AppVersion = "1.3.0"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	NATS     NATSConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Email    EmailConfig
	IPLookup IPLookupConfig
	Geo      GeoConfig
	Scans    ScansConfig
	CORS     CORSConfig
	Log      LogConfig

	// SeedTags: "MTRX01:2222,MTRX02:3333" (solo dev).
	SeedTags map[string]string
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	URL string
}

type MongoConfig struct {
	URI      string
	Database string
}

type NATSConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret   string
	SessionTTL  time.Duration
	AdminAPIKey string
	// CodeTTL es la vigencia del código de verificación de email.
	CodeTTL time.Duration
}

type StorageConfig struct {
	S3Bucket      string
	S3Region      string
	PublicBaseURL string
}

type EmailConfig struct {
	MailerSendKey string
	SendGridKey   string
	FromName      string
	FromEmail     string
}

type IPLookupConfig struct {
	URL     string
	Timeout time.Duration
}

type GeoConfig struct {
	Timeout time.Duration
}

type ScansConfig struct {
	NoticeLimit int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
	App    string
}

// Load lee .env (si existe) y luego el entorno.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "pet_qr_tags"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "dev-only-secret-change-in-prod"),
			SessionTTL:  getDuration("SESSION_TTL", 30*24*time.Hour),
			AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
			CodeTTL:     getDuration("EMAIL_CODE_TTL", 15*time.Minute),
		},
		Storage: StorageConfig{
			S3Bucket:      getEnv("S3_BUCKET", ""),
			S3Region:      getEnv("AWS_REGION", "eu-central-1"),
			PublicBaseURL: getEnv("PHOTO_PUBLIC_BASE_URL", ""),
		},
		Email: EmailConfig{
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			SendGridKey:   getEnv("SENDGRID_API_KEY", ""),
			FromName:      getEnv("MAIL_FROM_NAME", "MatrixC Pet Tag"),
			FromEmail:     getEnv("MAIL_FROM", "no-reply@matrixc.local"),
		},
		IPLookup: IPLookupConfig{
			URL:     getEnv("IP_LOOKUP_URL", "https://api.ipify.org"),
			Timeout: getDuration("IP_LOOKUP_TIMEOUT", 3*time.Second),
		},
		Geo: GeoConfig{
			Timeout: getDuration("GEO_TIMEOUT", 5*time.Second),
		},
		Scans: ScansConfig{
			NoticeLimit: getInt("SCAN_NOTICE_LIMIT", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			App:    getEnv("APP_NAME", "pet-qr-tags"),
		},
		SeedTags: parseSeed(getEnv("SEED_TAGS", "")),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	out := make([]string, 0)
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseSeed(raw string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		code, pin, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			continue
		}
		code, pin = strings.TrimSpace(code), strings.TrimSpace(pin)
		if code == "" || pin == "" {
			continue
		}
		out[code] = pin
	}
	return out
}
