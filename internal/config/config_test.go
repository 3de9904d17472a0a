package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEO_TIMEOUT", "bogus")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://tag.example , ,https://admin.example")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Geo.Timeout != 5*time.Second {
		t.Fatalf("invalid duration must fall back to 5s, got %v", cfg.Geo.Timeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://admin.example" {
		t.Fatalf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Scans.NoticeLimit != 10 {
		t.Fatalf("expected notice limit 10, got %d", cfg.Scans.NoticeLimit)
	}
}

func TestParseSeed(t *testing.T) {
	got := parseSeed("MTRX01:2222, MTRX02 : 3333 ,broken,:1,X:")
	if len(got) != 2 {
		t.Fatalf("expected 2 seeds, got %v", got)
	}
	if got["MTRX01"] != "2222" || got["MTRX02"] != "3333" {
		t.Fatalf("unexpected seeds %v", got)
	}
}
