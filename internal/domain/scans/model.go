package scans

import (
	"time"

	"pet-qr-tags/internal/platform/geo"
)

// Device es la metadata que manda el navegador que escaneó.
type Device struct {
	UserAgent  string `json:"user_agent,omitempty"`
	Platform   string `json:"platform,omitempty"`
	Language   string `json:"language,omitempty"`
	ScreenSize string `json:"screen_size,omitempty"`
	Referrer   string `json:"referrer,omitempty"`
}

// Entry es un escaneo. Solo se agrega, nunca se edita.
type Entry struct {
	ID        string
	TagCode   string
	ScannedAt time.Time

	Location *geo.Fix
	Device   Device
	IP       string
}
