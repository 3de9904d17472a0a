package scans

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-qr-tags/internal/platform/geo"
	"pet-qr-tags/internal/platform/logger"
	"pet-qr-tags/internal/ports/events"

	"github.com/google/uuid"
)

const DefaultLimit = 10

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo   Repository
	lookup IPLookup
	pub    events.Publisher
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, lookup IPLookup, pub events.Publisher, log logger.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		lookup: lookup,
		pub:    pub,
		log:    log,
		now:    time.Now,
	}
}

type LogInput struct {
	TagCode    string
	Location   *geo.Fix
	Device     Device
	RemoteAddr string
}

// Log agrega un escaneo. Nunca devuelve error: un log que falla no puede
// frenar a quien está mirando la mascota. ok indica si quedó guardado.
func (s *Service) Log(ctx context.Context, in LogInput) (Entry, bool) {
	code := strings.TrimSpace(in.TagCode)
	if code == "" {
		return Entry{}, false
	}
	log := s.log.With(map[string]any{"tag_code": code})

	e := Entry{
		ID:        uuid.NewString(),
		TagCode:   code,
		ScannedAt: s.now().UTC(),
		Device:    trimDevice(in.Device),
		IP:        s.resolveIP(ctx, in.RemoteAddr, log),
	}
	if in.Location != nil && in.Location.Valid() {
		loc := *in.Location
		e.Location = &loc
	}

	if err := s.repo.Append(ctx, e); err != nil {
		log.Warn("scan log append failed", map[string]any{"error": err.Error()})
		return Entry{}, false
	}

	if err := s.pub.Publish(ctx, events.TagScanned, events.TagScannedEvent{
		TagCode:     code,
		ScannedAt:   e.ScannedAt,
		HasLocation: e.Location != nil,
	}); err != nil {
		log.Warn("publish tag.scanned failed", map[string]any{"error": err.Error()})
	}
	return e, true
}

// resolveIP usa la IP del request si es pública. Si viene de la red local
// el escaneo comparte salida con el servidor, y la IP pública se consulta
// afuera. Cualquier fallo deja la IP vacía.
func (s *Service) resolveIP(ctx context.Context, remoteAddr string, log logger.Logger) string {
	ip := remoteIP(remoteAddr)
	if Routable(ip) {
		return ip.String()
	}
	if s.lookup == nil {
		return ""
	}
	public, err := s.lookup.PublicIP(ctx)
	if err != nil {
		log.Warn("ip lookup failed", map[string]any{"error": err.Error()})
		return ""
	}
	return public
}

func (s *Service) Recent(ctx context.Context, tagCode string, limit int) ([]Entry, error) {
	code := strings.TrimSpace(tagCode)
	if code == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.repo.Recent(ctx, code, limit)
}

func trimDevice(d Device) Device {
	return Device{
		UserAgent:  strings.TrimSpace(d.UserAgent),
		Platform:   strings.TrimSpace(d.Platform),
		Language:   strings.TrimSpace(d.Language),
		ScreenSize: strings.TrimSpace(d.ScreenSize),
		Referrer:   strings.TrimSpace(d.Referrer),
	}
}
