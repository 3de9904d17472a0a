package mongo

import (
	"testing"
	"time"

	"pet-qr-tags/internal/domain/scans"
	"pet-qr-tags/internal/platform/geo"
)

func TestDocMapping_KeepsOptionalLocation(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	with := scans.Entry{
		ID:        "s1",
		TagCode:   "MTRX01",
		ScannedAt: at,
		Location:  &geo.Fix{Point: geo.Point{Lat: 39.9, Lng: 32.8}, Accuracy: 15},
		Device:    scans.Device{UserAgent: "Mozilla", Language: "tr-TR"},
		IP:        "203.0.113.9",
	}
	got := fromDoc(toDoc(with))
	if got.Location == nil || *got.Location != *with.Location || got.Device != with.Device || got.IP != with.IP {
		t.Fatalf("unexpected entry %+v", got)
	}

	without := fromDoc(toDoc(scans.Entry{ID: "s2", TagCode: "MTRX01", ScannedAt: at}))
	if without.Location != nil {
		t.Fatalf("absent location must stay absent")
	}
}
