package finder

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/geo"
)

func TestContactFor(t *testing.T) {
	cases := []struct {
		name      string
		pref      users.ContactPreference
		phone     string
		email     string
		wantPhone bool
		wantEmail bool
	}{
		{"phone pref with phone hides email", users.ContactPhone, "0555", "a@b.c", true, false},
		{"email pref hides phone", users.ContactEmail, "0555", "a@b.c", false, true},
		{"phone pref without phone falls back to email", users.ContactPhone, "", "a@b.c", false, true},
		{"both shows both", users.ContactBoth, "0555", "a@b.c", true, true},
		{"both without phone", users.ContactBoth, "", "a@b.c", false, true},
		{"nothing to show", users.ContactPhone, "", "", false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ContactFor(users.User{ContactPreference: c.pref, Phone: c.phone, Email: c.email})
			if (got.Phone != "") != c.wantPhone || (got.Email != "") != c.wantEmail {
				t.Fatalf("got %+v, want phone=%v email=%v", got, c.wantPhone, c.wantEmail)
			}
		})
	}
}

func TestProject_PublicFieldsOnly(t *testing.T) {
	lostAt := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	p := pets.Pet{
		OwnerUsername: "MTRX01",
		Name:          pets.Field[string]{Value: "Pamuk", IsPublic: true},
		Type:          pets.CustomKind("Tavşan"),
		Features:      pets.Field[string]{Value: "beyaz", IsPublic: true},
		HealthWarning: pets.Field[string]{Value: "ilaç kullanıyor", IsPublic: false},
		VetInfo:       pets.Field[string]{Value: "Dr. X", IsPublic: false},
		Microchip:     "900000000000001",
		LostStatus: pets.LostStatus{
			IsActive:         true,
			LostDate:         &lostAt,
			LastSeenLocation: &geo.Point{Lat: 39.9, Lng: 32.8},
			Message:          "ürkek",
		},
	}

	v := Project(p, nil)
	if v.Name != "Pamuk" || v.Features != "beyaz" || v.Type != "Tavşan" {
		t.Fatalf("public fields missing: %+v", v)
	}
	if v.HealthWarning != "" || v.VetInfo != "" {
		t.Fatalf("private fields leaked: %+v", v)
	}
	if v.Lost == nil || v.Lost.Message != "ürkek" {
		t.Fatalf("lost broadcast missing: %+v", v.Lost)
	}
	if v.Contact != (Contact{}) || v.Emergency != nil {
		t.Fatalf("no owner means no contact: %+v", v)
	}
}

func TestProject_EmergencyContact(t *testing.T) {
	p := pets.Pet{OwnerUsername: "MTRX01"}

	owner := users.User{ContactPreference: users.ContactEmail, Email: "a@b.c",
		EmergencyContact: users.EmergencyContact{Name: "Mehmet", Phone: "0532"}}
	v := Project(p, &owner)
	if v.Emergency == nil || v.Emergency.Phone != "0532" {
		t.Fatalf("emergency contact must be independent of preference: %+v", v.Emergency)
	}

	owner.EmergencyContact = users.EmergencyContact{Name: "Mehmet"}
	if v := Project(p, &owner); v.Emergency != nil {
		t.Fatalf("name without a method must be hidden")
	}

	owner.EmergencyContact = users.EmergencyContact{Phone: "0532"}
	if v := Project(p, &owner); v.Emergency != nil {
		t.Fatalf("method without a name must be hidden")
	}
}

type petSrc struct {
	pet pets.Pet
	err error
}

func (s petSrc) GetByOwner(ctx context.Context, owner string) (pets.Pet, error) {
	return s.pet, s.err
}

type ownerSrc struct {
	u   users.User
	err error
}

func (s ownerSrc) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return s.u, s.err
}

func TestService_Load(t *testing.T) {
	pet := pets.Pet{
		OwnerUsername: "MTRX01",
		Name:          pets.Field[string]{Value: "Pamuk", IsPublic: true},
		LostStatus:    pets.LostStatus{IsActive: true, Message: "ürkek"},
	}
	owner := users.User{Username: "MTRX01", ContactPreference: users.ContactPhone, Phone: "0555"}

	svc := NewService(petSrc{pet: pet}, ownerSrc{u: owner}, nil)
	v, err := svc.Load(context.Background(), "MTRX01")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v.Name != "Pamuk" || v.Contact.Phone != "0555" {
		t.Fatalf("unexpected view %+v", v)
	}

	// Dueño caído: la vista sale igual.
	svc = NewService(petSrc{pet: pet}, ownerSrc{err: errors.New("timeout")}, nil)
	v, err = svc.Load(context.Background(), "MTRX01")
	if err != nil || v.Contact != (Contact{}) {
		t.Fatalf("owner failure must degrade, got %+v err=%v", v, err)
	}

	svc = NewService(petSrc{err: pets.ErrNotFound}, ownerSrc{u: owner}, nil)
	if _, err := svc.Load(context.Background(), "MTRX01"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestService_Load_NotLostHasNoPublicView(t *testing.T) {
	pet := pets.Pet{OwnerUsername: "MTRX01", Name: pets.Field[string]{Value: "Pamuk", IsPublic: true}}
	owner := users.User{Username: "MTRX01", ContactPreference: users.ContactBoth, Phone: "0555", Email: "a@b.c"}

	svc := NewService(petSrc{pet: pet}, ownerSrc{u: owner}, nil)
	v, err := svc.Load(context.Background(), "MTRX01")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND for a pet that is not lost, got %v", err)
	}
	if v.Contact != (Contact{}) || v.OwnerName != "" || v.Name != "" {
		t.Fatalf("no data may leave for a safe pet: %+v", v)
	}
}
