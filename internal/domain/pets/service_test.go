package pets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/geo"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) GetByOwner(ctx context.Context, owner string) (Pet, error) {
	for _, p := range r.byID {
		if p.OwnerUsername == owner {
			return p, nil
		}
	}
	return Pet{}, ErrNotFound
}

type testBlobs struct {
	keys []string
}

func (b *testBlobs) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	b.keys = append(b.keys, key)
	return "https://cdn.example.com/pet_photos/" + key, nil
}

func validInput() Input {
	return Input{
		Name:     Field[string]{Value: " Pamuk ", IsPublic: true},
		Type:     "CAT",
		PhotoURL: Field[string]{Value: "https://cdn.example.com/p.jpg", IsPublic: true},
	}
}

// -------------------------
// Tests
// -------------------------

func TestLostStatus_Activate_KeepsOriginalDate(t *testing.T) {
	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	st := Safe().Activate(first, &geo.Point{Lat: 39.9, Lng: 32.8}, "ürkek")
	if st.LostDate == nil || !st.LostDate.Equal(first) {
		t.Fatalf("fresh activation must set lostDate to now, got %v", st.LostDate)
	}

	again := st.Activate(later, nil, "ürkek")
	if !again.LostDate.Equal(first) {
		t.Fatalf("re-activation must preserve original lostDate, got %v", again.LostDate)
	}

	// Desactivada y reactivada: fecha nueva.
	reborn := Safe().Activate(later, nil, "x")
	if !reborn.LostDate.Equal(later) {
		t.Fatalf("activation after clear must take a fresh date, got %v", reborn.LostDate)
	}
}

func TestLostStatus_Consistent(t *testing.T) {
	now := time.Now()
	if !Safe().Consistent() {
		t.Fatalf("safe must be consistent")
	}
	if (LostStatus{Message: "left over"}).Consistent() {
		t.Fatalf("inactive with message must be inconsistent")
	}
	if (LostStatus{LostDate: &now}).Consistent() {
		t.Fatalf("inactive with date must be inconsistent")
	}
	if (LostStatus{LastSeenLocation: &geo.Point{}}).Consistent() {
		t.Fatalf("inactive with location must be inconsistent")
	}
}

func TestService_Save_CreatesThenUpdates(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Save(context.Background(), "MTRX01", validInput())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if p.ID == "" || p.Name.Value != "Pamuk" || p.Type != StandardKind(SpeciesCat) {
		t.Fatalf("unexpected pet: %+v", p)
	}

	// El modo perdido persiste entre ediciones del formulario.
	p.LostStatus = Safe().Activate(now, nil, "ürkek")
	repo.byID[p.ID] = p

	in := validInput()
	in.Type = "OTHER"
	in.CustomType = "Kuş"
	updated, err := svc.Save(context.Background(), "MTRX01", in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != p.ID {
		t.Fatalf("update must keep id")
	}
	if updated.Type.Label() != "Kuş" || !updated.Type.IsCustom() {
		t.Fatalf("unexpected kind: %+v", updated.Type)
	}
	if !updated.LostStatus.IsActive || updated.LostStatus.Message != "ürkek" {
		t.Fatalf("form save must not touch lost status: %+v", updated.LostStatus)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	err := Validate(Input{Type: "OTHER"})
	e, ok := apperr.As(err)
	if !ok || e.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{"petName", "photo", "customPetType"}
	if len(e.Fields) != len(want) {
		t.Fatalf("fields = %v, want %v", e.Fields, want)
	}
	for i := range want {
		if e.Fields[i] != want[i] {
			t.Fatalf("fields = %v, want %v", e.Fields, want)
		}
	}
}

func TestService_Update_RequiresExistingPet(t *testing.T) {
	svc := NewService(newTestRepo(), nil)
	_, err := svc.Update(context.Background(), "MTRX01", validInput())
	if apperr.KindOf(err) != apperr.KindNotAllowed {
		t.Fatalf("expected NOT_ALLOWED, got %v", err)
	}
}

func TestService_SetLostStatus_RejectsPartialClear(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)
	p, err := svc.Save(context.Background(), "MTRX01", validInput())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err = svc.SetLostStatus(context.Background(), p.ID, LostStatus{IsActive: false, Message: "ürkek"})
	if !errors.Is(err, ErrInconsistentLostStatus) {
		t.Fatalf("expected ErrInconsistentLostStatus, got %v", err)
	}
}

func TestService_IsLost(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	lost, err := svc.IsLost(context.Background(), "MTRX01")
	if err != nil || lost {
		t.Fatalf("owner without pet: lost=%v err=%v", lost, err)
	}

	p, _ := svc.Save(context.Background(), "MTRX01", validInput())
	if _, err := svc.SetLostStatus(context.Background(), p.ID, Safe().Activate(time.Now(), nil, "ürkek")); err != nil {
		t.Fatalf("set lost: %v", err)
	}
	lost, err = svc.IsLost(context.Background(), "MTRX01")
	if err != nil || !lost {
		t.Fatalf("expected lost, got lost=%v err=%v", lost, err)
	}
}

func TestService_UploadPhoto_KeyFormat(t *testing.T) {
	blobs := &testBlobs{}
	svc := NewService(newTestRepo(), blobs)
	now := time.UnixMilli(1735725600000)
	svc.now = func() time.Time { return now }

	url, err := svc.UploadPhoto(context.Background(), "pamuk.PNG", "image/png", bytes.NewReader([]byte{0x89}))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(blobs.keys) != 1 {
		t.Fatalf("expected one upload")
	}
	if !regexp.MustCompile(`^1735725600000_[0-9a-f]{13}\.png$`).MatchString(blobs.keys[0]) {
		t.Fatalf("unexpected key %q", blobs.keys[0])
	}
	if url != "https://cdn.example.com/pet_photos/"+blobs.keys[0] {
		t.Fatalf("unexpected url %q", url)
	}

	if _, err := svc.UploadPhoto(context.Background(), "x.txt", "text/plain", bytes.NewReader(nil)); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("non-image must be rejected, got %v", err)
	}
}

func TestKind_JSON(t *testing.T) {
	b, err := json.Marshal(CustomKind("Hamster"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"type":"OTHER","label":"Hamster"}` {
		t.Fatalf("unexpected json %s", b)
	}

	var k Kind
	if err := json.Unmarshal([]byte(`{"type":"DOG","label":"ignored"}`), &k); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if k != StandardKind(SpeciesDog) {
		t.Fatalf("standard kind must drop label, got %+v", k)
	}
}
