package authgate

import (
	"context"
	"errors"
	"testing"

	"pet-qr-tags/internal/domain/tags"
	"pet-qr-tags/internal/domain/users"
	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/credentials"
)

// -------------------------
// Fakes: un store compartido para poder simular la transacción.
// -------------------------

type fakeStore struct {
	tags   map[string]tags.Tag
	users  map[string]users.User
	writes int

	failInsert bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{tags: map[string]tags.Tag{}, users: map[string]users.User{}}
}

type tagRepo struct{ s *fakeStore }

func (r tagRepo) Create(ctx context.Context, t tags.Tag) error {
	r.s.writes++
	r.s.tags[t.ShortCode] = t
	return nil
}

func (r tagRepo) GetByCode(ctx context.Context, code string) (tags.Tag, error) {
	t, ok := r.s.tags[code]
	if !ok {
		return tags.Tag{}, tags.ErrNotFound
	}
	return t, nil
}

func (r tagRepo) SetStatus(ctx context.Context, code string, st tags.Status) error {
	r.s.writes++
	t := r.s.tags[code]
	t.Status = st
	r.s.tags[code] = t
	return nil
}

type userRepo struct{ s *fakeStore }

func (r userRepo) Register(ctx context.Context, u users.User) error {
	r.s.writes++
	t := r.s.tags[u.Username]
	if t.Status != tags.StatusEmpty {
		return users.ErrTagNotEmpty
	}
	if r.s.failInsert {
		return errors.New("insert failed")
	}
	r.s.users[u.Username] = u
	t.Status = tags.StatusAssigned
	r.s.tags[u.Username] = t
	return nil
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	u, ok := r.s.users[username]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r userRepo) Update(ctx context.Context, u users.User) error {
	r.s.writes++
	r.s.users[u.Username] = u
	return nil
}

func (r userRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	r.s.writes++
	return nil
}

type recordingPublisher struct {
	subjects []string
}

func (p *recordingPublisher) Publish(ctx context.Context, subject string, data any) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

func newTestGate(t *testing.T) (*Gate, *fakeStore, *recordingPublisher) {
	t.Helper()
	h := credentials.NewArgon2(credentials.LightParams)
	pinHash, err := h.Hash("2222")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	s := newFakeStore()
	s.tags["MTRX01"] = tags.Tag{ShortCode: "MTRX01", PINHash: pinHash, Status: tags.StatusEmpty}
	s.tags["MTRX02"] = tags.Tag{ShortCode: "MTRX02", PINHash: pinHash, Status: tags.StatusAssigned}
	s.users["MTRX02"] = users.User{Username: "MTRX02", PasswordHash: pinHash, FullName: "Ali Veli"}

	pub := &recordingPublisher{}
	g := New(Deps{Tags: tagRepo{s}, Users: userRepo{s}, Hasher: h, Events: pub})
	return g, s, pub
}

// -------------------------
// Tests
// -------------------------

func TestAuthenticate_EmptyTag_ReturnsShellWithoutWrites(t *testing.T) {
	g, s, _ := newTestGate(t)

	res, err := g.Authenticate(context.Background(), "MTRX01", "2222")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !res.IsNew || res.User.Username != "MTRX01" {
		t.Fatalf("expected new shell for MTRX01, got %+v", res)
	}
	if s.writes != 0 {
		t.Fatalf("empty-tag login must not write, got %d writes", s.writes)
	}
	if _, ok := s.users["MTRX01"]; ok {
		t.Fatalf("no user must be persisted yet")
	}
}

func TestAuthenticate_WrongPIN(t *testing.T) {
	g, _, _ := newTestGate(t)

	for _, code := range []string{"MTRX01", "MTRX02"} {
		_, err := g.Authenticate(context.Background(), code, "9999")
		if !errors.Is(err, apperr.ErrInvalidPIN) {
			t.Fatalf("%s: expected INVALID_PIN, got %v", code, err)
		}
		e, _ := apperr.As(err)
		if e.Message != "Hatalı PIN Kodu" {
			t.Fatalf("unexpected message %q", e.Message)
		}
	}
}

func TestAuthenticate_PINIsTrimmed(t *testing.T) {
	g, _, _ := newTestGate(t)
	if _, err := g.Authenticate(context.Background(), " MTRX01 ", " 2222 "); err != nil {
		t.Fatalf("trimmed pin should match: %v", err)
	}
}

func TestAuthenticate_UnknownCode(t *testing.T) {
	g, _, _ := newTestGate(t)
	_, err := g.Authenticate(context.Background(), "NOPE", "2222")
	if !errors.Is(err, apperr.ErrInvalidCode) {
		t.Fatalf("expected INVALID_CODE, got %v", err)
	}
}

func TestAuthenticate_AssignedTag_ReturnsLinkedUser(t *testing.T) {
	g, _, _ := newTestGate(t)

	res, err := g.Authenticate(context.Background(), "MTRX02", "2222")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if res.IsNew || res.User.FullName != "Ali Veli" {
		t.Fatalf("expected existing user, got %+v", res)
	}
}

func TestAuthenticate_StaleLink_SelfHeals(t *testing.T) {
	g, s, _ := newTestGate(t)
	delete(s.users, "MTRX02")

	res, err := g.Authenticate(context.Background(), "MTRX02", "2222")
	if err != nil {
		t.Fatalf("stale link must not surface as error: %v", err)
	}
	if !res.IsNew {
		t.Fatalf("stale link must fall back to registration")
	}
	if s.tags["MTRX02"].Status != tags.StatusEmpty {
		t.Fatalf("tag must be reset to EMPTY")
	}
}

func TestCompleteRegistration_Atomic(t *testing.T) {
	g, s, pub := newTestGate(t)
	s.failInsert = true

	_, err := g.CompleteRegistration(context.Background(), users.User{Username: "MTRX01", FullName: "Ayşe"})
	if apperr.KindOf(err) != apperr.KindStoreUnavailable {
		t.Fatalf("expected STORE_UNAVAILABLE, got %v", err)
	}
	if s.tags["MTRX01"].Status != tags.StatusEmpty {
		t.Fatalf("failed insert must leave tag EMPTY")
	}
	if len(pub.subjects) != 0 {
		t.Fatalf("no event on failure")
	}
}

func TestCompleteRegistration_FlipsTagAndSharesCredential(t *testing.T) {
	g, s, pub := newTestGate(t)

	u, err := g.CompleteRegistration(context.Background(), users.User{Username: "MTRX01", FullName: "Ayşe"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if s.tags["MTRX01"].Status != tags.StatusAssigned {
		t.Fatalf("tag must be ASSIGNED")
	}
	if u.PasswordHash != s.tags["MTRX01"].PINHash {
		t.Fatalf("user password must be the tag pin hash")
	}
	if len(pub.subjects) != 1 || pub.subjects[0] != "owner.registered" {
		t.Fatalf("unexpected events %v", pub.subjects)
	}

	// Re-envío: devuelve el mismo usuario sin re-registrar.
	again, err := g.CompleteRegistration(context.Background(), users.User{Username: "MTRX01", FullName: "otro"})
	if err != nil || again.FullName != "Ayşe" {
		t.Fatalf("re-submission must return stored user: %+v err=%v", again, err)
	}

	res, err := g.Authenticate(context.Background(), "MTRX01", "2222")
	if err != nil || res.IsNew {
		t.Fatalf("after registration login must find the user: %+v err=%v", res, err)
	}
}

func TestCompleteRegistration_StaleLinkRecovers(t *testing.T) {
	g, s, _ := newTestGate(t)
	// ASSIGNED sin usuario vinculado.
	s.tags["MTRX03"] = tags.Tag{ShortCode: "MTRX03", PINHash: s.tags["MTRX01"].PINHash, Status: tags.StatusAssigned}

	u, err := g.CompleteRegistration(context.Background(), users.User{Username: "MTRX03", FullName: "Zeynep"})
	if err != nil {
		t.Fatalf("stale link must be recovered, got %v", err)
	}
	if u.Username != "MTRX03" || s.users["MTRX03"].FullName != "Zeynep" {
		t.Fatalf("user must be inserted: %+v", u)
	}
	if s.tags["MTRX03"].Status != tags.StatusAssigned {
		t.Fatalf("tag must end ASSIGNED, got %s", s.tags["MTRX03"].Status)
	}
}
