package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/credentials"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	byName map[string]User
	pins   map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{byName: map[string]User{}, pins: map[string]string{}}
}

func (r *testRepo) Register(ctx context.Context, u User) error {
	r.byName[u.Username] = u
	return nil
}

func (r *testRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	u, ok := r.byName[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	cur, ok := r.byName[u.Username]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = cur.PasswordHash
	r.byName[u.Username] = u
	return nil
}

func (r *testRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	u, ok := r.byName[username]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	r.byName[username] = u
	r.pins[username] = hash
	return nil
}

type testCodes struct {
	codes map[string]string
}

func (c *testCodes) SaveCode(ctx context.Context, username, code string, ttl time.Duration) error {
	c.codes[username] = code
	return nil
}

func (c *testCodes) ConsumeCode(ctx context.Context, username, code string) (bool, error) {
	if c.codes[username] != code {
		return false, nil
	}
	delete(c.codes, username)
	return true, nil
}

type testMailer struct {
	sent []string
	err  error
}

func (m *testMailer) SendVerificationCode(ctx context.Context, toEmail, toName, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail+":"+code)
	return nil
}

func newTestService(t *testing.T) (*Service, *testRepo, *testCodes, *testMailer) {
	t.Helper()
	h := credentials.NewArgon2(credentials.LightParams)
	hash, err := h.Hash("2222")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	repo := newTestRepo()
	repo.byName["MTRX01"] = User{
		Username:          "MTRX01",
		PasswordHash:      hash,
		FullName:          "Ayşe Yılmaz",
		Email:             "ayse@example.com",
		IsEmailVerified:   true,
		ContactPreference: ContactEmail,
		City:              "Ankara",
		District:          "Çankaya",
	}
	codes := &testCodes{codes: map[string]string{}}
	mailer := &testMailer{}

	svc := NewService(Deps{Repo: repo, Hasher: h, Codes: codes, Mailer: mailer})
	svc.newCode = func() (string, error) { return "123456", nil }
	return svc, repo, codes, mailer
}

// -------------------------
// Tests
// -------------------------

func TestService_ChangePassword_Rules(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    PasswordInput
		kind  apperr.Kind
		field string
	}{
		{"missing fields", PasswordInput{Current: "2222"}, apperr.KindValidation, "password"},
		{"wrong current", PasswordInput{Current: "9999", New: "abcd", Confirm: "abcd"}, apperr.KindPasswordMismatch, "currentPassword"},
		{"confirm differs", PasswordInput{Current: "2222", New: "abcd", Confirm: "abce"}, apperr.KindValidation, "confirmPassword"},
		{"too short", PasswordInput{Current: "2222", New: "abc", Confirm: "abc"}, apperr.KindValidation, "newPassword"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := svc.ChangePassword(ctx, "MTRX01", c.in)
			e, ok := apperr.As(err)
			if !ok || e.Kind != c.kind || e.Field != c.field {
				t.Fatalf("got %v, want kind=%s field=%s", err, c.kind, c.field)
			}
		})
	}
}

func TestService_ChangePassword_PropagatesToPIN(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, "MTRX01", PasswordInput{Current: " 2222 ", New: "kedi1", Confirm: "kedi1"}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if repo.pins["MTRX01"] == "" || repo.pins["MTRX01"] != repo.byName["MTRX01"].PasswordHash {
		t.Fatalf("tag pin and password must share the same hash")
	}

	ok, err := svc.VerifyPassword(ctx, "MTRX01", "kedi1")
	if err != nil || !ok {
		t.Fatalf("new password should verify: ok=%v err=%v", ok, err)
	}
	ok, _ = svc.VerifyPassword(ctx, "MTRX01", "2222")
	if ok {
		t.Fatalf("old password must no longer verify")
	}
}

func TestService_SavePreferences(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SavePreferences(ctx, "MTRX01", PreferencesInput{PhoneChecked: true, Phone: "  "})
	if e, ok := apperr.As(err); !ok || e.Field != "phone" {
		t.Fatalf("expected phone validation error, got %v", err)
	}

	u, err := svc.SavePreferences(ctx, "MTRX01", PreferencesInput{PhoneChecked: true, Phone: "0555 111 22 33"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if u.ContactPreference != ContactBoth || u.Phone != "0555 111 22 33" {
		t.Fatalf("unexpected user: %+v", u)
	}

	u, err = svc.SavePreferences(ctx, "MTRX01", PreferencesInput{PhoneChecked: false, Phone: "0555"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if u.ContactPreference != ContactEmail || u.Phone != "" {
		t.Fatalf("unchecking phone must clear it: %+v", u)
	}
}

func TestService_SaveEmergencyContact(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.SaveEmergencyContact(ctx, "MTRX01", EmergencyInput{Name: "Mehmet"}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("name without method must fail, got %v", err)
	}
	if _, err := svc.SaveEmergencyContact(ctx, "MTRX01", EmergencyInput{Name: "Mehmet", PhoneChecked: true}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("checked phone without value must fail, got %v", err)
	}

	u, err := svc.SaveEmergencyContact(ctx, "MTRX01", EmergencyInput{
		Name:         " Mehmet ",
		EmailChecked: false,
		Email:        "ignored@example.com",
		PhoneChecked: true,
		Phone:        "0532",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if u.EmergencyContact != (EmergencyContact{Name: "Mehmet", Phone: "0532"}) {
		t.Fatalf("unexpected contact: %+v", u.EmergencyContact)
	}

	// Nombre vacío: se guarda sin validar.
	if _, err := svc.SaveEmergencyContact(ctx, "MTRX01", EmergencyInput{}); err != nil {
		t.Fatalf("empty contact should save: %v", err)
	}
}

func TestService_UpdateProfile_EmailChangeResetsVerification(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.UpdateProfile(ctx, "MTRX01", ProfileInput{
		FullName: "Ayşe Yılmaz", Email: "ayse@example.com", City: "Ankara", District: "Keçiören",
	})
	if err != nil || !u.IsEmailVerified {
		t.Fatalf("same email keeps verification: %+v err=%v", u, err)
	}

	u, err = svc.UpdateProfile(ctx, "MTRX01", ProfileInput{
		FullName: "Ayşe Yılmaz", Email: "yeni@example.com", City: "Ankara", District: "Keçiören",
	})
	if err != nil || u.IsEmailVerified {
		t.Fatalf("new email must reset verification: %+v err=%v", u, err)
	}

	_, err = svc.UpdateProfile(ctx, "MTRX01", ProfileInput{FullName: "x"})
	e, ok := apperr.As(err)
	if !ok || len(e.Fields) != 3 {
		t.Fatalf("expected 3 missing fields, got %v", err)
	}
}

func TestService_EmailVerification(t *testing.T) {
	svc, repo, _, mailer := newTestService(t)
	ctx := context.Background()

	u := repo.byName["MTRX01"]
	u.IsEmailVerified = false
	repo.byName["MTRX01"] = u

	if err := svc.SendEmailVerification(ctx, "MTRX01"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "ayse@example.com:123456" {
		t.Fatalf("unexpected mails: %v", mailer.sent)
	}

	if _, err := svc.VerifyEmail(ctx, "MTRX01", "000000"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("wrong code must fail, got %v", err)
	}
	got, err := svc.VerifyEmail(ctx, "MTRX01", "123456")
	if err != nil || !got.IsEmailVerified {
		t.Fatalf("verify: %+v err=%v", got, err)
	}
	if _, err := svc.VerifyEmail(ctx, "MTRX01", "123456"); err == nil {
		t.Fatalf("code must be single use")
	}
}

func TestService_SendEmailVerification_RequiresEmail(t *testing.T) {
	svc, repo, _, mailer := newTestService(t)
	u := repo.byName["MTRX01"]
	u.Email = "no-at-sign"
	repo.byName["MTRX01"] = u

	err := svc.SendEmailVerification(context.Background(), "MTRX01")
	if apperr.KindOf(err) != apperr.KindValidation || len(mailer.sent) != 0 {
		t.Fatalf("expected validation error and no mail, got %v", err)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	if _, err := svc.Get(context.Background(), "NOPE"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
