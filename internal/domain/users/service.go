package users

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"pet-qr-tags/internal/platform/apperr"
	"pet-qr-tags/internal/platform/credentials"
	"pet-qr-tags/internal/platform/logger"
)

const (
	minPasswordLen = 4
	defaultCodeTTL = 15 * time.Minute
)

type Service struct {
	repo    Repository
	hasher  credentials.Hasher
	codes   CodeStore
	mailer  Mailer
	log     logger.Logger
	codeTTL time.Duration

	now     func() time.Time
	newCode func() (string, error)
}

type Deps struct {
	Repo    Repository
	Hasher  credentials.Hasher
	Codes   CodeStore
	Mailer  Mailer
	Log     logger.Logger
	CodeTTL time.Duration
}

func NewService(d Deps) *Service {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.CodeTTL <= 0 {
		d.CodeTTL = defaultCodeTTL
	}
	return &Service{
		repo:    d.Repo,
		hasher:  d.Hasher,
		codes:   d.Codes,
		mailer:  d.Mailer,
		log:     d.Log,
		codeTTL: d.CodeTTL,
		now:     time.Now,
		newCode: sixDigitCode,
	}
}

func (s *Service) Get(ctx context.Context, username string) (User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return User{}, apperr.ErrNotFound
	}
	if err != nil {
		return User{}, apperr.Store(err)
	}
	return u, nil
}

// VerifyPassword compara contra el hash actual del store, no contra una copia.
func (s *Service) VerifyPassword(ctx context.Context, username, password string) (bool, error) {
	u, err := s.Get(ctx, username)
	if err != nil {
		return false, err
	}
	return s.hasher.Compare(password, u.PasswordHash), nil
}

type ProfileInput struct {
	FullName string
	Email    string
	Phone    string
	City     string
	District string
}

// MissingOwnerFields devuelve los campos obligatorios vacíos del dueño.
func MissingOwnerFields(in ProfileInput) []string {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(in.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(in.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(in.District) == "" {
		missing = append(missing, "district")
	}
	return missing
}

func ValidateOwner(in ProfileInput) error {
	if missing := MissingOwnerFields(in); len(missing) > 0 {
		return apperr.Required(missing...)
	}
	return nil
}

// Apply copia el perfil sobre u. Cambiar el email anula la verificación.
func (in ProfileInput) Apply(u User) User {
	email := strings.TrimSpace(in.Email)
	if !strings.EqualFold(email, u.Email) {
		u.IsEmailVerified = false
	}
	u.FullName = strings.TrimSpace(in.FullName)
	u.Email = email
	u.Phone = strings.TrimSpace(in.Phone)
	u.City = strings.TrimSpace(in.City)
	u.District = strings.TrimSpace(in.District)
	return u
}

func (s *Service) UpdateProfile(ctx context.Context, username string, in ProfileInput) (User, error) {
	if err := ValidateOwner(in); err != nil {
		return User{}, err
	}
	u, err := s.Get(ctx, username)
	if err != nil {
		return User{}, err
	}
	u = in.Apply(u)
	return s.save(ctx, u)
}

type PasswordInput struct {
	Current string
	New     string
	Confirm string
}

// ChangePassword actualiza contraseña y PIN en la misma operación.
func (s *Service) ChangePassword(ctx context.Context, username string, in PasswordInput) error {
	if in.Current == "" || in.New == "" || in.Confirm == "" {
		return apperr.Validation("password", "Lütfen tüm şifre alanlarını doldurun.")
	}

	ok, err := s.VerifyPassword(ctx, username, in.Current)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.PasswordMismatch("currentPassword", "Mevcut şifrenizi yanlış girdiniz.")
	}
	if in.New != in.Confirm {
		return apperr.Validation("confirmPassword", "Yeni şifreler birbiriyle eşleşmiyor.")
	}
	if len([]rune(strings.TrimSpace(in.New))) < minPasswordLen {
		return apperr.Validation("newPassword", "Yeni şifre en az 4 karakter olmalıdır.")
	}

	hash, err := s.hasher.Hash(in.New)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, strings.TrimSpace(username), hash); err != nil {
		return apperr.Store(err)
	}
	return nil
}

type PreferencesInput struct {
	PhoneChecked bool
	Phone        string
}

// SavePreferences: con teléfono marcado la preferencia es BOTH, si no EMAIL.
func (s *Service) SavePreferences(ctx context.Context, username string, in PreferencesInput) (User, error) {
	phone := strings.TrimSpace(in.Phone)
	if in.PhoneChecked && phone == "" {
		return User{}, apperr.Validation("phone", "Lütfen telefon numaranızı giriniz.")
	}

	u, err := s.Get(ctx, username)
	if err != nil {
		return User{}, err
	}
	if in.PhoneChecked {
		u.ContactPreference = ContactBoth
		u.Phone = phone
	} else {
		u.ContactPreference = ContactEmail
		u.Phone = ""
	}
	return s.save(ctx, u)
}

type EmergencyInput struct {
	Name         string
	EmailChecked bool
	Email        string
	PhoneChecked bool
	Phone        string
}

func (s *Service) SaveEmergencyContact(ctx context.Context, username string, in EmergencyInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if name != "" {
		if !in.EmailChecked && !in.PhoneChecked {
			return User{}, apperr.Validation("emergencyContact", "Ad soyad girildiğinde en az bir iletişim yöntemi seçmelisiniz.")
		}
		if in.EmailChecked && email == "" {
			return User{}, apperr.Validation("emergencyEmail", "Lütfen acil durum e-posta adresini giriniz.")
		}
		if in.PhoneChecked && phone == "" {
			return User{}, apperr.Validation("emergencyPhone", "Lütfen acil durum telefon numarasını giriniz.")
		}
	}

	u, err := s.Get(ctx, username)
	if err != nil {
		return User{}, err
	}
	u.EmergencyContact = EmergencyContact{Name: name}
	if in.EmailChecked {
		u.EmergencyContact.Email = email
	}
	if in.PhoneChecked {
		u.EmergencyContact.Phone = phone
	}
	return s.save(ctx, u)
}

// SendEmailVerification genera un código de 6 dígitos y lo envía.
func (s *Service) SendEmailVerification(ctx context.Context, username string) error {
	u, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	if !strings.Contains(u.Email, "@") {
		return apperr.Validation("email", "Profil sayfasında geçerli bir e-posta tanımlanmamış.")
	}

	code, err := s.newCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.codes.SaveCode(ctx, u.Username, code, s.codeTTL); err != nil {
		return apperr.Store(err)
	}
	if err := s.mailer.SendVerificationCode(ctx, u.Email, u.FullName, code); err != nil {
		s.log.Warn("verification mail failed", map[string]any{"username": u.Username, "error": err.Error()})
		return apperr.Store(err)
	}
	return nil
}

func (s *Service) VerifyEmail(ctx context.Context, username, code string) (User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return User{}, apperr.Validation("code", "Hatalı kod! Lütfen kontrol ediniz.")
	}

	u, err := s.Get(ctx, username)
	if err != nil {
		return User{}, err
	}
	ok, err := s.codes.ConsumeCode(ctx, u.Username, code)
	if err != nil {
		return User{}, apperr.Store(err)
	}
	if !ok {
		return User{}, apperr.Validation("code", "Hatalı kod! Lütfen kontrol ediniz.")
	}

	u.IsEmailVerified = true
	return s.save(ctx, u)
}

func (s *Service) save(ctx context.Context, u User) (User, error) {
	u.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.ErrNotFound
		}
		return User{}, apperr.Store(err)
	}
	return u, nil
}

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
