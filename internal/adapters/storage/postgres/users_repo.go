package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-qr-tags/internal/domain/tags"
	"pet-qr-tags/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `
	username, password_hash,
	full_name, email, is_email_verified, phone,
	contact_preference,
	emergency_name, emergency_email, emergency_phone,
	city, district,
	created_at, updated_at`

// Register inserta el usuario y pasa la etiqueta a ASSIGNED en una sola
// transacción. Un usuario huérfano con el mismo username se pisa.
func (r *UsersRepo) Register(ctx context.Context, u users.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM qr_tags WHERE short_code = $1 FOR UPDATE
	`, u.Username).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return tags.ErrNotFound
	}
	if err != nil {
		return err
	}
	if tags.Status(status) != tags.StatusEmpty {
		return users.ErrTagNotEmpty
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (username) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			is_email_verified = EXCLUDED.is_email_verified,
			phone = EXCLUDED.phone,
			contact_preference = EXCLUDED.contact_preference,
			emergency_name = EXCLUDED.emergency_name,
			emergency_email = EXCLUDED.emergency_email,
			emergency_phone = EXCLUDED.emergency_phone,
			city = EXCLUDED.city,
			district = EXCLUDED.district,
			updated_at = EXCLUDED.updated_at
	`,
		u.Username,
		u.PasswordHash,
		u.FullName,
		u.Email,
		u.IsEmailVerified,
		u.Phone,
		string(u.ContactPreference),
		u.EmergencyContact.Name,
		u.EmergencyContact.Email,
		u.EmergencyContact.Phone,
		u.City,
		u.District,
		u.CreatedAt,
		u.UpdatedAt,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE qr_tags SET status = $2, updated_at = $3 WHERE short_code = $1
	`, u.Username, string(tags.StatusAssigned), u.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return users.User{}, users.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	var u users.User
	var pref string
	if err := row.Scan(
		&u.Username,
		&u.PasswordHash,
		&u.FullName,
		&u.Email,
		&u.IsEmailVerified,
		&u.Phone,
		&pref,
		&u.EmergencyContact.Name,
		&u.EmergencyContact.Email,
		&u.EmergencyContact.Phone,
		&u.City,
		&u.District,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	u.ContactPreference = users.ContactPreference(pref)
	return u, nil
}

// Update no toca password_hash: eso pasa solo por UpdatePassword.
func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			full_name = $2,
			email = $3,
			is_email_verified = $4,
			phone = $5,
			contact_preference = $6,
			emergency_name = $7,
			emergency_email = $8,
			emergency_phone = $9,
			city = $10,
			district = $11,
			updated_at = $12
		WHERE username = $1
	`,
		u.Username,
		u.FullName,
		u.Email,
		u.IsEmailVerified,
		u.Phone,
		string(u.ContactPreference),
		u.EmergencyContact.Name,
		u.EmergencyContact.Email,
		u.EmergencyContact.Phone,
		u.City,
		u.District,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

// UpdatePassword cambia contraseña y PIN juntos.
func (r *UsersRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		UPDATE users SET password_hash = $2, updated_at = $3 WHERE username = $1
	`, username, hash, now)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return users.ErrNotFound
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE qr_tags SET pin_hash = $2, updated_at = $3 WHERE short_code = $1
	`, username, hash, now)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return tags.ErrNotFound
	}

	return tx.Commit()
}
