package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-qr-tags/internal/domain/tags"

	"github.com/jackc/pgx/v5/pgconn"
)

type TagsRepo struct {
	db *sql.DB
}

func NewTagsRepo(db *sql.DB) *TagsRepo {
	return &TagsRepo{db: db}
}

func (r *TagsRepo) Create(ctx context.Context, t tags.Tag) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO qr_tags (short_code, pin_hash, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		t.ShortCode,
		t.PINHash,
		string(t.Status),
		t.CreatedAt,
		t.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return tags.ErrAlreadyExists
	}
	return err
}

func (r *TagsRepo) GetByCode(ctx context.Context, code string) (tags.Tag, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return tags.Tag{}, tags.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT short_code, pin_hash, status, created_at, updated_at
		FROM qr_tags
		WHERE short_code = $1
	`, code)
	return scanTag(row)
}

func (r *TagsRepo) SetStatus(ctx context.Context, code string, status tags.Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE qr_tags
		SET status = $2, updated_at = $3
		WHERE short_code = $1
	`, code, string(status), time.Now().UTC())
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return tags.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTag(row rowScanner) (tags.Tag, error) {
	var t tags.Tag
	var status string
	if err := row.Scan(&t.ShortCode, &t.PINHash, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tags.Tag{}, tags.ErrNotFound
		}
		return tags.Tag{}, err
	}
	t.Status = tags.Status(status)
	return t, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
