package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-qr-tags/internal/domain/scans"
	"pet-qr-tags/internal/platform/geo"
)

type ScansRepo struct {
	db *sql.DB
}

func NewScansRepo(db *sql.DB) *ScansRepo {
	return &ScansRepo{db: db}
}

func (r *ScansRepo) Append(ctx context.Context, e scans.Entry) error {
	var lat, lng, acc *float64
	if e.Location != nil {
		lat, lng, acc = &e.Location.Lat, &e.Location.Lng, &e.Location.Accuracy
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scan_logs (
			id, tag_code, scanned_at,
			lat, lng, accuracy,
			user_agent, platform, language, screen_size, referrer,
			ip
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		e.ID,
		e.TagCode,
		e.ScannedAt,
		toNullFloat(lat),
		toNullFloat(lng),
		toNullFloat(acc),
		e.Device.UserAgent,
		e.Device.Platform,
		e.Device.Language,
		e.Device.ScreenSize,
		e.Device.Referrer,
		e.IP,
	)
	return err
}

func (r *ScansRepo) Recent(ctx context.Context, tagCode string, limit int) ([]scans.Entry, error) {
	tagCode = strings.TrimSpace(tagCode)
	if tagCode == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = scans.DefaultLimit
	}
	if limit > 200 {
		limit = 200
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, tag_code, scanned_at,
			lat, lng, accuracy,
			user_agent, platform, language, screen_size, referrer,
			ip
		FROM scan_logs
		WHERE tag_code = $1
		ORDER BY scanned_at DESC
		LIMIT $2
	`, tagCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]scans.Entry, 0)
	for rows.Next() {
		var e scans.Entry
		var lat, lng, acc sql.NullFloat64

		if err := rows.Scan(
			&e.ID,
			&e.TagCode,
			&e.ScannedAt,
			&lat,
			&lng,
			&acc,
			&e.Device.UserAgent,
			&e.Device.Platform,
			&e.Device.Language,
			&e.Device.ScreenSize,
			&e.Device.Referrer,
			&e.IP,
		); err != nil {
			return nil, err
		}

		if lat.Valid && lng.Valid {
			e.Location = &geo.Fix{Point: geo.Point{Lat: lat.Float64, Lng: lng.Float64}, Accuracy: acc.Float64}
		}
		out = append(out, e)
	}

	return out, rows.Err()
}
