package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"pet-qr-tags/internal/domain/pets"
	"pet-qr-tags/internal/platform/geo"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_username,
	name, species, custom_type,
	photo_url, features, size_info, temperament, health_warning, vet_info,
	microchip,
	lost_active, lost_date, lost_lat, lost_lng, lost_message,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	args, err := petArgs(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`, args...)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	args, err := petArgs(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $3,
			species = $4,
			custom_type = $5,
			photo_url = $6,
			features = $7,
			size_info = $8,
			temperament = $9,
			health_warning = $10,
			vet_info = $11,
			microchip = $12,
			lost_active = $13,
			lost_date = $14,
			lost_lat = $15,
			lost_lng = $16,
			lost_message = $17,
			updated_at = $18
		WHERE id = $1 AND owner_username = $2
	`, append(args[:17:17], args[18])...)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	return scanPet(row)
}

func (r *PetsRepo) GetByOwner(ctx context.Context, ownerUsername string) (pets.Pet, error) {
	ownerUsername = strings.TrimSpace(ownerUsername)
	if ownerUsername == "" {
		return pets.Pet{}, pets.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE owner_username = $1`, ownerUsername)
	return scanPet(row)
}

// Los campos con visibilidad van como JSONB {"value","is_public"}.
func petArgs(p pets.Pet) ([]any, error) {
	fields := []pets.Field[string]{p.Name, p.PhotoURL, p.Features, p.SizeInfo, p.Temperament, p.HealthWarning, p.VetInfo}
	encoded := make([]string, len(fields))
	for i, f := range fields {
		b, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		encoded[i] = string(b)
	}

	ls := p.LostStatus
	var lat, lng *float64
	if ls.LastSeenLocation != nil {
		lat, lng = &ls.LastSeenLocation.Lat, &ls.LastSeenLocation.Lng
	}

	return []any{
		p.ID,
		p.OwnerUsername,
		encoded[0],
		string(p.Type.Standard),
		p.Type.Custom,
		encoded[1],
		encoded[2],
		encoded[3],
		encoded[4],
		encoded[5],
		encoded[6],
		p.Microchip,
		ls.IsActive,
		toNullTime(ls.LostDate),
		toNullFloat(lat),
		toNullFloat(lng),
		ls.Message,
		p.CreatedAt,
		p.UpdatedAt,
	}, nil
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var species, custom string
	var raw [7][]byte
	var lostDate sql.NullTime
	var lat, lng sql.NullFloat64

	if err := row.Scan(
		&p.ID,
		&p.OwnerUsername,
		&raw[0],
		&species,
		&custom,
		&raw[1],
		&raw[2],
		&raw[3],
		&raw[4],
		&raw[5],
		&raw[6],
		&p.Microchip,
		&p.LostStatus.IsActive,
		&lostDate,
		&lat,
		&lng,
		&p.LostStatus.Message,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}

	targets := []*pets.Field[string]{&p.Name, &p.PhotoURL, &p.Features, &p.SizeInfo, &p.Temperament, &p.HealthWarning, &p.VetInfo}
	for i, dst := range targets {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return pets.Pet{}, err
		}
	}

	if pets.Species(species) == pets.SpeciesOther {
		p.Type = pets.CustomKind(custom)
	} else {
		p.Type = pets.StandardKind(pets.Species(species))
	}

	p.LostStatus.LostDate = fromNullTime(lostDate)
	if lat.Valid && lng.Valid {
		p.LostStatus.LastSeenLocation = &geo.Point{Lat: lat.Float64, Lng: lng.Float64}
	}
	return p, nil
}
