package memory

import (
	"context"

	"pet-qr-tags/internal/domain/scans"
)

type scanRepo struct {
	db *DB
}

func NewScanRepo(db *DB) scans.Repository {
	return &scanRepo{db: db}
}

func (r *scanRepo) Append(ctx context.Context, e scans.Entry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.scans = append(r.db.scans, e)
	return nil
}

// Recent recorre desde el final: el slice ya está en orden de llegada.
func (r *scanRepo) Recent(ctx context.Context, tagCode string, limit int) ([]scans.Entry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]scans.Entry, 0)
	for i := len(r.db.scans) - 1; i >= 0 && len(out) < limit; i-- {
		if r.db.scans[i].TagCode == tagCode {
			out = append(out, r.db.scans[i])
		}
	}
	return out, nil
}
