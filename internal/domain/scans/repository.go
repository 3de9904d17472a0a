package scans

import "context"

type Repository interface {
	Append(ctx context.Context, e Entry) error
	// Recent devuelve las últimas entradas, la más nueva primero.
	Recent(ctx context.Context, tagCode string, limit int) ([]Entry, error)
}
