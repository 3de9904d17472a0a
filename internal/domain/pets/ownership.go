package pets

import (
	"context"
	"errors"
)

// IsLost expone solo el flag de modo perdido del dueño.
// Se usa para evitar ciclos de imports entre módulos (tags <-> pets).
func (s *Service) IsLost(ctx context.Context, ownerUsername string) (bool, error) {
	p, err := s.repo.GetByOwner(ctx, ownerUsername)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.LostStatus.IsActive, nil
}
