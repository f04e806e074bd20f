// Package store defines the persistence interfaces and shared list
// parameters used by the storage backends.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/beadfanatic/server/internal/domain"
)

// Sentinel errors returned by store implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// ListParams controls offset pagination for list queries.
type ListParams struct {
	Limit  int
	Offset int
}

// Normalize clamps the parameters to sane bounds.
func (p ListParams) Normalize() ListParams {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 200 {
		p.Limit = 200
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// IdentificationStore records identify requests and serves the admin
// history view.
type IdentificationStore interface {
	RecordIdentification(ctx context.Context, ident *domain.Identification) error
	GetIdentification(ctx context.Context, id string) (*domain.Identification, error)
	ListIdentifications(ctx context.Context, params ListParams) ([]*domain.Identification, int64, error)
	DeleteIdentificationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	Close() error
}
