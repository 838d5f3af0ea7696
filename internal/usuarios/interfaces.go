package usuarios

import (
	"context"

	"github.com/google/uuid"
)

// UsuarioStore defines the interface for usuario storage operations.
// Lookups return (nil, nil) when no record matches; visibility decisions
// belong to the service, not the store.
type UsuarioStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Usuario, error)
	FindByEmail(ctx context.Context, email string) (*Usuario, error)
	Insert(ctx context.Context, u *Usuario) error
	Update(ctx context.Context, u *Usuario) error
	ListActive(ctx context.Context) ([]*Usuario, error)
}

// UsuarioService defines the interface for usuario service operations
type UsuarioService interface {
	List(ctx context.Context) ([]*UsuarioResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*UsuarioResponse, error)
	Create(ctx context.Context, req *CreateUsuarioRequest) (*UsuarioResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateUsuarioRequest) (*UsuarioResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
