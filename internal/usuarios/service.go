package usuarios

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service implements the UsuarioService interface. Domain outcomes (absent
// record, duplicate email, rule violations) become typed errors here;
// handlers only map them to status codes.
type Service struct {
	store UsuarioStore
}

// NewService creates a new usuario service
func NewService(store UsuarioStore) *Service {
	return &Service{store: store}
}

// List returns the read shapes of all active records
func (s *Service) List(ctx context.Context) ([]*UsuarioResponse, error) {
	records, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*UsuarioResponse, len(records))
	for i, u := range records {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

// Get returns the read shape of an active record. Inactive records are
// invisible: both absent and soft-deleted ids report not found.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*UsuarioResponse, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Ativo {
		return nil, NewNotFoundError(id.String())
	}
	return u.ToResponse(), nil
}

// Create validates the payload, guards email uniqueness and persists a new
// active record. Nothing is persisted when validation fails or the email is
// already registered.
func (s *Service) Create(ctx context.Context, req *CreateUsuarioRequest) (*UsuarioResponse, error) {
	if violations := ValidateCreate(req, time.Now()); len(violations) > 0 {
		return nil, NewValidationError(violations)
	}

	// Fast-path uniqueness check; the unique index on email is the
	// authoritative guard when two creates race.
	existing, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewEmailConflictError(normalizeEmail(req.Email))
	}

	u := req.ToUsuario()
	u.ApplyCreate(time.Now().UTC())

	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u.ToResponse(), nil
}

// Update validates the payload and overwrites the mutable fields of an active
// record. Senha, ID and DataCriacao are never touched; DataAtualizacao is
// stamped on every update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateUsuarioRequest) (*UsuarioResponse, error) {
	if violations := ValidateUpdate(req, time.Now()); len(violations) > 0 {
		return nil, NewValidationError(violations)
	}

	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Ativo {
		return nil, NewNotFoundError(id.String())
	}

	email := normalizeEmail(req.Email)
	if email != u.Email {
		other, err := s.store.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != u.ID {
			return nil, NewEmailConflictError(email)
		}
	}

	req.ApplyTo(u)
	u.Touch(time.Now().UTC())

	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u.ToResponse(), nil
}

// Delete soft-deletes an active record. Deleting an already-inactive or
// nonexistent id reports not found rather than re-applying, so the second of
// two identical deletes fails.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil || !u.Ativo {
		return NewNotFoundError(id.String())
	}

	u.Deactivate()
	return s.store.Update(ctx, u)
}
