package usuarios

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory UsuarioStore used by unit tests and local runs
// without a database. It mirrors the PostgresStore semantics, including the
// unique-email guard on insert.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Usuario
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]Usuario)}
}

func (s *MemoryStore) FindByID(ctx context.Context, id uuid.UUID) (*Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.records[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = normalizeEmail(email)
	for _, u := range s.records {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Insert(ctx context.Context, u *Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.Email == u.Email {
			return NewEmailConflictError(u.Email)
		}
	}
	s.records[u.ID] = *u
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, u *Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[u.ID]; !ok {
		return NewNotFoundError(u.ID.String())
	}
	for _, existing := range s.records {
		if existing.ID != u.ID && existing.Email == u.Email {
			return NewEmailConflictError(u.Email)
		}
	}
	s.records[u.ID] = *u
	return nil
}

func (s *MemoryStore) ListActive(ctx context.Context) ([]*Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*Usuario
	for _, u := range s.records {
		if u.Ativo {
			copied := u
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DataCriacao.Before(result[j].DataCriacao)
	})
	return result, nil
}
