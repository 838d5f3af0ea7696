package usuarios

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for data_nascimento values.
const DateLayout = "2006-01-02"

// Usuario represents a user record in the system.
// Senha is never serialized outbound; Ativo is the soft-delete tombstone.
type Usuario struct {
	ID              uuid.UUID  `json:"id"`
	Nome            string     `json:"nome"`
	Email           string     `json:"email"`
	Senha           string     `json:"-"`
	DataNascimento  time.Time  `json:"data_nascimento"`
	Telefone        string     `json:"telefone,omitempty"`
	DataCriacao     time.Time  `json:"data_criacao"`
	DataAtualizacao *time.Time `json:"data_atualizacao,omitempty"`
	Ativo           bool       `json:"ativo"`
}

// CreateUsuarioRequest represents the request to create a usuario
type CreateUsuarioRequest struct {
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	Senha          string `json:"senha"`
	DataNascimento string `json:"data_nascimento"`
	Telefone       string `json:"telefone,omitempty"`
}

// UpdateUsuarioRequest represents the request to update a usuario.
// There is deliberately no senha field: the password is write-once at creation.
type UpdateUsuarioRequest struct {
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	DataNascimento string `json:"data_nascimento"`
	Telefone       string `json:"telefone,omitempty"`
}

// UsuarioResponse is the read shape released to external callers.
// It carries every entity field except Senha.
type UsuarioResponse struct {
	ID              uuid.UUID  `json:"id"`
	Nome            string     `json:"nome"`
	Email           string     `json:"email"`
	DataNascimento  string     `json:"data_nascimento"`
	Telefone        string     `json:"telefone,omitempty"`
	DataCriacao     time.Time  `json:"data_criacao"`
	DataAtualizacao *time.Time `json:"data_atualizacao,omitempty"`
	Ativo           bool       `json:"ativo"`
}

// ToUsuario converts the request to a Usuario, applying the create mapping:
// Nome, Senha, DataNascimento and Telefone are copied verbatim, Email is
// lowercased. ID, DataCriacao, DataAtualizacao and Ativo are left for the
// lifecycle transition to fill in. The payload must have passed validation;
// an unparseable birth date maps to the zero value.
func (r *CreateUsuarioRequest) ToUsuario() *Usuario {
	nascimento, _ := time.Parse(DateLayout, r.DataNascimento)
	return &Usuario{
		Nome:           r.Nome,
		Email:          normalizeEmail(r.Email),
		Senha:          r.Senha,
		DataNascimento: nascimento,
		Telefone:       r.Telefone,
	}
}

// ApplyTo copies the update mapping onto an existing record: Nome,
// DataNascimento and Telefone verbatim, Email lowercased. ID, DataCriacao and
// Senha are never touched.
func (r *UpdateUsuarioRequest) ApplyTo(u *Usuario) {
	nascimento, _ := time.Parse(DateLayout, r.DataNascimento)
	u.Nome = r.Nome
	u.Email = normalizeEmail(r.Email)
	u.DataNascimento = nascimento
	u.Telefone = r.Telefone
}

// ToResponse maps a stored record to its read shape.
func (u *Usuario) ToResponse() *UsuarioResponse {
	return &UsuarioResponse{
		ID:              u.ID,
		Nome:            u.Nome,
		Email:           u.Email,
		DataNascimento:  u.DataNascimento.Format(DateLayout),
		Telefone:        u.Telefone,
		DataCriacao:     u.DataCriacao,
		DataAtualizacao: u.DataAtualizacao,
		Ativo:           u.Ativo,
	}
}

// Lifecycle transitions. A record is either active or inactive; inactive is
// terminal, there is no reactivation path.

// ApplyCreate performs the create transition: assign a fresh ID, stamp
// DataCriacao, leave DataAtualizacao unset and mark the record active.
func (u *Usuario) ApplyCreate(now time.Time) {
	u.ID = uuid.New()
	u.DataCriacao = now
	u.DataAtualizacao = nil
	u.Ativo = true
}

// Touch stamps DataAtualizacao for the update transition.
func (u *Usuario) Touch(now time.Time) {
	u.DataAtualizacao = &now
}

// Deactivate performs the delete transition, flipping the tombstone flag.
// The record stays in storage.
func (u *Usuario) Deactivate() {
	u.Ativo = false
}
