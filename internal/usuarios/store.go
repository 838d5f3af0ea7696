package usuarios

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// UsuarioSchema represents the usuarios table schema in PostgreSQL
type UsuarioSchema struct {
	bun.BaseModel `bun:"table:usuarios,alias:u"`

	ID              uuid.UUID  `bun:"id,pk,type:uuid"`
	Nome            string     `bun:"nome,notnull"`
	Email           string     `bun:"email,notnull,unique"`
	Senha           string     `bun:"senha,notnull"`
	DataNascimento  time.Time  `bun:"data_nascimento,notnull,type:date"`
	Telefone        *string    `bun:"telefone"`
	DataCriacao     time.Time  `bun:"data_criacao,notnull"`
	DataAtualizacao *time.Time `bun:"data_atualizacao,nullzero"`
	Ativo           bool       `bun:"ativo,notnull,default:true"`
}

// PostgresStore implements the UsuarioStore interface using PostgreSQL
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new PostgreSQL usuario store
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindByID retrieves a record by id, active or not
func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*Usuario, error) {
	schema := &UsuarioSchema{}
	err := s.db.NewSelect().Model(schema).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, NewStorageError("find_by_id", err)
	}
	return schemaToUsuario(schema), nil
}

// FindByEmail retrieves a record by normalized email, active or not.
// Emails are stored lowercase, so the lookup normalizes its argument too.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Usuario, error) {
	schema := &UsuarioSchema{}
	err := s.db.NewSelect().Model(schema).Where("email = ?", normalizeEmail(email)).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, NewStorageError("find_by_email", err)
	}
	return schemaToUsuario(schema), nil
}

// Insert persists a new record. The unique index on email is the
// authoritative uniqueness guard; a duplicate-key failure here surfaces as an
// email conflict even when the service pre-check raced another writer.
func (s *PostgresStore) Insert(ctx context.Context, u *Usuario) error {
	schema := usuarioToSchema(u)
	_, err := s.db.NewInsert().Model(schema).Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "usuarios_email_key") {
			return NewEmailConflictError(u.Email)
		}
		return NewStorageError("insert", err)
	}
	return nil
}

// Update overwrites an existing record
func (s *PostgresStore) Update(ctx context.Context, u *Usuario) error {
	schema := usuarioToSchema(u)
	result, err := s.db.NewUpdate().Model(schema).WherePK().Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "usuarios_email_key") {
			return NewEmailConflictError(u.Email)
		}
		return NewStorageError("update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return NewStorageError("update", err)
	}
	if rowsAffected == 0 {
		return NewNotFoundError(u.ID.String())
	}
	return nil
}

// ListActive retrieves all active records in creation order
func (s *PostgresStore) ListActive(ctx context.Context) ([]*Usuario, error) {
	var schemas []UsuarioSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Where("ativo = ?", true).
		Order("data_criacao ASC").
		Scan(ctx)
	if err != nil {
		return nil, NewStorageError("list_active", err)
	}

	result := make([]*Usuario, len(schemas))
	for i := range schemas {
		result[i] = schemaToUsuario(&schemas[i])
	}
	return result, nil
}

// Helper conversion functions

func schemaToUsuario(schema *UsuarioSchema) *Usuario {
	u := &Usuario{
		ID:              schema.ID,
		Nome:            schema.Nome,
		Email:           schema.Email,
		Senha:           schema.Senha,
		DataNascimento:  schema.DataNascimento,
		DataCriacao:     schema.DataCriacao,
		DataAtualizacao: schema.DataAtualizacao,
		Ativo:           schema.Ativo,
	}
	if schema.Telefone != nil {
		u.Telefone = *schema.Telefone
	}
	return u
}

func usuarioToSchema(u *Usuario) *UsuarioSchema {
	var telefone *string
	if u.Telefone != "" {
		telefone = &u.Telefone
	}
	return &UsuarioSchema{
		ID:              u.ID,
		Nome:            u.Nome,
		Email:           u.Email,
		Senha:           u.Senha,
		DataNascimento:  u.DataNascimento,
		Telefone:        telefone,
		DataCriacao:     u.DataCriacao,
		DataAtualizacao: u.DataAtualizacao,
		Ativo:           u.Ativo,
	}
}

// NewDB opens a PostgreSQL connection pool for the usuario store
func NewDB(databaseURL string, maxConnections int) (*bun.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	if maxConnections <= 0 {
		maxConnections = 10
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(databaseURL)))
	sqldb.SetMaxOpenConns(maxConnections)
	sqldb.SetMaxIdleConns(maxConnections / 2)
	sqldb.SetConnMaxLifetime(time.Hour)

	db := bun.NewDB(sqldb, pgdialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
