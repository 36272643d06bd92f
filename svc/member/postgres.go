package member

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/giftshop/memberauth/pkg/auth"
	"github.com/giftshop/memberauth/pkg/pg"
)

// DB is the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps members in the members table. The unique index on
// email turns concurrent duplicate inserts into auth.ErrDuplicateEmail.
type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	findByEmailQuery   = `SELECT id, email, password, created_at FROM members WHERE email = $1`
	existsByEmailQuery = `SELECT EXISTS (SELECT 1 FROM members WHERE email = $1)`
	insertMemberQuery  = `INSERT INTO members (id, email, password, created_at) VALUES ($1, $2, $3, $4)`
)

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*auth.Member, error) {
	var m auth.Member
	err := s.db.QueryRow(ctx, findByEmailQuery, email).Scan(&m.ID, &m.Email, &m.Password, &m.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrMemberNotFound
		}
		return nil, fmt.Errorf("select member: %w", err)
	}
	return &m, nil
}

func (s *PostgresStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, existsByEmailQuery, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check member: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Save(ctx context.Context, m *auth.Member) (*auth.Member, error) {
	if _, err := s.db.Exec(ctx, insertMemberQuery, m.ID, m.Email, m.Password, m.CreatedAt); err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, auth.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}
	saved := *m
	return &saved, nil
}

var _ auth.MemberStore = (*PostgresStore)(nil)
