package directory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/userdeck/userdeck/internal/platform/db"
	"github.com/userdeck/userdeck/internal/shared"
)

// PostgresRepository stores one row per record. Replace swaps the whole
// snapshot inside a transaction to keep the same all-or-nothing contract as
// the key-value store.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a repository backed by PostgreSQL.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Load returns all persisted records in insertion order.
func (r *PostgresRepository) Load(ctx context.Context) ([]User, bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, first_name, last_name, email, gender, role FROM directory_users ORDER BY position`)
	if err != nil {
		return nil, false, fmt.Errorf("directory: load users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var gender, role string
		if err := rows.Scan(&u.ID, &u.Name.First, &u.Name.Last, &u.Email, &gender, &role); err != nil {
			return nil, false, fmt.Errorf("directory: scan user: %w", err)
		}
		u.Gender = Gender(gender)
		u.Role = shared.Role(role)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("directory: load users: %w", err)
	}
	if len(users) == 0 {
		// Distinguish "never seeded" from "seeded then emptied".
		var seeded bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM directory_meta WHERE key = 'seeded')`).Scan(&seeded); err != nil {
			return nil, false, fmt.Errorf("directory: check seeded: %w", err)
		}
		return nil, seeded, nil
	}
	return users, true, nil
}

// Replace swaps the stored snapshot for the given list.
func (r *PostgresRepository) Replace(ctx context.Context, users []User) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM directory_users`); err != nil {
			return fmt.Errorf("directory: clear users: %w", err)
		}
		batch := &pgx.Batch{}
		for i, u := range users {
			batch.Queue(
				`INSERT INTO directory_users (id, first_name, last_name, email, gender, role, position) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				u.ID, u.Name.First, u.Name.Last, u.Email, string(u.Gender), string(u.Role), i,
			)
		}
		batch.Queue(`INSERT INTO directory_meta (key) VALUES ('seeded') ON CONFLICT (key) DO NOTHING`)
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("directory: insert user: %w", err)
			}
		}
		return results.Close()
	})
}
