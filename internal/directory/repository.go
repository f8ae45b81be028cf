package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// usersKey is the durable key holding the JSON array of records, rehydrated
// verbatim on load.
const usersKey = "users"

// RepositoryPort persists the whole record list as one snapshot. Mutations
// always write the post-mutation list in a single operation so a reader never
// observes a partially applied state.
type RepositoryPort interface {
	// Load returns the persisted list and whether one exists at all. An
	// absent list is not an error; it means the store was never seeded.
	Load(ctx context.Context) ([]User, bool, error)
	// Replace persists the given list, overwriting any previous snapshot.
	Replace(ctx context.Context, users []User) error
}

// RedisRepository stores the record list as a JSON array under a single key.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository constructs a repository backed by Redis.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// Load returns the persisted list verbatim.
func (r *RedisRepository) Load(ctx context.Context) ([]User, bool, error) {
	payload, err := r.client.Get(ctx, usersKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("directory: load users: %w", err)
	}
	var users []User
	if err := json.Unmarshal(payload, &users); err != nil {
		return nil, false, fmt.Errorf("directory: decode users: %w", err)
	}
	return users, true, nil
}

// Replace writes the whole list in one SET.
func (r *RedisRepository) Replace(ctx context.Context, users []User) error {
	payload, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("directory: encode users: %w", err)
	}
	if err := r.client.Set(ctx, usersKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("directory: persist users: %w", err)
	}
	return nil
}
