package directory

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/userdeck/userdeck/internal/authz"
	"github.com/userdeck/userdeck/internal/platform/httpx"
	"github.com/userdeck/userdeck/internal/randomuser"
	"github.com/userdeck/userdeck/internal/shared"
)

// FetcherPort fetches the remote seed batch.
type FetcherPort interface {
	Fetch(ctx context.Context, count int) ([]randomuser.Person, error)
}

// DefaultSeedCount is the fixed batch size requested from the remote source.
const DefaultSeedCount = 100

// Service owns the in-memory record list and applies role-gated mutations to
// it. Every mutation replaces the snapshot wholesale and writes through to the
// repository before the new snapshot becomes visible, so readers observe
// either the pre- or post-mutation list.
type Service struct {
	repo      RepositoryPort
	fetcher   FetcherPort
	seedCount int
	logger    *slog.Logger
	validate  *validator.Validate

	loadGroup singleflight.Group

	mu     sync.RWMutex
	users  []User
	loaded bool
}

type validatedInput struct {
	First  string `validate:"required"`
	Last   string `validate:"required"`
	Email  string `validate:"required,email"`
	Gender string `validate:"required,oneof=male female other unset"`
	Role   string `validate:"required,oneof=Admin Editor Viewer"`
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, fetcher FetcherPort, seedCount int, logger *slog.Logger) *Service {
	if seedCount <= 0 {
		seedCount = DefaultSeedCount
	}
	return &Service{
		repo:      repo,
		fetcher:   fetcher,
		seedCount: seedCount,
		logger:    logger,
		validate:  validator.New(),
	}
}

// Load brings the store into memory. A persisted list is adopted verbatim;
// otherwise the seed batch is fetched once, tagged with fresh IDs and random
// roles, and persisted. Concurrent first loads share one flight. A remote
// failure with nothing persisted surfaces as ErrFetch and leaves the store
// unset; the caller may try again by reloading.
func (s *Service) Load(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	if s.loaded {
		users := s.users
		s.mu.RUnlock()
		return users, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.loadGroup.Do(usersKey, func() (any, error) {
		return s.loadOnce(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]User), nil
}

func (s *Service) loadOnce(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	if s.loaded {
		users := s.users
		s.mu.RUnlock()
		return users, nil
	}
	s.mu.RUnlock()

	users, exists, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		users, err = s.seed(ctx)
		if err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.users = users
	s.loaded = true
	s.mu.Unlock()
	return users, nil
}

func (s *Service) seed(ctx context.Context) ([]User, error) {
	people, err := s.fetcher.Fetch(ctx, s.seedCount)
	if err != nil {
		s.logger.Error("seed fetch failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	roles := shared.Roles()
	users := make([]User, 0, len(people))
	for _, p := range people {
		users = append(users, User{
			ID:     uuid.NewString(),
			Name:   Name{First: p.Name.First, Last: p.Name.Last},
			Email:  p.Email,
			Gender: parseGender(p.Gender),
			Role:   roles[rand.IntN(len(roles))],
		})
	}
	if err := s.repo.Replace(ctx, users); err != nil {
		return nil, err
	}
	s.logger.Info("directory seeded", slog.Int("count", len(users)))
	return users, nil
}

// Snapshot returns the current list without triggering a load. The returned
// slice is shared and must not be mutated.
func (s *Service) Snapshot() ([]User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users, s.loaded
}

// Add appends a new record. Requires the Admin capability; the record gets a
// fresh unique ID regardless of caller input.
func (s *Service) Add(ctx context.Context, actor shared.Role, input Input) (User, error) {
	if !authz.CanAdd(actor) {
		return User{}, ErrPermission
	}
	if err := s.validateInput(input); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return User{}, ErrLoading
	}

	user := User{
		ID:     uuid.NewString(),
		Name:   input.Name,
		Email:  input.Email,
		Gender: input.Gender,
		Role:   input.Role,
	}
	next := make([]User, len(s.users), len(s.users)+1)
	copy(next, s.users)
	next = append(next, user)

	if err := s.repo.Replace(ctx, next); err != nil {
		return User{}, err
	}
	s.users = next
	s.logger.Info("user added", slog.String("id", user.ID), slog.String("actor", string(actor)))
	return user, nil
}

// Update replaces the fields of the matching record with the patch. The ID is
// never touched. Requires the Admin or Editor capability; only Admin may
// change the record's role attribute.
func (s *Service) Update(ctx context.Context, actor shared.Role, id string, patch Input) (User, error) {
	if !authz.CanEdit(actor) {
		return User{}, ErrPermission
	}
	if err := s.validateInput(patch); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return User{}, ErrLoading
	}

	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return User{}, ErrNotFound
	}
	if patch.Role != s.users[idx].Role && !authz.CanChangeRole(actor) {
		return User{}, ErrPermission
	}

	next := make([]User, len(s.users))
	copy(next, s.users)
	next[idx] = User{
		ID:     s.users[idx].ID,
		Name:   patch.Name,
		Email:  patch.Email,
		Gender: patch.Gender,
		Role:   patch.Role,
	}

	if err := s.repo.Replace(ctx, next); err != nil {
		return User{}, err
	}
	s.users = next
	s.logger.Info("user updated", slog.String("id", id), slog.String("actor", string(actor)))
	return next[idx], nil
}

// Remove deletes the matching record. Requires the Admin capability.
func (s *Service) Remove(ctx context.Context, actor shared.Role, id string) error {
	if !authz.CanDelete(actor) {
		return ErrPermission
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrLoading
	}

	next := make([]User, 0, len(s.users))
	found := false
	for _, u := range s.users {
		if u.ID == id {
			found = true
			continue
		}
		next = append(next, u)
	}
	if !found {
		return ErrNotFound
	}

	if err := s.repo.Replace(ctx, next); err != nil {
		return err
	}
	s.users = next
	s.logger.Info("user removed", slog.String("id", id), slog.String("actor", string(actor)))
	return nil
}

func (s *Service) validateInput(input Input) error {
	checked := validatedInput{
		First:  input.Name.First,
		Last:   input.Name.Last,
		Email:  input.Email,
		Gender: string(input.Gender),
		Role:   string(input.Role),
	}
	if err := s.validate.Struct(checked); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return fmt.Errorf("field %s is invalid: %w", fieldErrs[0].Field(), httpx.ErrValidation)
		}
		return fmt.Errorf("%v: %w", err, httpx.ErrValidation)
	}
	return nil
}

func parseGender(raw string) Gender {
	switch Gender(raw) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(raw)
	case GenderUnset, "":
		return GenderUnset
	default:
		return GenderOther
	}
}
