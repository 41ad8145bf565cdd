package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"cat-api/internal/domain/users"
)

type usersRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUsersRepo() users.Repository {
	return &usersRepo{
		byID: make(map[string]users.User),
	}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) ListAll(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *usersRepo) UpdateByID(ctx context.Context, id string, in users.UpdateInput, now time.Time) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}

	if in.Username != nil {
		u.Username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.PasswordHash != nil {
		u.PasswordHash = *in.PasswordHash
	}
	u.UpdatedAt = now

	r.byID[id] = u
	return u, nil
}

func (r *usersRepo) DeleteByID(ctx context.Context, id string) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}

	delete(r.byID, id)
	return u, nil
}
