package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"cat-api/internal/domain/cats"
)

type catsRepo struct {
	mu   sync.RWMutex
	byID map[string]cats.Cat
}

func NewCatsRepo() cats.Repository {
	return &catsRepo{
		byID: make(map[string]cats.Cat),
	}
}

func (r *catsRepo) Create(ctx context.Context, c cats.Cat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("cat id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("cat already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *catsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}
	return c, nil
}

func (r *catsRepo) ListAll(ctx context.Context) ([]cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cats.Cat, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}

	sortByCreated(out)
	return out, nil
}

func (r *catsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cats.Cat, 0)
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			out = append(out, c)
		}
	}

	sortByCreated(out)
	return out, nil
}

func (r *catsRepo) FindInBox(ctx context.Context, bottomLeft, topRight cats.GeoPoint) ([]cats.Cat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cats.Cat, 0)
	for _, c := range r.byID {
		if cats.InBox(c.Location, bottomLeft, topRight) {
			out = append(out, c)
		}
	}
	return out, nil
}

// UpdateOwned resuelve lookup+mutación bajo el mismo write lock: no hay
// ventana para que un delete concurrente se meta entre el check de owner y
// la escritura.
func (r *catsRepo) UpdateOwned(ctx context.Context, id, ownerUserID string, in cats.UpdateInput, now time.Time) (cats.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok || c.OwnerUserID != ownerUserID {
		return cats.Cat{}, cats.ErrNotFound
	}

	applyPatch(&c, in.Name, in.Weight, in.BirthDate, now)
	r.byID[id] = c
	return c, nil
}

func (r *catsRepo) DeleteOwned(ctx context.Context, id, ownerUserID string) (cats.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok || c.OwnerUserID != ownerUserID {
		return cats.Cat{}, cats.ErrNotFound
	}

	delete(r.byID, id)
	return c, nil
}

func (r *catsRepo) UpdateByID(ctx context.Context, id string, in cats.AdminUpdateInput, now time.Time) (cats.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}

	applyPatch(&c, in.Name, in.Weight, in.BirthDate, now)
	if in.Owner != nil {
		c.OwnerUserID = *in.Owner
	}
	r.byID[id] = c
	return c, nil
}

func (r *catsRepo) DeleteByID(ctx context.Context, id string) (cats.Cat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return cats.Cat{}, cats.ErrNotFound
	}

	delete(r.byID, id)
	return c, nil
}

func applyPatch(c *cats.Cat, name *string, weight *float64, bd *time.Time, now time.Time) {
	if name != nil {
		c.Name = strings.TrimSpace(*name)
	}
	if weight != nil {
		c.Weight = *weight
	}
	if bd != nil {
		c.BirthDate = *bd
	}
	c.UpdatedAt = now
}

// Orden estable por created_at asc (solo para consistencia en dev).
func sortByCreated(items []cats.Cat) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
