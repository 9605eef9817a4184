package records

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/cadastro/internal/storage"
	"github.com/google/uuid"
)

// Repository owns the record collection stored under one key.
//
// Every mutation loads the whole collection, changes it and writes it back.
// A mutex serializes those passes within the process. When the store is a
// storage.Updater the pass also runs as one atomic update in the backend.
type Repository struct {
	mu    sync.Mutex
	store storage.Store
	key   string
	newID func() string
}

func NewRepository(store storage.Store, key string) *Repository {
	return &Repository{store: store, key: key, newID: uuid.NewString}
}

// LoadAll returns the collection in stored order.
func (r *Repository) LoadAll(ctx context.Context) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// FindByID returns the record with id or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id string) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recs, err := r.load(ctx)
	if err != nil {
		return Record{}, err
	}
	i := indexOf(recs, id)
	if i < 0 {
		return Record{}, ErrNotFound
	}
	return recs[i], nil
}

// Create appends rec under a freshly generated id. Any id on rec is ignored.
func (r *Repository) Create(ctx context.Context, rec Record) (Record, error) {
	rec.ID = r.newID()
	err := r.mutate(ctx, func(recs []Record) ([]Record, error) {
		return append(recs, rec), nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// UpdateByID removes the record with id and appends rec in its place at the
// end of the collection, keeping id. ErrNotFound leaves storage untouched.
func (r *Repository) UpdateByID(ctx context.Context, id string, rec Record) (Record, error) {
	rec.ID = id
	err := r.mutate(ctx, func(recs []Record) ([]Record, error) {
		i := indexOf(recs, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		return append(slices.Delete(recs, i, i+1), rec), nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// DeleteByID removes the record with id, or returns ErrNotFound.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	return r.mutate(ctx, func(recs []Record) ([]Record, error) {
		i := indexOf(recs, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		return slices.Delete(recs, i, i+1), nil
	})
}

func (r *Repository) load(ctx context.Context) ([]Record, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return decodeCollection(raw)
}

// mutate applies fn to the stored collection and persists the result.
// Nothing is written when fn or decoding fails. Callers must not hold mu.
func (r *Repository) mutate(ctx context.Context, fn func([]Record) ([]Record, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	apply := func(raw []byte) ([]byte, error) {
		recs, err := decodeCollection(raw)
		if err != nil {
			return nil, err
		}
		next, err := fn(recs)
		if err != nil {
			return nil, err
		}
		return encodeCollection(next)
	}

	if u, ok := r.store.(storage.Updater); ok {
		return u.Update(ctx, r.key, apply)
	}

	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}
	out, err := apply(raw)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, out); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

func indexOf(recs []Record, id string) int {
	return slices.IndexFunc(recs, func(rec Record) bool { return rec.ID == id })
}
