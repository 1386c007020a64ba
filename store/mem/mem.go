// Package mem implements an in-memory digest store.
package mem

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	ds "github.com/gitpan/File-DigestStore"
	"github.com/gitpan/File-DigestStore/store"
)

var _ ds.Store = &Store{}

// Store is a memory-based implementation of a digest store.
type Store struct {
	hasher ds.Hasher

	mu    sync.Mutex
	blobs map[string][]byte
}

// New produces a new Store hashing with ds.DefaultAlgorithm.
func New() *Store {
	hasher, err := ds.NewHasher("")
	if err != nil {
		// The default algorithm is always registered.
		panic(err)
	}
	return NewWithHasher(hasher)
}

// NewWithHasher produces a new Store hashing with the given Hasher.
func NewWithHasher(hasher ds.Hasher) *Store {
	return &Store{hasher: hasher, blobs: make(map[string][]byte)}
}

// Put adds the content of b to the store if it wasn't already present.
func (s *Store) Put(_ context.Context, b ds.Blob) (string, int64, error) {
	if b == nil {
		return "", 0, ds.ErrNoContent
	}
	data := b.Bytes()
	id := s.hasher.Sum(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[id]; !ok {
		stored := make([]byte, len(data))
		copy(stored, data)
		s.blobs[id] = stored
	}
	return id, int64(len(data)), nil
}

// Get gets the content of the object with the given id.
func (s *Store) Get(_ context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ds.ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.blobs[id]
	if !ok {
		return nil, ds.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Has tells whether an object with the given id is in the store.
func (s *Store) Has(_ context.Context, id string) (bool, error) {
	if id == "" {
		return false, ds.ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.blobs[id]
	return ok, nil
}

// ListIDs calls f for each object id in the store, in lexicographic order.
func (s *Store) ListIDs(ctx context.Context, f func(string) error) error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.blobs))
	for id := range s.blobs {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Strings(ids)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f(id); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	store.Register("mem", func(_ context.Context, conf map[string]interface{}) (ds.Store, error) {
		if alg, ok := conf["algorithm"].(string); ok {
			hasher, err := ds.NewHasher(alg)
			if err != nil {
				return nil, errors.Wrap(err, "constructing hasher")
			}
			return NewWithHasher(hasher), nil
		}
		return New(), nil
	})
}
