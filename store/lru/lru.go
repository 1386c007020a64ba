// Package lru implements a digest store that acts as a least-recently-used
// read cache for a nested digest store.
package lru

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	ds "github.com/gitpan/File-DigestStore"
	"github.com/gitpan/File-DigestStore/store"
)

var _ ds.Store = &Store{}

// Store implements a memory-based least-recently-used cache for a
// digest store. Objects are immutable, so a cache entry can never go
// stale. Writes pass through to the nested store.
type Store struct {
	c *lru.Cache // id -> []byte
	s ds.Store
}

// New produces a new Store backed by `s` and caching up to `size` objects.
func New(s ds.Store, size int) (*Store, error) {
	c, err := lru.New(size)
	return &Store{s: s, c: c}, err
}

// Get gets the content of the object with the given id.
func (s *Store) Get(ctx context.Context, id string) ([]byte, error) {
	if got, ok := s.c.Get(id); ok {
		return got.([]byte), nil
	}
	data, err := s.s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.c.Add(id, data)
	return data, nil
}

// Put adds the content of b to the nested store if it wasn't already present.
func (s *Store) Put(ctx context.Context, b ds.Blob) (string, int64, error) {
	id, n, err := s.s.Put(ctx, b)
	if err != nil {
		return id, n, err
	}
	s.c.Add(id, append([]byte(nil), b.Bytes()...))
	return id, n, nil
}

// Has tells whether an object with the given id is in the store.
func (s *Store) Has(ctx context.Context, id string) (bool, error) {
	if s.c.Contains(id) {
		return true, nil
	}
	return s.s.Has(ctx, id)
}

// ListIDs calls f for each object id in the nested store.
func (s *Store) ListIDs(ctx context.Context, f func(string) error) error {
	return s.s.ListIDs(ctx, f)
}

func init() {
	store.Register("lru", func(ctx context.Context, conf map[string]interface{}) (ds.Store, error) {
		sizeVal, ok := conf["size"]
		if !ok {
			return nil, errors.New(`missing "size" parameter`)
		}
		size, err := store.Int(sizeVal)
		if err != nil {
			return nil, errors.Wrap(err, `parsing "size" parameter`)
		}
		nested, ok := conf["nested"].(map[string]interface{})
		if !ok {
			return nil, errors.New(`missing "nested" parameter`)
		}
		nestedType, ok := nested["type"].(string)
		if !ok {
			return nil, errors.New(`"nested" parameter missing "type"`)
		}
		nestedStore, err := store.Create(ctx, nestedType, nested)
		if err != nil {
			return nil, errors.Wrap(err, "creating nested store")
		}
		return New(nestedStore, size)
	})
}
