// Package logging implements a digest store that delegates everything to a
// nested store, logging operations as they happen.
package logging

import (
	"context"
	"log"

	"github.com/pkg/errors"

	ds "github.com/gitpan/File-DigestStore"
	"github.com/gitpan/File-DigestStore/store"
)

var _ ds.Store = &Store{}

type Store struct {
	s ds.Store
}

func New(s ds.Store) *Store {
	return &Store{s: s}
}

func (s *Store) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := s.s.Get(ctx, id)
	if err != nil {
		log.Printf("ERROR Get %s: %s", id, err)
	} else {
		log.Printf("Get %s (%d bytes)", id, len(data))
	}
	return data, err
}

func (s *Store) Put(ctx context.Context, b ds.Blob) (string, int64, error) {
	id, n, err := s.s.Put(ctx, b)
	if err != nil {
		log.Printf("ERROR in Put: %s", err)
	} else {
		log.Printf("Put %s (%d bytes)", id, n)
	}
	return id, n, err
}

func (s *Store) Has(ctx context.Context, id string) (bool, error) {
	ok, err := s.s.Has(ctx, id)
	if err != nil {
		log.Printf("ERROR Has %s: %s", id, err)
	} else {
		log.Printf("Has %s: %v", id, ok)
	}
	return ok, err
}

func (s *Store) ListIDs(ctx context.Context, f func(string) error) error {
	log.Print("ListIDs")
	return s.s.ListIDs(ctx, func(id string) error {
		err := f(id)
		if err != nil {
			log.Printf("  ERROR in ListIDs: %s: %s", id, err)
		} else {
			log.Printf("  ListIDs: %s", id)
		}
		return err
	})
}

func init() {
	store.Register("logging", func(ctx context.Context, conf map[string]interface{}) (ds.Store, error) {
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
		return New(nestedStore), nil
	})
}
