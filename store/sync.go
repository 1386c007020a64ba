package store

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	ds "github.com/gitpan/File-DigestStore"
)

// Sync synchronizes two or more stores.
// It runs ListIDs on all input stores concurrently,
// then copies each object found in some but not all stores
// to the stores where it's missing.
//
// Content addressing makes redundant copies harmless,
// so Sync is safe to rerun after a partial failure.
func Sync(ctx context.Context, stores []ds.Store) error {
	if len(stores) < 2 {
		return nil
	}

	have := make([]map[string]bool, len(stores))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range stores {
		i, s := i, s
		have[i] = make(map[string]bool)
		g.Go(func() error {
			return s.ListIDs(gctx, func(id string) error {
				have[i][id] = true
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "listing stores")
	}

	src := make(map[string]int) // id -> index of a store that has it
	for i, ids := range have {
		for id := range ids {
			if _, ok := src[id]; !ok {
				src[id] = i
			}
		}
	}

	for id, from := range src {
		var blob ds.Blob
		for i, s := range stores {
			if have[i][id] {
				continue
			}
			if blob == nil {
				data, err := stores[from].Get(ctx, id)
				if err != nil {
					return errors.Wrapf(err, "getting %s", id)
				}
				blob = ds.Bytes(data)
			}
			if _, _, err := s.Put(ctx, blob); err != nil {
				return errors.Wrapf(err, "storing %s", id)
			}
		}
	}
	return nil
}
