// Package testutil provides helpers for testing digest store implementations.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	ds "github.com/gitpan/File-DigestStore"
)

// ReadWrite permits testing a Store implementation
// by writing some data to it, writing it again,
// then reading it back out to make sure it's the same.
// It also checks the store's handling of unknown ids,
// the empty id, and the nil blob.
func ReadWrite(ctx context.Context, t *testing.T, store ds.Store, data []byte) {
	id, n, err := store.Put(ctx, ds.Bytes(data))
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(data)) {
		t.Errorf("got length %d, want %d", n, len(data))
	}

	id2, n2, err := store.Put(ctx, ds.Bytes(data))
	if err != nil {
		t.Fatalf("storing same content again: %s", err)
	}
	if id2 != id {
		t.Errorf("storing same content again: got id %s, want %s", id2, id)
	}
	if n2 != n {
		t.Errorf("storing same content again: got length %d, want %d", n2, n)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %d bytes, want %d (content mismatch)", len(got), len(data))
	}

	ok, err := store.Has(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("Has(%s) is false after Put", id)
	}

	bogus := strings.Repeat("f", len(id))
	ok, err = store.Has(ctx, bogus)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("Has(%s) is true for an id never stored", bogus)
	}

	_, err = store.Get(ctx, bogus)
	if !errors.Is(err, ds.ErrNotFound) {
		t.Errorf("Get of an unknown id: got error %v, want ErrNotFound", err)
	}

	_, err = store.Get(ctx, "")
	if !errors.Is(err, ds.ErrEmptyID) {
		t.Errorf("Get of the empty id: got error %v, want ErrEmptyID", err)
	}

	_, _, err = store.Put(ctx, nil)
	if !errors.Is(err, ds.ErrNoContent) {
		t.Errorf("Put of a nil blob: got error %v, want ErrNoContent", err)
	}
}

// AllIDs returns every id in store.
func AllIDs(ctx context.Context, t *testing.T, store ds.Store) []string {
	var ids []string
	err := store.ListIDs(ctx, func(id string) error {
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return ids
}
