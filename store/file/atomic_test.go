package file

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	ds "github.com/gitpan/File-DigestStore"
)

func TestConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	data := bytes.Repeat([]byte("abcdefgh"), 1<<14)

	// Independent instances sharing the root, as separate processes would.
	const writers = 16
	stores := make([]*Store, writers)
	for i := range stores {
		stores[i] = newTestStore(t, Config{Root: root})
	}

	ids := make([]string, writers)
	var g errgroup.Group
	for i := range stores {
		i := i
		g.Go(func() error {
			id, _, err := stores[i].Put(ctx, ds.Bytes(data))
			ids[i] = id
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	for i := 1; i < writers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("writer %d got id %s, writer 0 got %s", i, ids[i], ids[0])
		}
	}

	got, err := stores[0].Get(ctx, ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("content mismatch after racing writers")
	}

	// Every racer renames its temp file onto the target,
	// so the leaf directory holds exactly the one object.
	path, err := stores[0].Path(ids[0])
	if err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != ids[0] {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("leaf directory holds %v, want just %s", names, ids[0])
	}
}

func TestReadersNeverSeePartialWrites(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	data := bytes.Repeat([]byte("0123456789abcdef"), 1<<14)

	hasher, err := ds.NewHasher("")
	if err != nil {
		t.Fatal(err)
	}
	id := hasher.Sum(data)

	writer := newTestStore(t, Config{Root: root})
	reader := newTestStore(t, Config{Root: root})

	var g errgroup.Group
	g.Go(func() error {
		_, _, err := writer.Put(ctx, ds.Bytes(data))
		return err
	})
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			deadline := time.Now().Add(10 * time.Second)
			for time.Now().Before(deadline) {
				got, err := reader.Get(ctx, id)
				if errors.Is(err, ds.ErrNotFound) {
					continue
				}
				if err != nil {
					return err
				}
				// The object is visible; the rename must have
				// made it visible complete.
				if !bytes.Equal(got, data) {
					t.Errorf("reader saw %d of %d bytes", len(got), len(data))
				}
				return nil
			}
			// The writer failed; its error is reported by Wait.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestWriteIfAbsentPreservesExisting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, Config{})

	data := []byte("write once")
	id, _, err := s.Put(ctx, ds.Bytes(data))
	if err != nil {
		t.Fatal(err)
	}
	path, err := s.Path(id)
	if err != nil {
		t.Fatal(err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err = s.Put(ctx, ds.Bytes(data)); err != nil {
		t.Fatal(err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("re-store rewrote an existing object")
	}
	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("content changed after re-store")
	}
}
