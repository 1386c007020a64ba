package mem

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	ds "github.com/gitpan/File-DigestStore"
	"github.com/gitpan/File-DigestStore/testutil"
)

func TestStore(t *testing.T) {
	data := []byte("mares eat oats and does eat oats and little lambs eat ivy")
	testutil.ReadWrite(context.Background(), t, New(), data)
}

func TestListIDs(t *testing.T) {
	ctx := context.Background()
	s := New()

	contents := []string{"wim", "wam", "wozzle"}
	want := make([]string, 0, len(contents))
	for _, content := range contents {
		id, _, err := s.Put(ctx, ds.Bytes(content))
		if err != nil {
			t.Fatal(err)
		}
		want = append(want, id)
	}
	sort.Strings(want)

	got := testutil.AllIDs(ctx, t, s)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAlternateHasher(t *testing.T) {
	ctx := context.Background()

	hasher, err := ds.NewHasher("SHA-256")
	if err != nil {
		t.Fatal(err)
	}
	s := NewWithHasher(hasher)

	id, _, err := s.Put(ctx, ds.Bytes{})
	if err != nil {
		t.Fatal(err)
	}
	const want = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if id != want {
		t.Errorf("got id %s, want %s", id, want)
	}
}
