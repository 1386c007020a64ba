package sqlite3

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gitpan/File-DigestStore/testutil"
)

func TestStore(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	store, err := New(ctx, db, nil)
	if err != nil {
		t.Fatal(err)
	}

	data := []byte("mares eat oats and does eat oats and little lambs eat ivy")
	testutil.ReadWrite(ctx, t, store, data)
}
