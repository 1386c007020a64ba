package pg

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/gitpan/File-DigestStore/testutil"
)

const connVar = "DS_PG_TESTING_CONN"

func TestStore(t *testing.T) {
	withStore(t, func(ctx context.Context, store *Store) {
		data := []byte("mares eat oats and does eat oats and little lambs eat ivy")
		testutil.ReadWrite(ctx, t, store, data)
	})
}

func withStore(t *testing.T, f func(context.Context, *Store)) {
	connstr := os.Getenv(connVar)
	if connstr == "" {
		t.Skipf("to run %s, set %s to a valid Postgresql connection string", t.Name(), connVar)
	}

	db, err := sql.Open("postgres", connstr)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	store, err := New(ctx, db, nil)
	if err != nil {
		t.Fatal(err)
	}

	f(ctx, store)
}
