// Package pg implements a digest store in a Postgresql database.
package pg

import (
	"context"
	"database/sql"
	stderrs "errors"

	"github.com/bobg/sqlutil"
	_ "github.com/lib/pq" // register the postgres type for sql.Open
	"github.com/pkg/errors"

	ds "github.com/gitpan/File-DigestStore"
	"github.com/gitpan/File-DigestStore/store"
)

var _ ds.Store = &Store{}

// Store is a Postgresql-based digest store.
type Store struct {
	db     *sql.DB
	hasher ds.Hasher
}

// Schema is the SQL that New executes.
// It creates the `blobs` table if it does not exist.
// (If it does exist, it must have the columns and constraints described here.)
const Schema = `
CREATE TABLE IF NOT EXISTS blobs (
  id TEXT PRIMARY KEY NOT NULL,
  data BYTEA NOT NULL
);
`

// New produces a new Store using `db` for storage
// and `hasher` for computing ids (nil means ds.DefaultAlgorithm).
// It expects to create the table `blobs`,
// or for that table already to exist with the correct schema.
// (See variable Schema.)
func New(ctx context.Context, db *sql.DB, hasher ds.Hasher) (*Store, error) {
	if hasher == nil {
		var err error
		hasher, err = ds.NewHasher("")
		if err != nil {
			return nil, err
		}
	}
	_, err := db.ExecContext(ctx, Schema)
	return &Store{db: db, hasher: hasher}, err
}

// Put adds the content of b to the store if it wasn't already present.
func (s *Store) Put(ctx context.Context, b ds.Blob) (string, int64, error) {
	if b == nil {
		return "", 0, ds.ErrNoContent
	}

	const q = `INSERT INTO blobs (id, data) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	data := b.Bytes()
	id := s.hasher.Sum(data)
	_, err := s.db.ExecContext(ctx, q, id, data)
	if err != nil {
		return "", 0, errors.Wrap(err, "inserting blob")
	}
	return id, int64(len(data)), nil
}

// Get gets the content of the object with the given id.
func (s *Store) Get(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ds.ErrEmptyID
	}

	const q = `SELECT data FROM blobs WHERE id = $1`

	var data []byte
	err := s.db.QueryRowContext(ctx, q, id).Scan(&data)
	if stderrs.Is(err, sql.ErrNoRows) {
		return nil, ds.ErrNotFound
	}
	return data, errors.Wrapf(err, "getting blob %s", id)
}

// Has tells whether an object with the given id is in the store.
func (s *Store) Has(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ds.ErrEmptyID
	}

	const q = `SELECT COUNT(*) FROM blobs WHERE id = $1`

	var count int
	err := s.db.QueryRowContext(ctx, q, id).Scan(&count)
	return count > 0, errors.Wrapf(err, "counting blob %s", id)
}

// ListIDs calls f for each object id in the store, in lexicographic order.
func (s *Store) ListIDs(ctx context.Context, f func(string) error) error {
	const q = `SELECT id FROM blobs WHERE id > $1 ORDER BY id`
	return sqlutil.ForQueryRows(ctx, s.db, q, "", func(id string) error {
		return f(id)
	})
}

func init() {
	store.Register("pg", func(ctx context.Context, conf map[string]interface{}) (ds.Store, error) {
		conn, ok := conf["conn"].(string)
		if !ok {
			return nil, errors.New(`missing "conn" parameter`)
		}
		var hasher ds.Hasher
		if alg, ok := conf["algorithm"].(string); ok {
			var err error
			hasher, err = ds.NewHasher(alg)
			if err != nil {
				return nil, errors.Wrap(err, "constructing hasher")
			}
		}
		db, err := sql.Open("postgres", conn)
		if err != nil {
			return nil, errors.Wrap(err, "opening db")
		}
		return New(ctx, db, hasher)
	})
}
