// Package file implements a digest store as a bucketed file hierarchy.
//
// Each object lives at root/<bucket-1>/.../<bucket-n>/<id>,
// where the buckets are computed from the id by the store's Mapper
// and the file's own name is its id. The path is the only index:
// existence of the file is what makes the object stored.
package file

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	ds "github.com/gitpan/File-DigestStore"
	"github.com/gitpan/File-DigestStore/store"
)

var _ ds.PathStore = &Store{}

// Config carries the constructor-time options of a Store.
// Only Root is required.
type Config struct {
	// Root is the base directory of the store, created if absent.
	Root string

	// Levels is the list of bucket widths, one per directory depth.
	// Nil means ds.DefaultLevels. An empty (non-nil) list is invalid.
	Levels []int

	// Algorithm names the digest algorithm.
	// Empty means ds.DefaultAlgorithm.
	Algorithm string

	// Hasher, when non-nil, overrides Algorithm.
	Hasher ds.Hasher

	// Mapper, when non-nil, overrides Levels.
	Mapper ds.Mapper

	// DirMode and FileMode are the permission bits for created
	// directories and files, merged with the process umask.
	// Zero values mean 0777 and 0666.
	DirMode  os.FileMode
	FileMode os.FileMode
}

// Store is a filesystem implementation of a digest store.
//
// A Store holds no state beyond its configuration: all observable
// state is in the filesystem, so independent instances - including
// instances in other processes, or on other hosts sharing a mounted
// filesystem - can use the same root concurrently without locks.
type Store struct {
	root     string
	hasher   ds.Hasher
	mapper   ds.Mapper
	dirMode  os.FileMode
	fileMode os.FileMode

	deprecated sync.Once
}

// New produces a new Store from conf.
// All configuration is validated here:
// a missing root, an unknown algorithm, or an invalid level list
// fails now with an error, never later at first use.
// The root directory is created if absent.
func New(conf Config) (*Store, error) {
	if conf.Root == "" {
		return nil, errors.New("missing root directory")
	}

	hasher := conf.Hasher
	if hasher == nil {
		var err error
		hasher, err = ds.NewHasher(conf.Algorithm)
		if err != nil {
			return nil, err
		}
	}

	mapper := conf.Mapper
	if mapper == nil {
		levels := conf.Levels
		if levels == nil {
			levels = ds.DefaultLevels
		}
		var err error
		mapper, err = ds.NewNHash(levels)
		if err != nil {
			return nil, err
		}
	}

	s := &Store{
		root:     conf.Root,
		hasher:   hasher,
		mapper:   mapper,
		dirMode:  conf.DirMode,
		fileMode: conf.FileMode,
	}
	if s.dirMode == 0 {
		s.dirMode = 0777
	}
	if s.fileMode == 0 {
		s.fileMode = 0666
	}

	if err := os.MkdirAll(s.root, s.dirMode); err != nil {
		return nil, errors.Wrapf(err, "ensuring root %s exists", s.root)
	}
	return s, nil
}

// objectPath is the canonical path of the object with the given id,
// whether or not it exists. For a fixed configuration it is a pure
// function of the id.
func (s *Store) objectPath(id string) (string, error) {
	buckets, err := s.mapper.Buckets(id)
	if err != nil {
		return "", err
	}
	parts := append([]string{s.root}, buckets...)
	return filepath.Join(append(parts, id)...), nil
}

// Put adds the content of b to the store if it wasn't already present.
func (s *Store) Put(_ context.Context, b ds.Blob) (string, int64, error) {
	if b == nil {
		return "", 0, ds.ErrNoContent
	}
	data := b.Bytes()
	id := s.hasher.Sum(data)

	path, err := s.objectPath(id)
	if err != nil {
		return "", 0, err
	}
	if err := s.writeIfAbsent(path, data); err != nil {
		return "", 0, err
	}
	return id, int64(len(data)), nil
}

// Get gets the content of the object with the given id.
func (s *Store) Get(_ context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ds.ErrEmptyID
	}
	path, err := s.objectPath(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ds.ErrNotFound
	}
	return data, errors.Wrapf(err, "reading %s", path)
}

// Fetch gets the content of the object with the given id.
//
// Deprecated: use Get.
func (s *Store) Fetch(ctx context.Context, id string) ([]byte, error) {
	s.deprecated.Do(func() {
		log.Print("digeststore: Fetch is deprecated, use Get")
	})
	return s.Get(ctx, id)
}

// Has tells whether an object with the given id is in the store.
func (s *Store) Has(_ context.Context, id string) (bool, error) {
	if id == "" {
		return false, ds.ErrEmptyID
	}
	path, err := s.objectPath(id)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "statting %s", path)
	}
	return true, nil
}

// Path returns the filesystem path holding the object with the given id,
// suitable for handing to collaborators that read the file directly.
// A stored file is never rewritten or moved, so the path stays valid
// for the life of the store.
func (s *Store) Path(id string) (string, error) {
	if id == "" {
		return "", ds.ErrEmptyID
	}
	path, err := s.objectPath(id)
	if err != nil {
		return "", err
	}
	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		return "", ds.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "statting %s", path)
	}
	return path, nil
}

// ListIDs calls f for each object id in the store.
// Bucket names are decimal residues of the ids, so walking the tree
// does not visit ids in id order; the order is unspecified.
func (s *Store) ListIDs(ctx context.Context, f func(string) error) error {
	return s.listDir(ctx, s.root, s.mapper.Depth(), f)
}

func (s *Store) listDir(ctx context.Context, dir string, depth int, f func(string) error) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading dir %s", dir)
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := entry.Name()
		if depth > 0 {
			if !entry.IsDir() {
				continue
			}
			if _, err := strconv.Atoi(name); err != nil {
				continue
			}
			err := s.listDir(ctx, filepath.Join(dir, name), depth-1, f)
			if err != nil {
				return err
			}
			continue
		}
		// Leaf level: object files are named by their hex ids.
		// Anything else (temp files, strays) is skipped.
		if entry.IsDir() || !isHex(name) {
			continue
		}
		if err := f(name); err != nil {
			return err
		}
	}
	return nil
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') {
			continue
		}
		return false
	}
	return true
}

func init() {
	store.Register("file", func(_ context.Context, conf map[string]interface{}) (ds.Store, error) {
		root, ok := conf["root"].(string)
		if !ok {
			return nil, errors.New(`missing "root" parameter`)
		}
		c := Config{Root: root}
		if alg, ok := conf["algorithm"].(string); ok {
			c.Algorithm = alg
		}
		if v, ok := conf["levels"]; ok {
			levels, err := store.Ints(v)
			if err != nil {
				return nil, errors.Wrap(err, `parsing "levels" parameter`)
			}
			c.Levels = levels
		}
		if v, ok := conf["dir_mode"]; ok {
			mode, err := store.ParseMode(v)
			if err != nil {
				return nil, errors.Wrap(err, `parsing "dir_mode" parameter`)
			}
			c.DirMode = mode
		}
		if v, ok := conf["file_mode"]; ok {
			mode, err := store.ParseMode(v)
			if err != nil {
				return nil, errors.Wrap(err, `parsing "file_mode" parameter`)
			}
			c.FileMode = mode
		}
		return New(c)
	})
}
