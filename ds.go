package ds

import (
	"context"
	"errors"
)

// Blob is a data blob.
type Blob interface {
	Bytes() []byte
}

// Bytes is a byte slice implementing Blob.
type Bytes []byte

// Bytes implements Blob.
func (b Bytes) Bytes() []byte { return b }

// Getter is a read-only Store (qv).
type Getter interface {
	// Get gets the content of an object by its id.
	// It returns ErrNotFound if no object with that id is in the store,
	// and ErrEmptyID if id is empty.
	Get(context.Context, string) ([]byte, error)

	// Has tells whether an object with the given id is in the store.
	// An unknown id is not an error: the result is simply false.
	Has(context.Context, string) (bool, error)

	// ListIDs calls a function for each object id in the store.
	//
	// The order in which ids are produced is implementation-defined.
	// The calls reflect at least the set of ids known at the moment
	// ListIDs was called. It is unspecified whether later changes,
	// that happen concurrently with ListIDs, are reflected.
	//
	// If the callback function returns an error,
	// ListIDs exits with that error.
	ListIDs(context.Context, func(id string) error) error
}

// Store is a digest store.
// It stores byte sequences of arbitrary length.
// Each object can be retrieved using its id as a lookup key.
// An id is the hex-encoded cryptographic hash of the object's content.
type Store interface {
	Getter

	// Put adds the content of b to the store if it was not already present.
	// It returns the object's id and the content length in bytes.
	// Storing content that is already present is a no-op
	// that returns the same id.
	// A nil Blob produces ErrNoContent;
	// an empty Bytes is a legitimate (empty) object.
	Put(ctx context.Context, b Blob) (id string, n int64, err error)
}

// PathStore is a Store whose objects live at stable filesystem paths.
type PathStore interface {
	Store

	// Path returns the filesystem path holding the object with the given id.
	// It returns ErrNotFound if no object with that id is in the store,
	// and ErrEmptyID if id is empty.
	Path(id string) (string, error)
}

// ErrNotFound is the error returned
// when a Getter tries to access a non-existent id.
// It is the designed "absent" result, not a failure:
// callers distinguish it from I/O errors with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrNoContent is the error returned by Put when given a nil Blob.
var ErrNoContent = errors.New("no content")

// ErrEmptyID is the error returned when a caller passes an empty id
// to an operation that requires one.
var ErrEmptyID = errors.New("empty id")
