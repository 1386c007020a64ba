package ds

import (
	"context"
	"os"

	"github.com/pkg/errors"
)

// PutFile reads the full content of the regular file at name
// and adds it to s, returning the object's id and length.
// A source that is missing, unreadable, or not a regular file
// is an I/O error.
func PutFile(ctx context.Context, s Store, name string) (string, int64, error) {
	info, err := os.Stat(name)
	if err != nil {
		return "", 0, errors.Wrapf(err, "statting %s", name)
	}
	if !info.Mode().IsRegular() {
		return "", 0, errors.Errorf("%s is not a regular file", name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", 0, errors.Wrapf(err, "reading %s", name)
	}
	return s.Put(ctx, Bytes(data))
}
