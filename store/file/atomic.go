package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Temp-file names must not collide between writers racing on the same
// target, including writers in other processes or on other hosts
// sharing the filesystem, so they carry the host name, the pid, and a
// per-process sequence number.
var (
	hostname string
	tmpSeq   uint64
)

func init() {
	var err error
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
}

// writeIfAbsent materializes data at path unless a file is already there.
//
// The object appears at path only via the final rename, which is atomic
// within a single directory: a concurrent reader sees either no file or
// the complete content, never a partial write. When two writers race on
// the same path they hold identical bytes (the path is derived from the
// content's digest), so the loser's rename harmlessly replaces the
// winner's file. A writer that fails partway leaves its temp file
// behind; cleaning those up is external housekeeping, and the canonical
// path is never corrupted.
func (s *Store) writeIfAbsent(path string, data []byte) error {
	_, err := os.Stat(path)
	if err == nil {
		// Already stored. This is the dedup fast path,
		// not an error.
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Wrapf(err, "statting %s", path)
	}

	// MkdirAll treats directories created by a concurrent writer
	// as success, so the create race needs no coordination.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.dirMode); err != nil {
		return errors.Wrapf(err, "ensuring path %s exists", dir)
	}

	tmp := fmt.Sprintf("%s.%s.%d.%d.tmp", path, hostname, os.Getpid(), atomic.AddUint64(&tmpSeq, 1))
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, s.fileMode)
	if err != nil {
		return errors.Wrapf(err, "creating %s", tmp)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing data to %s", tmp)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", tmp)
	}

	return errors.Wrapf(os.Rename(tmp, path), "renaming %s onto %s", tmp, path)
}
