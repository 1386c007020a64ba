package ds

import (
	"strconv"

	"github.com/pkg/errors"
)

// Mapper maps an object id to the ordered list of directory names
// ("buckets") beneath which the object is stored.
// Bucketing bounds the entry count of any single directory
// no matter how many objects the store holds.
type Mapper interface {
	// Buckets returns one directory name per configured level.
	Buckets(id string) ([]string, error)

	// Depth is the number of bucket levels.
	Depth() int
}

// DefaultLevels is the bucket-width list used when none is configured:
// 8 directories at the top level, 256 beneath each of those.
var DefaultLevels = []int{8, 256}

// NHash is the standard Mapper.
// It is configured with an ordered list of bucket widths,
// one per directory level.
type NHash struct {
	levels []int
	digits []int
}

var _ Mapper = &NHash{}

// Bucket widths must fit in the hex digits of a uint64.
const maxBucketWidth = 1 << 30

// NewNHash produces an NHash with the given bucket widths.
// The list must be non-empty and every width positive;
// violations are configuration errors reported here,
// never deferred until the first id is mapped.
func NewNHash(levels []int) (*NHash, error) {
	if len(levels) == 0 {
		return nil, errors.New("no bucket levels configured")
	}
	n := &NHash{
		levels: make([]int, len(levels)),
		digits: make([]int, len(levels)),
	}
	for i, width := range levels {
		if width < 1 || width > maxBucketWidth {
			return nil, errors.Errorf("bucket width %d at level %d out of range", width, i)
		}
		n.levels[i] = width
		n.digits[i] = hexDigits(width)
	}
	return n, nil
}

// Depth implements Mapper.
func (n *NHash) Depth() int { return len(n.levels) }

// Buckets maps an id to its directory names, one per level.
//
// The id's hex digits are consumed left to right, non-overlapping:
// each level takes the fewest leading digits whose range covers
// width-1, interprets them as an integer, and names its directory
// with that value mod width, in decimal. The next level continues
// from where the previous one stopped.
//
// This consumption order is part of the on-disk format. Changing it
// would orphan every object already stored under the old paths.
func (n *NHash) Buckets(id string) ([]string, error) {
	out := make([]string, 0, len(n.levels))
	pos := 0
	for i, width := range n.levels {
		d := n.digits[i]
		if pos+d > len(id) {
			return nil, errors.Errorf("id %q too short for %d bucket levels", id, len(n.levels))
		}
		v, err := strconv.ParseUint(id[pos:pos+d], 16, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing hex digits %q of id", id[pos:pos+d])
		}
		out = append(out, strconv.FormatUint(v%uint64(width), 10))
		pos += d
	}
	return out, nil
}

// hexDigits returns the smallest d with 16^d >= width.
func hexDigits(width int) int {
	d := 1
	for max := uint64(16); max < uint64(width); max *= 16 {
		d++
	}
	return d
}
