package store

import (
	"encoding/json"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// ParseMode converts a configuration value to permission bits.
// Numbers are used as-is, so beware that a bare 750 in a JSON file
// means decimal 750. Strings follow Go integer-literal rules:
// "0750" and "0o750" are octal, "488" is decimal.
// Malformed or out-of-range input is a validation error,
// never a silent coercion.
func ParseMode(v interface{}) (os.FileMode, error) {
	switch m := v.(type) {
	case nil:
		return 0, errors.New("missing mode value")
	case os.FileMode:
		return checkMode(int64(m))
	case int:
		return checkMode(int64(m))
	case int64:
		return checkMode(m)
	case float64:
		if m != math.Trunc(m) {
			return 0, errors.Errorf("mode %v is not an integer", m)
		}
		return checkMode(int64(m))
	case json.Number:
		i, err := m.Int64()
		if err != nil {
			return 0, errors.Wrapf(err, "parsing mode %q", m)
		}
		return checkMode(i)
	case string:
		u, err := strconv.ParseUint(m, 0, 32)
		if err != nil {
			return 0, errors.Wrapf(err, "parsing mode %q", m)
		}
		return checkMode(int64(u))
	default:
		return 0, errors.Errorf("cannot use %T as a mode", v)
	}
}

func checkMode(n int64) (os.FileMode, error) {
	if n < 0 || n > 07777 {
		return 0, errors.Errorf("mode %#o out of range", n)
	}
	return os.FileMode(n), nil
}

// Int converts a configuration value to an int.
func Int(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, errors.Errorf("%v is not an integer", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, errors.Wrapf(err, "parsing %q", n)
		}
		return int(i), nil
	default:
		return 0, errors.Errorf("cannot use %T as an integer", v)
	}
}

// Ints converts a configuration value to a list of ints
// (e.g. the bucket-width levels of a file store).
func Ints(v interface{}) ([]int, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, errors.Errorf("cannot use %T as a list of integers", v)
	}
	out := make([]int, 0, len(list))
	for _, item := range list {
		n, err := Int(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
