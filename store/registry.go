// Package store maintains a registry of digest store types,
// allowing a store to be constructed from configuration data alone.
package store

import (
	"context"
	"fmt"

	ds "github.com/gitpan/File-DigestStore"
)

// Factory constructs a store from a parsed configuration.
type Factory func(context.Context, map[string]interface{}) (ds.Store, error)

var registry = make(map[string]Factory)

// Register associates a store type name with its factory.
// Store packages call this from init.
func Register(key string, f Factory) {
	registry[key] = f
}

// Create constructs a store of the given registered type.
func Create(ctx context.Context, key string, conf map[string]interface{}) (ds.Store, error) {
	f, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("key %s not found in registry", key)
	}
	return f(ctx, conf)
}
