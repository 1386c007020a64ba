// Package ds is a content-addressable digest store.
//
// A digest store stores arbitrarily sized sequences of bytes
// and indexes them by their cryptographic hash,
// rendered as a lowercase hexadecimal string.
// This key is called the object's _id_,
// and is the only handle needed to retrieve the content;
// there is no separate index or catalog.
//
// With a sufficiently good hash algorithm,
// the likelihood of any two distinct byte sequences "colliding" is so small
// that collisions are simply assumed not to happen.
// This module uses sha2-512 by default,
// which is a sufficiently good hash algorithm.
//
// Because the id is computed from the content itself,
// storing the same bytes twice yields the same id
// and leaves the store unchanged:
// every store operation is an idempotent write-if-absent.
// Nothing in this module ever mutates or deletes a stored object.
package ds
