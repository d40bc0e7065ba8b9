// Package blobstore provides durable binary persistence for issue
// attachments and public URL issuance for stored objects.
package blobstore

import (
	"context"
	"io"
)

// Store is the byte-storage abstraction used by the upload coordinator.
//
// The three methods mirror the per-file upload protocol: Put streams the
// object bytes under a caller-derived key tagged with its content type,
// MakePublic marks the finished object world-readable, and PublicURL returns
// the deterministic public address of a key.
type Store interface {
	// Put durably writes the object under key. The object is not public
	// until MakePublic is called.
	Put(ctx context.Context, key, contentType string, r io.Reader) error

	// MakePublic marks a previously written object publicly readable.
	MakePublic(ctx context.Context, key string) error

	// PublicURL returns the public URL for key. It is a pure function of
	// the store's base path and the key; it performs no I/O.
	PublicURL(key string) string
}
