// Package storage abstracts the object store that holds payment proofs and
// generated QR images. Callers only ever see durable URLs; no database row
// may reference a URL whose upload did not complete.
package storage

import "context"

type ObjectStore interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
}
