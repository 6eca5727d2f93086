// Package blob stores generated invoice documents and hands back durable
// retrievable URLs.
package blob

import "context"

type Store interface {
	// Put uploads data under key and returns the public URL of the stored
	// object. Objects are never overwritten in practice: keys embed the
	// invoice number, which is unique per composition session.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
