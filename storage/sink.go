// Package storage persists proof-of-payment attachments outside the primary
// record store. Two sinks exist: the local filesystem and Google Drive,
// selected at startup by configuration presence.
package storage

import (
	"context"
	"io"
)

// Sink stores an attachment under a per-client grouping and returns an
// opaque reference (path or URL) to persist on the sale record. Calls block
// the request; a failure aborts the whole request, no retry.
type Sink interface {
	Save(ctx context.Context, cliente, filename string, r io.Reader) (string, error)
}
