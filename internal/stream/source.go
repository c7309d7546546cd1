package stream

import "context"

// Source delivers decoded records from some transport. Next blocks until a
// record arrives, the stream ends (io.EOF), or the context is canceled.
// Unknown and malformed records are skipped inside the source; callers only
// see well-formed records.
type Source interface {
	Next(ctx context.Context) (Record, error)
	Close() error
}
