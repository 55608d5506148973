package billing

import "context"

// Store persists a rendered receipt and returns where it was written.
type Store interface {
	Save(ctx context.Context, name string, content []byte) (string, error)
}
