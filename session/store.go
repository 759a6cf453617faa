package session

import (
	"context"
	"time"
)

// Store persists sealed session tokens by session id. Implementations must be safe for
// concurrent use. Writes to the same id are last-writer-wins.
type Store interface {
	Save(ctx context.Context, id, sealed string, ttl time.Duration) error
	// Load returns ErrSessionNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (string, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
}
