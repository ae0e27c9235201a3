package usecase

import "context"

// Notifier delivers a realtime event to every live connection of one
// user. Delivery is best-effort and non-blocking; a disconnected
// recipient simply misses the event.
type Notifier interface {
	SendToUser(userID string, event string, data any)
}

// PresenceReader reports whether a user currently has an identified live
// connection, backed by the redis presence cache.
type PresenceReader interface {
	IsOnline(ctx context.Context, userID string) (bool, error)
}
