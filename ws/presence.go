package ws

import (
	"context"
	"sync"
	"time"

	"dialog-messenger-api/config/logger"
	"dialog-messenger-api/dto"
	"dialog-messenger-api/enum"
)

// OfflineGrace is how long a disconnected user stays online before the
// offline transition fires. A page reload reconnects well within this
// window, so partners never see a status flicker.
const OfflineGrace = 10 * time.Second

// StatusStore persists a user's presence status.
type StatusStore interface {
	UpdateStatus(ctx context.Context, userID string, status enum.UserStatus) error
}

// PartnerSource lists the user ids that share a dialog with the user.
type PartnerSource interface {
	PartnerIDs(ctx context.Context, userID string) ([]string, error)
}

// PresenceCache mirrors the online flag into the redis presence keys.
type PresenceCache interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string) error
}

// Notifier delivers a realtime event to one user's connections.
type Notifier interface {
	SendToUser(userID string, event string, data any)
}

// Tracker drives the per-user presence state machine. Offline transitions
// are debounced with a cancellable timer per user id: re-identifying
// within the grace window cancels the pending transition.
type Tracker struct {
	mu     sync.Mutex
	timers map[string]*time.Timer

	grace    time.Duration
	users    StatusStore
	partners PartnerSource
	cache    PresenceCache
	notifier Notifier
	log      *logger.AppLogger
}

func NewTracker(users StatusStore, partners PartnerSource, cache PresenceCache, notifier Notifier, log *logger.AppLogger) *Tracker {
	return &Tracker{
		timers:   make(map[string]*time.Timer),
		grace:    OfflineGrace,
		users:    users,
		partners: partners,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// Identify marks the user online and cancels any pending offline
// transition left by a previous connection.
func (t *Tracker) Identify(ctx context.Context, userID string) error {
	t.mu.Lock()
	if timer, ok := t.timers[userID]; ok {
		timer.Stop()
		delete(t.timers, userID)
	}
	t.mu.Unlock()

	if err := t.users.UpdateStatus(ctx, userID, enum.UserStatusOnline); err != nil {
		return err
	}
	if err := t.cache.SetOnline(ctx, userID); err != nil {
		t.log.WS.Warning.Warn().Err(err).Str("userId", userID).Msg("presence cache update failed")
	}

	t.notifyPartners(ctx, userID, enum.UserStatusOnline)
	t.log.WS.Info.Info().Str("userId", userID).Msg("user online")
	return nil
}

// Disconnect schedules the debounced offline transition. A later
// Disconnect for the same user resets the timer.
func (t *Tracker) Disconnect(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[userID]; ok {
		timer.Stop()
	}
	t.timers[userID] = time.AfterFunc(t.grace, func() {
		t.goOffline(userID)
	})
}

func (t *Tracker) goOffline(userID string) {
	t.mu.Lock()
	delete(t.timers, userID)
	t.mu.Unlock()

	ctx := context.Background()
	if err := t.users.UpdateStatus(ctx, userID, enum.UserStatusOffline); err != nil {
		t.log.WS.Error.Error().Err(err).Str("userId", userID).Msg("failed to mark user offline")
		return
	}
	if err := t.cache.SetOffline(ctx, userID); err != nil {
		t.log.WS.Warning.Warn().Err(err).Str("userId", userID).Msg("presence cache update failed")
	}

	t.notifyPartners(ctx, userID, enum.UserStatusOffline)
	t.log.WS.Info.Info().Str("userId", userID).Msg("user offline")
}

// notifyPartners targets only the user's dialog partners, never all
// connections.
func (t *Tracker) notifyPartners(ctx context.Context, userID string, status enum.UserStatus) {
	partners, err := t.partners.PartnerIDs(ctx, userID)
	if err != nil {
		t.log.WS.Error.Error().Err(err).Str("userId", userID).Msg("failed to list dialog partners")
		return
	}
	for _, partnerID := range partners {
		t.notifier.SendToUser(partnerID, dto.EventStatusChange, dto.StatusChangeEvent{
			UserID: userID,
			Status: string(status),
		})
	}
}

// SetGrace overrides the debounce window; used by tests.
func (t *Tracker) SetGrace(grace time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grace = grace
}
