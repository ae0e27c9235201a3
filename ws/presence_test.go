package ws

import (
	"context"
	"sync"
	"testing"
	"time"

	"dialog-messenger-api/config/logger"
	"dialog-messenger-api/dto"
	"dialog-messenger-api/enum"
)

type statusRecorder struct {
	mu       sync.Mutex
	statuses map[string][]enum.UserStatus
}

func newStatusRecorder() *statusRecorder {
	return &statusRecorder{statuses: make(map[string][]enum.UserStatus)}
}

func (r *statusRecorder) UpdateStatus(ctx context.Context, userID string, status enum.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[userID] = append(r.statuses[userID], status)
	return nil
}

func (r *statusRecorder) history(userID string) []enum.UserStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]enum.UserStatus(nil), r.statuses[userID]...)
}

type staticPartners struct {
	partners map[string][]string
}

func (s *staticPartners) PartnerIDs(ctx context.Context, userID string) ([]string, error) {
	return s.partners[userID], nil
}

type cacheRecorder struct {
	mu     sync.Mutex
	online map[string]bool
}

func newCacheRecorder() *cacheRecorder {
	return &cacheRecorder{online: make(map[string]bool)}
}

func (c *cacheRecorder) SetOnline(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.online[userID] = true
	return nil
}

func (c *cacheRecorder) SetOffline(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.online[userID] = false
	return nil
}

func (c *cacheRecorder) isOnline(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online[userID]
}

type notifyRecorder struct {
	mu   sync.Mutex
	sent map[string][]dto.StatusChangeEvent
}

func newNotifyRecorder() *notifyRecorder {
	return &notifyRecorder{sent: make(map[string][]dto.StatusChangeEvent)}
}

func (n *notifyRecorder) SendToUser(userID string, event string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if change, ok := data.(dto.StatusChangeEvent); ok {
		n.sent[userID] = append(n.sent[userID], change)
	}
}

func (n *notifyRecorder) changesFor(userID string) []dto.StatusChangeEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]dto.StatusChangeEvent(nil), n.sent[userID]...)
}

func newTrackerFixture(grace time.Duration) (*Tracker, *statusRecorder, *cacheRecorder, *notifyRecorder) {
	statuses := newStatusRecorder()
	partners := &staticPartners{partners: map[string][]string{"alice": {"bob"}}}
	cache := newCacheRecorder()
	notifier := newNotifyRecorder()
	tracker := NewTracker(statuses, partners, cache, notifier, logger.NewNop())
	tracker.SetGrace(grace)
	return tracker, statuses, cache, notifier
}

func TestTrackerOfflineAfterGrace(t *testing.T) {
	tracker, statuses, cache, notifier := newTrackerFixture(20 * time.Millisecond)
	ctx := context.Background()

	if err := tracker.Identify(ctx, "alice"); err != nil {
		t.Fatalf("identify: %v", err)
	}
	tracker.Disconnect("alice")

	time.Sleep(150 * time.Millisecond)

	history := statuses.history("alice")
	if len(history) != 2 || history[1] != enum.UserStatusOffline {
		t.Fatalf("status history = %v, want online then offline", history)
	}
	if cache.isOnline("alice") {
		t.Error("presence cache still online after grace")
	}

	changes := notifier.changesFor("bob")
	if len(changes) != 2 || changes[1].Status != string(enum.UserStatusOffline) {
		t.Errorf("partner changes = %v, want online then offline", changes)
	}
}

func TestTrackerReconnectCancelsOffline(t *testing.T) {
	tracker, statuses, _, notifier := newTrackerFixture(50 * time.Millisecond)
	ctx := context.Background()

	if err := tracker.Identify(ctx, "alice"); err != nil {
		t.Fatalf("identify: %v", err)
	}
	tracker.Disconnect("alice")

	// Reconnect inside the grace window, as a page reload does.
	time.Sleep(10 * time.Millisecond)
	if err := tracker.Identify(ctx, "alice"); err != nil {
		t.Fatalf("re-identify: %v", err)
	}

	time.Sleep(150 * time.Millisecond)

	for _, status := range statuses.history("alice") {
		if status == enum.UserStatusOffline {
			t.Fatal("offline fired despite reconnect inside the grace window")
		}
	}
	for _, change := range notifier.changesFor("bob") {
		if change.Status == string(enum.UserStatusOffline) {
			t.Fatal("partner saw a transient offline")
		}
	}
}

func TestTrackerRepeatedDisconnectResetsTimer(t *testing.T) {
	tracker, statuses, _, _ := newTrackerFixture(60 * time.Millisecond)
	ctx := context.Background()

	if err := tracker.Identify(ctx, "alice"); err != nil {
		t.Fatalf("identify: %v", err)
	}
	tracker.Disconnect("alice")
	time.Sleep(40 * time.Millisecond)
	tracker.Disconnect("alice")
	time.Sleep(40 * time.Millisecond)

	// 80ms after the first disconnect, but only 40ms after the second:
	// the user must still be online.
	for _, status := range statuses.history("alice") {
		if status == enum.UserStatusOffline {
			t.Fatal("offline fired before the reset grace elapsed")
		}
	}

	time.Sleep(100 * time.Millisecond)
	history := statuses.history("alice")
	if history[len(history)-1] != enum.UserStatusOffline {
		t.Errorf("status history = %v, want trailing offline", history)
	}
}

func TestTrackerOfflineTargetsPartnersOnly(t *testing.T) {
	statuses := newStatusRecorder()
	partners := &staticPartners{partners: map[string][]string{"alice": {"bob", "carol"}}}
	notifier := newNotifyRecorder()
	tracker := NewTracker(statuses, partners, newCacheRecorder(), notifier, logger.NewNop())
	tracker.SetGrace(10 * time.Millisecond)

	if err := tracker.Identify(context.Background(), "alice"); err != nil {
		t.Fatalf("identify: %v", err)
	}
	tracker.Disconnect("alice")
	time.Sleep(100 * time.Millisecond)

	for _, partner := range []string{"bob", "carol"} {
		if len(notifier.changesFor(partner)) == 0 {
			t.Errorf("partner %s missed the status change", partner)
		}
	}
	if len(notifier.changesFor("dave")) != 0 {
		t.Error("status change leaked to a non-partner")
	}
	if len(notifier.changesFor("alice")) != 0 {
		t.Error("status change echoed to the user themselves")
	}
}
