package util

import "sync"

// KeyedMutex serializes critical sections per string key. Entries are
// reference counted so the key map does not grow with every key ever
// locked.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

func (km *KeyedMutex) Lock(key string) {
	km.mu.Lock()
	lock, ok := km.locks[key]
	if !ok {
		lock = &keyedLock{}
		km.locks[key] = lock
	}
	lock.refs++
	km.mu.Unlock()

	lock.mu.Lock()
}

func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	lock, ok := km.locks[key]
	if !ok {
		km.mu.Unlock()
		panic("keyed mutex: unlock of unlocked key " + key)
	}
	lock.refs--
	if lock.refs == 0 {
		delete(km.locks, key)
	}
	km.mu.Unlock()

	lock.mu.Unlock()
}
