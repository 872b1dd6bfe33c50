package quiz

import (
	"sync"

	"github.com/ilyashirko/quiz-bot/pkg/store"
)

// keyedMutex serializes engine operations per session key. Operations on
// different keys proceed independently. The lock map is bounded by the
// number of distinct users seen by the process.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[store.SessionKey]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[store.SessionKey]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) Lock(key store.SessionKey) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
