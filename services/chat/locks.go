package chat

import "sync"

// conversationLocks serializes message handling per conversation key. The
// read-merge-save of conversation state must not interleave for the same
// conversation; different conversations proceed in parallel.
type conversationLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *conversationLocks) get(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	lock, exists := l.locks[key]
	if !exists {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	return lock
}

// lock acquires the per-key mutex and returns its unlock function.
func (l *conversationLocks) lock(key string) func() {
	lock := l.get(key)
	lock.Lock()
	return lock.Unlock
}
