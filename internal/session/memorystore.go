package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. It is the single-writer collapse of
// the durable browser storage: writes are immediate, and Watch notifies
// in-process subscribers only.
type MemoryStore struct {
	mu       sync.RWMutex
	token    string
	userData []byte

	subMu       sync.Mutex
	subscribers []chan struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Get(ctx context.Context) (string, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userData == nil {
		return s.token, nil, nil
	}
	data := make([]byte, len(s.userData))
	copy(data, s.userData)
	return s.token, data, nil
}

func (s *MemoryStore) Set(ctx context.Context, token string, userData []byte) error {
	s.mu.Lock()
	s.token = token
	s.userData = make([]byte, len(userData))
	copy(s.userData, userData)
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.userData = nil
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *MemoryStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		for i, sub := range s.subscribers {
			if sub == ch {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				break
			}
		}
		s.subMu.Unlock()
	}()

	return ch, nil
}

// notify wakes subscribers without blocking; a pending notification already
// covers the change.
func (s *MemoryStore) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
