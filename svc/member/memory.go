package member

import (
	"context"
	"sync"

	"github.com/giftshop/memberauth/pkg/auth"
)

// MemoryStore keeps members in process memory. Email uniqueness is enforced
// atomically under the store mutex.
type MemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]auth.Member
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]auth.Member)}
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*auth.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrMemberNotFound
	}
	return &m, nil
}

func (s *MemoryStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *MemoryStore) Save(_ context.Context, m *auth.Member) (*auth.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[m.Email]; ok {
		return nil, auth.ErrDuplicateEmail
	}
	s.byEmail[m.Email] = *m

	saved := *m
	return &saved, nil
}

// Len returns the number of stored members.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}

var _ auth.MemberStore = (*MemoryStore)(nil)
