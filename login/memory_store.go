package login

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-membership/core"
)

// MemoryRoleStore keeps role assignments in memory.
type MemoryRoleStore struct {
	mu    sync.RWMutex
	roles map[string]map[string]struct{}
}

func NewMemoryRoleStore() *MemoryRoleStore {
	return &MemoryRoleStore{roles: map[string]map[string]struct{}{}}
}

// Seed assigns roles to userID without any membership logic.
func (s *MemoryRoleStore) Seed(userID string, roles ...string) {
	for _, role := range roles {
		_ = s.AddRole(context.Background(), userID, role)
	}
}

func (s *MemoryRoleStore) AddRole(_ context.Context, userID string, role string) error {
	userID, role = strings.TrimSpace(userID), strings.TrimSpace(role)
	if userID == "" || role == "" {
		return core.InternalError("login: user id and role are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roles == nil {
		s.roles = map[string]map[string]struct{}{}
	}
	if s.roles[userID] == nil {
		s.roles[userID] = map[string]struct{}{}
	}
	s.roles[userID][role] = struct{}{}
	return nil
}

func (s *MemoryRoleStore) RemoveRole(_ context.Context, userID string, role string) error {
	userID, role = strings.TrimSpace(userID), strings.TrimSpace(role)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.roles[userID], role)
	return nil
}

func (s *MemoryRoleStore) Roles(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.roles[strings.TrimSpace(userID)]))
	for role := range s.roles[strings.TrimSpace(userID)] {
		out = append(out, role)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryRoleStore) HasRole(userID string, role string) bool {
	roles, _ := s.Roles(context.Background(), userID)
	return slices.Contains(roles, role)
}

var (
	_ core.RoleAssigner = (*MemoryRoleStore)(nil)
	_ core.RoleReader   = (*MemoryRoleStore)(nil)
)
