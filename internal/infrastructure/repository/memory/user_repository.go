package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]user.User)}
}

// Upsert keeps the original CreatedAt of an existing user.
func (r *UserRepository) Upsert(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	}
	r.items[u.ID] = u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[userID]
	return u, ok, nil
}

func (r *UserRepository) name(userID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[userID].Name
}
