package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/user"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

type UserService struct {
	repo   user.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewUserService(repo user.Repository, logger *logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Default()
	}
	return &UserService{repo: repo, logger: logger, now: time.Now}
}

// EnsureProfile stores the identity provider's view of the caller so teams,
// entries and leaderboards can reference a local user row.
func (s *UserService) EnsureProfile(ctx context.Context, principal user.Principal) (user.User, error) {
	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: principal has no user id", ErrUnauthorized)
	}

	now := s.now().UTC()
	profile := user.User{
		ID:        userID,
		Name:      principal.DisplayName(),
		Email:     strings.TrimSpace(principal.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return user.User{}, fmt.Errorf("upsert user profile: %w", err)
	}
	return profile, nil
}
