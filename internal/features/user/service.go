package user

import (
	"context"
	"fmt"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/role"
)

type UserService interface {
	GetActor(ctx context.Context, userID string) (common_models.Actor, error)
	GetNames(ctx context.Context, ids []string) (map[string]string, error)
}

type UserServiceImpl struct {
	Repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &UserServiceImpl{Repo: repo}
}

// GetActor loads a user's canonical role for workflow calls made on their behalf.
func (s *UserServiceImpl) GetActor(ctx context.Context, userID string) (common_models.Actor, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return common_models.Actor{}, err
	}
	if u == nil {
		return common_models.Actor{}, fmt.Errorf("user not found: %s", userID)
	}
	// Stored role codes may predate the current enum; unknown values degrade
	// to the least-privileged role rather than erroring.
	return common_models.Actor{ID: userID, Role: role.ParseRole(string(u.Role))}, nil
}

// GetNames resolves display names for audit trail rendering.
func (s *UserServiceImpl) GetNames(ctx context.Context, ids []string) (map[string]string, error) {
	users, err := s.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID.Hex()] = u.FullName
	}
	return names, nil
}
