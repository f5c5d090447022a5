package permission

import (
	"context"
	"fmt"
	"slices"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"

	"go.uber.org/zap"
)

// RoleLookup resolves a user's canonical role (satisfied by user.UserService).
type RoleLookup interface {
	GetActor(ctx context.Context, userID string) (common_models.Actor, error)
}

type PermissionService interface {
	// Resolve answers canPerform(user, resource, action):
	// explicit override row wins (empty set = deny), else role defaults, else deny.
	Resolve(ctx context.Context, userID string, resource string, action string) (bool, error)

	SetOverride(ctx context.Context, req SetOverrideRequest) error
	DeleteOverride(ctx context.Context, id string) error
	ListOverrides(ctx context.Context, userID string) ([]Override, error)
}

type PermissionServiceImpl struct {
	Repo   OverrideRepository
	Users  RoleLookup
	Logger *zap.Logger
}

func NewPermissionService(repo OverrideRepository, users RoleLookup, logger *zap.Logger) PermissionService {
	return &PermissionServiceImpl{
		Repo:   repo,
		Users:  users,
		Logger: logger,
	}
}

func (s *PermissionServiceImpl) Resolve(ctx context.Context, userID string, resource string, action string) (bool, error) {
	override, err := s.Repo.FindByUserAndResource(ctx, userID, resource)
	if err != nil {
		return false, err
	}

	if override != nil {
		// Authoritative: an empty action set explicitly denies.
		return slices.Contains(override.Actions, action), nil
	}

	actor, err := s.Users.GetActor(ctx, userID)
	if err != nil {
		// Unknown user: deny rather than error so middleware returns 403, not 500
		s.Logger.Warn("permission resolve for unknown user", zap.String("user_id", userID))
		return false, nil
	}

	return slices.Contains(DefaultActions(actor.Role, resource), action), nil
}

func (s *PermissionServiceImpl) SetOverride(ctx context.Context, req SetOverrideRequest) error {
	if req.UserID == "" || req.Resource == "" {
		return fmt.Errorf("user_id and resource are required")
	}
	if req.Actions == nil {
		// nil means "deny everything" here; normalize so the stored row is an
		// explicit empty set, distinguishable from a missing row
		req.Actions = []string{}
	}

	override := &Override{
		UserID:   req.UserID,
		Resource: req.Resource,
		Actions:  req.Actions,
	}

	if err := s.Repo.Upsert(ctx, override); err != nil {
		return err
	}

	s.Logger.Info("permission override set",
		zap.String("user_id", req.UserID),
		zap.String("resource", req.Resource),
		zap.Strings("actions", req.Actions))
	return nil
}

func (s *PermissionServiceImpl) DeleteOverride(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *PermissionServiceImpl) ListOverrides(ctx context.Context, userID string) ([]Override, error) {
	return s.Repo.FindByUser(ctx, userID)
}
