package permission

import (
	"context"
	"errors"
	"testing"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"

	"go.uber.org/zap"
)

type fakeOverrideRepo struct {
	rows []Override
}

func (r *fakeOverrideRepo) FindByUserAndResource(ctx context.Context, userID string, resource string) (*Override, error) {
	for _, row := range r.rows {
		if row.UserID == userID && row.Resource == resource {
			copied := row
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeOverrideRepo) FindByUser(ctx context.Context, userID string) ([]Override, error) {
	var out []Override
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeOverrideRepo) Upsert(ctx context.Context, override *Override) error {
	for i, row := range r.rows {
		if row.UserID == override.UserID && row.Resource == override.Resource {
			r.rows[i].Actions = override.Actions
			return nil
		}
	}
	r.rows = append(r.rows, *override)
	return nil
}

func (r *fakeOverrideRepo) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeRoleLookup struct {
	roles map[string]common_models.Role
}

func (f *fakeRoleLookup) GetActor(ctx context.Context, userID string) (common_models.Actor, error) {
	role, ok := f.roles[userID]
	if !ok {
		return common_models.Actor{}, errors.New("user not found")
	}
	return common_models.Actor{ID: userID, Role: role}, nil
}

func TestResolve(t *testing.T) {
	repo := &fakeOverrideRepo{rows: []Override{
		// grants beyond the legal role's defaults
		{UserID: "u-legal", Resource: ResourceContracts, Actions: []string{ActionView, ActionCreate}},
		// explicit empty set: locked out of plans whatever the role says
		{UserID: "u-sales", Resource: ResourceBusinessPlans, Actions: []string{}},
	}}
	users := &fakeRoleLookup{roles: map[string]common_models.Role{
		"u-legal": common_models.RoleLegal,
		"u-sales": common_models.RoleNVKD,
		"u-boss":  common_models.RoleLeadership,
	}}
	svc := NewPermissionService(repo, users, zap.NewNop())

	tests := []struct {
		name     string
		userID   string
		resource string
		action   string
		want     bool
	}{
		{"override grants beyond role default", "u-legal", ResourceContracts, ActionCreate, true},
		{"override row is authoritative for its resource", "u-legal", ResourceContracts, ActionDelete, false},
		{"empty override set denies despite role default", "u-sales", ResourceBusinessPlans, ActionView, false},
		{"other resources still fall back to role defaults", "u-sales", ResourceContracts, ActionCreate, true},
		{"role default allows", "u-boss", ResourceAudit, ActionView, true},
		{"role default denies", "u-boss", ResourcePermissions, ActionUpdate, false},
		{"unknown user denied", "ghost", ResourceContracts, ActionView, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Resolve(context.Background(), tt.userID, tt.resource, tt.action)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%s, %s, %s) = %v, want %v", tt.userID, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}

func TestRoleChangeTakesEffectWithoutRewritingOverrides(t *testing.T) {
	repo := &fakeOverrideRepo{rows: []Override{
		{UserID: "u-1", Resource: ResourceAudit, Actions: []string{ActionView}},
	}}
	users := &fakeRoleLookup{roles: map[string]common_models.Role{"u-1": common_models.RoleNVKD}}
	svc := NewPermissionService(repo, users, zap.NewNop())

	ctx := context.Background()
	if ok, _ := svc.Resolve(ctx, "u-1", ResourceContracts, ActionDelete); ok {
		t.Fatal("nvkd must not delete contracts")
	}

	users.roles["u-1"] = common_models.RoleAdmin

	if ok, _ := svc.Resolve(ctx, "u-1", ResourceContracts, ActionDelete); !ok {
		t.Error("promotion to admin must take effect on the next check")
	}
	// The stored override row is untouched by the role change
	if ok, _ := svc.Resolve(ctx, "u-1", ResourceAudit, ActionUpdate); ok {
		t.Error("override row must stay authoritative after a role change")
	}
}

func TestSetOverrideNormalizesNilActions(t *testing.T) {
	repo := &fakeOverrideRepo{}
	svc := NewPermissionService(repo, &fakeRoleLookup{roles: map[string]common_models.Role{}}, zap.NewNop())

	err := svc.SetOverride(context.Background(), SetOverrideRequest{UserID: "u-1", Resource: ResourceContracts, Actions: nil})
	if err != nil {
		t.Fatalf("SetOverride() error = %v", err)
	}

	stored, _ := repo.FindByUserAndResource(context.Background(), "u-1", ResourceContracts)
	if stored == nil {
		t.Fatal("override not stored")
	}
	if stored.Actions == nil || len(stored.Actions) != 0 {
		t.Errorf("actions = %v, want explicit empty set", stored.Actions)
	}

	if err := svc.SetOverride(context.Background(), SetOverrideRequest{Resource: ResourceContracts}); err == nil {
		t.Error("expected missing user_id to be rejected")
	}
}
