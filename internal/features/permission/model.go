package permission

import (
	"time"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resources the matrix governs.
const (
	ResourceContracts     = "contracts"
	ResourceBusinessPlans = "business_plans"
	ResourceAudit         = "audit"
	ResourcePermissions   = "permissions"
	ResourceUsers         = "users"
)

// Actions.
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Override is an explicit per-user permission row. When a row exists for
// (user, resource) its action set is authoritative: an empty set is an
// explicit deny, not a fallthrough to the role defaults.
type Override struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Resource  string             `bson:"resource" json:"resource"`
	Actions   []string           `bson:"actions" json:"actions"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// SetOverrideRequest assigns an explicit action set for a user on a resource.
type SetOverrideRequest struct {
	UserID   string   `json:"user_id"`
	Resource string   `json:"resource"`
	Actions  []string `json:"actions"`
}

// roleDefaults is the static role -> resource -> actions table consulted when
// no explicit override row exists. Role changes take effect here immediately;
// stored override rows are never rewritten on a role change.
var roleDefaults = map[common_models.Role]map[string][]string{
	common_models.RoleAdmin: {
		ResourceContracts:     {ActionView, ActionCreate, ActionUpdate, ActionDelete},
		ResourceBusinessPlans: {ActionView, ActionCreate, ActionUpdate, ActionDelete},
		ResourceAudit:         {ActionView},
		ResourcePermissions:   {ActionView, ActionCreate, ActionUpdate, ActionDelete},
		ResourceUsers:         {ActionView, ActionCreate, ActionUpdate, ActionDelete},
	},
	common_models.RoleLeadership: {
		ResourceContracts:     {ActionView, ActionUpdate},
		ResourceBusinessPlans: {ActionView, ActionUpdate},
		ResourceAudit:         {ActionView},
		ResourceUsers:         {ActionView},
	},
	common_models.RoleNVKD: {
		ResourceContracts:     {ActionView, ActionCreate, ActionUpdate},
		ResourceBusinessPlans: {ActionView, ActionCreate, ActionUpdate},
	},
	common_models.RoleUnitLeader: {
		ResourceContracts:     {ActionView, ActionCreate, ActionUpdate},
		ResourceBusinessPlans: {ActionView, ActionCreate, ActionUpdate},
		ResourceAudit:         {ActionView},
	},
	common_models.RoleAccountant: {
		ResourceContracts:     {ActionView, ActionUpdate},
		ResourceBusinessPlans: {ActionView, ActionUpdate},
		ResourceAudit:         {ActionView},
	},
	common_models.RoleChiefAccountant: {
		ResourceContracts:     {ActionView, ActionUpdate},
		ResourceBusinessPlans: {ActionView, ActionUpdate},
		ResourceAudit:         {ActionView},
	},
	common_models.RoleLegal: {
		ResourceContracts:     {ActionView, ActionUpdate},
		ResourceAudit:         {ActionView},
	},
}

// DefaultActions returns the default action set for a role on a resource.
func DefaultActions(role common_models.Role, resource string) []string {
	byResource, ok := roleDefaults[role]
	if !ok {
		return nil
	}
	return byResource[resource]
}
