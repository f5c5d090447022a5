package plan

import (
	"slices"
	"strings"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
)

// MinReasonLen matches the contract machine: rejection reasons are validated
// at the engine boundary.
const MinReasonLen = 10

// tierChain is the fixed sequential approval ladder. Approve advances exactly
// one position; there is no parallelism between tiers.
var tierChain = []Status{StatusDraft, StatusPendingUnit, StatusPendingFinance, StatusPendingBoard, StatusApproved}

// tierApprovers: who may approve (or reject) at each pending tier.
var tierApprovers = map[Status][]common_models.Role{
	StatusPendingUnit:    {common_models.RoleUnitLeader, common_models.RoleLeadership},
	StatusPendingFinance: {common_models.RoleAccountant, common_models.RoleChiefAccountant, common_models.RoleLeadership},
	StatusPendingBoard:   {common_models.RoleLeadership},
}

var submitRoles = []common_models.Role{common_models.RoleNVKD, common_models.RoleUnitLeader, common_models.RoleLeadership}

// TransitionResult mirrors the contract machine: the computed next status
// plus the audit entry to append.
type TransitionResult struct {
	Status      Status
	AuditAction common_models.WorkflowAction
	FromState   Status
	ToState     Status
	Comment     string
}

// Submit moves a draft plan to the first approval tier.
func Submit(p BusinessPlan, actor common_models.Actor) (TransitionResult, error) {
	if p.Status != StatusDraft {
		return TransitionResult{}, common_models.InvalidTransitionf("only a draft plan can be submitted, current status is %s", p.Status)
	}
	if !slices.Contains(submitRoles, actor.Role) {
		return TransitionResult{}, common_models.Unauthorizedf("role %s may not submit a business plan", actor.Role)
	}

	return TransitionResult{
		Status:      StatusPendingUnit,
		AuditAction: common_models.ActionSubmit,
		FromState:   StatusDraft,
		ToState:     StatusPendingUnit,
		Comment:     "Submitted for unit approval",
	}, nil
}

// Approve advances the plan one tier along the chain. expectedTier, when
// non-empty, must match the current status — a stale UI approving a tier that
// has already moved on fails instead of double-advancing.
func Approve(p BusinessPlan, actor common_models.Actor, expectedTier string) (TransitionResult, error) {
	approvers, pending := tierApprovers[p.Status]
	if !pending {
		return TransitionResult{}, common_models.InvalidTransitionf("plan in status %s has no pending approval tier", p.Status)
	}
	if expectedTier != "" && Status(expectedTier) != p.Status {
		return TransitionResult{}, common_models.InvalidTransitionf("plan is at tier %s, not %s", p.Status, expectedTier)
	}
	if !slices.Contains(approvers, actor.Role) {
		return TransitionResult{}, common_models.Unauthorizedf("role %s may not approve at tier %s", actor.Role, p.Status)
	}

	next := tierChain[slices.Index(tierChain, p.Status)+1]

	return TransitionResult{
		Status:      next,
		AuditAction: common_models.ActionApprove,
		FromState:   p.Status,
		ToState:     next,
		Comment:     "Approved at " + string(p.Status),
	}, nil
}

// Reject moves the plan from any pending tier to Rejected. Guarded by the
// same role set that could approve at that tier.
func Reject(p BusinessPlan, actor common_models.Actor, reason string) (TransitionResult, error) {
	approvers, pending := tierApprovers[p.Status]
	if !pending {
		return TransitionResult{}, common_models.InvalidTransitionf("plan in status %s cannot be rejected", p.Status)
	}
	if !slices.Contains(approvers, actor.Role) {
		return TransitionResult{}, common_models.Unauthorizedf("role %s may not reject at tier %s", actor.Role, p.Status)
	}
	if len(strings.TrimSpace(reason)) < MinReasonLen {
		return TransitionResult{}, common_models.Validationf("a rejection reason of at least %d characters is required", MinReasonLen)
	}

	return TransitionResult{
		Status:      StatusRejected,
		AuditAction: common_models.ActionReject,
		FromState:   p.Status,
		ToState:     StatusRejected,
		Comment:     strings.TrimSpace(reason),
	}, nil
}
