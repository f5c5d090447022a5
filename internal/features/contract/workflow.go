package contract

import (
	"slices"
	"strings"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
)

type Action string

const (
	ActionSubmitReview   Action = "SubmitReview"
	ActionApproveLegal   Action = "ApproveLegal"
	ActionRejectLegal    Action = "RejectLegal"
	ActionApproveFinance Action = "ApproveFinance"
	ActionRejectFinance  Action = "RejectFinance"
	ActionSubmitSign     Action = "SubmitSign"
	ActionSign           Action = "Sign"
	ActionComplete       Action = "Complete"
)

// MinReasonLen is enforced at the engine boundary, not just in the UI.
const MinReasonLen = 10

var (
	legalReviewers   = []common_models.Role{common_models.RoleLegal, common_models.RoleAdmin, common_models.RoleLeadership}
	financeReviewers = []common_models.Role{common_models.RoleAccountant, common_models.RoleChiefAccountant, common_models.RoleAdmin, common_models.RoleLeadership}
	submitters       = []common_models.Role{common_models.RoleNVKD, common_models.RoleUnitLeader}
	signers          = []common_models.Role{common_models.RoleAdmin, common_models.RoleLeadership}
)

// actionRoles is the guard table: which roles may perform each action.
var actionRoles = map[Action][]common_models.Role{
	ActionSubmitReview:   submitters,
	ActionApproveLegal:   legalReviewers,
	ActionRejectLegal:    legalReviewers,
	ActionApproveFinance: financeReviewers,
	ActionRejectFinance:  financeReviewers,
	ActionSubmitSign:     signers,
	ActionSign:           signers,
	ActionComplete:       signers,
}

// actionSources lists the states each action is legal from.
var actionSources = map[Action][]Status{
	ActionSubmitReview:   {StatusDraft, StatusPending, StatusRejected},
	ActionApproveLegal:   {StatusPendingReview},
	ActionRejectLegal:    {StatusPendingReview},
	ActionApproveFinance: {StatusPendingReview},
	ActionRejectFinance:  {StatusPendingReview},
	ActionSubmitSign:     {StatusBothApproved},
	ActionSign:           {StatusPendingSign},
	ActionComplete:       {StatusActive},
}

// TransitionInput carries the caller-supplied payload for an action.
type TransitionInput struct {
	Actor    common_models.Actor
	DraftURL string // SubmitReview only
	Reason   string // rejections only
}

// TransitionResult is the computed outcome of a legal transition: the fields
// to persist plus the audit entry to append.
type TransitionResult struct {
	Status          Status
	LegalApproved   bool
	FinanceApproved bool
	DraftURL        string
	AuditAction     common_models.WorkflowAction
	FromState       Status
	ToState         Status
	Comment         string
}

// Transition is the pure engine: given the current contract and a requested
// action, it validates state legality, the role guard and the input, and
// returns the resulting field set. It never touches storage.
func Transition(c Contract, action Action, in TransitionInput) (TransitionResult, error) {
	sources, ok := actionSources[action]
	if !ok {
		return TransitionResult{}, common_models.InvalidTransitionf("unknown action %q", action)
	}
	if !slices.Contains(sources, c.Status) {
		return TransitionResult{}, common_models.InvalidTransitionf("action %s is not allowed while the contract is %s", action, c.Status)
	}
	if !slices.Contains(actionRoles[action], in.Actor.Role) {
		return TransitionResult{}, common_models.Unauthorizedf("role %s may not perform %s", in.Actor.Role, action)
	}

	res := TransitionResult{
		LegalApproved:   c.LegalApproved,
		FinanceApproved: c.FinanceApproved,
		DraftURL:        c.DraftURL,
		FromState:       c.Status,
	}

	switch action {
	case ActionSubmitReview:
		if strings.TrimSpace(in.DraftURL) == "" {
			return TransitionResult{}, common_models.Validationf("a draft document URL is required to submit for review")
		}
		res.Status = StatusPendingReview
		// Resubmission restarts both reviewers: no partial-approval carry-over
		res.LegalApproved = false
		res.FinanceApproved = false
		res.DraftURL = strings.TrimSpace(in.DraftURL)
		res.AuditAction = common_models.ActionSubmit
		res.Comment = "Submitted for review"

	case ActionApproveLegal:
		res.LegalApproved = true
		res.Status = promote(res.LegalApproved, res.FinanceApproved)
		res.AuditAction = common_models.ActionApprove
		res.Comment = "Legal approved"

	case ActionApproveFinance:
		res.FinanceApproved = true
		res.Status = promote(res.LegalApproved, res.FinanceApproved)
		res.AuditAction = common_models.ActionApprove
		res.Comment = "Finance approved"

	case ActionRejectLegal, ActionRejectFinance:
		if err := validateReason(in.Reason); err != nil {
			return TransitionResult{}, err
		}
		res.Status = StatusRejected
		res.AuditAction = common_models.ActionReject
		res.Comment = strings.TrimSpace(in.Reason)

	case ActionSubmitSign:
		res.Status = StatusPendingSign
		res.AuditAction = common_models.ActionSubmit
		res.Comment = "Sent for signature"

	case ActionSign:
		res.Status = StatusActive
		res.AuditAction = common_models.ActionSign
		res.Comment = "Contract signed"

	case ActionComplete:
		res.Status = StatusCompleted
		res.AuditAction = common_models.ActionComplete
		res.Comment = "Contract completed"
	}

	res.ToState = res.Status
	return res, nil
}

// promote computes the review status as a pure function of the two flags, so
// two reviewers acting concurrently can never skip or double the promotion.
func promote(legal, finance bool) Status {
	if legal && finance {
		return StatusBothApproved
	}
	return StatusPendingReview
}

func validateReason(reason string) error {
	if len(strings.TrimSpace(reason)) < MinReasonLen {
		return common_models.Validationf("a rejection reason of at least %d characters is required", MinReasonLen)
	}
	return nil
}
