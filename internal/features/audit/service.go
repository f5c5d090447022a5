package audit

import (
	"context"
	"time"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserFinder interface {
	GetNames(ctx context.Context, ids []string) (map[string]string, error)
}

// StepAttribution is what the approval stepper renders for a cleared step.
type StepAttribution struct {
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditedEntry is an audit entry with the actor display name populated.
type AuditedEntry struct {
	common_models.AuditEntry
	ActorName string `json:"actor_name"`
}

type AuditService interface {
	LogTransition(ctx context.Context, table string, recordID string, actor common_models.Actor, action common_models.WorkflowAction, fromState, toState, comment string) error
	GetAuditTrail(ctx context.Context, table string, recordID string) ([]AuditedEntry, error)
	GetStepAttribution(ctx context.Context, table string, recordID string, toState string) (*StepAttribution, error)
}

type AuditServiceImpl struct {
	Repo     AuditRepository
	UserRepo UserFinder
}

func NewAuditService(repo AuditRepository, userRepo UserFinder) AuditService {
	return &AuditServiceImpl{
		Repo:     repo,
		UserRepo: userRepo,
	}
}

func (s *AuditServiceImpl) LogTransition(ctx context.Context, table string, recordID string, actor common_models.Actor, action common_models.WorkflowAction, fromState, toState, comment string) error {
	entry := common_models.AuditEntry{
		ID:        primitive.NewObjectID(),
		Table:     table,
		RecordID:  recordID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Action:    action,
		FromState: fromState,
		ToState:   toState,
		Comment:   comment,
		Timestamp: time.Now(),
	}

	return s.Repo.Create(ctx, entry)
}

func (s *AuditServiceImpl) GetAuditTrail(ctx context.Context, table string, recordID string) ([]AuditedEntry, error) {
	entries, err := s.Repo.ListByRecord(ctx, table, recordID)
	if err != nil {
		return nil, err
	}

	// Collect Actor IDs
	actorIDs := make([]string, 0)
	uniqueIDs := make(map[string]bool)
	for _, entry := range entries {
		if entry.ActorID != "" && !uniqueIDs[entry.ActorID] {
			uniqueIDs[entry.ActorID] = true
			actorIDs = append(actorIDs, entry.ActorID)
		}
	}

	// Batch fetch display names; fall back to the raw ID when lookup fails
	nameMap := make(map[string]string)
	if len(actorIDs) > 0 {
		if names, err := s.UserRepo.GetNames(ctx, actorIDs); err == nil {
			nameMap = names
		}
	}

	result := make([]AuditedEntry, 0, len(entries))
	for _, entry := range entries {
		name, ok := nameMap[entry.ActorID]
		if !ok {
			name = entry.ActorID
		}
		result = append(result, AuditedEntry{AuditEntry: entry, ActorName: name})
	}
	return result, nil
}

func (s *AuditServiceImpl) GetStepAttribution(ctx context.Context, table string, recordID string, toState string) (*StepAttribution, error) {
	entry, err := s.Repo.FindApprovalForState(ctx, table, recordID, toState)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	name := entry.ActorID
	if names, err := s.UserRepo.GetNames(ctx, []string{entry.ActorID}); err == nil {
		if n, ok := names[entry.ActorID]; ok {
			name = n
		}
	}

	return &StepAttribution{
		ActorID:   entry.ActorID,
		ActorName: name,
		Comment:   entry.Comment,
		Timestamp: entry.Timestamp,
	}, nil
}
