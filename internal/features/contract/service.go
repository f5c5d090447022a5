package contract

import (
	"context"
	"strings"
	"time"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/audit"

	"go.uber.org/zap"
)

type ContractService interface {
	CreateContract(ctx context.Context, actor common_models.Actor, contract *Contract) error
	GetContract(ctx context.Context, id string) (*Contract, error)
	ListContracts(ctx context.Context, limit, offset int64) ([]Contract, error)

	SubmitForReview(ctx context.Context, actor common_models.Actor, contractID string, draftURL string) error
	ApproveLegal(ctx context.Context, actor common_models.Actor, contractID string) error
	RejectLegal(ctx context.Context, actor common_models.Actor, contractID string, reason string) error
	ApproveFinance(ctx context.Context, actor common_models.Actor, contractID string) error
	RejectFinance(ctx context.Context, actor common_models.Actor, contractID string, reason string) error
	SubmitForSign(ctx context.Context, actor common_models.Actor, contractID string) error
	SignContract(ctx context.Context, actor common_models.Actor, contractID string) error
	CompleteContract(ctx context.Context, actor common_models.Actor, contractID string) error

	ListStaleReviews(ctx context.Context, olderThan time.Duration) ([]Contract, error)
}

type ContractServiceImpl struct {
	Repo         ContractRepository
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewContractService(repo ContractRepository, auditService audit.AuditService, logger *zap.Logger) ContractService {
	return &ContractServiceImpl{
		Repo:         repo,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *ContractServiceImpl) CreateContract(ctx context.Context, actor common_models.Actor, contract *Contract) error {
	if strings.TrimSpace(contract.Name) == "" {
		return common_models.Validationf("contract name is required")
	}
	contract.CreatedBy = actor.ID

	if err := s.Repo.Create(ctx, contract); err != nil {
		return common_models.Persistencef("could not create contract: %v", err)
	}

	s.Logger.Info("contract created",
		zap.String("record_id", contract.ID.Hex()),
		zap.String("actor", actor.ID))
	return nil
}

func (s *ContractServiceImpl) GetContract(ctx context.Context, id string) (*Contract, error) {
	c, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c != nil {
		c.Status = NormalizeStatus(c.Status)
	}
	return c, nil
}

func (s *ContractServiceImpl) ListContracts(ctx context.Context, limit, offset int64) ([]Contract, error) {
	contracts, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range contracts {
		contracts[i].Status = NormalizeStatus(contracts[i].Status)
	}
	return contracts, nil
}

func (s *ContractServiceImpl) SubmitForReview(ctx context.Context, actor common_models.Actor, contractID string, draftURL string) error {
	return s.transition(ctx, actor, contractID, ActionSubmitReview, TransitionInput{Actor: actor, DraftURL: draftURL})
}

func (s *ContractServiceImpl) ApproveLegal(ctx context.Context, actor common_models.Actor, contractID string) error {
	return s.transition(ctx, actor, contractID, ActionApproveLegal, TransitionInput{Actor: actor})
}

func (s *ContractServiceImpl) RejectLegal(ctx context.Context, actor common_models.Actor, contractID string, reason string) error {
	return s.transition(ctx, actor, contractID, ActionRejectLegal, TransitionInput{Actor: actor, Reason: reason})
}

func (s *ContractServiceImpl) ApproveFinance(ctx context.Context, actor common_models.Actor, contractID string) error {
	return s.transition(ctx, actor, contractID, ActionApproveFinance, TransitionInput{Actor: actor})
}

func (s *ContractServiceImpl) RejectFinance(ctx context.Context, actor common_models.Actor, contractID string, reason string) error {
	return s.transition(ctx, actor, contractID, ActionRejectFinance, TransitionInput{Actor: actor, Reason: reason})
}

func (s *ContractServiceImpl) SubmitForSign(ctx context.Context, actor common_models.Actor, contractID string) error {
	return s.transition(ctx, actor, contractID, ActionSubmitSign, TransitionInput{Actor: actor})
}

func (s *ContractServiceImpl) SignContract(ctx context.Context, actor common_models.Actor, contractID string) error {
	return s.transition(ctx, actor, contractID, ActionSign, TransitionInput{Actor: actor})
}

func (s *ContractServiceImpl) CompleteContract(ctx context.Context, actor common_models.Actor, contractID string) error {
	return s.transition(ctx, actor, contractID, ActionComplete, TransitionInput{Actor: actor})
}

func (s *ContractServiceImpl) ListStaleReviews(ctx context.Context, olderThan time.Duration) ([]Contract, error) {
	return s.Repo.ListPendingReviewOlderThan(ctx, time.Now().Add(-olderThan))
}

// transition runs one guarded state change: load, evaluate the pure machine,
// persist conditionally on the loaded revision, then append the audit entry.
func (s *ContractServiceImpl) transition(ctx context.Context, actor common_models.Actor, contractID string, action Action, in TransitionInput) error {
	c, err := s.Repo.FindByID(ctx, contractID)
	if err != nil {
		return common_models.Persistencef("could not load contract: %v", err)
	}
	if c == nil {
		return common_models.Validationf("contract not found: %s", contractID)
	}

	res, err := Transition(*c, action, in)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"status":           res.Status,
		"legal_approved":   res.LegalApproved,
		"finance_approved": res.FinanceApproved,
		"draft_url":        res.DraftURL,
	}

	matched, err := s.Repo.ApplyTransition(ctx, contractID, c.Revision, fields)
	if err != nil {
		return common_models.Persistencef("could not persist transition: %v", err)
	}
	if !matched {
		return common_models.Persistencef("contract was modified concurrently, please reload and retry")
	}

	if err := s.AuditService.LogTransition(ctx, TableName, contractID, actor, res.AuditAction, string(res.FromState), string(res.ToState), res.Comment); err != nil {
		// The transition is already committed; a lost audit row is logged, not surfaced
		s.Logger.Error("failed to append audit entry",
			zap.String("record_id", contractID),
			zap.Error(err))
	}

	s.Logger.Info("contract transition",
		zap.String("record_id", contractID),
		zap.String("action", string(action)),
		zap.String("from", string(res.FromState)),
		zap.String("to", string(res.ToState)),
		zap.String("actor", actor.ID))
	return nil
}
