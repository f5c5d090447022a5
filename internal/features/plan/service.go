package plan

import (
	"context"
	"strconv"
	"strings"
	"time"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type PlanService interface {
	CreatePlan(ctx context.Context, actor common_models.Actor, plan *BusinessPlan) error
	GetPlan(ctx context.Context, id string) (*BusinessPlan, error)
	GetActivePlan(ctx context.Context, contractID string) (*BusinessPlan, error)
	ListVersions(ctx context.Context, contractID string) ([]BusinessPlan, error)

	SubmitPlan(ctx context.Context, actor common_models.Actor, planID string) error
	ApprovePlan(ctx context.Context, actor common_models.Actor, planID string, tier string) error
	RejectPlan(ctx context.Context, actor common_models.Actor, planID string, reason string) error

	// EditPlan changes financials in place; only legal for Draft/Rejected rows.
	EditPlan(ctx context.Context, actor common_models.Actor, planID string, financials Financials, notes string) error
	// CreateVersion is the edit path for everything else: a fresh Draft row
	// with version+1 while the reviewed snapshot stays untouched.
	CreateVersion(ctx context.Context, actor common_models.Actor, planID string, financials Financials, notes string) (*BusinessPlan, error)

	ExportFinancials(ctx context.Context, contractID string) ([]byte, error)
}

type PlanServiceImpl struct {
	Repo         PlanRepository
	AuditService audit.AuditService
	Logger       *zap.Logger
}

func NewPlanService(repo PlanRepository, auditService audit.AuditService, logger *zap.Logger) PlanService {
	return &PlanServiceImpl{
		Repo:         repo,
		AuditService: auditService,
		Logger:       logger,
	}
}

func (s *PlanServiceImpl) CreatePlan(ctx context.Context, actor common_models.Actor, plan *BusinessPlan) error {
	if strings.TrimSpace(plan.ContractID) == "" {
		return common_models.Validationf("contract_id is required")
	}

	existing, err := s.Repo.FindActiveByContract(ctx, plan.ContractID)
	if err != nil {
		return common_models.Persistencef("could not check existing plans: %v", err)
	}
	if existing != nil {
		return common_models.Validationf("contract %s already has an active plan, create a new version instead", plan.ContractID)
	}

	plan.Financials.Normalize()
	plan.CreatedBy = actor.ID

	if err := s.Repo.Create(ctx, plan); err != nil {
		return common_models.Persistencef("could not create plan: %v", err)
	}

	s.Logger.Info("business plan created",
		zap.String("record_id", plan.ID.Hex()),
		zap.String("contract_id", plan.ContractID),
		zap.String("actor", actor.ID))
	return nil
}

func (s *PlanServiceImpl) GetPlan(ctx context.Context, id string) (*BusinessPlan, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *PlanServiceImpl) GetActivePlan(ctx context.Context, contractID string) (*BusinessPlan, error) {
	return s.Repo.FindActiveByContract(ctx, contractID)
}

func (s *PlanServiceImpl) ListVersions(ctx context.Context, contractID string) ([]BusinessPlan, error) {
	return s.Repo.ListVersions(ctx, contractID)
}

func (s *PlanServiceImpl) SubmitPlan(ctx context.Context, actor common_models.Actor, planID string) error {
	p, err := s.load(ctx, planID)
	if err != nil {
		return err
	}

	res, err := Submit(*p, actor)
	if err != nil {
		return err
	}

	return s.commit(ctx, actor, p, res, nil)
}

func (s *PlanServiceImpl) ApprovePlan(ctx context.Context, actor common_models.Actor, planID string, tier string) error {
	p, err := s.load(ctx, planID)
	if err != nil {
		return err
	}

	res, err := Approve(*p, actor, tier)
	if err != nil {
		return err
	}

	extra := map[string]interface{}{}
	if res.Status == StatusApproved {
		extra["approved_by"] = actor.ID
	}
	return s.commit(ctx, actor, p, res, extra)
}

func (s *PlanServiceImpl) RejectPlan(ctx context.Context, actor common_models.Actor, planID string, reason string) error {
	p, err := s.load(ctx, planID)
	if err != nil {
		return err
	}

	res, err := Reject(*p, actor, reason)
	if err != nil {
		return err
	}

	return s.commit(ctx, actor, p, res, nil)
}

func (s *PlanServiceImpl) EditPlan(ctx context.Context, actor common_models.Actor, planID string, financials Financials, notes string) error {
	p, err := s.load(ctx, planID)
	if err != nil {
		return err
	}
	if !p.Editable() {
		return common_models.InvalidTransitionf("a plan in status %s cannot be edited in place, create a new version", p.Status)
	}

	financials.Normalize()
	fields := map[string]interface{}{
		"financials": financials,
		"notes":      notes,
		// Editing a rejected plan puts it back in Draft so it can be resubmitted
		"status": StatusDraft,
	}

	if err := s.Repo.UpdateInPlace(ctx, planID, fields); err != nil {
		return common_models.Persistencef("could not update plan: %v", err)
	}

	s.Logger.Info("business plan edited",
		zap.String("record_id", planID),
		zap.String("actor", actor.ID))
	return nil
}

func (s *PlanServiceImpl) CreateVersion(ctx context.Context, actor common_models.Actor, planID string, financials Financials, notes string) (*BusinessPlan, error) {
	p, err := s.load(ctx, planID)
	if err != nil {
		return nil, err
	}
	if p.Editable() {
		return nil, common_models.InvalidTransitionf("a plan in status %s is edited in place, not versioned", p.Status)
	}
	if !p.IsActive {
		return nil, common_models.Validationf("only the active version can be superseded")
	}

	financials.Normalize()
	now := time.Now()
	next := &BusinessPlan{
		ID:         primitive.NewObjectID(),
		ContractID: p.ContractID,
		Version:    p.Version + 1,
		IsActive:   true,
		Status:     StatusDraft,
		Financials: financials,
		CreatedBy:  actor.ID,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.Repo.InsertVersion(ctx, p.ID, next); err != nil {
		return nil, common_models.Persistencef("could not create plan version: %v", err)
	}

	if err := s.AuditService.LogTransition(ctx, TableName, next.ID.Hex(), actor, common_models.ActionSubmit, string(p.Status), string(StatusDraft), "Created version "+strconv.Itoa(next.Version)); err != nil {
		s.Logger.Error("failed to append audit entry", zap.String("record_id", next.ID.Hex()), zap.Error(err))
	}

	s.Logger.Info("business plan version created",
		zap.String("record_id", next.ID.Hex()),
		zap.String("contract_id", next.ContractID),
		zap.Int("version", next.Version),
		zap.String("actor", actor.ID))
	return next, nil
}

func (s *PlanServiceImpl) load(ctx context.Context, planID string) (*BusinessPlan, error) {
	p, err := s.Repo.FindByID(ctx, planID)
	if err != nil {
		return nil, common_models.Persistencef("could not load plan: %v", err)
	}
	if p == nil {
		return nil, common_models.Validationf("plan not found: %s", planID)
	}
	return p, nil
}

func (s *PlanServiceImpl) commit(ctx context.Context, actor common_models.Actor, p *BusinessPlan, res TransitionResult, extra map[string]interface{}) error {
	fields := map[string]interface{}{"status": res.Status}
	for k, v := range extra {
		fields[k] = v
	}

	matched, err := s.Repo.UpdateStatus(ctx, p.ID.Hex(), res.FromState, fields)
	if err != nil {
		return common_models.Persistencef("could not persist transition: %v", err)
	}
	if !matched {
		return common_models.Persistencef("plan was modified concurrently, please reload and retry")
	}

	if err := s.AuditService.LogTransition(ctx, TableName, p.ID.Hex(), actor, res.AuditAction, string(res.FromState), string(res.ToState), res.Comment); err != nil {
		s.Logger.Error("failed to append audit entry", zap.String("record_id", p.ID.Hex()), zap.Error(err))
	}

	s.Logger.Info("plan transition",
		zap.String("record_id", p.ID.Hex()),
		zap.String("from", string(res.FromState)),
		zap.String("to", string(res.ToState)),
		zap.String("actor", actor.ID))
	return nil
}
