package contract

import (
	"context"
	"testing"
	"time"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeContractRepo struct {
	contracts map[string]*Contract
}

func newFakeContractRepo(contracts ...*Contract) *fakeContractRepo {
	repo := &fakeContractRepo{contracts: map[string]*Contract{}}
	for _, c := range contracts {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		if c.Revision == 0 {
			c.Revision = 1
		}
		repo.contracts[c.ID.Hex()] = c
	}
	return repo
}

func (r *fakeContractRepo) Create(ctx context.Context, c *Contract) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.Status = StatusDraft
	c.Revision = 1
	r.contracts[c.ID.Hex()] = c
	return nil
}

func (r *fakeContractRepo) FindByID(ctx context.Context, id string) (*Contract, error) {
	c, ok := r.contracts[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *fakeContractRepo) List(ctx context.Context, limit, offset int64) ([]Contract, error) {
	var out []Contract
	for _, c := range r.contracts {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeContractRepo) ApplyTransition(ctx context.Context, id string, revision int64, fields map[string]interface{}) (bool, error) {
	c, ok := r.contracts[id]
	if !ok || c.Revision != revision {
		return false, nil
	}
	if v, ok := fields["status"].(Status); ok {
		c.Status = v
	}
	if v, ok := fields["legal_approved"].(bool); ok {
		c.LegalApproved = v
	}
	if v, ok := fields["finance_approved"].(bool); ok {
		c.FinanceApproved = v
	}
	if v, ok := fields["draft_url"].(string); ok {
		c.DraftURL = v
	}
	c.Revision++
	return true, nil
}

func (r *fakeContractRepo) ListPendingReviewOlderThan(ctx context.Context, cutoff time.Time) ([]Contract, error) {
	var out []Contract
	for _, c := range r.contracts {
		if c.Status == StatusPendingReview && c.UpdatedAt.Before(cutoff) {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeAuditService struct {
	entries []common_models.AuditEntry
}

func (f *fakeAuditService) LogTransition(ctx context.Context, table string, recordID string, actor common_models.Actor, action common_models.WorkflowAction, fromState, toState, comment string) error {
	f.entries = append(f.entries, common_models.AuditEntry{
		Table:     table,
		RecordID:  recordID,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Action:    action,
		FromState: fromState,
		ToState:   toState,
		Comment:   comment,
	})
	return nil
}

func (f *fakeAuditService) GetAuditTrail(ctx context.Context, table string, recordID string) ([]audit.AuditedEntry, error) {
	return nil, nil
}

func (f *fakeAuditService) GetStepAttribution(ctx context.Context, table string, recordID string, toState string) (*audit.StepAttribution, error) {
	return nil, nil
}

func newService(repo ContractRepository, auditSvc audit.AuditService) ContractService {
	return NewContractService(repo, auditSvc, zap.NewNop())
}

func TestFullReviewFlow(t *testing.T) {
	c := &Contract{Name: "HD-2024-001", Status: StatusDraft}
	repo := newFakeContractRepo(c)
	auditSvc := &fakeAuditService{}
	svc := newService(repo, auditSvc)

	ctx := context.Background()
	id := c.ID.Hex()

	sales := common_models.Actor{ID: "sales-1", Role: common_models.RoleNVKD}
	legal := common_models.Actor{ID: "legal-1", Role: common_models.RoleLegal}
	finance := common_models.Actor{ID: "acct-1", Role: common_models.RoleChiefAccountant}
	boss := common_models.Actor{ID: "boss-1", Role: common_models.RoleLeadership}

	if err := svc.SubmitForReview(ctx, sales, id, "https://drive.example.com/d/abc"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.ApproveLegal(ctx, legal, id); err != nil {
		t.Fatalf("approve legal: %v", err)
	}
	got, _ := svc.GetContract(ctx, id)
	if got.Status != StatusPendingReview || !got.LegalApproved || got.FinanceApproved {
		t.Fatalf("after legal approval: status=%s legal=%v finance=%v", got.Status, got.LegalApproved, got.FinanceApproved)
	}

	if err := svc.ApproveFinance(ctx, finance, id); err != nil {
		t.Fatalf("approve finance: %v", err)
	}
	got, _ = svc.GetContract(ctx, id)
	if got.Status != StatusBothApproved {
		t.Fatalf("after both approvals: status=%s, want %s", got.Status, StatusBothApproved)
	}
	if !got.LegalApproved || !got.FinanceApproved {
		t.Fatal("both flags must be true in Both_Approved")
	}

	if err := svc.SubmitForSign(ctx, boss, id); err != nil {
		t.Fatalf("submit sign: %v", err)
	}
	if err := svc.SignContract(ctx, boss, id); err != nil {
		t.Fatalf("sign: %v", err)
	}
	got, _ = svc.GetContract(ctx, id)
	if got.Status != StatusActive {
		t.Fatalf("after sign: status=%s, want %s", got.Status, StatusActive)
	}

	// One audit row per accepted transition
	if len(auditSvc.entries) != 5 {
		t.Errorf("audit entries = %d, want 5", len(auditSvc.entries))
	}
	last := auditSvc.entries[len(auditSvc.entries)-1]
	if last.ToState != string(StatusActive) || last.Action != common_models.ActionSign {
		t.Errorf("last audit entry = %+v", last)
	}
}

func TestRejectDiscardsOtherReviewerState(t *testing.T) {
	c := &Contract{Name: "HD-2024-002", Status: StatusPendingReview, LegalApproved: true}
	repo := newFakeContractRepo(c)
	auditSvc := &fakeAuditService{}
	svc := newService(repo, auditSvc)

	finance := common_models.Actor{ID: "acct-1", Role: common_models.RoleAccountant}
	err := svc.RejectFinance(context.Background(), finance, c.ID.Hex(), "Sai giá đầu vào")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}

	got, _ := svc.GetContract(context.Background(), c.ID.Hex())
	if got.Status != StatusRejected {
		t.Errorf("status = %s, want %s", got.Status, StatusRejected)
	}

	if len(auditSvc.entries) != 1 || auditSvc.entries[0].Comment != "Sai giá đầu vào" {
		t.Errorf("audit entries = %+v", auditSvc.entries)
	}
}

func TestUnauthorizedLeavesStateUntouched(t *testing.T) {
	c := &Contract{Name: "HD-2024-003", Status: StatusPendingReview}
	repo := newFakeContractRepo(c)
	auditSvc := &fakeAuditService{}
	svc := newService(repo, auditSvc)

	sales := common_models.Actor{ID: "sales-1", Role: common_models.RoleNVKD}
	err := svc.ApproveFinance(context.Background(), sales, c.ID.Hex())
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	if kind := common_models.KindOf(err); kind != common_models.ErrUnauthorized {
		t.Errorf("error kind = %s, want %s", kind, common_models.ErrUnauthorized)
	}

	got, _ := svc.GetContract(context.Background(), c.ID.Hex())
	if got.Status != StatusPendingReview || got.FinanceApproved {
		t.Error("failed guard must not change state")
	}
	if len(auditSvc.entries) != 0 {
		t.Error("failed guard must not append audit entries")
	}
}

func TestConcurrentTransitionSurfacesAsPersistenceFailure(t *testing.T) {
	c := &Contract{Name: "HD-2024-004", Status: StatusPendingReview}
	repo := newFakeContractRepo(c)
	svc := newService(repo, &fakeAuditService{})

	// Simulate a racing session bumping the revision after our read
	repo.contracts[c.ID.Hex()].Revision++

	legal := common_models.Actor{ID: "legal-1", Role: common_models.RoleLegal}
	err := svc.ApproveLegal(context.Background(), legal, c.ID.Hex())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if kind := common_models.KindOf(err); kind != common_models.ErrPersistenceFailure {
		t.Errorf("error kind = %s, want %s", kind, common_models.ErrPersistenceFailure)
	}
}

func TestGetContractNormalizesLegacyStatus(t *testing.T) {
	c := &Contract{Name: "HD-2019-017", Status: StatusLegacyFinanceApproved}
	repo := newFakeContractRepo(c)
	svc := newService(repo, &fakeAuditService{})

	got, err := svc.GetContract(context.Background(), c.ID.Hex())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusPendingReview {
		t.Errorf("status = %s, want normalized %s", got.Status, StatusPendingReview)
	}
}
