package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
)

type fakeAuditRepo struct {
	entries []common_models.AuditEntry
}

func (r *fakeAuditRepo) Create(ctx context.Context, entry common_models.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) ListByRecord(ctx context.Context, table string, recordID string) ([]common_models.AuditEntry, error) {
	var out []common_models.AuditEntry
	for _, e := range r.entries {
		if e.Table == table && e.RecordID == recordID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) FindApprovalForState(ctx context.Context, table string, recordID string, toState string) (*common_models.AuditEntry, error) {
	var latest *common_models.AuditEntry
	for i := range r.entries {
		e := r.entries[i]
		if e.Table != table || e.RecordID != recordID || e.ToState != toState {
			continue
		}
		if e.Action != common_models.ActionApprove && e.Action != common_models.ActionSign {
			continue
		}
		if latest == nil || e.Timestamp.After(latest.Timestamp) {
			latest = &r.entries[i]
		}
	}
	return latest, nil
}

type fakeUserFinder struct {
	names map[string]string
	err   error
}

func (f *fakeUserFinder) GetNames(ctx context.Context, ids []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]string{}
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func TestLogTransitionIsAppendOnly(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, &fakeUserFinder{})

	ctx := context.Background()
	actor := common_models.Actor{ID: "u-1", Role: common_models.RoleLegal}

	if err := svc.LogTransition(ctx, "contracts", "c-1", actor, common_models.ActionApprove, "Pending_Review", "Pending_Review", "phap ly ok"); err != nil {
		t.Fatalf("LogTransition: %v", err)
	}
	if err := svc.LogTransition(ctx, "contracts", "c-1", actor, common_models.ActionReject, "Pending_Review", "Rejected", "Sai giá đầu vào"); err != nil {
		t.Fatalf("LogTransition: %v", err)
	}

	if len(repo.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(repo.entries))
	}
	first := repo.entries[0]
	if first.ActorID != "u-1" || first.ActorRole != common_models.RoleLegal {
		t.Errorf("actor not recorded: %+v", first)
	}
	if first.FromState != "Pending_Review" || first.Timestamp.IsZero() {
		t.Errorf("entry missing state or timestamp: %+v", first)
	}
}

func TestGetAuditTrailPopulatesNames(t *testing.T) {
	repo := &fakeAuditRepo{entries: []common_models.AuditEntry{
		{Table: "contracts", RecordID: "c-1", ActorID: "u-1", Action: common_models.ActionSubmit},
		{Table: "contracts", RecordID: "c-1", ActorID: "u-2", Action: common_models.ActionApprove},
		{Table: "contracts", RecordID: "c-2", ActorID: "u-3", Action: common_models.ActionSubmit},
	}}
	users := &fakeUserFinder{names: map[string]string{"u-1": "Nguyễn Văn A"}}
	svc := NewAuditService(repo, users)

	trail, err := svc.GetAuditTrail(context.Background(), "contracts", "c-1")
	if err != nil {
		t.Fatalf("GetAuditTrail: %v", err)
	}
	if len(trail) != 2 {
		t.Fatalf("trail length = %d, want 2", len(trail))
	}
	if trail[0].ActorName != "Nguyễn Văn A" {
		t.Errorf("actor name = %q, want display name", trail[0].ActorName)
	}
	// Names that cannot be resolved fall back to the raw ID
	if trail[1].ActorName != "u-2" {
		t.Errorf("unresolved actor name = %q, want raw id", trail[1].ActorName)
	}
}

func TestGetAuditTrailSurvivesNameLookupFailure(t *testing.T) {
	repo := &fakeAuditRepo{entries: []common_models.AuditEntry{
		{Table: "contracts", RecordID: "c-1", ActorID: "u-1", Action: common_models.ActionSubmit},
	}}
	svc := NewAuditService(repo, &fakeUserFinder{err: errors.New("users down")})

	trail, err := svc.GetAuditTrail(context.Background(), "contracts", "c-1")
	if err != nil {
		t.Fatalf("GetAuditTrail: %v", err)
	}
	if trail[0].ActorName != "u-1" {
		t.Errorf("actor name = %q, want raw id fallback", trail[0].ActorName)
	}
}

func TestGetStepAttribution(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeAuditRepo{entries: []common_models.AuditEntry{
		// A rejection into the same state must never win attribution
		{Table: "contracts", RecordID: "c-1", ActorID: "u-0", Action: common_models.ActionReject, ToState: "Rejected", Timestamp: base},
		{Table: "contracts", RecordID: "c-1", ActorID: "u-1", Action: common_models.ActionApprove, ToState: "Both_Approved", Comment: "ok", Timestamp: base.Add(time.Hour)},
		// Later approval into the same state wins (resubmission after reject)
		{Table: "contracts", RecordID: "c-1", ActorID: "u-2", Action: common_models.ActionApprove, ToState: "Both_Approved", Timestamp: base.Add(2 * time.Hour)},
	}}
	users := &fakeUserFinder{names: map[string]string{"u-2": "Trần Thị B"}}
	svc := NewAuditService(repo, users)

	got, err := svc.GetStepAttribution(context.Background(), "contracts", "c-1", "Both_Approved")
	if err != nil {
		t.Fatalf("GetStepAttribution: %v", err)
	}
	if got == nil {
		t.Fatal("expected an attribution")
	}
	if got.ActorID != "u-2" || got.ActorName != "Trần Thị B" {
		t.Errorf("attribution = %+v, want latest approver u-2", got)
	}

	missing, err := svc.GetStepAttribution(context.Background(), "contracts", "c-1", "Active")
	if err != nil {
		t.Fatalf("GetStepAttribution: %v", err)
	}
	if missing != nil {
		t.Errorf("attribution for uncleared step = %+v, want nil", missing)
	}
}
