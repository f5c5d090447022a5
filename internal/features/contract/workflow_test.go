package contract

import (
	"testing"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
)

func actor(role common_models.Role) common_models.Actor {
	return common_models.Actor{ID: "user-1", Role: role}
}

func TestTransitionSubmitReview(t *testing.T) {
	tests := []struct {
		name     string
		contract Contract
		input    TransitionInput
		wantErr  common_models.ErrorKind
		want     Status
	}{
		{
			name:     "NVKD Submits Draft",
			contract: Contract{Status: StatusDraft},
			input:    TransitionInput{Actor: actor(common_models.RoleNVKD), DraftURL: "https://drive.example.com/d/abc"},
			want:     StatusPendingReview,
		},
		{
			name:     "Unit Leader Submits Pending",
			contract: Contract{Status: StatusPending},
			input:    TransitionInput{Actor: actor(common_models.RoleUnitLeader), DraftURL: "https://drive.example.com/d/abc"},
			want:     StatusPendingReview,
		},
		{
			name:     "Resubmit After Rejection",
			contract: Contract{Status: StatusRejected, LegalApproved: true},
			input:    TransitionInput{Actor: actor(common_models.RoleNVKD), DraftURL: "https://drive.example.com/d/v2"},
			want:     StatusPendingReview,
		},
		{
			name:     "Missing Draft URL",
			contract: Contract{Status: StatusDraft},
			input:    TransitionInput{Actor: actor(common_models.RoleNVKD)},
			wantErr:  common_models.ErrValidation,
		},
		{
			name:     "Legal Cannot Submit",
			contract: Contract{Status: StatusDraft},
			input:    TransitionInput{Actor: actor(common_models.RoleLegal), DraftURL: "https://drive.example.com/d/abc"},
			wantErr:  common_models.ErrUnauthorized,
		},
		{
			name:     "Cannot Submit While Under Review",
			contract: Contract{Status: StatusPendingReview},
			input:    TransitionInput{Actor: actor(common_models.RoleNVKD), DraftURL: "https://drive.example.com/d/abc"},
			wantErr:  common_models.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Transition(tt.contract, ActionSubmitReview, tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected %s error, got nil", tt.wantErr)
				}
				if got := common_models.KindOf(err); got != tt.wantErr {
					t.Errorf("error kind = %s, want %s", got, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != tt.want {
				t.Errorf("status = %s, want %s", res.Status, tt.want)
			}
			if res.LegalApproved || res.FinanceApproved {
				t.Error("submission must reset both approval flags")
			}
		})
	}
}

func TestTransitionParallelApproval(t *testing.T) {
	c := Contract{Status: StatusPendingReview}

	// Legal approves first: status stays Pending_Review
	res, err := Transition(c, ActionApproveLegal, TransitionInput{Actor: actor(common_models.RoleLegal)})
	if err != nil {
		t.Fatalf("legal approve: %v", err)
	}
	if !res.LegalApproved {
		t.Error("legal_approved not set")
	}
	if res.Status != StatusPendingReview {
		t.Errorf("status after first approval = %s, want %s", res.Status, StatusPendingReview)
	}

	// Finance approves second: promotion to Both_Approved
	c.LegalApproved = res.LegalApproved
	c.Status = res.Status
	res, err = Transition(c, ActionApproveFinance, TransitionInput{Actor: actor(common_models.RoleAccountant)})
	if err != nil {
		t.Fatalf("finance approve: %v", err)
	}
	if res.Status != StatusBothApproved {
		t.Errorf("status after second approval = %s, want %s", res.Status, StatusBothApproved)
	}
}

func TestTransitionApprovalOrderIsIrrelevant(t *testing.T) {
	c := Contract{Status: StatusPendingReview, FinanceApproved: true}

	res, err := Transition(c, ActionApproveLegal, TransitionInput{Actor: actor(common_models.RoleLeadership)})
	if err != nil {
		t.Fatalf("legal approve: %v", err)
	}
	if res.Status != StatusBothApproved {
		t.Errorf("status = %s, want %s", res.Status, StatusBothApproved)
	}
}

func TestTransitionReject(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		c       Contract
		input   TransitionInput
		wantErr common_models.ErrorKind
	}{
		{
			name:   "Finance Rejects With Reason",
			action: ActionRejectFinance,
			c:      Contract{Status: StatusPendingReview, LegalApproved: true},
			input:  TransitionInput{Actor: actor(common_models.RoleChiefAccountant), Reason: "Sai giá đầu vào"},
		},
		{
			name:   "Legal Rejects With Reason",
			action: ActionRejectLegal,
			c:      Contract{Status: StatusPendingReview},
			input:  TransitionInput{Actor: actor(common_models.RoleLegal), Reason: "Thiếu điều khoản bảo hành"},
		},
		{
			name:    "Short Reason Rejected",
			action:  ActionRejectLegal,
			c:       Contract{Status: StatusPendingReview},
			input:   TransitionInput{Actor: actor(common_models.RoleLegal), Reason: "sai"},
			wantErr: common_models.ErrValidation,
		},
		{
			name:    "NVKD Cannot Reject Finance",
			action:  ActionRejectFinance,
			c:       Contract{Status: StatusPendingReview},
			input:   TransitionInput{Actor: actor(common_models.RoleNVKD), Reason: "Không hợp lệ chút nào"},
			wantErr: common_models.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Transition(tt.c, tt.action, tt.input)
			if tt.wantErr != "" {
				if err == nil || common_models.KindOf(err) != tt.wantErr {
					t.Fatalf("error = %v, want kind %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != StatusRejected {
				t.Errorf("status = %s, want %s", res.Status, StatusRejected)
			}
		})
	}
}

func TestNVKDCannotApproveFinance(t *testing.T) {
	c := Contract{Status: StatusPendingReview}

	_, err := Transition(c, ActionApproveFinance, TransitionInput{Actor: actor(common_models.RoleNVKD)})
	if err == nil {
		t.Fatal("expected error")
	}
	if kind := common_models.KindOf(err); kind != common_models.ErrUnauthorized {
		t.Errorf("error kind = %s, want %s", kind, common_models.ErrUnauthorized)
	}
}

func TestTransitionSignChain(t *testing.T) {
	c := Contract{Status: StatusBothApproved, LegalApproved: true, FinanceApproved: true}

	res, err := Transition(c, ActionSubmitSign, TransitionInput{Actor: actor(common_models.RoleLeadership)})
	if err != nil {
		t.Fatalf("submit sign: %v", err)
	}
	if res.Status != StatusPendingSign {
		t.Errorf("status = %s, want %s", res.Status, StatusPendingSign)
	}

	c.Status = res.Status
	res, err = Transition(c, ActionSign, TransitionInput{Actor: actor(common_models.RoleAdmin)})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if res.Status != StatusActive {
		t.Errorf("status = %s, want %s", res.Status, StatusActive)
	}

	c.Status = res.Status
	res, err = Transition(c, ActionComplete, TransitionInput{Actor: actor(common_models.RoleAdmin)})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Status != StatusCompleted {
		t.Errorf("status = %s, want %s", res.Status, StatusCompleted)
	}

	// NVKD cannot sign
	if _, err := Transition(Contract{Status: StatusPendingSign}, ActionSign, TransitionInput{Actor: actor(common_models.RoleNVKD)}); err == nil {
		t.Error("expected sign by NVKD to fail")
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   Status
		want Status
	}{
		{StatusLegacyPendingLegal, StatusPendingReview},
		{StatusLegacyPendingFinance, StatusPendingReview},
		{StatusLegacyFinanceApproved, StatusPendingReview},
		{StatusActive, StatusActive},
		{StatusDraft, StatusDraft},
	}

	for _, tt := range tests {
		if got := NormalizeStatus(tt.in); got != tt.want {
			t.Errorf("NormalizeStatus(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
