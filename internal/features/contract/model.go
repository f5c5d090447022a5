package contract

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusDraft         Status = "Draft"
	StatusPending       Status = "Pending"
	StatusPendingReview Status = "Pending_Review"
	StatusBothApproved  Status = "Both_Approved"
	StatusPendingSign   Status = "Pending_Sign"
	StatusActive        Status = "Active"
	StatusCompleted     Status = "Completed"
	StatusRejected      Status = "Rejected"
)

// Legacy statuses still present on old rows. Recognized for display only;
// no new transition produces them.
const (
	StatusLegacyPendingLegal    Status = "Pending_Legal"
	StatusLegacyPendingFinance  Status = "Pending_Finance"
	StatusLegacyFinanceApproved Status = "Finance_Approved"
)

// NormalizeStatus maps legacy statuses onto the current graph for display.
func NormalizeStatus(s Status) Status {
	switch s {
	case StatusLegacyPendingLegal, StatusLegacyPendingFinance:
		return StatusPendingReview
	case StatusLegacyFinanceApproved:
		return StatusPendingReview
	default:
		return s
	}
}

// Contract is a commercial contract moving through the review workflow.
// LegalApproved and FinanceApproved are independent parallel flags; the
// machine promotes to Both_Approved the moment the second one flips true.
// Revision guards against concurrent transitions (see repository).
type Contract struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Partner         string             `bson:"partner,omitempty" json:"partner,omitempty"`
	Status          Status             `bson:"status" json:"status"`
	LegalApproved   bool               `bson:"legal_approved" json:"legal_approved"`
	FinanceApproved bool               `bson:"finance_approved" json:"finance_approved"`
	DraftURL        string             `bson:"draft_url,omitempty" json:"draft_url,omitempty"`
	CreatedBy       string             `bson:"created_by" json:"created_by"`
	Revision        int64              `bson:"revision" json:"revision"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

const TableName = "contracts"
