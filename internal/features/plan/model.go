package plan

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusDraft          Status = "Draft"
	StatusPendingUnit    Status = "Pending_Unit"
	StatusPendingFinance Status = "Pending_Finance"
	StatusPendingBoard   Status = "Pending_Board"
	StatusApproved       Status = "Approved"
	StatusRejected       Status = "Rejected"
)

const TableName = "business_plans"

// MarginWarningThreshold: plans below this margin are flagged for mandatory
// Leadership review. Advisory only — the transition graph is unchanged.
const MarginWarningThreshold = 30.0

// Financials is the money snapshot each approval tier reviews. GrossProfit
// and Margin are derived; Normalize recomputes them on every write.
type Financials struct {
	Revenue     float64 `bson:"revenue" json:"revenue"`
	Costs       float64 `bson:"costs" json:"costs"`
	GrossProfit float64 `bson:"gross_profit" json:"gross_profit"`
	Margin      float64 `bson:"margin" json:"margin"`
	Cashflow    float64 `bson:"cashflow" json:"cashflow"`
}

func (f *Financials) Normalize() {
	f.GrossProfit = f.Revenue - f.Costs
	if f.Revenue > 0 {
		f.Margin = f.GrossProfit / f.Revenue * 100
	} else {
		f.Margin = 0
	}
}

// BusinessPlan (PAKD) is the financial plan attached to a contract. Versions
// are append-only: approved history rows are never mutated, and exactly one
// row per contract carries IsActive = true.
type BusinessPlan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContractID string             `bson:"contract_id" json:"contract_id"`
	Version    int                `bson:"version" json:"version"`
	IsActive   bool               `bson:"is_active" json:"is_active"`
	Status     Status             `bson:"status" json:"status"`
	Financials Financials         `bson:"financials" json:"financials"`
	CreatedBy  string             `bson:"created_by" json:"created_by"`
	ApprovedBy string             `bson:"approved_by,omitempty" json:"approved_by,omitempty"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// RequiresLeadershipReview reports the low-margin warning the UI renders as a
// banner. Computed, never stored.
func (p *BusinessPlan) RequiresLeadershipReview() bool {
	return p.Financials.Margin < MarginWarningThreshold
}

// Editable reports whether financial fields may change in place. Any other
// status requires a new version so the reviewed snapshot stays immutable.
func (p *BusinessPlan) Editable() bool {
	return p.Status == StatusDraft || p.Status == StatusRejected
}
