package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the canonical role code for workflow guards. Legacy records carry a
// free-text Vietnamese position title instead; those are normalized once by
// cmd/migrate-roles, never at transition time.
type Role string

const (
	RoleNVKD            Role = "nvkd"             // sales staff (Nhân viên kinh doanh)
	RoleUnitLeader      Role = "unit_leader"      // Trưởng đơn vị
	RoleAccountant      Role = "accountant"       // Kế toán
	RoleChiefAccountant Role = "chief_accountant" // Kế toán trưởng
	RoleLegal           Role = "legal"            // Pháp chế
	RoleLeadership      Role = "leadership"       // Ban lãnh đạo
	RoleAdmin           Role = "admin"
)

// Actor is the acting user passed explicitly into every engine call so the
// workflow services stay pure and testable.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

type WorkflowAction string

const (
	ActionSubmit   WorkflowAction = "SUBMIT"
	ActionApprove  WorkflowAction = "APPROVE"
	ActionReject   WorkflowAction = "REJECT"
	ActionSign     WorkflowAction = "SIGN"
	ActionComplete WorkflowAction = "COMPLETE"
)

// AuditEntry is one immutable row of the workflow audit trail. FromState and
// ToState are structured fields so the approval stepper can attribute a step
// by an indexed match on to_state instead of parsing comments.
type AuditEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Table     string             `bson:"table" json:"table"`         // collection name, e.g. "contracts"
	RecordID  string             `bson:"record_id" json:"record_id"` // the record transitioned
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	ActorRole Role               `bson:"actor_role" json:"actor_role"`
	Action    WorkflowAction     `bson:"action" json:"action"`
	FromState string             `bson:"from_state" json:"from_state"`
	ToState   string             `bson:"to_state" json:"to_state"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Log is the record shape the async zap writer inserts into app_logs.
type Log struct {
	Message      string    `bson:"message"`
	Caller       string    `bson:"caller"`
	RecordID     string    `bson:"record_id,omitempty"`
	LogLevelId   int       `bson:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}
