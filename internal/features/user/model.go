package user

import (
	"time"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an internal employee account. Position holds the free-text title
// legacy records were imported with; Role is the canonical code the workflow
// guards consume (populated by cmd/migrate-roles for legacy rows).
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	FullName  string             `bson:"full_name" json:"full_name"`
	Email     string             `bson:"email" json:"email"`
	Position  string             `bson:"position,omitempty" json:"position,omitempty"`
	Role      common_models.Role `bson:"role,omitempty" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
