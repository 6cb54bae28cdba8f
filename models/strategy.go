package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Strategy belongs to a StrategicIssue via StrategicIssueID. The
// reference is a plain hex string, not enforced by the store; deleting
// the parent issue cascades at the service layer.
type Strategy struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StrategicIssueID string             `json:"strategic_issue_id" bson:"strategic_issue_id" validate:"required"`
	Name             string             `json:"name" bson:"name" validate:"required"`
	Description      string             `json:"description" bson:"description"`
	Order            int                `json:"order" bson:"order"`
	Metadata         Metadata           `json:"metadata" bson:"metadata"`
}

type UpdateStrategyInput struct {
	StrategicIssueID *string `json:"strategic_issue_id"`
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	Order            *int    `json:"order"`
}
