package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StrategicIssue struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Description string             `json:"description" bson:"description"`
	StartPeriod int                `json:"start_period" bson:"start_period" validate:"required"`
	EndPeriod   int                `json:"end_period" bson:"end_period" validate:"required,gtefield=StartPeriod"`
	Order       int                `json:"order" bson:"order"`
	Status      string             `json:"status" bson:"status"`
	Metadata    Metadata           `json:"metadata" bson:"metadata"`
}

type UpdateStrategicIssueInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartPeriod *int    `json:"start_period"`
	EndPeriod   *int    `json:"end_period"`
	Order       *int    `json:"order"`
	Status      *string `json:"status"`
}
