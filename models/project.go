package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// ProjectStatuses is the full allowed value set. No transition graph is
// enforced: any authorized update may set any of these values.
var ProjectStatuses = []string{
	ProjectStatusPlanning,
	ProjectStatusActive,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

type DocumentLink struct {
	Name string `json:"name" bson:"name" validate:"required"`
	URL  string `json:"url" bson:"url" validate:"required,url"`
}

// Project references strategic issues and strategies through plain
// arrays of hex id strings. The arrays are weak: entries may point at
// records that no longer exist, and creates/updates accept them as-is.
type Project struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name" validate:"required"`
	Budget            float64            `json:"budget" bson:"budget" validate:"gte=0"`
	StartPeriod       int                `json:"start_period" bson:"start_period" validate:"required"`
	EndPeriod         int                `json:"end_period" bson:"end_period" validate:"required,gtefield=StartPeriod"`
	ResponsiblePerson string             `json:"responsible_person" bson:"responsible_person"`
	Location          string             `json:"location" bson:"location"`
	Districts         []string           `json:"districts" bson:"districts"`
	StrategicIssues   []string           `json:"strategic_issues" bson:"strategic_issues"`
	Strategies        []string           `json:"strategies" bson:"strategies"`
	DocumentLinks     []DocumentLink     `json:"document_links" bson:"document_links" validate:"dive"`
	Status            string             `json:"status" bson:"status" validate:"omitempty,oneof=planning active completed cancelled"`
	ProjectType       string             `json:"project_type" bson:"project_type"`
	Metadata          Metadata           `json:"metadata" bson:"metadata"`
}

type UpdateProjectInput struct {
	Name              *string         `json:"name"`
	Budget            *float64        `json:"budget" validate:"omitempty,gte=0"`
	StartPeriod       *int            `json:"start_period"`
	EndPeriod         *int            `json:"end_period"`
	ResponsiblePerson *string         `json:"responsible_person"`
	Location          *string         `json:"location"`
	Districts         *[]string       `json:"districts"`
	StrategicIssues   *[]string       `json:"strategic_issues"`
	Strategies        *[]string       `json:"strategies"`
	DocumentLinks     *[]DocumentLink `json:"document_links" validate:"omitempty,dive"`
	Status            *string         `json:"status" validate:"omitempty,oneof=planning active completed cancelled"`
	ProjectType       *string         `json:"project_type"`
}

// StrategicIssueRef and StrategyRef are the hydrated sub-objects placed
// in ProjectDetails. Only display fields are carried.
type StrategicIssueRef struct {
	ID    string `json:"id" bson:"id"`
	Title string `json:"title" bson:"title"`
}

type StrategyRef struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// ProjectDetails is the read model returned by project endpoints. The
// details arrays may be shorter than the raw id arrays when referenced
// records have been deleted; callers detect gaps by comparing lengths.
type ProjectDetails struct {
	Project                `bson:",inline"`
	StrategicIssuesDetails []StrategicIssueRef `json:"strategic_issues_details" bson:"strategic_issues_details"`
	StrategiesDetails      []StrategyRef       `json:"strategies_details" bson:"strategies_details"`
}
