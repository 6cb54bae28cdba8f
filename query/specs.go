package query

import "go.mongodb.org/mongo-driver/bson"

var createdAtDesc = bson.D{{Key: "metadata.created_at", Value: -1}}

var StrategicIssues = Spec{
	Equality: map[string]string{
		"status":     "status",
		"created_by": "metadata.created_by",
	},
	SearchFields:   []string{"title", "description"},
	YearStartField: "start_period",
	YearEndField:   "end_period",
	SortFields: map[string]string{
		"title":        "title",
		"order":        "order",
		"status":       "status",
		"start_period": "start_period",
		"end_period":   "end_period",
		"created_at":   "metadata.created_at",
	},
	DefaultSort: createdAtDesc,
}

var Strategies = Spec{
	Equality: map[string]string{
		"strategic_issue_id": "strategic_issue_id",
		"created_by":         "metadata.created_by",
	},
	SearchFields: []string{"name", "description"},
	SortFields: map[string]string{
		"name":       "name",
		"order":      "order",
		"created_at": "metadata.created_at",
	},
	DefaultSort: createdAtDesc,
}

var Projects = Spec{
	Equality: map[string]string{
		"status":             "status",
		"project_type":       "project_type",
		"created_by":         "metadata.created_by",
		"strategic_issue_id": "strategic_issues",
		"strategy_id":        "strategies",
		"district":           "districts",
		"location":           "location",
	},
	Ranges: map[string]RangeParam{
		"budget_min": {Field: "budget", Op: "$gte"},
		"budget_max": {Field: "budget", Op: "$lte"},
	},
	SearchFields:   []string{"name", "responsible_person", "location"},
	YearStartField: "start_period",
	YearEndField:   "end_period",
	SortFields: map[string]string{
		"name":         "name",
		"budget":       "budget",
		"status":       "status",
		"start_period": "start_period",
		"end_period":   "end_period",
		"created_at":   "metadata.created_at",
	},
	DefaultSort: createdAtDesc,
}

// PublicProjects serves the two anonymous endpoints: same filter
// surface as Projects but pages of 10 unless the caller asks for more.
var PublicProjects = Spec{
	Equality:       Projects.Equality,
	Ranges:         Projects.Ranges,
	SearchFields:   Projects.SearchFields,
	YearStartField: Projects.YearStartField,
	YearEndField:   Projects.YearEndField,
	SortFields:     Projects.SortFields,
	DefaultSort:    Projects.DefaultSort,
	DefaultLimit:   10,
}

var Users = Spec{
	Equality: map[string]string{
		"role":       "role",
		"department": "department",
	},
	SearchFields: []string{"name", "email"},
	SortFields: map[string]string{
		"name":       "name",
		"email":      "email",
		"role":       "role",
		"created_at": "created_at",
	},
	DefaultSort: bson.D{{Key: "created_at", Value: -1}},
}
