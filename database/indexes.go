package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// USERS: login lookup + uniqueness
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email_unique").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "role", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().SetName("idx_role_is_active"),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	// STRATEGIC ISSUES: list filters and ranking
	issueIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
		{
			Keys: bson.D{
				{Key: "start_period", Value: 1},
				{Key: "end_period", Value: 1},
			},
			Options: options.Index().SetName("idx_period"),
		},
		{
			Keys:    bson.D{{Key: "order", Value: 1}},
			Options: options.Index().SetName("idx_order"),
		},
	}
	if _, err := db.Collection("strategic_issues").Indexes().CreateMany(ctx, issueIndexes); err != nil {
		return fmt.Errorf("failed to create strategic issue indexes: %v", err)
	}

	// STRATEGIES: parent lookup drives both list filtering and the
	// cascade delete
	strategyIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "strategic_issue_id", Value: 1}},
			Options: options.Index().SetName("idx_strategic_issue_id"),
		},
	}
	if _, err := db.Collection("strategies").Indexes().CreateMany(ctx, strategyIndexes); err != nil {
		return fmt.Errorf("failed to create strategy indexes: %v", err)
	}

	// PROJECTS: ownership scoping is on every non-admin list, so
	// created_by leads the compound indexes
	projectIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "metadata.created_by", Value: 1},
				{Key: "metadata.created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_created_by_created_at"),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "project_type", Value: 1},
			},
			Options: options.Index().SetName("idx_status_project_type"),
		},
		{
			Keys: bson.D{
				{Key: "start_period", Value: 1},
				{Key: "end_period", Value: 1},
			},
			Options: options.Index().SetName("idx_period"),
		},
		{
			Keys:    bson.D{{Key: "strategic_issues", Value: 1}},
			Options: options.Index().SetName("idx_strategic_issues"),
		},
		{
			Keys:    bson.D{{Key: "strategies", Value: 1}},
			Options: options.Index().SetName("idx_strategies"),
		},
	}
	if _, err := db.Collection("projects").Indexes().CreateMany(ctx, projectIndexes); err != nil {
		return fmt.Errorf("failed to create project indexes: %v", err)
	}

	return nil
}
