package repository

import (
	"context"

	"stratplan/apperrors"
	"stratplan/models"
	"stratplan/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StrategyRepository interface {
	Create(ctx context.Context, strategy *models.Strategy) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Strategy, error)
	List(ctx context.Context, q query.Query) ([]models.Strategy, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, strategy *models.Strategy) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByStrategicIssue(ctx context.Context, strategicIssueID string) (int64, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Strategy, error)
	MaxOrderInIssue(ctx context.Context, strategicIssueID string) (int, error)
}

type strategyRepository struct {
	collection *mongo.Collection
}

func NewStrategyRepository(db *mongo.Database) StrategyRepository {
	return &strategyRepository{
		collection: db.Collection("strategies"),
	}
}

func (r *strategyRepository) Create(ctx context.Context, strategy *models.Strategy) error {
	strategy.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, strategy); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

func (r *strategyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Strategy, error) {
	var strategy models.Strategy
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&strategy)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("strategy not found")
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &strategy, nil
}

func (r *strategyRepository) List(ctx context.Context, q query.Query) ([]models.Strategy, error) {
	cursor, err := r.collection.Find(ctx, q.Filter, findOptions(q))
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	defer cursor.Close(ctx)

	strategies := []models.Strategy{}
	if err = cursor.All(ctx, &strategies); err != nil {
		return nil, apperrors.Storage(err)
	}
	return strategies, nil
}

func (r *strategyRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperrors.Storage(err)
	}
	return total, nil
}

func (r *strategyRepository) Update(ctx context.Context, id primitive.ObjectID, strategy *models.Strategy) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": strategy})
	if err != nil {
		return apperrors.Storage(err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("strategy not found")
	}
	return nil
}

func (r *strategyRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.Storage(err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("strategy not found")
	}
	return nil
}

// DeleteByStrategicIssue removes every strategy under the given issue.
// Used by the cascade when the parent issue is deleted.
func (r *strategyRepository) DeleteByStrategicIssue(ctx context.Context, strategicIssueID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"strategic_issue_id": strategicIssueID})
	if err != nil {
		return 0, apperrors.Storage(err)
	}
	return result.DeletedCount, nil
}

func (r *strategyRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Strategy, error) {
	if len(ids) == 0 {
		return []models.Strategy{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	defer cursor.Close(ctx)

	strategies := []models.Strategy{}
	if err = cursor.All(ctx, &strategies); err != nil {
		return nil, apperrors.Storage(err)
	}
	return strategies, nil
}

func (r *strategyRepository) MaxOrderInIssue(ctx context.Context, strategicIssueID string) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}}).SetProjection(bson.M{"order": 1})

	var strategy models.Strategy
	err := r.collection.FindOne(ctx, bson.M{"strategic_issue_id": strategicIssueID}, opts).Decode(&strategy)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Storage(err)
	}
	return strategy.Order, nil
}
