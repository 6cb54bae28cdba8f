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

type StrategicIssueRepository interface {
	Create(ctx context.Context, issue *models.StrategicIssue) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.StrategicIssue, error)
	List(ctx context.Context, q query.Query) ([]models.StrategicIssue, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, issue *models.StrategicIssue) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.StrategicIssue, error)
	MaxOrder(ctx context.Context) (int, error)
}

type strategicIssueRepository struct {
	collection *mongo.Collection
}

func NewStrategicIssueRepository(db *mongo.Database) StrategicIssueRepository {
	return &strategicIssueRepository{
		collection: db.Collection("strategic_issues"),
	}
}

func (r *strategicIssueRepository) Create(ctx context.Context, issue *models.StrategicIssue) error {
	issue.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, issue); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

func (r *strategicIssueRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StrategicIssue, error) {
	var issue models.StrategicIssue
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("strategic issue not found")
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &issue, nil
}

func (r *strategicIssueRepository) List(ctx context.Context, q query.Query) ([]models.StrategicIssue, error) {
	cursor, err := r.collection.Find(ctx, q.Filter, findOptions(q))
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	defer cursor.Close(ctx)

	issues := []models.StrategicIssue{}
	if err = cursor.All(ctx, &issues); err != nil {
		return nil, apperrors.Storage(err)
	}
	return issues, nil
}

func (r *strategicIssueRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperrors.Storage(err)
	}
	return total, nil
}

func (r *strategicIssueRepository) Update(ctx context.Context, id primitive.ObjectID, issue *models.StrategicIssue) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": issue})
	if err != nil {
		return apperrors.Storage(err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("strategic issue not found")
	}
	return nil
}

func (r *strategicIssueRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.Storage(err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("strategic issue not found")
	}
	return nil
}

func (r *strategicIssueRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.StrategicIssue, error) {
	if len(ids) == 0 {
		return []models.StrategicIssue{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	defer cursor.Close(ctx)

	issues := []models.StrategicIssue{}
	if err = cursor.All(ctx, &issues); err != nil {
		return nil, apperrors.Storage(err)
	}
	return issues, nil
}

func (r *strategicIssueRepository) MaxOrder(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}}).SetProjection(bson.M{"order": 1})

	var issue models.StrategicIssue
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&issue)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Storage(err)
	}
	return issue.Order, nil
}
