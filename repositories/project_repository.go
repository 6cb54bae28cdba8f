package repository

import (
	"context"

	"stratplan/apperrors"
	"stratplan/models"
	"stratplan/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	List(ctx context.Context, q query.Query) ([]models.Project, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, project *models.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	StatusStats(ctx context.Context) ([]bson.M, error)
}

type projectRepository struct {
	collection *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) ProjectRepository {
	return &projectRepository{
		collection: db.Collection("projects"),
	}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	project.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, project); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("project not found")
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, q query.Query) ([]models.Project, error) {
	cursor, err := r.collection.Find(ctx, q.Filter, findOptions(q))
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, apperrors.Storage(err)
	}
	return projects, nil
}

func (r *projectRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperrors.Storage(err)
	}
	return total, nil
}

func (r *projectRepository) Update(ctx context.Context, id primitive.ObjectID, project *models.Project) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": project})
	if err != nil {
		return apperrors.Storage(err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("project not found")
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.Storage(err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("project not found")
	}
	return nil
}

// StatusStats groups projects by status with counts and budget totals.
// Backs the public stats endpoint.
func (r *projectRepository) StatusStats(ctx context.Context) ([]bson.M, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$status",
			"count":        bson.M{"$sum": 1},
			"total_budget": bson.M{"$sum": "$budget"},
			"avg_budget":   bson.M{"$avg": "$budget"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	defer cursor.Close(ctx)

	results := []bson.M{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, apperrors.Storage(err)
	}
	return results, nil
}
