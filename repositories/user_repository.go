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

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, q query.Query) ([]models.User, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, user *models.User) error
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	HasActiveAdmin(ctx context.Context) (bool, error)
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("email already in use")
	}
	if err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "is_active": true}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email, "is_active": true}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, q query.Query) ([]models.User, error) {
	// Deactivated accounts never show up in lists.
	q.Filter["is_active"] = true

	cursor, err := r.collection.Find(ctx, q.Filter, findOptions(q))
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, apperrors.Storage(err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	filter["is_active"] = true

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperrors.Storage(err)
	}
	return total, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, user *models.User) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "is_active": true}, bson.M{"$set": user})
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("email already in use")
	}
	if err != nil {
		return apperrors.Storage(err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

func (r *userRepository) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return apperrors.Storage(err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

// Deactivate is the user delete: a flag flip, never a document removal.
func (r *userRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return apperrors.Storage(err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

func (r *userRepository) HasActiveAdmin(ctx context.Context) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"role": models.RoleAdmin, "is_active": true})
	if err != nil {
		return false, apperrors.Storage(err)
	}
	return count > 0, nil
}
