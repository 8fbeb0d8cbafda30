package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aiacademy/internal/model"
)

// UserRepo handles MongoDB operations for student profiles
type UserRepo interface {
	Save(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	SetOverallScore(ctx context.Context, id string, score float64, resultCount int, lastUpdated string) (bool, error)
	SetCourses(ctx context.Context, id string, courses model.Courses) error
	SetProfileImage(ctx context.Context, id, url, lastUpdated string) error
	Count(ctx context.Context) (int64, error)
	ListScores(ctx context.Context) ([]*model.User, error)
}

type userRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{
		collection: db.Collection("users"),
	}
}

// Save creates or replaces the profile keyed by user.ID
func (r *userRepo) Save(ctx context.Context, user *model.User) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDs returns the users found, in no particular order
func (r *userRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetOverallScore stores a score averaged over resultCount results. It is
// skipped, reporting false, when the stored score already covers more results.
func (r *userRepo) SetOverallScore(ctx context.Context, id string, score float64, resultCount int, lastUpdated string) (bool, error) {
	filter := bson.M{"_id": id, "resultCount": bson.M{"$not": bson.M{"$gt": resultCount}}}
	update := bson.M{"$set": bson.M{"overallScore": score, "resultCount": resultCount, "lastUpdated": lastUpdated}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *userRepo) SetCourses(ctx context.Context, id string, courses model.Courses) error {
	return r.set(ctx, id, bson.M{"courses": courses})
}

func (r *userRepo) SetProfileImage(ctx context.Context, id, url, lastUpdated string) error {
	return r.set(ctx, id, bson.M{"profileImageUrl": url, "lastUpdated": lastUpdated})
}

func (r *userRepo) set(ctx context.Context, id string, fields bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// ListScores returns every user with only ID and OverallScore set
func (r *userRepo) ListScores(ctx context.Context) ([]*model.User, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1, "overallScore": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
