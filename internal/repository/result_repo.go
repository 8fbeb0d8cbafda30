package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"aiacademy/internal/model"
)

// ResultRepo handles MongoDB operations for submitted tests
type ResultRepo interface {
	Create(ctx context.Context, result *model.TestResult) error
	CompletedTopics(ctx context.Context, userID string) ([]string, error)
	// MonthlyBest is the highest percentage per calendar month, Jan first
	MonthlyBest(ctx context.Context, userID string) ([12]float64, error)
	// AveragePercentage is the mean percentage over all results, 0 with none
	AveragePercentage(ctx context.Context, userID string) (float64, int, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new test result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("test_results"),
	}
}

func (r *resultRepo) Create(ctx context.Context, result *model.TestResult) error {
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}

	res, err := r.collection.InsertOne(ctx, result)
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		result.ID = oid.Hex()
	}
	return nil
}

func (r *resultRepo) CompletedTopics(ctx context.Context, userID string) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "topic", bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			topics = append(topics, s)
		}
	}
	return topics, nil
}

func (r *resultRepo) MonthlyBest(ctx context.Context, userID string) ([12]float64, error) {
	var best [12]float64
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":  bson.M{"$month": "$timestamp"},
			"best": bson.M{"$max": "$percentage"},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return best, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Month int     `bson:"_id"`
		Best  float64 `bson:"best"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return best, err
	}
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			best[row.Month-1] = row.Best
		}
	}
	return best, nil
}

func (r *resultRepo) AveragePercentage(ctx context.Context, userID string) (float64, int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$percentage"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Avg, rows[0].Count, nil
}
