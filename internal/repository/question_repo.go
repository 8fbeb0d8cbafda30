package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aiacademy/internal/model"
)

// QuestionRepo stores one question bank per topic
type QuestionRepo interface {
	Upsert(ctx context.Context, bank *model.QuestionBank) error
	GetByTopic(ctx context.Context, topic string) (*model.QuestionBank, error)
	ListTopics(ctx context.Context) ([]model.Topic, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("question_banks"),
	}
}

func (r *questionRepo) Upsert(ctx context.Context, bank *model.QuestionBank) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"topic": bank.Topic}, bank, opts)
	return err
}

func (r *questionRepo) GetByTopic(ctx context.Context, topic string) (*model.QuestionBank, error) {
	var bank model.QuestionBank
	err := r.collection.FindOne(ctx, bson.M{"topic": topic}).Decode(&bank)
	if err == mongo.ErrNoDocuments {
		return nil, nil // Bank not seeded
	}
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

// ListTopics returns the seeded topics without their questions
func (r *questionRepo) ListTopics(ctx context.Context) ([]model.Topic, error) {
	opts := options.Find().
		SetProjection(bson.M{"topic": 1, "name": 1}).
		SetSort(bson.D{{Key: "topic", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var banks []model.QuestionBank
	if err = cursor.All(ctx, &banks); err != nil {
		return nil, err
	}
	topics := make([]model.Topic, len(banks))
	for i, b := range banks {
		topics[i] = model.Topic{Key: b.Topic, Name: b.Name}
	}
	return topics, nil
}
