package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aiacademy/internal/bank"
	"aiacademy/internal/cache"
	"aiacademy/internal/config"
	"aiacademy/internal/repository"
)

// Loads question banks from YAML into MongoDB, replacing existing banks per
// topic, and drops the cached copy so running servers reload it
func main() {
	path := flag.String("file", "data/questions.yaml", "question bank YAML")
	flag.Parse()

	conf, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	banks, err := bank.Load(*path)
	if err != nil {
		log.Fatalf("Failed to read banks: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	rdb := redis.NewClient(&redis.Options{Addr: conf.RedisAddr})
	defer rdb.Close()

	repo := repository.NewQuestionRepo(client.Database(conf.MongoDB))
	banksCache := cache.NewBankCache(rdb)
	for i := range banks {
		b := &banks[i]
		if !bank.IsKnown(b.Topic) {
			log.Printf("warning: topic %q is not in the catalogue", b.Topic)
		}
		if err := repo.Upsert(ctx, b); err != nil {
			log.Fatalf("Failed to store %s: %v", b.Topic, err)
		}
		if err := banksCache.DeleteBank(ctx, b.Topic); err != nil {
			log.Printf("warning: cached %s bank not cleared: %v", b.Topic, err)
		}
		fmt.Printf("Seeded %s (%d questions)\n", b.Name, len(b.Questions))
	}
}
