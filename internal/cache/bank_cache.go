package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"aiacademy/internal/model"
)

// BankCache handles Redis copies of question banks
type BankCache interface {
	SetBank(ctx context.Context, bank *model.QuestionBank) error
	GetBank(ctx context.Context, topic string) (*model.QuestionBank, error)
	DeleteBank(ctx context.Context, topic string) error
}

type bankCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBankCache creates a new bank cache
func NewBankCache(client *redis.Client) BankCache {
	return &bankCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *bankCache) key(topic string) string {
	return fmt.Sprintf("bank:%s", topic)
}

func (c *bankCache) SetBank(ctx context.Context, bank *model.QuestionBank) error {
	data, err := json.Marshal(bank)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(bank.Topic), data, c.ttl).Err()
}

func (c *bankCache) GetBank(ctx context.Context, topic string) (*model.QuestionBank, error) {
	data, err := c.client.Get(ctx, c.key(topic)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var bank model.QuestionBank
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, err
	}
	return &bank, nil
}

func (c *bankCache) DeleteBank(ctx context.Context, topic string) error {
	return c.client.Del(ctx, c.key(topic)).Err()
}
