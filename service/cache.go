// file: service/cache.go

package service

import (
	"context"
	"encoding/json"
	"finance-tracker/logger"
	"finance-tracker/model"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CacheClient is the part of *redis.Client the transaction cache uses.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const listCacheKey = "transactions:all"

func transactionCacheKey(id int) string {
	return fmt.Sprintf("transactions:%d", id)
}

// transactionCache keeps JSON-encoded transactions and the full listing in
// Redis. A nil *transactionCache always misses and ignores writes. Redis
// errors are logged and never returned.
type transactionCache struct {
	client CacheClient
	ttl    time.Duration
}

func (c *transactionCache) list(ctx context.Context) ([]*model.Transaction, bool) {
	var transactions []*model.Transaction
	if !c.read(ctx, listCacheKey, &transactions) {
		return nil, false
	}
	return transactions, true
}

func (c *transactionCache) get(ctx context.Context, id int) (*model.Transaction, bool) {
	var transaction model.Transaction
	if !c.read(ctx, transactionCacheKey(id), &transaction) {
		return nil, false
	}
	return &transaction, true
}

func (c *transactionCache) storeList(ctx context.Context, transactions []*model.Transaction) {
	c.write(ctx, listCacheKey, transactions)
}

func (c *transactionCache) store(ctx context.Context, transaction *model.Transaction) {
	c.write(ctx, transactionCacheKey(transaction.ID), transaction)
}

// invalidate drops the listing and the entries of the given ids.
func (c *transactionCache) invalidate(ctx context.Context, ids ...int) {
	if c == nil {
		return
	}
	keys := []string{listCacheKey}
	for _, id := range ids {
		keys = append(keys, transactionCacheKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"keys":  keys,
			"error": err.Error(),
		}).Warn("Cache invalidation failed")
	}
}

func (c *transactionCache) read(ctx context.Context, key string, dst interface{}) bool {
	if c == nil {
		return false
	}
	cached, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.WithError(err).WithField("key", key).Warn("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), dst); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("Discarding undecodable cache entry")
		return false
	}
	return true
}

func (c *transactionCache) write(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}
