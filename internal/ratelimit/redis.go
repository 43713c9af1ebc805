package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Число повторов CAS-транзакции при срыве WATCH конкурентной записью.
const maxTxRetries = 3

// RedisStore хранит окна в redis в виде sorted set: score и значение —
// отметка времени в миллисекундах. Бюджет становится общим для всех
// экземпляров сервиса. Атомарность count-prune-append в пределах ключа
// обеспечивает WATCH по ключу окна: счётчик читается на следящем
// соединении, а все записи уходят в очередь MULTI и применяются на EXEC.
type RedisStore struct {
	db *redis.Client
}

// NewRedisStore создаёт хранилище окон поверх готового клиента redis.
func NewRedisStore(db *redis.Client) *RedisStore {
	return &RedisStore{db: db}
}

// Take реализует Store поверх redis sorted set.
func (s *RedisStore) Take(ctx context.Context, key string, now time.Time, max int, window time.Duration) (Decision, error) {
	const op = "ratelimit.RedisStore.Take"

	redisKey := "ratelimit:" + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixMilli(), 10)
	liveMin := "(" + cutoff
	var decision Decision

	txn := func(tx *redis.Tx) error {
		// Живые отметки считаются по границе окна, не трогая устаревшие:
		// запись watched-ключа вне MULTI срывает собственный WATCH.
		count, err := tx.ZCount(ctx, redisKey, liveMin, "+inf").Result()
		if err != nil {
			return err
		}
		if int(count) >= max {
			oldest, err := tx.ZRangeByScoreWithScores(ctx, redisKey, &redis.ZRangeBy{
				Min: liveMin, Max: "+inf", Offset: 0, Count: 1,
			}).Result()
			if err != nil {
				return err
			}
			decision = Decision{Allowed: false}
			if len(oldest) > 0 {
				oldestAt := time.UnixMilli(int64(oldest[0].Score))
				decision.RetryAfter = retryAfter(oldestAt, now, window)
			}
			return nil
		}

		// Значение члена уникально, иначе два запроса в одну миллисекунду
		// схлопнутся в одну отметку и окно недосчитает.
		member := strconv.FormatInt(now.UnixMilli(), 10) + ":" + uuid.NewString()
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
			pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMilli()), Member: member})
			pipe.Expire(ctx, redisKey, window)
			return nil
		})
		if err != nil {
			return err
		}
		decision = Decision{
			Allowed:   true,
			Remaining: max - int(count) - 1,
		}
		return nil
	}

	for range maxTxRetries {
		err := s.db.Watch(ctx, txn, redisKey)
		if err == nil {
			return decision, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return Decision{}, fmt.Errorf("%s: %w", op, err)
	}
	return Decision{}, fmt.Errorf("%s: %w", op, redis.TxFailedErr)
}
