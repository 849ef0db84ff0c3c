package jobinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/go-redis/redis/v8"
)

const (
	jobDetailKeyPrefix     = "job:detail:"
	jobGenerationKeyPrefix = "job:gen:"
)

// RedisJobCache implements job.Cache on Redis
type RedisJobCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisJobCache creates a cache whose entries expire after ttl. A zero
// ttl keeps entries until they are invalidated.
func NewRedisJobCache(client *redis.Client, ttl time.Duration) *RedisJobCache {
	return &RedisJobCache{
		client: client,
		ttl:    ttl,
	}
}

func jobDetailKey(id kernel.JobID) string {
	return jobDetailKeyPrefix + id.String()
}

func jobGenerationKey(id kernel.JobID) string {
	return jobGenerationKeyPrefix + id.String()
}

// Get returns the cached detail, reporting false on a miss
func (c *RedisJobCache) Get(ctx context.Context, id kernel.JobID) (*job.JobDetail, bool, error) {
	data, err := c.client.Get(ctx, jobDetailKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read job %s from cache: %w", id, err)
	}

	var detail job.JobDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached job %s: %w", id, err)
	}
	return &detail, true, nil
}

// Generation returns how many times the job has been invalidated
func (c *RedisJobCache) Generation(ctx context.Context, id kernel.JobID) (int64, error) {
	return generation(ctx, c.client, id)
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, r stringGetter, id kernel.JobID) (int64, error) {
	gen, err := r.Get(ctx, jobGenerationKey(id)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read generation of job %s: %w", id, err)
	}
	return gen, nil
}

// Set stores detail unless the job was invalidated after gen was read.
// A skipped write is not an error.
func (c *RedisJobCache) Set(ctx context.Context, detail *job.JobDetail, gen int64) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", detail.ID, err)
	}

	genKey := jobGenerationKey(detail.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx, detail.ID)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, jobDetailKey(detail.ID), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	// the generation moved between WATCH and EXEC
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to cache job %s: %w", detail.ID, err)
	}
	return nil
}

// Invalidate drops the cached detail and bumps the job's generation
func (c *RedisJobCache) Invalidate(ctx context.Context, id kernel.JobID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, jobGenerationKey(id))
		pipe.Del(ctx, jobDetailKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate job %s: %w", id, err)
	}
	return nil
}
