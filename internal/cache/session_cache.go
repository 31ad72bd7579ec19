package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"promptquest/internal/model"
)

// SessionCache stores play sessions with a sliding TTL and guards them with a per-session lock
type SessionCache interface {
	Save(ctx context.Context, session *model.PlaySession) error
	Get(ctx context.Context, id string) (*model.PlaySession, error)
	Delete(ctx context.Context, id string) error

	// Lock takes the per-session lock. ok is false when another holder has it.
	Lock(ctx context.Context, id string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, id, token string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// unlockScript deletes the lock only if it still holds our token
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return fmt.Sprintf("play:%s", id)
}

func (c *sessionCache) lockKey(id string) string {
	return fmt.Sprintf("play:%s:lock", id)
}

func (c *sessionCache) Save(ctx context.Context, session *model.PlaySession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

// Get returns nil, nil when the session does not exist or has expired
func (c *sessionCache) Get(ctx context.Context, id string) (*model.PlaySession, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session model.PlaySession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	// sliding expiry
	c.client.Expire(ctx, c.key(id), c.ttl)
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id), c.lockKey(id)).Err()
}

func (c *sessionCache) Lock(ctx context.Context, id string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, c.lockKey(id), token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (c *sessionCache) Unlock(ctx context.Context, id, token string) error {
	return unlockScript.Run(ctx, c.client, []string{c.lockKey(id)}, token).Err()
}
