// Package runlock keeps two exports for the same steamid from running at once,
// so overlapping requests do not spend the API key's request budget twice.
package runlock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joshhsoj1902/steam-profile-exporter/internal/logger"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Lock struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, password string, db int, ttl time.Duration) *Lock {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &Lock{
		client: client,
		ttl:    ttl,
	}
}

// Close the Redis connection
func (l *Lock) Close() error {
	return l.client.Close()
}

func (l *Lock) Ping(ctx context.Context) error {
	return errors.Wrap(l.client.Ping(ctx).Err(), "redis ping")
}

func lockKey(steamId string) string {
	return fmt.Sprintf("steam:profile:lock:%s", steamId)
}

// Acquire takes the lock for steamId. When acquired is false another export
// holds it. The release func is safe to call once the lock has expired.
func (l *Lock) Acquire(ctx context.Context, steamId string) (release func(), acquired bool, err error) {
	key := lockKey(steamId)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, errors.Wrapf(err, "acquire %s", key)
	}
	if !ok {
		return nil, false, nil
	}

	return l.releaser(key, token), true, nil
}

// releaser returns a func that drops key if it still holds token. A failed
// release is logged; the lock then expires after its TTL.
func (l *Lock) releaser(key, token string) func() {
	return func() {
		// the request context may already be done
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"key": key,
				"ttl": l.ttl,
			}).Warn("Failed to release run lock, waiting for expiry")
		}
	}
}
