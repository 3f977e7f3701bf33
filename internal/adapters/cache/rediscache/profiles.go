package rediscache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/ports/messaging"
)

const (
	DefaultTTL = time.Hour
	keyPrefix  = "petlog:profile:"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// ProfileCache envuelve un messaging.ProfileLookup y guarda los nombres en Redis.
// Los fallos de Redis no cortan la consulta: se cae al lookup de origen.
type ProfileCache struct {
	next messaging.ProfileLookup
	c    *redis.Client
	ttl  time.Duration
	log  logger.Logger
}

func NewProfileCache(next messaging.ProfileLookup, c *redis.Client, ttl time.Duration, log logger.Logger) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ProfileCache{next: next, c: c, ttl: ttl, log: log.With(map[string]any{"component": "profile_cache"})}
}

func key(senderID string) string { return keyPrefix + senderID }

func (p *ProfileCache) DisplayName(ctx context.Context, senderID string) (string, error) {
	if p.next == nil {
		return "", errors.New("profile lookup not configured")
	}
	if p.c == nil || strings.TrimSpace(senderID) == "" {
		return p.next.DisplayName(ctx, senderID)
	}

	name, err := p.c.Get(ctx, key(senderID)).Result()
	switch {
	case err == nil && name != "":
		return name, nil
	case err != nil && err != redis.Nil:
		p.log.Warn("profile cache get failed", map[string]any{"error": err})
	}

	name, err = p.next.DisplayName(ctx, senderID)
	if err != nil {
		return "", err
	}

	if err := p.c.Set(ctx, key(senderID), name, p.ttl).Err(); err != nil {
		p.log.Warn("profile cache set failed", map[string]any{"error": err})
	}
	return name, nil
}
