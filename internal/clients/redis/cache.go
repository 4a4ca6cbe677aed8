package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/photocatalog-backend/internal/logger"
	"github.com/yungbote/photocatalog-backend/internal/types"
)

// PhotoCache is a best-effort read cache for photograph detail lookups.
// Misses and redis errors are indistinguishable to callers; the store stays
// the source of truth.
type PhotoCache interface {
	GetPhoto(ctx context.Context, photographID uuid.UUID) (*types.Photograph, bool)
	SetPhoto(ctx context.Context, photo *types.Photograph)
	InvalidatePhoto(ctx context.Context, photographID uuid.UUID)
	Close() error
}

type photoCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewPhotoCache(log *logger.Logger) (PhotoCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttl := 300 * time.Second
	if raw := strings.TrimSpace(os.Getenv("REDIS_PHOTO_TTL")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &photoCache{
		log: log.With("service", "RedisPhotoCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func photoKey(photographID uuid.UUID) string {
	return "photo:" + photographID.String()
}

func (pc *photoCache) GetPhoto(ctx context.Context, photographID uuid.UUID) (*types.Photograph, bool) {
	if pc == nil || pc.rdb == nil {
		return nil, false
	}
	raw, err := pc.rdb.Get(ctx, photoKey(photographID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			pc.log.Warn("redis get failed", "error", err)
		}
		return nil, false
	}
	var photo types.Photograph
	if err := json.Unmarshal(raw, &photo); err != nil {
		pc.log.Warn("bad cached photo payload", "error", err)
		return nil, false
	}
	return &photo, true
}

func (pc *photoCache) SetPhoto(ctx context.Context, photo *types.Photograph) {
	if pc == nil || pc.rdb == nil || photo == nil {
		return
	}
	raw, err := json.Marshal(photo)
	if err != nil {
		pc.log.Warn("could not marshal photo for cache", "error", err)
		return
	}
	if err := pc.rdb.Set(ctx, photoKey(photo.ID), raw, pc.ttl).Err(); err != nil {
		pc.log.Warn("redis set failed", "error", err)
	}
}

func (pc *photoCache) InvalidatePhoto(ctx context.Context, photographID uuid.UUID) {
	if pc == nil || pc.rdb == nil {
		return
	}
	if err := pc.rdb.Del(ctx, photoKey(photographID)).Err(); err != nil {
		pc.log.Warn("redis del failed", "error", err)
	}
}

func (pc *photoCache) Close() error {
	if pc == nil || pc.rdb == nil {
		return nil
	}
	return pc.rdb.Close()
}
