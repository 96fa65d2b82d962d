package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stockroom/internal/config"
	"stockroom/internal/domain"
)

const statsKey = "stats:assets"

// statsTTL bounds staleness if an invalidation is ever missed.
const statsTTL = 5 * time.Minute

func New(config *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       0,
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}

// Stats caches the asset status counts. Writers invalidate it after every
// asset mutation; readers fall back to the store on a miss.
type Stats struct {
	rdb *redis.Client
}

func StatsCache(rdb *redis.Client) *Stats {
	return &Stats{rdb: rdb}
}

func (s *Stats) Get(ctx context.Context) (*domain.AssetStats, error) {
	value, err := s.rdb.Get(ctx, statsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats domain.AssetStats
	if err := json.Unmarshal([]byte(value), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return &stats, nil
}

func (s *Stats) Set(ctx context.Context, stats *domain.AssetStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return s.rdb.Set(ctx, statsKey, data, statsTTL).Err()
}

func (s *Stats) Invalidate(ctx context.Context) error {
	return s.rdb.Del(ctx, statsKey).Err()
}

const userTTL = 15 * time.Minute

// Users caches user records for the profile endpoints. The password hash is
// never serialized, so cached entries are display data only.
type Users struct {
	rdb *redis.Client
}

func UserCache(rdb *redis.Client) *Users {
	return &Users{rdb: rdb}
}

func userKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func (u *Users) Get(ctx context.Context, id int64) (*domain.User, error) {
	value, err := u.rdb.Get(ctx, userKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (u *Users) Set(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	return u.rdb.Set(ctx, userKey(user.ID), data, userTTL).Err()
}

func (u *Users) Delete(ctx context.Context, id int64) error {
	return u.rdb.Del(ctx, userKey(id)).Err()
}
