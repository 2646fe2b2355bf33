package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

var ErrCacheMiss = fmt.Errorf("cache miss")

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Leaderboard cache
func (c *Client) SetLeaderboard(adminID uint, limit int, entries interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}

	key := fmt.Sprintf("leaderboard:%d:%d", adminID, limit)
	return c.rdb.Set(ctx, key, jsonData, ttl).Err()
}

func (c *Client) GetLeaderboard(adminID uint, limit int, dest interface{}) error {
	ctx := context.Background()
	key := fmt.Sprintf("leaderboard:%d:%d", adminID, limit)
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

// Dashboard stats cache
func (c *Client) SetDashboardStats(userID uint, stats interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard stats: %w", err)
	}

	key := fmt.Sprintf("dashboard_stats:%d", userID)
	return c.rdb.Set(ctx, key, jsonData, ttl).Err()
}

func (c *Client) GetDashboardStats(userID uint, dest interface{}) error {
	ctx := context.Background()
	key := fmt.Sprintf("dashboard_stats:%d", userID)
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) InvalidateDashboardStats(userID uint) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, fmt.Sprintf("dashboard_stats:%d", userID)).Err()
}

func (c *Client) InvalidateLeaderboards(adminID uint) error {
	ctx := context.Background()
	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("leaderboard:%d:*", adminID), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
