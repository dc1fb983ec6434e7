package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ContentCacheTTL is the time-to-live for cached content.
	ContentCacheTTL = 24 * time.Hour

	contentCacheKeyPrefix = "content"
)

// CachedContent is the denormalized content read model stored in Redis.
// It is refreshed by the worker whenever a content transition event arrives.
type CachedContent struct {
	ID              uuid.UUID `json:"id"`
	UniversityID    uuid.UUID `json:"university_id"`
	CreatorID       uuid.UUID `json:"creator_id"`
	Kind            string    `json:"kind"`
	Title           string    `json:"title"`
	Body            string    `json:"body"`
	Location        string    `json:"location"`
	State           string    `json:"state"`
	ComplianceScore int       `json:"compliance_score"`
	Version         int64     `json:"version"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ContentCache provides structured read/write operations for content cache entries.
// Keys are scoped by university to prevent cross-tenant reads.
// Key format: "content:{universityID}:{contentID}"
type ContentCache struct {
	client *RedisClient
}

// NewContentCache creates a new ContentCache backed by the given RedisClient.
func NewContentCache(r *RedisClient) *ContentCache {
	return &ContentCache{client: r}
}

// Get retrieves cached content by university + content ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ContentCache) Get(ctx context.Context, universityID, contentID uuid.UUID) (*CachedContent, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(universityID, contentID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return decodeContent(vals)
}

// Set writes content as a Redis hash with a 24-hour TTL. An entry is only
// replaced by a newer version, so out-of-order refreshes cannot roll it back.
func (c *ContentCache) Set(ctx context.Context, item *CachedContent) error {
	key := c.key(item.UniversityID, item.ID)

	current, err := c.client.Client().HGet(ctx, key, "version").Int64()
	if err == nil && current > item.Version {
		return nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache read version: %w", err)
	}

	pipe := c.client.Client().TxPipeline()
	pipe.HSet(ctx, key,
		"id", item.ID.String(),
		"university_id", item.UniversityID.String(),
		"creator_id", item.CreatorID.String(),
		"kind", item.Kind,
		"title", item.Title,
		"body", item.Body,
		"location", item.Location,
		"state", item.State,
		"compliance_score", item.ComplianceScore,
		"version", item.Version,
		"updated_at", item.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, ContentCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes cached content.
func (c *ContentCache) Delete(ctx context.Context, universityID, contentID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(universityID, contentID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "content:{universityID}:{contentID}"
func (c *ContentCache) key(universityID, contentID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", contentCacheKeyPrefix, universityID, contentID)
}

func decodeContent(vals map[string]string) (*CachedContent, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	universityID, err := uuid.Parse(vals["university_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse university_id: %w", err)
	}
	creatorID, err := uuid.Parse(vals["creator_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse creator_id: %w", err)
	}
	score, err := strconv.Atoi(vals["compliance_score"])
	if err != nil {
		return nil, fmt.Errorf("cache parse compliance_score: %w", err)
	}
	version, err := strconv.ParseInt(vals["version"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse version: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	return &CachedContent{
		ID:              id,
		UniversityID:    universityID,
		CreatorID:       creatorID,
		Kind:            vals["kind"],
		Title:           vals["title"],
		Body:            vals["body"],
		Location:        vals["location"],
		State:           vals["state"],
		ComplianceScore: score,
		Version:         version,
		UpdatedAt:       updatedAt,
	}, nil
}
