package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/tocampus/governance/pkg/cache"
	"github.com/tocampus/governance/pkg/logger"
	govdomain "github.com/tocampus/governance/services/governance/domain"
	"github.com/tocampus/governance/services/governance/domain/models"
	"github.com/tocampus/governance/services/governance/domain/repositories"
)

// ContentCache is the subset of *pkgcache.ContentCache the reader needs.
type ContentCache interface {
	Get(ctx context.Context, universityID, contentID uuid.UUID) (*pkgcache.CachedContent, error)
	Set(ctx context.Context, item *pkgcache.CachedContent) error
}

// ContentReader serves the content read model. Reads go through the Redis
// cache when one is configured; the worker keeps it fresh from domain events.
type ContentReader struct {
	store    repositories.ContentStore
	identity repositories.IdentityProvider
	cache    ContentCache
	log      logger.Logger
}

// NewContentReader returns a reader. cache may be nil.
func NewContentReader(store repositories.ContentStore, identity repositories.IdentityProvider, cache ContentCache, log logger.Logger) *ContentReader {
	return &ContentReader{store: store, identity: identity, cache: cache, log: log}
}

// Get returns the read model of contentID as seen by viewerID. Content from
// another university is reported as not found.
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query the store.
//  3. Warm the cache with the store result.
func (r *ContentReader) Get(ctx context.Context, viewerID, contentID uuid.UUID) (*pkgcache.CachedContent, error) {
	viewer, err := r.identity.Lookup(ctx, viewerID)
	if err != nil {
		if errors.Is(err, govdomain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", govdomain.ErrUnauthorizedActor, err)
		}
		return nil, fmt.Errorf("lookup viewer: %w", err)
	}

	if r.cache != nil {
		cached, err := r.cache.Get(ctx, viewer.UniversityID, contentID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			r.log.WarnContext(ctx, "content cache read failed", "error", err, "content_id", contentID)
		}
	}

	item, err := r.store.Get(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if item.UniversityID != viewer.UniversityID {
		return nil, govdomain.ErrContentNotFound
	}

	view := ToCachedContent(item)
	if r.cache != nil {
		if err := r.cache.Set(ctx, view); err != nil {
			r.log.WarnContext(ctx, "content cache write failed", "error", err, "content_id", contentID)
		}
	}
	return view, nil
}

// Refresh reloads contentID from the store into the cache.
func (r *ContentReader) Refresh(ctx context.Context, contentID uuid.UUID) error {
	if r.cache == nil {
		return nil
	}
	item, err := r.store.Get(ctx, contentID)
	if err != nil {
		return fmt.Errorf("refresh content %s: %w", contentID, err)
	}
	if err := r.cache.Set(ctx, ToCachedContent(item)); err != nil {
		return fmt.Errorf("refresh content %s: %w", contentID, err)
	}
	return nil
}

// ToCachedContent maps a ContentItem to its read model.
func ToCachedContent(item *models.ContentItem) *pkgcache.CachedContent {
	return &pkgcache.CachedContent{
		ID:              item.ID,
		UniversityID:    item.UniversityID,
		CreatorID:       item.CreatorID,
		Kind:            string(item.Kind),
		Title:           item.Title,
		Body:            item.Body,
		Location:        item.Location,
		State:           string(item.State),
		ComplianceScore: item.ComplianceScore,
		Version:         item.Version,
		UpdatedAt:       item.UpdatedAt,
	}
}
