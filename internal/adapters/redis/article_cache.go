package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"blogsmith/pkg/logger"
)

// CachedArticle is a finished article stored by topic.
type CachedArticle struct {
	Topic       string    `json:"topic"`
	Article     string    `json:"article"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ArticleCache stores finished articles keyed by normalized topic.
// A cache hit skips the agent run entirely.
type ArticleCache struct {
	client *Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewArticleCache creates an article cache with the given TTL.
func NewArticleCache(client *Client, ttl time.Duration) *ArticleCache {
	return &ArticleCache{
		client: client,
		ttl:    ttl,
		log:    logger.Get().With("component", "article_cache"),
	}
}

// Get returns a cached article for the topic, or nil on a miss.
// Cache errors degrade to a miss; the run proceeds.
func (c *ArticleCache) Get(ctx context.Context, topic string) *CachedArticle {
	var cached CachedArticle
	if err := c.client.Get(ctx, cacheKey(topic), &cached); err != nil {
		if !IsMiss(err) {
			c.log.Warnf("Article cache read failed: %v", err)
		}
		return nil
	}
	return &cached
}

// Put stores a finished article for the topic.
func (c *ArticleCache) Put(ctx context.Context, topic, article string) {
	cached := CachedArticle{
		Topic:       topic,
		Article:     article,
		GeneratedAt: time.Now(),
	}
	if err := c.client.Set(ctx, cacheKey(topic), cached, c.ttl); err != nil {
		c.log.Warnf("Article cache write failed: %v", err)
	}
}

func cacheKey(topic string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(topic)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return "article:" + hex.EncodeToString(sum[:16])
}
