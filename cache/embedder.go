package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/fljobs/backend/agent"
	"github.com/fljobs/backend/logger"
)

// EmbeddingKey is the cache key for text embedded with model
func EmbeddingKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("embedding:%s:%s", model, hex.EncodeToString(sum[:]))
}

// CachedEmbedder serves embeddings from a Cache and fills it on miss.
// Cache errors are logged and never fail the call.
type CachedEmbedder struct {
	next   agent.Embedder
	cache  Cache
	model  string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedEmbedder wraps next with cache
func NewCachedEmbedder(next agent.Embedder, c Cache, model string, ttl time.Duration, log *zap.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		next:   next,
		cache:  c,
		model:  model,
		ttl:    ttl,
		logger: logger.OrNop(log).Named("embedding_cache"),
	}
}

func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := EmbeddingKey(e.model, text)

	if data, ok, err := e.cache.Get(ctx, key); err != nil {
		e.logger.Warn("Embedding cache read failed", zap.Error(err))
	} else if ok {
		var vec []float32
		if err := json.Unmarshal(data, &vec); err == nil && len(vec) > 0 {
			return vec, nil
		}
		e.logger.Warn("Discarding malformed cached embedding", zap.String("key", key))
	}

	vec, err := e.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(vec)
	if err == nil {
		err = e.cache.Set(ctx, key, data, e.ttl)
	}
	if err != nil {
		e.logger.Warn("Embedding cache write failed", zap.Error(err))
	}
	return vec, nil
}

// Close closes the wrapped embedder and the cache when they hold resources
func (e *CachedEmbedder) Close() error {
	var errs []error
	if c, ok := e.next.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if c, ok := e.cache.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

var _ agent.Embedder = (*CachedEmbedder)(nil)
