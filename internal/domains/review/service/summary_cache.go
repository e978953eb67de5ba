package service

import (
	"context"
	"strconv"

	"marketplace-backend/internal/domains/review/model"
	"marketplace-backend/internal/domains/review/rating"
	"marketplace-backend/internal/shared/apperror"
	"marketplace-backend/internal/shared/metrics"
	"marketplace-backend/pkg/logger"
)

const summaryKeyPrefix = "review:stats:"

func sellerStatsKey(sellerID string) string {
	return summaryKeyPrefix + "seller:" + sellerID
}

func productStatsKey(productID string) string {
	return summaryKeyPrefix + "product:" + productID
}

// generationKey holds the counter bumped by every mutation touching the rollup
func generationKey(key string) string {
	return key + ":gen"
}

func versionedKey(key string, generation int64) string {
	return key + ":v" + strconv.FormatInt(generation, 10)
}

// summary reads a rollup through the cache. Entries are stored under the
// generation read before loading, so a mutation that commits mid-load makes
// the written entry unreachable. Cache failures degrade to a recompute and
// never fail the request.
func (s *reviewService) summary(
	ctx context.Context,
	scope, key string,
	load func() (map[int]int, error),
) (*rating.Summary, error) {
	cacheKey := ""
	if s.summaryCache != nil {
		var generation int64
		if _, err := s.summaryCache.Get(ctx, generationKey(key), &generation); err != nil {
			logger.Warn("rating summary generation read failed", err)
		} else {
			cacheKey = versionedKey(key, generation)
		}
	}

	if cacheKey != "" {
		var cached rating.Summary
		found, err := s.summaryCache.Get(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warn("rating summary cache read failed", err)
		} else if found {
			metrics.RatingSummaryLookups.WithLabelValues(scope, "hit").Inc()
			return &cached, nil
		}
	}
	metrics.RatingSummaryLookups.WithLabelValues(scope, "miss").Inc()

	counts, err := load()
	if err != nil {
		return nil, apperror.Wrap("failed to aggregate ratings", err)
	}
	summary := rating.Summarize(counts)

	if cacheKey != "" {
		if err := s.summaryCache.Set(ctx, cacheKey, summary, s.cacheTTL); err != nil {
			logger.Warn("rating summary cache write failed", err)
		}
	}

	return &summary, nil
}

// invalidateSummaries moves the seller and product rollups to a new generation
func (s *reviewService) invalidateSummaries(ctx context.Context, review *model.Review) {
	if s.summaryCache == nil {
		return
	}
	for _, key := range []string{
		sellerStatsKey(review.ReviewedUserID),
		productStatsKey(review.ProductID),
	} {
		if _, err := s.summaryCache.Incr(ctx, generationKey(key)); err != nil {
			logger.Warn("rating summary cache invalidation failed", err)
		}
	}
}
