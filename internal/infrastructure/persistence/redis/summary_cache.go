package redis

import (
	"context"
	"errors"

	"github.com/skillbridge-hub/skillbridge-portfolio/internal/application/dashboard"
)

// SummaryCache implements dashboard.SummaryCache on top of the generic Cache.
// A miss returns (nil, nil) so the composer falls through to a fresh load.
type SummaryCache struct {
	cache *Cache
}

// NewSummaryCache creates a dashboard summary cache.
func NewSummaryCache(cache *Cache) *SummaryCache {
	return &SummaryCache{cache: cache}
}

// Get returns the cached summary, or nil on a miss.
func (s *SummaryCache) Get(ctx context.Context) (*dashboard.Summary, error) {
	var summary dashboard.Summary
	if err := s.cache.Get(ctx, DashboardKey(), &summary); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// Set stores the summary with the short dashboard TTL.
func (s *SummaryCache) Set(ctx context.Context, summary *dashboard.Summary) error {
	if summary == nil {
		return nil
	}
	return s.cache.Set(ctx, DashboardKey(), summary, TTLDashboardSummary)
}

// Invalidate drops the cached summary.
func (s *SummaryCache) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, DashboardKey())
}
