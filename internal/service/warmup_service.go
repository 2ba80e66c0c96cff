package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/spendtrails-site/internal/models"
	"github.com/noah-isme/spendtrails-site/pkg/jobs"
)

const warmupJobType = "content_warmup"

// warmupPageSlugs are the generic pages primed alongside the singleton documents.
var warmupPageSlugs = []string{"about", "privacy", "terms", "contact", "security", "how-it-works"}

type warmupTarget struct {
	ContentType models.ContentType
	Slug        string
}

type contentPrimer interface {
	PurgeCache(ctx context.Context) error
	Prime(ctx context.Context, query models.Query, params models.QueryParams) error
}

// WarmupService primes the content cache by fetching every content type through the client.
type WarmupService struct {
	client  contentPrimer
	queue   *jobs.Queue
	logger  *zap.Logger
	timeout time.Duration
	done    atomic.Bool
}

// NewWarmupService builds the warm-up queue. Workers is clamped to at least one.
func NewWarmupService(client contentPrimer, workers int, logger *zap.Logger) *WarmupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &WarmupService{client: client, logger: logger, timeout: 15 * time.Second}
	s.queue = jobs.NewQueue("content-warmup", s.handle, jobs.QueueConfig{
		Workers:    workers,
		MaxRetries: 2,
		RetryDelay: 500 * time.Millisecond,
		Logger:     logger,
	})
	return s
}

// Run drops stale cache entries, enqueues one job per content document and blocks until the
// backlog settles or ctx ends.
func (s *WarmupService) Run(ctx context.Context) error {
	if err := s.client.PurgeCache(ctx); err != nil {
		s.logger.Warn("content cache purge failed, warming over existing entries", zap.Error(err))
	}

	s.queue.Start(ctx)
	defer s.queue.Stop()

	for _, target := range warmupTargets() {
		if err := s.queue.Enqueue(jobs.Job{Type: warmupJobType, Payload: target}); err != nil {
			return fmt.Errorf("enqueue warm-up for %s: %w", target.ContentType, err)
		}
	}

	if err := s.queue.Wait(ctx); err != nil {
		return err
	}

	stats := s.queue.Stats()
	s.done.Store(true)
	s.logger.Info("content warm-up finished",
		zap.Uint64("succeeded", stats.Succeeded),
		zap.Uint64("failed", stats.Failed))
	return nil
}

// Done reports whether a warm-up run has completed.
func (s *WarmupService) Done() bool {
	return s != nil && s.done.Load()
}

// Stats returns the warm-up job counters.
func (s *WarmupService) Stats() jobs.Stats {
	return s.queue.Stats()
}

func (s *WarmupService) handle(ctx context.Context, job jobs.Job) error {
	target, ok := job.Payload.(warmupTarget)
	if !ok {
		return fmt.Errorf("unexpected warm-up payload %T", job.Payload)
	}
	query, ok := QueryFor(target.ContentType)
	if !ok {
		return fmt.Errorf("no query for content type %q", target.ContentType)
	}

	var params models.QueryParams
	if target.Slug != "" {
		params = models.QueryParams{"slug": target.Slug}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Prime(fetchCtx, query, params)
}

func warmupTargets() []warmupTarget {
	targets := []warmupTarget{
		{ContentType: models.ContentTypeHomepage},
		{ContentType: models.ContentTypeSiteSettings},
		{ContentType: models.ContentTypeFeaturesPage},
		{ContentType: models.ContentTypePricingPage},
	}
	for _, slug := range warmupPageSlugs {
		targets = append(targets, warmupTarget{ContentType: models.ContentTypePage, Slug: slug})
	}
	return targets
}
