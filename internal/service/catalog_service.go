package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/jobs"
)

// JobCatalogRefresh is the job type handled by CatalogService.HandleJob.
const JobCatalogRefresh = "catalog.refresh"

const catalogKey = "catalog:home"

// FeaturedTutorParams selects the tutors shown on the home page.
var FeaturedTutorParams = models.TutorSearchParams{SortBy: "rating", SortOrder: "desc", Limit: 3, IsAvailable: boolPtr(true)}

type tutorSearcher interface {
	Search(ctx context.Context, params models.TutorSearchParams) (*models.Envelope[[]models.TutorProfile], error)
}

type categoryLister interface {
	GetAll(ctx context.Context) (*models.Envelope[[]models.Category], error)
}

type jobEnqueuer interface {
	TryEnqueue(job jobs.Job) (bool, error)
}

// Catalog is the public content of the home page.
type Catalog struct {
	Categories     []models.Category     `json:"categories"`
	FeaturedTutors []models.TutorProfile `json:"featuredTutors"`
	FetchedAt      time.Time             `json:"fetchedAt"`
}

// CatalogService serves the home page catalog, optionally from Redis with
// stale-while-revalidate refreshes on a background queue.
type CatalogService struct {
	tutors     tutorSearcher
	categories categoryLister
	cache      *CacheService
	queue      jobEnqueuer
	metrics    *MetricsService
	revalidate time.Duration
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewCatalogService wires the catalog. cache may be disabled.
func NewCatalogService(tutors tutorSearcher, categories categoryLister, cache *CacheService, metrics *MetricsService, revalidate, ttl time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if revalidate <= 0 {
		revalidate = time.Hour
	}
	if ttl < revalidate {
		ttl = revalidate
	}
	return &CatalogService{
		tutors:     tutors,
		categories: categories,
		cache:      cache,
		metrics:    metrics,
		revalidate: revalidate,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
	}
}

// UseQueue attaches the queue that runs background refreshes. Without one,
// stale entries are refreshed inline.
func (s *CatalogService) UseQueue(q jobEnqueuer) {
	s.queue = q
}

// Home returns the catalog. Fetch failures yield empty lists, never an error.
func (s *CatalogService) Home(ctx context.Context) Catalog {
	var cached Catalog
	if s.cache.Get(ctx, catalogKey, &cached) {
		if s.now().Sub(cached.FetchedAt) < s.revalidate {
			return cached
		}
		if s.scheduleRefresh() {
			return cached
		}
	}

	fresh, err := s.Refresh(ctx)
	if err != nil && len(cached.Categories)+len(cached.FeaturedTutors) > 0 {
		return cached
	}
	return fresh
}

// Refresh fetches both lists and stores them when both succeeded.
func (s *CatalogService) Refresh(ctx context.Context) (Catalog, error) {
	out := Catalog{FetchedAt: s.now().UTC()}
	var errs []error

	if env, err := s.categories.GetAll(ctx); err != nil {
		errs = append(errs, err)
	} else {
		out.Categories = env.Data
	}
	if env, err := s.tutors.Search(ctx, FeaturedTutorParams); err != nil {
		errs = append(errs, err)
	} else {
		out.FeaturedTutors = env.Data
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Warn("catalog fetch failed", zap.Error(err))
		return out, err
	}
	s.cache.Set(ctx, catalogKey, out, s.ttl)
	return out, nil
}

// Invalidate drops the cached catalog so the next visit refetches.
func (s *CatalogService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, catalogKey)
}

// HandleJob is the queue handler for JobCatalogRefresh.
func (s *CatalogService) HandleJob(ctx context.Context, job jobs.Job) error {
	if job.Type != JobCatalogRefresh {
		return nil
	}
	_, err := s.Refresh(ctx)
	s.metrics.RecordRevalidation(err == nil)
	return err
}

func (s *CatalogService) scheduleRefresh() bool {
	if s.queue == nil {
		return false
	}
	if _, err := s.queue.TryEnqueue(jobs.Job{Key: catalogKey, Type: JobCatalogRefresh}); err != nil {
		s.logger.Warn("catalog refresh not scheduled", zap.Error(err))
		return false
	}
	return true
}

func boolPtr(v bool) *bool { return &v }
