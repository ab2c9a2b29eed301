package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/pkg/jobs"
)

func newCatalog(t *testing.T, enabled bool) (*CatalogService, *fakeTutorRepo, *fakeCategoryRepo, *memoryCache) {
	t.Helper()
	tutors := &fakeTutorRepo{tutors: []models.TutorProfile{{ID: "t1", Rating: 4.9}}}
	categories := &fakeCategoryRepo{categories: []models.Category{{ID: "c1", Name: "Math"}}}
	store := newMemoryCache()
	cache := NewCacheService(store, nil, 24*time.Hour, nil, enabled)
	svc := NewCatalogService(tutors, categories, cache, nil, time.Hour, 24*time.Hour, nil)
	return svc, tutors, categories, store
}

func TestCatalogHomeFetchesFeaturedTutors(t *testing.T) {
	svc, tutors, _, _ := newCatalog(t, false)

	catalog := svc.Home(context.Background())
	require.Len(t, catalog.FeaturedTutors, 1)
	require.Len(t, catalog.Categories, 1)

	require.Len(t, tutors.searchParams, 1)
	params := tutors.searchParams[0]
	assert.Equal(t, "rating", params.SortBy)
	assert.Equal(t, "desc", params.SortOrder)
	assert.Equal(t, 3, params.Limit)
	require.NotNil(t, params.IsAvailable)
	assert.True(t, *params.IsAvailable)
}

func TestCatalogHomeServesFreshCache(t *testing.T) {
	svc, _, categories, store := newCatalog(t, true)

	svc.Home(context.Background())
	svc.Home(context.Background())

	assert.Equal(t, 1, categories.calls)
	assert.Equal(t, 24*time.Hour, store.ttls[catalogKey])
}

func TestCatalogHomeServesStaleAndSchedulesRefresh(t *testing.T) {
	svc, _, categories, _ := newCatalog(t, true)
	queue := &fakeQueue{}
	svc.UseQueue(queue)

	base := time.Now()
	svc.now = func() time.Time { return base }
	svc.Home(context.Background())

	categories.categories = []models.Category{{ID: "c2", Name: "Physics"}}
	svc.now = func() time.Time { return base.Add(2 * time.Hour) }

	catalog := svc.Home(context.Background())
	assert.Equal(t, "Math", catalog.Categories[0].Name)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, JobCatalogRefresh, queue.jobs[0].Type)

	require.NoError(t, svc.HandleJob(context.Background(), queue.jobs[0]))
	catalog = svc.Home(context.Background())
	assert.Equal(t, "Physics", catalog.Categories[0].Name)
}

func TestCatalogHomeDegradesToEmptyLists(t *testing.T) {
	svc, tutors, categories, store := newCatalog(t, true)
	tutors.searchErr = errors.New("down")
	categories.err = errors.New("down")

	catalog := svc.Home(context.Background())
	assert.Empty(t, catalog.Categories)
	assert.Empty(t, catalog.FeaturedTutors)
	assert.Empty(t, store.items)
}

func TestCatalogInvalidate(t *testing.T) {
	svc, _, categories, _ := newCatalog(t, true)
	svc.Home(context.Background())
	svc.Invalidate(context.Background())
	svc.Home(context.Background())
	assert.Equal(t, 2, categories.calls)
}

func TestCatalogHandleJobIgnoresOtherTypes(t *testing.T) {
	svc, _, categories, _ := newCatalog(t, true)
	require.NoError(t, svc.HandleJob(context.Background(), jobs.Job{Type: "other"}))
	assert.Zero(t, categories.calls)
}
