package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/repository"
	"github.com/noah-isme/skillbridge-web/pkg/apiclient"
	appErrors "github.com/noah-isme/skillbridge-web/pkg/errors"
	"github.com/noah-isme/skillbridge-web/pkg/jobs"
)

type fakeTutorRepo struct {
	searchParams []models.TutorSearchParams
	tutors       []models.TutorProfile
	profile      models.TutorProfile
	profileErr   error
	searchErr    error
	created      *repository.TutorProfileInput
	updated      *repository.TutorProfileInput
	slots        []models.TutorAvailability
	added        *repository.AvailabilityInput
	deleted      string
}

func (f *fakeTutorRepo) Search(_ context.Context, params models.TutorSearchParams) (*models.Envelope[[]models.TutorProfile], error) {
	f.searchParams = append(f.searchParams, params)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &models.Envelope[[]models.TutorProfile]{Success: true, Data: f.tutors}, nil
}

func (f *fakeTutorRepo) GetByID(_ context.Context, id string) (*models.Envelope[models.TutorProfile], error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return &models.Envelope[models.TutorProfile]{Success: true, Data: f.profile}, nil
}

func (f *fakeTutorRepo) CreateProfile(_ context.Context, input repository.TutorProfileInput) (*models.Envelope[models.TutorProfile], error) {
	f.created = &input
	return &models.Envelope[models.TutorProfile]{Success: true}, nil
}

func (f *fakeTutorRepo) UpdateProfile(_ context.Context, input repository.TutorProfileInput) (*models.Envelope[models.TutorProfile], error) {
	f.updated = &input
	return &models.Envelope[models.TutorProfile]{Success: true}, nil
}

func (f *fakeTutorRepo) GetMyProfile(context.Context) (*models.Envelope[models.TutorProfile], error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return &models.Envelope[models.TutorProfile]{Success: true, Data: f.profile}, nil
}

func (f *fakeTutorRepo) GetMyAvailability(context.Context) (*models.Envelope[[]models.TutorAvailability], error) {
	return &models.Envelope[[]models.TutorAvailability]{Success: true, Data: f.slots}, nil
}

func (f *fakeTutorRepo) AddAvailability(_ context.Context, input repository.AvailabilityInput) (*models.Envelope[models.TutorAvailability], error) {
	f.added = &input
	return &models.Envelope[models.TutorAvailability]{Success: true}, nil
}

func (f *fakeTutorRepo) DeleteAvailability(_ context.Context, id string) (*models.Envelope[any], error) {
	f.deleted = id
	return &models.Envelope[any]{Success: true}, nil
}

type fakeCategoryRepo struct {
	categories []models.Category
	err        error
	created    *models.CategoryInput
	calls      int
}

func (f *fakeCategoryRepo) GetAll(context.Context) (*models.Envelope[[]models.Category], error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.Envelope[[]models.Category]{Success: true, Data: f.categories}, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*models.Envelope[models.Category], error) {
	for _, c := range f.categories {
		if c.ID == id {
			return &models.Envelope[models.Category]{Success: true, Data: c}, nil
		}
	}
	return nil, &apiclient.Error{Status: 404, Message: "Category not found"}
}

func (f *fakeCategoryRepo) Create(_ context.Context, input models.CategoryInput) (*models.Envelope[models.Category], error) {
	f.created = &input
	c := models.Category{ID: "c-new", Name: input.Name}
	f.categories = append(f.categories, c)
	return &models.Envelope[models.Category]{Success: true, Data: c}, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, id string, input models.CategoryInput) (*models.Envelope[models.Category], error) {
	return &models.Envelope[models.Category]{Success: true, Data: models.Category{ID: id, Name: input.Name}}, nil
}

func (f *fakeCategoryRepo) Delete(context.Context, string) (*models.Envelope[any], error) {
	return &models.Envelope[any]{Success: true}, nil
}

type fakeBookingRepo struct {
	bookings []models.Booking
	filters  []models.BookingFilter
	listErr  error
	created  *models.CreateBookingInput
	calls    []string
}

func (f *fakeBookingRepo) Create(_ context.Context, input models.CreateBookingInput) (*models.Envelope[models.Booking], error) {
	f.created = &input
	return &models.Envelope[models.Booking]{Success: true, Data: models.Booking{ID: "b-new", Status: models.BookingPending}}, nil
}

func (f *fakeBookingRepo) GetMyBookings(_ context.Context, filter models.BookingFilter) (*models.Envelope[[]models.Booking], error) {
	f.filters = append(f.filters, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &models.Envelope[[]models.Booking]{Success: true, Data: f.bookings}, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Envelope[models.Booking], error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return &models.Envelope[models.Booking]{Success: true, Data: b}, nil
		}
	}
	return nil, &apiclient.Error{Status: 404, Message: "Booking not found"}
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id string) (*models.Envelope[models.Booking], error) {
	f.calls = append(f.calls, "cancel:"+id)
	return &models.Envelope[models.Booking]{Success: true, Data: models.Booking{ID: id, Status: models.BookingCancelled}}, nil
}

func (f *fakeBookingRepo) Confirm(_ context.Context, id string) (*models.Envelope[models.Booking], error) {
	f.calls = append(f.calls, "confirm:"+id)
	return &models.Envelope[models.Booking]{Success: true, Data: models.Booking{ID: id, Status: models.BookingConfirmed}}, nil
}

func (f *fakeBookingRepo) Complete(_ context.Context, id string) (*models.Envelope[models.Booking], error) {
	f.calls = append(f.calls, "complete:"+id)
	return &models.Envelope[models.Booking]{Success: true, Data: models.Booking{ID: id, Status: models.BookingCompleted}}, nil
}

type fakeReviewRepo struct {
	created *models.CreateReviewInput
	reviews []models.Review
	err     error
}

func (f *fakeReviewRepo) Create(_ context.Context, input models.CreateReviewInput) (*models.Envelope[models.Review], error) {
	f.created = &input
	return &models.Envelope[models.Review]{Success: true}, nil
}

func (f *fakeReviewRepo) GetTutorReviews(context.Context, string, int, int) (*models.Envelope[[]models.Review], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Envelope[[]models.Review]{Success: true, Data: f.reviews}, nil
}

// memoryCache is an in-process CacheRepository.
type memoryCache struct {
	items map[string][]byte
	ttls  map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

type fakeQueue struct {
	jobs []jobs.Job
}

func (f *fakeQueue) TryEnqueue(job jobs.Job) (bool, error) {
	f.jobs = append(f.jobs, job)
	return true, nil
}
