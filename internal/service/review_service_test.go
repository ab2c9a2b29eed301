package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
	appErrors "github.com/noah-isme/skillbridge-web/pkg/errors"
)

func reviewFixture() (*ReviewService, *fakeReviewRepo, *fakeBookingRepo) {
	bookings := &fakeBookingRepo{bookings: []models.Booking{
		{ID: "done", Status: models.BookingCompleted},
		{ID: "reviewed", Status: models.BookingCompleted, Review: &models.Review{ID: "r1"}},
		{ID: "pending", Status: models.BookingPending},
	}}
	reviews := &fakeReviewRepo{}
	return NewReviewService(reviews, bookings, nil, nil), reviews, bookings
}

func TestReviewableRules(t *testing.T) {
	svc, _, bookings := reviewFixture()
	ctx := context.Background()

	b, err := svc.Reviewable(ctx, "done")
	require.NoError(t, err)
	assert.Equal(t, "done", b.ID)
	assert.Equal(t, 100, bookings.filters[0].Limit)

	_, err = svc.Reviewable(ctx, "reviewed")
	assert.Equal(t, "You have already reviewed this session", appErrors.Message(err, ""))

	_, err = svc.Reviewable(ctx, "pending")
	assert.Equal(t, "You can only review completed sessions", appErrors.Message(err, ""))

	_, err = svc.Reviewable(ctx, "nope")
	assert.Equal(t, "Booking not found", appErrors.Message(err, ""))
}

func TestReviewableLookupFailure(t *testing.T) {
	svc, _, bookings := reviewFixture()
	bookings.listErr = errors.New("down")

	_, err := svc.Reviewable(context.Background(), "done")
	assert.Equal(t, "Failed to load booking details", appErrors.Message(err, ""))
}

func TestSubmitReview(t *testing.T) {
	svc, reviews, _ := reviewFixture()

	err := svc.Submit(context.Background(), dto.ReviewForm{BookingID: "done", Rating: 0})
	assert.Equal(t, "Please select a rating", appErrors.Message(err, ""))
	assert.Nil(t, reviews.created)

	require.NoError(t, svc.Submit(context.Background(), dto.ReviewForm{BookingID: "done", Rating: 5, Comment: " great "}))
	assert.Equal(t, models.CreateReviewInput{BookingID: "done", Rating: 5, Comment: "great"}, *reviews.created)

	err = svc.Submit(context.Background(), dto.ReviewForm{BookingID: "reviewed", Rating: 4})
	assert.Error(t, err)
}
