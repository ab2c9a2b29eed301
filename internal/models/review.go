package models

import "time"

// Review is a student's rating of a completed booking.
type Review struct {
	ID             string       `json:"id"`
	Rating         int          `json:"rating"`
	Comment        string       `json:"comment,omitempty"`
	StudentID      string       `json:"studentId"`
	TutorProfileID string       `json:"tutorProfileId"`
	BookingID      string       `json:"bookingId"`
	Student        *UserSummary `json:"student,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// CreateReviewInput is the POST /reviews payload.
type CreateReviewInput struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}
