package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// BookingStatuses lists every status in lifecycle order.
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no student or tutor transition leaves s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// Booking is a scheduled session between a student and a tutor profile.
type Booking struct {
	ID             string        `json:"id"`
	StudentID      string        `json:"studentId"`
	TutorProfileID string        `json:"tutorProfileId"`
	ScheduledAt    time.Time     `json:"scheduledAt"`
	Duration       int           `json:"duration"`
	Status         BookingStatus `json:"status"`
	Notes          string        `json:"notes,omitempty"`
	Student        *UserSummary  `json:"student,omitempty"`
	Tutor          *TutorProfile `json:"tutor,omitempty"`
	TutorProfile   *TutorProfile `json:"tutorProfile,omitempty"`
	Review         *Review       `json:"review,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// TutorInfo returns whichever tutor relation the backend populated.
func (b *Booking) TutorInfo() *TutorProfile {
	if b.TutorProfile != nil {
		return b.TutorProfile
	}
	return b.Tutor
}

// CreateBookingInput is the POST /bookings payload.
type CreateBookingInput struct {
	TutorProfileID string    `json:"tutorProfileId"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	Duration       int       `json:"duration"`
	Notes          string    `json:"notes,omitempty"`
}

// BookingFilter narrows booking listings. Status may hold a comma separated set.
type BookingFilter struct {
	Status string
	Page   int
	Limit  int
}

// BookingStat is one row of the per-status counts on the student dashboard.
type BookingStat struct {
	Status BookingStatus `json:"status"`
	Count  int           `json:"_count"`
}
