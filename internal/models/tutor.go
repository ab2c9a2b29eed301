package models

import "time"

// TutorProfile is the tutor-specific extension of a user account.
type TutorProfile struct {
	ID             string              `json:"id"`
	UserID         string              `json:"userId"`
	Bio            string              `json:"bio,omitempty"`
	HourlyRate     float64             `json:"hourlyRate"`
	Experience     int                 `json:"experience"`
	Rating         float64             `json:"rating"`
	TotalReviews   int                 `json:"totalReviews"`
	IsAvailable    bool                `json:"isAvailable"`
	User           UserSummary         `json:"user"`
	Categories     []TutorCategory     `json:"categories,omitempty"`
	Availabilities []TutorAvailability `json:"availabilities,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// CategoryIDs lists the ids of the categories the tutor teaches.
func (p *TutorProfile) CategoryIDs() []string {
	if p == nil {
		return nil
	}
	ids := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.CategoryID)
	}
	return ids
}

// TutorCategory links a tutor profile to a category.
type TutorCategory struct {
	ID             string   `json:"id"`
	TutorProfileID string   `json:"tutorProfileId"`
	CategoryID     string   `json:"categoryId"`
	Category       Category `json:"category"`
}

// TutorAvailability is a weekly recurring window. Times are wall-clock HH:MM.
// Overlapping slots are allowed.
type TutorAvailability struct {
	ID             string `json:"id"`
	TutorProfileID string `json:"tutorProfileId"`
	DayOfWeek      int    `json:"dayOfWeek"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
}

// Weekdays indexes day names by dayOfWeek (0 = Sunday).
var Weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayName returns the weekday label for the slot.
func (a TutorAvailability) DayName() string {
	if a.DayOfWeek < 0 || a.DayOfWeek > 6 {
		return ""
	}
	return Weekdays[a.DayOfWeek]
}

// DaySlots groups availability slots under one weekday.
type DaySlots struct {
	Day   int
	Name  string
	Slots []TutorAvailability
}

// GroupByDay buckets slots per weekday, Sunday first, skipping empty days.
func GroupByDay(slots []TutorAvailability) []DaySlots {
	var buckets [7][]TutorAvailability
	for _, s := range slots {
		if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
			continue
		}
		buckets[s.DayOfWeek] = append(buckets[s.DayOfWeek], s)
	}
	out := make([]DaySlots, 0, 7)
	for day, list := range buckets {
		if len(list) == 0 {
			continue
		}
		out = append(out, DaySlots{Day: day, Name: Weekdays[day], Slots: list})
	}
	return out
}

// TutorSearchParams are the query parameters accepted by GET /tutors.
type TutorSearchParams struct {
	Search      string
	CategoryID  string
	MinRating   float64
	SortBy      string
	SortOrder   string
	IsAvailable *bool
	Page        int
	Limit       int
}
