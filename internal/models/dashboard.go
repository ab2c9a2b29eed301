package models

// StudentDashboard is the payload of GET /users/dashboard.
type StudentDashboard struct {
	User             UserSummary   `json:"user"`
	UpcomingSessions []Booking     `json:"upcomingSessions"`
	BookingStats     []BookingStat `json:"bookingStats"`
}

// CountFor returns the number of bookings with status s.
func (d *StudentDashboard) CountFor(s BookingStatus) int {
	if d == nil {
		return 0
	}
	for _, stat := range d.BookingStats {
		if stat.Status == s {
			return stat.Count
		}
	}
	return 0
}

// Total sums the per-status counts.
func (d *StudentDashboard) Total() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, stat := range d.BookingStats {
		total += stat.Count
	}
	return total
}

// AdminStats is the payload of GET /admin/dashboard.
type AdminStats struct {
	TotalUsers      int `json:"totalUsers"`
	TotalStudents   int `json:"totalStudents"`
	TotalTutors     int `json:"totalTutors"`
	TotalBookings   int `json:"totalBookings"`
	TotalCategories int `json:"totalCategories"`
	TotalReviews    int `json:"totalReviews"`
	PendingBookings int `json:"pendingBookings"`
}

// TutorStats are computed locally from the tutor's own bookings.
type TutorStats struct {
	TotalBookings     int
	PendingBookings   int
	CompletedSessions int
	TotalEarnings     float64
}
