package handler

import (
	"net/url"

	"github.com/noah-isme/skillbridge-web/internal/dto"
	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/service"
)

// BookingRow is one booking with the controls the viewer may use on it.
type BookingRow struct {
	Booking   models.Booking
	Actions   []RowAction
	CanReview bool
	// Choices is filled on the admin list only.
	Choices []models.BookingStatus
}

// RowAction is a gate action rendered as a small POST form.
type RowAction struct {
	Label  string
	URL    string
	Danger bool
}

// BookingListData is the body of the booking list pages.
type BookingListData struct {
	Tabs       []dto.Tab
	Rows       []BookingRow
	Pagination dto.Pagination
	Return     string
	Err        string
}

func bookingRows(bookings []models.Booking, role models.UserRole, base string) []BookingRow {
	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		row := BookingRow{Booking: b}
		if role == models.RoleStudent {
			row.CanReview = service.CanLeaveReview(b)
		}
		for _, a := range service.BookingActions(b.Status, role) {
			row.Actions = append(row.Actions, RowAction{
				Label:  a.Label(),
				URL:    base + "/" + url.PathEscape(b.ID) + "/" + string(a),
				Danger: a.Target() == models.BookingCancelled,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func bookingTabs(tabs []service.BookingTab, active service.BookingTab, base string) []dto.Tab {
	out := make([]dto.Tab, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, dto.Tab{
			Key:    t.Key,
			Label:  t.Label,
			URL:    base + "?tab=" + url.QueryEscape(t.Key),
			Active: t.Key == active.Key,
		})
	}
	return out
}
