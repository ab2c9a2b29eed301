package service

import "github.com/noah-isme/skillbridge-web/internal/models"

// BookingAction is a transition a student or tutor may request.
type BookingAction string

const (
	ActionConfirm  BookingAction = "confirm"
	ActionDecline  BookingAction = "decline"
	ActionCancel   BookingAction = "cancel"
	ActionComplete BookingAction = "complete"
)

// Endpoint is the backend verb the action maps onto. Declining a pending
// booking is a cancellation on the backend.
func (a BookingAction) Endpoint() string {
	if a == ActionDecline {
		return string(ActionCancel)
	}
	return string(a)
}

// Target is the status the booking ends up in when the backend accepts the action.
func (a BookingAction) Target() models.BookingStatus {
	switch a {
	case ActionConfirm:
		return models.BookingConfirmed
	case ActionComplete:
		return models.BookingCompleted
	}
	return models.BookingCancelled
}

// Label is the button text.
func (a BookingAction) Label() string {
	switch a {
	case ActionConfirm:
		return "Confirm"
	case ActionDecline:
		return "Decline"
	case ActionComplete:
		return "Mark Complete"
	}
	return "Cancel"
}

type gateKey struct {
	status models.BookingStatus
	role   models.UserRole
}

var bookingGate = map[gateKey][]BookingAction{
	{models.BookingPending, models.RoleTutor}:     {ActionConfirm, ActionDecline},
	{models.BookingPending, models.RoleStudent}:   {ActionCancel},
	{models.BookingConfirmed, models.RoleTutor}:   {ActionComplete, ActionCancel},
	{models.BookingConfirmed, models.RoleStudent}: {ActionCancel},
}

// BookingActions lists what role may do with a booking in status. Admins are
// not gated here; see AdminStatusChoices.
func BookingActions(status models.BookingStatus, role models.UserRole) []BookingAction {
	actions := bookingGate[gateKey{status, role}]
	if len(actions) == 0 {
		return nil
	}
	out := make([]BookingAction, len(actions))
	copy(out, actions)
	return out
}

// Allows reports whether action is offered for status and role.
func Allows(status models.BookingStatus, role models.UserRole, action BookingAction) bool {
	for _, a := range bookingGate[gateKey{status, role}] {
		if a == action {
			return true
		}
	}
	return false
}

// AdminStatusChoices lists every status an admin may set. Choosing the
// current one is a no-op.
func AdminStatusChoices(current models.BookingStatus) []models.BookingStatus {
	out := make([]models.BookingStatus, 0, len(models.BookingStatuses)-1)
	for _, s := range models.BookingStatuses {
		if s != current {
			out = append(out, s)
		}
	}
	return out
}

// CanLeaveReview is true for completed bookings without a review.
func CanLeaveReview(b models.Booking) bool {
	return b.Status == models.BookingCompleted && b.Review == nil
}
