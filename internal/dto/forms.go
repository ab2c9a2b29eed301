package dto

// Forms are bound from urlencoded bodies with gin's form binding and checked
// with validator/v10. ValidationMessages maps "Field.tag" to the text shown
// when that rule is the first to fail.

// RegisterForm is the sign-up form.
type RegisterForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `form:"role" validate:"required,oneof=STUDENT TUTOR"`
}

func (RegisterForm) ValidationMessages() map[string]string {
	return map[string]string{
		"Name.required":            "Name is required",
		"Email.required":           "Email is required",
		"Email.email":              "Invalid email address",
		"Password.required":        "Password is required",
		"Password.min":             "Password must be at least 8 characters",
		"ConfirmPassword.required": "Please confirm your password",
		"ConfirmPassword.eqfield":  "Passwords do not match",
		"Role.required":            "Please choose a role",
		"Role.oneof":               "Please choose a role",
	}
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func (LoginForm) ValidationMessages() map[string]string {
	return map[string]string{
		"Email.required":    "Email is required",
		"Email.email":       "Invalid email address",
		"Password.required": "Password is required",
	}
}

// BookingForm is the booking form on the tutor detail page. Date and Time are
// the browser's local wall clock values.
type BookingForm struct {
	Date     string `form:"date" validate:"required,datetime=2006-01-02"`
	Time     string `form:"time" validate:"required,datetime=15:04"`
	Duration int    `form:"duration" validate:"omitempty,oneof=30 60 90 120"`
	Notes    string `form:"notes" validate:"max=1000"`
	TZOffset int    `form:"tzOffset"`
}

func (BookingForm) ValidationMessages() map[string]string {
	return map[string]string{
		"Date.required":  "Please select date and time",
		"Time.required":  "Please select date and time",
		"Date.datetime":  "Please select a valid date",
		"Time.datetime":  "Please select a valid time",
		"Duration.oneof": "Please choose a session length",
		"Notes.max":      "Notes are too long",
	}
}

// TutorProfileForm creates or updates the tutor's public profile.
type TutorProfileForm struct {
	Bio         string   `form:"bio" validate:"max=5000"`
	HourlyRate  float64  `form:"hourlyRate" validate:"gt=0"`
	Experience  int      `form:"experience" validate:"gte=0,lte=50"`
	CategoryIDs []string `form:"categoryIds"`
	IsAvailable bool     `form:"isAvailable"`
}

func (TutorProfileForm) ValidationMessages() map[string]string {
	return map[string]string{
		"HourlyRate.gt":  "Hourly rate must be greater than 0",
		"Experience.gte": "Experience must be between 0 and 50 years",
		"Experience.lte": "Experience must be between 0 and 50 years",
		"Bio.max":        "Bio is too long",
	}
}

// AvailabilityForm adds a weekly slot. Overlaps with existing slots are allowed.
type AvailabilityForm struct {
	DayOfWeek int    `form:"dayOfWeek" validate:"gte=0,lte=6"`
	StartTime string `form:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `form:"endTime" validate:"required,datetime=15:04"`
}

func (AvailabilityForm) ValidationMessages() map[string]string {
	return map[string]string{
		"DayOfWeek.gte":      "Please choose a day",
		"DayOfWeek.lte":      "Please choose a day",
		"StartTime.required": "Start time is required",
		"StartTime.datetime": "Start time must be HH:MM",
		"EndTime.required":   "End time is required",
		"EndTime.datetime":   "End time must be HH:MM",
	}
}

// CategoryForm creates or edits a category.
type CategoryForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"max=500"`
	Icon        string `form:"icon" validate:"max=16"`
}

func (CategoryForm) ValidationMessages() map[string]string {
	return map[string]string{
		"Name.required":   "Category name is required",
		"Description.max": "Description is too long",
		"Icon.max":        "Icon is too long",
	}
}

// ProfileForm updates the signed-in user's account.
type ProfileForm struct {
	Name  string `form:"name" validate:"required"`
	Phone string `form:"phone" validate:"max=32"`
	Image string `form:"image" validate:"omitempty,url"`
}

func (ProfileForm) ValidationMessages() map[string]string {
	return map[string]string{
		"Name.required": "Name is required",
		"Phone.max":     "Phone number is too long",
		"Image.url":     "Image must be a valid URL",
	}
}

// ReviewForm rates a completed session.
type ReviewForm struct {
	BookingID string `form:"bookingId" validate:"required"`
	Rating    int    `form:"rating" validate:"gte=1,lte=5"`
	Comment   string `form:"comment" validate:"max=1000"`
}

func (ReviewForm) ValidationMessages() map[string]string {
	return map[string]string{
		"BookingID.required": "Booking not found",
		"Rating.gte":         "Please select a rating",
		"Rating.lte":         "Please select a rating",
		"Comment.max":        "Comment is too long",
	}
}

// RoleForm changes a user's role.
type RoleForm struct {
	Role string `form:"role" validate:"required,oneof=STUDENT TUTOR ADMIN"`
}

func (RoleForm) ValidationMessages() map[string]string {
	return map[string]string{
		"Role.required": "Please choose a role",
		"Role.oneof":    "Please choose a role",
	}
}

// UserStatusForm bans or unbans a user.
type UserStatusForm struct {
	Status string `form:"status" validate:"required,oneof=ACTIVE BANNED"`
}

func (UserStatusForm) ValidationMessages() map[string]string {
	return map[string]string{
		"Status.required": "Please choose a status",
		"Status.oneof":    "Please choose a status",
	}
}

// BookingStatusForm overwrites a booking's status. Current is the status the
// admin saw when choosing.
type BookingStatusForm struct {
	Status  string `form:"status" validate:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
	Current string `form:"current"`
}

func (BookingStatusForm) ValidationMessages() map[string]string {
	return map[string]string{
		"Status.required": "Please choose a status",
		"Status.oneof":    "Please choose a status",
	}
}
