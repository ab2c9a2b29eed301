package models

// Category is a subject tutors can be listed under.
type Category struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Count       *CategoryCount `json:"_count,omitempty"`
}

// CategoryCount carries relation counts computed by the backend.
type CategoryCount struct {
	Tutors int `json:"tutors"`
}

// CategoryInput is the create/update payload.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}
