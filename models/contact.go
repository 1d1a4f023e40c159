package models

import "time"

// ContactMessage represents a contact form submission
type ContactMessage struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Category  string    `json:"category"` // general, order, return, technical, feedback, partnership
	CreatedAt time.Time `json:"created_at"`
}
