package models

// Represents the contact form submission coming from the website
type LeadFormData struct {
	Name    string `json:"name" validate:"required"`
	Company string `json:"company"`
	Email   string `json:"email" validate:"required"`
	Source  string `json:"source"`
}
