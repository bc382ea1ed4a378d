package model

import "time"

// Event is an industry event (trade show, expo, conference) that may surface
// prospective customers. RelevanceScore is in [0,1] and is computed once at
// discovery time.
type Event struct {
	ID             string    `json:"id,omitempty"`
	Name           string    `json:"name"`
	Date           string    `json:"date,omitempty"`
	Location       string    `json:"location,omitempty"`
	Industry       string    `json:"industry,omitempty"`
	Description    string    `json:"description,omitempty"`
	Website        string    `json:"website,omitempty"`
	Exhibitors     []string  `json:"exhibitors,omitempty"`
	RelevanceScore float64   `json:"relevance_score"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}
