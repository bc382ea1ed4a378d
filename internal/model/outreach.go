package model

import "time"

// FollowUp is one message in the follow-up sequence after the initial
// outreach. Timing is human-readable ("1 week after initial").
type FollowUp struct {
	Sequence int    `json:"sequence"`
	Timing   string `json:"timing"`
	Message  string `json:"message"`
}

// Outreach is the generated outreach package for a lead: subject line,
// primary message and an ordered follow-up sequence. Personalization records
// which company facts the generator worked into the copy.
type Outreach struct {
	ID              string     `json:"id,omitempty"`
	LeadID          string     `json:"lead_id"`
	Subject         string     `json:"subject"`
	Message         string     `json:"message"`
	FollowUps       []FollowUp `json:"follow_ups,omitempty"`
	Personalization []string   `json:"personalization,omitempty"`
	Fallback        bool       `json:"fallback,omitempty"`
	GeneratedAt     time.Time  `json:"generated_at,omitempty"`
}
