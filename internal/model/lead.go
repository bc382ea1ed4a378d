package model

import "time"

// LeadStatus tracks where a lead sits in the sales funnel.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusResponded LeadStatus = "responded"
	LeadStatusClosed    LeadStatus = "closed"
)

// LeadPriority is a coarse bucket derived from the overall score.
type LeadPriority string

const (
	PriorityHigh   LeadPriority = "high"
	PriorityMedium LeadPriority = "medium"
	PriorityLow    LeadPriority = "low"
)

// PriorityForScore maps an overall score to a priority bucket.
func PriorityForScore(score float64) LeadPriority {
	switch {
	case score >= 0.8:
		return PriorityHigh
	case score >= 0.7:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Stakeholder is a person (or a role still to be filled) at a target company
// who matters for the sale. Pending stakeholders carry an empty Name and
// Pending=true; they hold the title/department the model suggested until a
// contact source resolves a real person.
type Stakeholder struct {
	ID                 string    `json:"id,omitempty"`
	CompanyID          string    `json:"company_id"`
	Name               string    `json:"name,omitempty"`
	Title              string    `json:"title,omitempty"`
	Department         string    `json:"department,omitempty"`
	Email              string    `json:"email,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	LinkedIn           string    `json:"linkedin,omitempty"`
	Pending            bool      `json:"pending,omitempty"`
	DecisionMakerScore float64   `json:"decision_maker_score"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
}

// Lead ties a qualified company, the event it was found at, and a stakeholder
// together with the qualification outcome. It references the other entities
// by ID only.
type Lead struct {
	ID                 string       `json:"id,omitempty"`
	EventID            string       `json:"event_id,omitempty"`
	CompanyID          string       `json:"company_id"`
	StakeholderID      string       `json:"stakeholder_id,omitempty"`
	QualificationScore float64      `json:"qualification_score"`
	Rationale          string       `json:"rationale,omitempty"`
	Status             LeadStatus   `json:"status"`
	Priority           LeadPriority `json:"priority"`
	OutreachSubject    string       `json:"outreach_subject,omitempty"`
	OutreachMessage    string       `json:"outreach_message,omitempty"`
	Notes              string       `json:"notes,omitempty"`
	CreatedAt          time.Time    `json:"created_at,omitempty"`
	UpdatedAt          time.Time    `json:"updated_at,omitempty"`
}
