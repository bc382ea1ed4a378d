package model

import "time"

// Company is a prospective customer discovered through an industry event or
// the seed list. Name is the only required field; everything else is filled
// in (best effort) by enrichment.
type Company struct {
	ID                 string    `json:"id,omitempty"`
	Name               string    `json:"name"`
	Website            string    `json:"website,omitempty"`
	Industry           string    `json:"industry,omitempty"`
	Size               string    `json:"size,omitempty"`
	Revenue            string    `json:"revenue,omitempty"`
	Location           string    `json:"location,omitempty"`
	Description        string    `json:"description,omitempty"`
	LinkedInURL        string    `json:"linkedin_url,omitempty"`
	Technologies       []string  `json:"technologies,omitempty"`
	RecentNews         []string  `json:"recent_news,omitempty"`
	Contacts           []Contact `json:"contacts,omitempty"`
	QualificationScore float64   `json:"qualification_score"`
	SourceEvent        string    `json:"source_event,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}

// Contact is a named person at a company. Pending contacts have an empty
// name and are awaiting discovery through an external contact source.
type Contact struct {
	Name     string `json:"name,omitempty"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Pending  bool   `json:"pending,omitempty"`
}

// Primary returns the first contact, or a zero Contact if none exist.
func (c Company) Primary() Contact {
	if len(c.Contacts) == 0 {
		return Contact{}
	}
	return c.Contacts[0]
}

// Mention is a raw company sighting extracted from an event, before
// deduplication and enrichment.
type Mention struct {
	Name          string `json:"name"`
	SourceEvent   string `json:"source_event,omitempty"`
	Industry      string `json:"industry,omitempty"`
	EventDate     string `json:"event_date,omitempty"`
	EventLocation string `json:"event_location,omitempty"`
	Seeded        bool   `json:"seeded,omitempty"`
}

// ToCompany converts a mention into a bare company record.
func (m Mention) ToCompany() Company {
	return Company{
		Name:        m.Name,
		Industry:    m.Industry,
		SourceEvent: m.SourceEvent,
	}
}
